package ai

import "fmt"

// TransportError means the completion service could not be reached or
// refused the request: dial failure, timeout, auth rejection, any non-2xx.
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s transport error: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// FormatError means a response arrived but could not be parsed into the
// expected entity. Raw keeps the response text so the user can inspect it.
type FormatError struct {
	Provider string
	Raw      string
	Err      error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s returned an unparseable response: %v", e.Provider, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

func transportErr(provider string, format string, args ...any) *TransportError {
	return &TransportError{Provider: provider, Err: fmt.Errorf(format, args...)}
}

func formatErr(provider, raw string, format string, args ...any) *FormatError {
	return &FormatError{Provider: provider, Raw: raw, Err: fmt.Errorf(format, args...)}
}
