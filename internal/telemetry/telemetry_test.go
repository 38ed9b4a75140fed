package telemetry

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestSplitEndpoint(t *testing.T) {
	cases := []struct {
		in       string
		host     string
		insecure bool
	}{
		{"http://localhost:4318", "localhost:4318", true},
		{"https://otlp.example.com", "otlp.example.com", false},
		{"otlp.example.com:4318", "otlp.example.com:4318", false},
	}
	for _, c := range cases {
		host, insecure := splitEndpoint(c.in)
		if host != c.host || insecure != c.insecure {
			t.Errorf("splitEndpoint(%q) = %q, %v; want %q, %v", c.in, host, insecure, c.host, c.insecure)
		}
	}
}

func TestFanoutReachesAllHandlers(t *testing.T) {
	var a, b bytes.Buffer
	logger := slog.New(fanout{
		slog.NewTextHandler(&a, nil),
		slog.NewTextHandler(&b, nil),
	})

	logger.InfoContext(context.Background(), "pan is hot", "temp", 220)

	for name, buf := range map[string]*bytes.Buffer{"first": &a, "second": &b} {
		if !strings.Contains(buf.String(), "pan is hot") {
			t.Errorf("%s handler missed the record: %q", name, buf.String())
		}
	}
}

func TestFanoutRespectsLevels(t *testing.T) {
	var quiet, chatty bytes.Buffer
	logger := slog.New(fanout{
		slog.NewTextHandler(&quiet, &slog.HandlerOptions{Level: slog.LevelError}),
		slog.NewTextHandler(&chatty, &slog.HandlerOptions{Level: slog.LevelDebug}),
	})

	logger.Debug("whisking")

	if quiet.Len() != 0 {
		t.Errorf("error-level handler received debug record: %q", quiet.String())
	}
	if !strings.Contains(chatty.String(), "whisking") {
		t.Errorf("debug handler missed the record: %q", chatty.String())
	}
}
