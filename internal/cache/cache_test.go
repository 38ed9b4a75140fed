package cache

import (
	"errors"
	"io"
	"sync"
	"testing"
)

func backends(t *testing.T) map[string]Cache {
	return map[string]Cache{
		"file":   NewFileCache(t.TempDir()),
		"memory": NewInMemoryCache(),
	}
}

func TestGetMissingKey(t *testing.T) {
	for name, c := range backends(t) {
		if _, err := c.Get(t.Context(), "nope"); !errors.Is(err, ErrNotFound) {
			t.Errorf("%s: expected ErrNotFound, got %v", name, err)
		}
	}
}

func TestPutThenGet(t *testing.T) {
	for name, c := range backends(t) {
		if err := c.Put(t.Context(), "recipe/abc", "value", Unconditional()); err != nil {
			t.Fatalf("%s: put failed: %v", name, err)
		}
		rc, err := c.Get(t.Context(), "recipe/abc")
		if err != nil {
			t.Fatalf("%s: get failed: %v", name, err)
		}
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("%s: read failed: %v", name, err)
		}
		if err := rc.Close(); err != nil {
			t.Fatalf("%s: close failed: %v", name, err)
		}
		if string(data) != "value" {
			t.Errorf("%s: got %q, want %q", name, data, "value")
		}

		ok, err := c.Exists(t.Context(), "recipe/abc")
		if err != nil || !ok {
			t.Errorf("%s: exists = %v, %v; want true, nil", name, ok, err)
		}
	}
}

func TestIfNoneMatch(t *testing.T) {
	for name, c := range backends(t) {
		if err := c.Put(t.Context(), "k", "first", IfNoneMatch()); err != nil {
			t.Fatalf("%s: first put failed: %v", name, err)
		}
		if err := c.Put(t.Context(), "k", "second", IfNoneMatch()); !errors.Is(err, ErrAlreadyExists) {
			t.Errorf("%s: expected ErrAlreadyExists, got %v", name, err)
		}
		// unconditional overwrite still allowed
		if err := c.Put(t.Context(), "k", "third", Unconditional()); err != nil {
			t.Errorf("%s: overwrite failed: %v", name, err)
		}
	}
}

func TestIfNoneMatchConcurrentWriters(t *testing.T) {
	for name, c := range backends(t) {
		const n = 32
		var wg sync.WaitGroup
		wg.Add(n)
		errs := make(chan error, n)
		for range n {
			go func() {
				defer wg.Done()
				errs <- c.Put(t.Context(), "contended", "v", IfNoneMatch())
			}()
		}
		wg.Wait()
		close(errs)

		var ok, exists int
		for err := range errs {
			switch {
			case err == nil:
				ok++
			case errors.Is(err, ErrAlreadyExists):
				exists++
			default:
				t.Fatalf("%s: unexpected error: %v", name, err)
			}
		}
		if ok != 1 || exists != n-1 {
			t.Errorf("%s: expected 1 winner, got ok=%d exists=%d", name, ok, exists)
		}
	}
}
