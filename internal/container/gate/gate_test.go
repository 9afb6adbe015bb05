package gate

import (
	"testing"
	"time"

	"ccrun/pkg/errors"
)

func TestReleaseUnblocksWait(t *testing.T) {
	g, err := New()
	if err != nil {
		t.Fatalf("create gate: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- Wait(g.ChildFile())
	}()

	// The waiter must stay blocked until the release, however slow the
	// parent-side commit is.
	select {
	case err := <-done:
		t.Fatalf("wait returned before release: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	if err := g.Release(); err != nil {
		t.Fatalf("release gate: %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("wait after release: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("wait did not return after release")
	}
}

func TestAbortFailsWait(t *testing.T) {
	g, err := New()
	if err != nil {
		t.Fatalf("create gate: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- Wait(g.ChildFile())
	}()

	g.Abort()

	select {
	case err := <-done:
		if err == nil {
			t.Fatalf("expected wait to fail after abort")
		}
		if code := errors.GetCode(err); code != errors.MappingAborted {
			t.Fatalf("expected MappingAborted, got %d", code)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("wait did not return after abort")
	}
}
