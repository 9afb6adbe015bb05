package errors

import (
	stderrors "errors"
	"io/fs"
	"testing"
)

func TestWrapKeepsUnderlyingError(t *testing.T) {
	wrapped := Wrapf(fs.ErrNotExist, CleanupFailed, "remove cgroup: %v", fs.ErrNotExist)
	if !stderrors.Is(wrapped, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist through the wrap chain")
	}
	if GetCode(wrapped) != CleanupFailed {
		t.Fatalf("expected CleanupFailed, got %d", GetCode(wrapped))
	}
}

func TestGetCode(t *testing.T) {
	if GetCode(nil) != Success {
		t.Fatalf("nil error must map to Success")
	}
	if GetCode(stderrors.New("plain")) != InternalError {
		t.Fatalf("foreign error must map to InternalError")
	}
	if GetCode(New(MappingFailed)) != MappingFailed {
		t.Fatalf("coded error must keep its code")
	}
}

func TestExitCode(t *testing.T) {
	if Success.ExitCode() != 0 {
		t.Fatalf("Success must exit 0")
	}
	for _, code := range []ErrorCode{SetupFailed, SpawnFailed, MappingFailed, ExecFailed, AbnormalExit} {
		if code.ExitCode() != FailureExitCode {
			t.Fatalf("code %d must exit %d", code, FailureExitCode)
		}
	}
}
