//go:build linux

package launcher

import (
	"syscall"
	"testing"
)

func TestWaitOutcome(t *testing.T) {
	cases := []struct {
		name     string
		status   syscall.WaitStatus
		code     int
		abnormal bool
	}{
		{name: "exit_zero", status: syscall.WaitStatus(0), code: 0},
		{name: "exit_one", status: syscall.WaitStatus(1 << 8), code: 1},
		{name: "exit_failure_code", status: syscall.WaitStatus(125 << 8), code: 125},
		{name: "exit_max", status: syscall.WaitStatus(255 << 8), code: 255},
		{name: "killed_by_sigkill", status: syscall.WaitStatus(9), abnormal: true},
		{name: "killed_by_sigterm", status: syscall.WaitStatus(15), abnormal: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, abnormal := waitOutcome(tc.status)
			if abnormal != tc.abnormal {
				t.Fatalf("abnormal = %v, want %v", abnormal, tc.abnormal)
			}
			if !abnormal && code != tc.code {
				t.Fatalf("code = %d, want %d", code, tc.code)
			}
		})
	}
}

func TestExitStatusWithoutState(t *testing.T) {
	if code, abnormal := exitStatus(nil, nil); code != 0 || abnormal {
		t.Fatalf("nil state and nil error must be a clean exit, got %d/%v", code, abnormal)
	}
	if _, abnormal := exitStatus(nil, syscall.ECHILD); !abnormal {
		t.Fatalf("wait failure without state must be abnormal")
	}
}
