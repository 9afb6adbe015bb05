package idmap

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"ccrun/pkg/errors"
)

func TestSelf(t *testing.T) {
	m := Self(1000)
	if m.InsideID != 0 || m.OutsideID != 1000 || m.Count != 1 {
		t.Fatalf("unexpected mapping: %+v", m)
	}
	if m.String() != "0 1000 1" {
		t.Fatalf("unexpected mapping record: %q", m.String())
	}
}

func TestCommit(t *testing.T) {
	procRoot := t.TempDir()
	pid := 1234
	if err := os.Mkdir(filepath.Join(procRoot, strconv.Itoa(pid)), 0755); err != nil {
		t.Fatalf("prepare proc dir: %v", err)
	}

	if err := Commit(procRoot, pid, Self(1000), Self(1001)); err != nil {
		t.Fatalf("commit mappings: %v", err)
	}

	cases := []struct {
		file string
		want string
	}{
		{"setgroups", "deny"},
		{"uid_map", "0 1000 1"},
		{"gid_map", "0 1001 1"},
	}
	for _, tc := range cases {
		data, err := os.ReadFile(filepath.Join(procRoot, strconv.Itoa(pid), tc.file))
		if err != nil {
			t.Fatalf("read %s: %v", tc.file, err)
		}
		if string(data) != tc.want {
			t.Fatalf("unexpected %s: %q", tc.file, string(data))
		}
	}
}

func TestCommitFailsWhenProcessIsGone(t *testing.T) {
	// No <pid> directory: the child exited before the commit.
	err := Commit(t.TempDir(), 999, Self(1000), Self(1000))
	if err == nil {
		t.Fatalf("expected commit to fail")
	}
	if code := errors.GetCode(err); code != errors.MappingFailed {
		t.Fatalf("expected MappingFailed, got %d", code)
	}
}
