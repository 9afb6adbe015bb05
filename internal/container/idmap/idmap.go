// Package idmap commits the user-namespace identity mapping for a child.
package idmap

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"ccrun/pkg/errors"
)

// DefaultProcRoot is where per-process mapping files live.
const DefaultProcRoot = "/proc"

// Mapping is a single id translation rule for the child's user namespace.
type Mapping struct {
	InsideID  int
	OutsideID int
	Count     int
}

// Self returns the rule mapping the given outside id to root inside the
// namespace. This is the only rule an unprivileged parent may commit.
func Self(outsideID int) Mapping {
	return Mapping{InsideID: 0, OutsideID: outsideID, Count: 1}
}

func (m Mapping) String() string {
	return fmt.Sprintf("%d %d %d", m.InsideID, m.OutsideID, m.Count)
}

// Commit writes the UID and GID mappings for the child pid. setgroups is
// denied first; the kernel rejects an unprivileged gid_map write otherwise.
// Each file accepts exactly one write, so a failure here means the map can
// never be completed and the launch must be aborted.
func Commit(procRoot string, pid int, uid, gid Mapping) error {
	base := filepath.Join(procRoot, strconv.Itoa(pid))

	if err := writeMapFile(filepath.Join(base, "setgroups"), "deny"); err != nil {
		return err
	}
	if err := writeMapFile(filepath.Join(base, "uid_map"), uid.String()); err != nil {
		return err
	}
	if err := writeMapFile(filepath.Join(base, "gid_map"), gid.String()); err != nil {
		return err
	}
	return nil
}

func writeMapFile(path, value string) error {
	if err := os.WriteFile(path, []byte(value), 0644); err != nil {
		return errors.Wrapf(err, errors.MappingFailed, "write %s: %v", path, err)
	}
	return nil
}
