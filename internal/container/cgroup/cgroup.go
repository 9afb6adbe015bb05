// Package cgroup manages the cgroup v2 resource group backing one launch.
package cgroup

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"ccrun/internal/container/spec"
	"ccrun/pkg/errors"
)

// DefaultRoot is the host cgroup v2 mount point.
const DefaultRoot = "/sys/fs/cgroup"

// PathFor returns the cgroup directory for a container id. The name is
// unique per invocation so concurrent launches do not collide.
func PathFor(root, containerID string) string {
	return filepath.Join(root, "ccrun-"+containerID)
}

// Create makes the cgroup directory for the container.
func Create(root, containerID string) (string, error) {
	if root == "" {
		return "", errors.Newf(errors.CgroupFailed, "cgroup root is required")
	}
	if containerID == "" {
		return "", errors.Newf(errors.CgroupFailed, "container id is required")
	}
	path := PathFor(root, containerID)
	if err := os.Mkdir(path, 0750); err != nil {
		return "", errors.Wrapf(err, errors.CgroupFailed, "create cgroup %s: %v", path, err)
	}
	return path, nil
}

// ApplyLimits writes the CPU quota and memory ceiling control files.
// Failures are never partial-and-silent: the first failed write aborts.
func ApplyLimits(path string, limits spec.ResourceLimit) error {
	cpuMax := fmt.Sprintf("%d %d", limits.CPUQuota, limits.CPUPeriod)
	if err := writeCgroupValue(path, "cpu.max", cpuMax); err != nil {
		return err
	}
	if err := writeCgroupValue(path, "memory.max", strconv.FormatInt(limits.MemoryBytes, 10)); err != nil {
		return err
	}
	return nil
}

// AddProcess places a pid into the cgroup's process list.
func AddProcess(path string, pid int) error {
	if pid <= 0 {
		return errors.Newf(errors.CgroupFailed, "invalid pid %d", pid)
	}
	return writeCgroupValue(path, "cgroup.procs", strconv.Itoa(pid))
}

// Remove deletes the cgroup directory. The cgroup must be empty, which
// holds once the last process in it has been reaped. A missing directory
// yields an error satisfying errors.Is(err, fs.ErrNotExist) through the
// wrap chain so the caller can tolerate it.
func Remove(root, containerID string) error {
	path := PathFor(root, containerID)
	if err := os.Remove(path); err != nil {
		return errors.Wrapf(err, errors.CleanupFailed, "remove cgroup %s: %v", path, err)
	}
	return nil
}

func writeCgroupValue(path, name, value string) error {
	file := filepath.Join(path, name)
	if err := os.WriteFile(file, []byte(value), 0640); err != nil {
		return errors.Wrapf(err, errors.CgroupFailed, "write %s: %v", file, err)
	}
	return nil
}
