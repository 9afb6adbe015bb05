//go:build linux

package initialize

import (
	"os"
	"os/exec"

	"ccrun/internal/container/cgroup"
	"ccrun/internal/container/gate"
	"ccrun/internal/container/spec"
	"ccrun/pkg/errors"

	"golang.org/x/sys/unix"
)

// Run is the child-side entry point, executed inside the fresh namespaces.
// The stages are strictly ordered; each one's success is a precondition of
// the next and the first failure aborts the launch. On success the process
// image is replaced by the target command and Run never returns.
func Run(launchSpec spec.LaunchSpec) error {
	if err := launchSpec.Validate(); err != nil {
		return err
	}

	// Block until the parent has committed the UID/GID mappings. Filesystem
	// and resource changes below depend on the user namespace being fully
	// configured.
	if err := gate.Wait(os.NewFile(gate.ChildFD, "gate")); err != nil {
		return err
	}

	if err := applyLimits(launchSpec); err != nil {
		return err
	}

	if err := unix.Sethostname([]byte(launchSpec.Hostname)); err != nil {
		return errors.Wrapf(err, errors.HostnameFailed, "set hostname %q: %v", launchSpec.Hostname, err)
	}

	// Mount changes must stay inside this namespace even when the host
	// propagates mounts as shared.
	if err := unix.Mount("", "/", "", unix.MS_REC|unix.MS_PRIVATE, ""); err != nil {
		return errors.Wrapf(err, errors.MountFailed, "make mounts private: %v", err)
	}

	if err := unix.Chroot(launchSpec.RootFS); err != nil {
		return errors.Wrapf(err, errors.RootFailed, "chroot %s: %v", launchSpec.RootFS, err)
	}
	if err := os.Chdir("/"); err != nil {
		return errors.Wrapf(err, errors.RootFailed, "chdir to new root: %v", err)
	}

	if err := os.MkdirAll("/proc", 0755); err != nil {
		return errors.Wrapf(err, errors.MountFailed, "mkdir /proc: %v", err)
	}
	if err := unix.Mount("proc", "/proc", "proc", 0, ""); err != nil {
		return errors.Wrapf(err, errors.MountFailed, "mount proc: %v", err)
	}

	cmdPath, err := exec.LookPath(launchSpec.Command[0])
	if err != nil {
		return errors.Wrapf(err, errors.ExecFailed, "resolve command %q: %v", launchSpec.Command[0], err)
	}
	if err := unix.Exec(cmdPath, launchSpec.Command, os.Environ()); err != nil {
		return errors.Wrapf(err, errors.ExecFailed, "exec %s: %v", cmdPath, err)
	}
	return nil
}

// applyLimits creates this launch's cgroup, writes the CPU and memory
// ceilings and places the child into it, all before the real workload
// starts.
func applyLimits(launchSpec spec.LaunchSpec) error {
	path, err := cgroup.Create(launchSpec.CgroupRoot, launchSpec.ContainerID)
	if err != nil {
		return err
	}
	if err := cgroup.ApplyLimits(path, launchSpec.Limits); err != nil {
		return err
	}
	return cgroup.AddProcess(path, os.Getpid())
}
