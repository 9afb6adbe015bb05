// Package spec defines the launch specification and resource limits.
package spec

import "ccrun/pkg/errors"

// Default values matching the launcher's built-in container profile.
const (
	DefaultRootFS   = "alpine/"
	DefaultHostname = "container"

	// DefaultCPUQuota/DefaultCPUPeriod grant 10% of one core.
	DefaultCPUQuota  int64 = 10000
	DefaultCPUPeriod int64 = 100000

	// DefaultMemoryBytes is a 64 MiB ceiling.
	DefaultMemoryBytes int64 = 67108864
)

// ResourceLimit describes the cgroup ceilings applied to the container.
type ResourceLimit struct {
	CPUQuota    int64
	CPUPeriod   int64
	MemoryBytes int64
}

// LaunchSpec is the unified specification for one container launch.
// Command is the verbatim argv of the target program, program name first.
type LaunchSpec struct {
	ContainerID string
	Command     []string
	RootFS      string
	Hostname    string
	CgroupRoot  string
	Limits      ResourceLimit
}

// Default returns a LaunchSpec carrying the built-in profile for the given
// command tokens. The ContainerID is assigned by the launcher.
func Default(command []string) LaunchSpec {
	return LaunchSpec{
		Command:  command,
		RootFS:   DefaultRootFS,
		Hostname: DefaultHostname,
		Limits: ResourceLimit{
			CPUQuota:    DefaultCPUQuota,
			CPUPeriod:   DefaultCPUPeriod,
			MemoryBytes: DefaultMemoryBytes,
		},
	}
}

// Validate checks the launch specification.
func (s LaunchSpec) Validate() error {
	if len(s.Command) == 0 {
		return errors.Newf(errors.InvalidRequest, "command is required")
	}
	if s.Command[0] == "" {
		return errors.Newf(errors.InvalidRequest, "program name is empty")
	}
	if s.RootFS == "" {
		return errors.Newf(errors.InvalidRequest, "rootfs is required")
	}
	if s.Hostname == "" {
		return errors.Newf(errors.InvalidRequest, "hostname is required")
	}
	if s.Limits.CPUQuota <= 0 || s.Limits.CPUPeriod <= 0 {
		return errors.Newf(errors.InvalidRequest, "cpu quota and period must be positive")
	}
	if s.Limits.MemoryBytes <= 0 {
		return errors.Newf(errors.InvalidRequest, "memory limit must be positive")
	}
	return nil
}
