package launcher

import (
	"strconv"

	"ccrun/internal/container/spec"
)

// InitArgs serializes a launch spec into the argument vector for the child
// role. The child re-enters this binary through the hidden init command and
// reconstructs the same spec from these flags; the command tokens follow
// the terminator verbatim.
func InitArgs(launchSpec spec.LaunchSpec) []string {
	args := []string{
		"init",
		"--id", launchSpec.ContainerID,
		"--cgroup-root", launchSpec.CgroupRoot,
		"--rootfs", launchSpec.RootFS,
		"--hostname", launchSpec.Hostname,
		"--cpu-quota", strconv.FormatInt(launchSpec.Limits.CPUQuota, 10),
		"--cpu-period", strconv.FormatInt(launchSpec.Limits.CPUPeriod, 10),
		"--memory", strconv.FormatInt(launchSpec.Limits.MemoryBytes, 10),
		"--",
	}
	return append(args, launchSpec.Command...)
}
