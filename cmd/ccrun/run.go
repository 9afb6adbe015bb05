package main

import (
	"ccrun/internal/container/launcher"
	"ccrun/internal/container/spec"

	"github.com/spf13/cobra"
)

var (
	runRootFS     string
	runHostname   string
	runCPUQuota   int64
	runCPUPeriod  int64
	runMemory     int64
	runCgroupRoot string

	// launchExitCode is the code reported when the launch itself succeeded;
	// it carries the launched program's own exit code.
	launchExitCode int
)

var runCmd = &cobra.Command{
	Use:   "run <program> [args...]",
	Short: "Run a command inside fresh mount, user, PID and UTS namespaces",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&runRootFS, "rootfs", spec.DefaultRootFS, "root filesystem directory to chroot into")
	runCmd.Flags().StringVar(&runHostname, "hostname", spec.DefaultHostname, "hostname inside the container")
	runCmd.Flags().Int64Var(&runCPUQuota, "cpu-quota", spec.DefaultCPUQuota, "cgroup cpu.max quota in microseconds")
	runCmd.Flags().Int64Var(&runCPUPeriod, "cpu-period", spec.DefaultCPUPeriod, "cgroup cpu.max period in microseconds")
	runCmd.Flags().Int64Var(&runMemory, "memory", spec.DefaultMemoryBytes, "cgroup memory.max ceiling in bytes")
	runCmd.Flags().StringVar(&runCgroupRoot, "cgroup-root", "", "cgroup v2 mount point (default /sys/fs/cgroup)")

	// Flags after the program name belong to the program, not to ccrun.
	runCmd.Flags().SetInterspersed(false)
}

func runRun(cmd *cobra.Command, args []string) error {
	launchSpec := spec.Default(args)
	launchSpec.RootFS = runRootFS
	launchSpec.Hostname = runHostname
	launchSpec.CgroupRoot = runCgroupRoot
	launchSpec.Limits = spec.ResourceLimit{
		CPUQuota:    runCPUQuota,
		CPUPeriod:   runCPUPeriod,
		MemoryBytes: runMemory,
	}

	code, err := launcher.Launch(cmd.Context(), launchSpec)
	if err != nil {
		return err
	}
	launchExitCode = code
	return nil
}
