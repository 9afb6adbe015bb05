package main

import (
	"ccrun/internal/container/initialize"
	"ccrun/internal/container/spec"

	"github.com/spf13/cobra"
)

var (
	initID         string
	initCgroupRoot string
	initRootFS     string
	initHostname   string
	initCPUQuota   int64
	initCPUPeriod  int64
	initMemory     int64
)

// initCmd is the child role. The parent re-executes this binary through
// /proc/self/exe with this command already inside the new namespaces; it is
// never meant to be invoked by hand.
var initCmd = &cobra.Command{
	Use:    "init",
	Hidden: true,
	Args:   cobra.MinimumNArgs(1),
	RunE:   runInit,
}

func init() {
	initCmd.Flags().StringVar(&initID, "id", "", "container id")
	initCmd.Flags().StringVar(&initCgroupRoot, "cgroup-root", "", "cgroup v2 mount point")
	initCmd.Flags().StringVar(&initRootFS, "rootfs", "", "root filesystem directory")
	initCmd.Flags().StringVar(&initHostname, "hostname", "", "container hostname")
	initCmd.Flags().Int64Var(&initCPUQuota, "cpu-quota", 0, "cgroup cpu.max quota")
	initCmd.Flags().Int64Var(&initCPUPeriod, "cpu-period", 0, "cgroup cpu.max period")
	initCmd.Flags().Int64Var(&initMemory, "memory", 0, "cgroup memory.max ceiling")
	initCmd.Flags().SetInterspersed(false)
}

func runInit(cmd *cobra.Command, args []string) error {
	return initialize.Run(spec.LaunchSpec{
		ContainerID: initID,
		Command:     args,
		RootFS:      initRootFS,
		Hostname:    initHostname,
		CgroupRoot:  initCgroupRoot,
		Limits: spec.ResourceLimit{
			CPUQuota:    initCPUQuota,
			CPUPeriod:   initCPUPeriod,
			MemoryBytes: initMemory,
		},
	})
}
