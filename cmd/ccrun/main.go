// ccrun launches a single command inside an isolated execution environment:
// fresh mount, user, PID and UTS namespaces, a chroot into a prepared root
// filesystem, and cgroup v2 CPU/memory limits.
package main

import (
	"fmt"
	"os"

	"ccrun/pkg/errors"
	"ccrun/pkg/logger"

	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "ccrun",
	Short: "ccrun runs a command inside an isolated execution environment.",
	Long: `ccrun is a minimal isolated-process launcher. It spawns a single command
inside fresh mount, user, PID and UTS namespaces, maps the invoking user to
root inside the container, applies CPU and memory cgroup limits, and chroots
into a prepared root filesystem.

The reported exit code is the launched program's own exit code. Internal
launch failures exit with the fixed code 125; a program that itself exits
125 cannot be told apart from a launch failure.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Init(logger.Config{Level: logLevel})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.AddCommand(runCmd, initCmd)
}

func main() {
	code := 0
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		code = errors.GetCode(err).ExitCode()
	} else {
		code = launchExitCode
	}
	_ = logger.Sync()
	os.Exit(code)
}
