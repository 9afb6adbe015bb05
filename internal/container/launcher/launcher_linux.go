//go:build linux

package launcher

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"os/exec"
	"syscall"

	"ccrun/internal/container/cgroup"
	"ccrun/internal/container/gate"
	"ccrun/internal/container/idmap"
	"ccrun/internal/container/spec"
	"ccrun/pkg/errors"
	"ccrun/pkg/logger"
	"ccrun/pkg/utils/contextkey"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// selfExe re-enters this binary for the child role.
const selfExe = "/proc/self/exe"

// Launch runs the command described by the spec inside fresh mount, user,
// PID and UTS namespaces and blocks until it finishes. The returned int is
// the process exit code to report: the child's own code on a normal exit,
// the fixed failure code otherwise.
func Launch(ctx context.Context, launchSpec spec.LaunchSpec) (int, error) {
	if err := launchSpec.Validate(); err != nil {
		return errors.FailureExitCode, err
	}
	if launchSpec.ContainerID == "" {
		launchSpec.ContainerID = uuid.NewString()
	}
	if launchSpec.CgroupRoot == "" {
		launchSpec.CgroupRoot = cgroup.DefaultRoot
	}
	ctx = context.WithValue(ctx, contextkey.ContainerID, launchSpec.ContainerID)

	g, err := gate.New()
	if err != nil {
		return errors.FailureExitCode, err
	}

	// The four namespaces are requested together on the clone so the child
	// is born inside all of them; none can be retrofitted afterwards.
	cmd := exec.Command(selfExe, InitArgs(launchSpec)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.ExtraFiles = []*os.File{g.ChildFile()}
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Cloneflags: syscall.CLONE_NEWNS |
			syscall.CLONE_NEWUSER |
			syscall.CLONE_NEWPID |
			syscall.CLONE_NEWUTS,
	}

	if err := cmd.Start(); err != nil {
		g.Abort()
		g.CloseChildEnd()
		return errors.FailureExitCode, errors.Wrapf(err, errors.SpawnFailed, "spawn isolated child: %v", err)
	}
	g.CloseChildEnd()

	pid := cmd.Process.Pid
	logger.Debug(ctx, "spawned isolated child", zap.Int("pid", pid))

	uidMap := idmap.Self(os.Getuid())
	gidMap := idmap.Self(os.Getgid())
	if err := idmap.Commit(idmap.DefaultProcRoot, pid, uidMap, gidMap); err != nil {
		// The child must never run with a half-committed map. Signal the
		// abort so it exits instead of blocking forever, then reap it.
		g.Abort()
		_ = cmd.Wait()
		removeCgroup(ctx, launchSpec)
		return errors.FailureExitCode, err
	}

	if err := g.Release(); err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		removeCgroup(ctx, launchSpec)
		return errors.FailureExitCode, err
	}

	waitErr := cmd.Wait()
	removeCgroup(ctx, launchSpec)

	code, abnormal := exitStatus(cmd.ProcessState, waitErr)
	if abnormal {
		return errors.FailureExitCode, errors.Newf(errors.AbnormalExit, "child did not exit normally: %v", waitErr)
	}
	logger.Debug(ctx, "child exited", zap.Int("exit_code", code))
	return code, nil
}

// removeCgroup deletes the child's cgroup after it has been reaped. The
// directory is absent when the child failed before creating it; that is
// logged, not fatal.
func removeCgroup(ctx context.Context, launchSpec spec.LaunchSpec) {
	err := cgroup.Remove(launchSpec.CgroupRoot, launchSpec.ContainerID)
	if err == nil {
		return
	}
	path := cgroup.PathFor(launchSpec.CgroupRoot, launchSpec.ContainerID)
	if stderrors.Is(err, fs.ErrNotExist) {
		logger.Warn(ctx, "cgroup directory does not exist", zap.String("path", path))
		return
	}
	logger.Error(ctx, "remove cgroup failed", zap.String("path", path), zap.Error(err))
}

// exitStatus classifies the wait outcome. A normal exit reports the
// child's code verbatim; termination by signal or a wait failure is
// abnormal and must not be conflated with a program exit code.
func exitStatus(state *os.ProcessState, waitErr error) (int, bool) {
	if state != nil {
		if ws, ok := state.Sys().(syscall.WaitStatus); ok {
			return waitOutcome(ws)
		}
	}
	if waitErr == nil {
		return 0, false
	}
	return 0, true
}

func waitOutcome(ws syscall.WaitStatus) (int, bool) {
	if ws.Exited() {
		return ws.ExitStatus(), false
	}
	return 0, true
}
