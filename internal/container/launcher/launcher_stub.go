//go:build !linux

package launcher

import (
	"context"

	"ccrun/internal/container/spec"
	"ccrun/pkg/errors"
)

func Launch(ctx context.Context, launchSpec spec.LaunchSpec) (int, error) {
	return errors.FailureExitCode, errors.Newf(errors.SetupFailed, "isolated launch is only supported on linux")
}
