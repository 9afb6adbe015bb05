//go:build !linux

package initialize

import (
	"ccrun/internal/container/spec"
	"ccrun/pkg/errors"
)

func Run(launchSpec spec.LaunchSpec) error {
	return errors.Newf(errors.SetupFailed, "container init is only supported on linux")
}
