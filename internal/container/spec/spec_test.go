package spec

import (
	"testing"

	"ccrun/pkg/errors"
)

func TestDefault(t *testing.T) {
	s := Default([]string{"echo", "hello"})

	if got := len(s.Command); got != 2 {
		t.Fatalf("expected 2 command tokens, got %d", got)
	}
	if s.RootFS != "alpine/" {
		t.Fatalf("unexpected rootfs: %q", s.RootFS)
	}
	if s.Hostname != "container" {
		t.Fatalf("unexpected hostname: %q", s.Hostname)
	}
	if s.Limits.CPUQuota != 10000 || s.Limits.CPUPeriod != 100000 {
		t.Fatalf("unexpected cpu limits: %d/%d", s.Limits.CPUQuota, s.Limits.CPUPeriod)
	}
	if s.Limits.MemoryBytes != 67108864 {
		t.Fatalf("unexpected memory limit: %d", s.Limits.MemoryBytes)
	}
	if s.ContainerID != "" {
		t.Fatalf("container id must be unset until the launcher assigns it")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*LaunchSpec)
		ok     bool
	}{
		{
			name:   "valid",
			mutate: func(s *LaunchSpec) {},
			ok:     true,
		},
		{
			name:   "no_command",
			mutate: func(s *LaunchSpec) { s.Command = nil },
		},
		{
			name:   "empty_program",
			mutate: func(s *LaunchSpec) { s.Command = []string{""} },
		},
		{
			name:   "no_rootfs",
			mutate: func(s *LaunchSpec) { s.RootFS = "" },
		},
		{
			name:   "no_hostname",
			mutate: func(s *LaunchSpec) { s.Hostname = "" },
		},
		{
			name:   "zero_cpu_quota",
			mutate: func(s *LaunchSpec) { s.Limits.CPUQuota = 0 },
		},
		{
			name:   "negative_cpu_period",
			mutate: func(s *LaunchSpec) { s.Limits.CPUPeriod = -1 },
		},
		{
			name:   "zero_memory",
			mutate: func(s *LaunchSpec) { s.Limits.MemoryBytes = 0 },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Default([]string{"true"})
			tc.mutate(&s)
			err := s.Validate()
			if tc.ok {
				if err != nil {
					t.Fatalf("expected valid spec, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if code := errors.GetCode(err); code != errors.InvalidRequest {
				t.Fatalf("expected InvalidRequest, got %d", code)
			}
		})
	}
}
