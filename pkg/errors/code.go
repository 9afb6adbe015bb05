package errors

// ErrorCode represents a unique error identifier
type ErrorCode int

// Error code ranges allocation:
// 10000-10099: Generic errors
// 10100-10199: Parent-side setup errors (no child exists yet)
// 10200-10299: Privilege-mapping errors
// 10300-10399: Child initialization errors
// 10400-10499: Lifecycle & cleanup errors

const (
	// Success
	Success ErrorCode = 10000

	// Generic errors (10000-10099)
	InternalError  ErrorCode = 10001
	InvalidRequest ErrorCode = 10002

	// Setup errors (10100-10199)
	SetupFailed ErrorCode = 10100
	SpawnFailed ErrorCode = 10101

	// Privilege-mapping errors (10200-10299)
	MappingFailed  ErrorCode = 10200
	MappingAborted ErrorCode = 10201

	// Child initialization errors (10300-10399)
	GateFailed     ErrorCode = 10300
	CgroupFailed   ErrorCode = 10301
	HostnameFailed ErrorCode = 10302
	RootFailed     ErrorCode = 10303
	MountFailed    ErrorCode = 10304
	ExecFailed     ErrorCode = 10305

	// Lifecycle & cleanup errors (10400-10499)
	WaitFailed    ErrorCode = 10400
	AbnormalExit  ErrorCode = 10401
	CleanupFailed ErrorCode = 10402
)

// errorMessages maps error codes to their default English messages
var errorMessages = map[ErrorCode]string{
	Success:        "Success",
	InternalError:  "Internal launcher error",
	InvalidRequest: "Invalid launch request",

	SetupFailed: "Launch setup failed",
	SpawnFailed: "Failed to spawn isolated child",

	MappingFailed:  "Failed to write UID/GID mappings",
	MappingAborted: "Parent aborted before committing UID/GID mappings",

	GateFailed:     "Synchronization gate failed",
	CgroupFailed:   "Failed to apply cgroup limits",
	HostnameFailed: "Failed to set container hostname",
	RootFailed:     "Failed to change filesystem root",
	MountFailed:    "Failed to mount proc filesystem",
	ExecFailed:     "Failed to execute command",

	WaitFailed:    "Failed to wait for child",
	AbnormalExit:  "Child terminated abnormally",
	CleanupFailed: "Failed to clean up launch resources",
}

// Message returns the default message for the error code
func (c ErrorCode) Message() string {
	if msg, ok := errorMessages[c]; ok {
		return msg
	}
	return "Unknown error"
}

// FailureExitCode is the fixed process exit code for internal launch
// failures. It sits outside the range most programs use so pass-through of
// the launched program's own exit code stays exact; a program that itself
// exits 125 remains indistinguishable from a launch failure.
const FailureExitCode = 125

// ExitCode returns the recommended process exit code for the error code.
func (c ErrorCode) ExitCode() int {
	if c == Success {
		return 0
	}
	return FailureExitCode
}
