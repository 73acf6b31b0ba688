package constants

// Exit codes of the filelock command. They follow the BSD sysexits
// convention so shell scripts can tell contention apart from failure.
const (
	// ExitOK is returned when the command succeeded
	ExitOK = 0

	// ExitFailure is returned for errors without a more specific code
	ExitFailure = 1

	// ExitUsage is returned for invalid flags, arguments or configuration (EX_USAGE)
	ExitUsage = 64

	// ExitTimeout is returned when a lock could not be acquired in time (EX_TEMPFAIL)
	ExitTimeout = 75

	// ExitInterrupted is returned when a signal stopped the command (128 + SIGINT)
	ExitInterrupted = 130
)

// AppName is the command name shown in usage and version output
const AppName = "filelock"
