// Package constants provides application-wide constant values for the filelock command.
//
// This package centralizes the values that scripts driving filelock depend on,
// chiefly its process exit codes, so they are defined once and shared by the
// command implementation and its tests.
//
// # Core Components
//
// - ExitOK, ExitFailure: Generic success and failure
// - ExitUsage: Invalid flags, arguments or configuration
// - ExitTimeout: The lock stayed contended for the whole wait bound
// - ExitInterrupted: A signal stopped the command
// - AppName: The command name
//
// # Usage
//
//	import "github.com/bashhack/filelock/internal/constants"
//
//	if errors.Is(err, errors.ErrTimeout) {
//	    os.Exit(constants.ExitTimeout)
//	}
//
// # Maintenance
//
// Exit codes are part of the command's public contract. Do not renumber
// existing codes; add new ones instead.
package constants
