// Package config provides configuration handling for the filelock command.
//
// This package manages every setting the filelock tool reads: defaults, an
// optional YAML config file, FILELOCK_* environment variables and
// command-line flags. It validates the merged result before any lock is
// touched.
//
// # Core Components
//
// - Config: Main configuration type that holds all filelock settings
// - VersionInfo: Type for version, commit, and build date information
//
// # Configuration Sources
//
// Configuration values are loaded with the following precedence:
//
// 1. Command-line flags (highest priority)
// 2. Environment variables
// 3. Config file
// 4. Default values (lowest priority)
//
// # Config File
//
// The file is YAML. Durations are strings accepted by time.ParseDuration:
//
//	timeout: 30s
//	poll_interval: 50ms
//	max_poll_interval: 1s
//	verbose: true
//	debug: false
//	log_file: /var/log/filelock.log
//	pattern: "**/*.lock"
//
// It is read from --config, then FILELOCK_CONFIG, then
// $XDG_CONFIG_HOME/filelock/config.yaml if that file exists.
//
// # Environment Variables
//
//	FILELOCK_TIMEOUT            How long to wait for a lock (default: 5s)
//	FILELOCK_POLL_INTERVAL      Pause between attempts (default: 50ms)
//	FILELOCK_MAX_POLL_INTERVAL  Backoff bound, 0 disables backoff (default: 0)
//	FILELOCK_VERBOSE            Whether to show informational messages (default: true)
//	FILELOCK_DEBUG              Enable debug logging (default: false)
//	FILELOCK_LOG_FILE           Path to log file (default: ~/.local/share/filelock/logs/filelock-<hash>.log)
//	FILELOCK_PATTERN            Glob used by list (default: **/*.lock)
//	FILELOCK_CONFIG             Path to the config file
//
// # Usage
//
//	cfg := config.New()
//	if err := cfg.Load(cmd.Flags()); err != nil {
//	    // Handle error
//	}
//	cfg.LockPath = args[0]
//	if err := cfg.Finalize(); err != nil {
//	    // Handle error
//	}
//
// # Thread Safety
//
// The Config type is not designed to be thread-safe. Configuration is
// loaded once per command invocation and then only read.
package config
