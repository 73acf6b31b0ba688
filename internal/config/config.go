package config

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/bashhack/filelock/internal/errors"
	"github.com/bashhack/filelock/internal/fsutil"
	"github.com/bashhack/filelock/internal/scan"
)

const (
	// DefaultTimeout bounds how long run waits for a contended lock
	DefaultTimeout = 5 * time.Second

	// DefaultPollInterval is the pause between creation attempts
	DefaultPollInterval = 50 * time.Millisecond

	// DefaultPattern selects lock files for the list command
	DefaultPattern = scan.DefaultPattern

	// EnvPrefix is prepended to every environment variable the tool reads
	EnvPrefix = "FILELOCK_"
)

// Flag names shared between registration and ApplyFlags
const (
	FlagConfig          = "config"
	FlagDebug           = "debug"
	FlagLogFile         = "log-file"
	FlagQuiet           = "quiet"
	FlagTimeout         = "timeout"
	FlagPollInterval    = "poll-interval"
	FlagMaxPollInterval = "max-poll-interval"
	FlagForce           = "force"
	FlagPattern         = "pattern"
)

// Config holds all filelock settings
type Config struct {
	// Lock configuration
	LockPath        string
	Timeout         time.Duration // negative waits forever
	PollInterval    time.Duration
	MaxPollInterval time.Duration // zero disables backoff
	Force           bool

	// Discovery
	Root    string
	Pattern string

	// User experience
	Verbose bool

	// Debugging
	Debug   bool
	LogFile string

	// Source of file-based settings, empty when none was loaded
	ConfigFile string

	// Build metadata
	VersionInfo VersionInfo
}

// VersionInfo contains build-time version metadata
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}

// fileConfig mirrors the YAML layout. Pointer fields distinguish
// "absent" from the zero value so a file only overrides what it names.
type fileConfig struct {
	Timeout         *string `yaml:"timeout"`
	PollInterval    *string `yaml:"poll_interval"`
	MaxPollInterval *string `yaml:"max_poll_interval"`
	Verbose         *bool   `yaml:"verbose"`
	Debug           *bool   `yaml:"debug"`
	LogFile         *string `yaml:"log_file"`
	Pattern         *string `yaml:"pattern"`
}

// New creates a new Config with default values
func New() *Config {
	return &Config{
		Timeout:      DefaultTimeout,
		PollInterval: DefaultPollInterval,
		Pattern:      DefaultPattern,
		Verbose:      true,

		// Default version info, will be overridden if provided
		VersionInfo: VersionInfo{
			Version: "dev",
			Commit:  "unknown",
			Date:    "unknown",
		},
	}
}

// DefaultConfigFile returns $XDG_CONFIG_HOME/filelock/config.yaml,
// falling back to ~/.config when XDG_CONFIG_HOME is unset.
func DefaultConfigFile() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "filelock", "config.yaml")
}

// Load applies every configuration source in order of increasing priority:
// the config file, FILELOCK_* environment variables, then flags the user set.
// The config file comes from --config, then FILELOCK_CONFIG, then the
// default location if a file exists there.
func (c *Config) Load(fs *pflag.FlagSet) error {
	path, explicit := c.resolveConfigFile(fs)
	if path != "" {
		if explicit || fsutil.Exists(path) {
			if err := c.LoadFile(path); err != nil {
				return err
			}
		}
	}

	c.LoadFromEnvironment()

	return c.ApplyFlags(fs)
}

func (c *Config) resolveConfigFile(fs *pflag.FlagSet) (string, bool) {
	if fs != nil && fs.Changed(FlagConfig) {
		path, _ := fs.GetString(FlagConfig)
		return path, true
	}
	if path, ok := os.LookupEnv(EnvPrefix + "CONFIG"); ok && path != "" {
		return path, true
	}
	return DefaultConfigFile(), false
}

// LoadFile reads YAML settings from path. Durations are written as
// strings such as "5s" or "250ms".
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.NewConfigError("config", path, errors.Wrap(errors.ErrInvalidConfiguration, fmt.Sprintf("failed to read config file: %v", err)))
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return errors.NewConfigError("config", path, errors.Wrap(errors.ErrInvalidConfiguration, fmt.Sprintf("failed to parse config file: %v", err)))
	}

	durations := []struct {
		name  string
		value *string
		dst   *time.Duration
	}{
		{"timeout", fc.Timeout, &c.Timeout},
		{"poll_interval", fc.PollInterval, &c.PollInterval},
		{"max_poll_interval", fc.MaxPollInterval, &c.MaxPollInterval},
	}
	for _, d := range durations {
		if d.value == nil {
			continue
		}
		parsed, err := time.ParseDuration(*d.value)
		if err != nil {
			return errors.NewConfigError(d.name, *d.value, errors.Wrap(errors.ErrInvalidConfiguration, err.Error()))
		}
		*d.dst = parsed
	}

	if fc.Verbose != nil {
		c.Verbose = *fc.Verbose
	}
	if fc.Debug != nil {
		c.Debug = *fc.Debug
	}
	if fc.LogFile != nil {
		c.LogFile = *fc.LogFile
	}
	if fc.Pattern != nil {
		c.Pattern = *fc.Pattern
	}

	c.ConfigFile = path
	return nil
}

// LoadFromEnvironment updates config from FILELOCK_* environment variables.
// Unparseable values leave the current setting in place.
func (c *Config) LoadFromEnvironment() {
	c.Timeout = getEnvDuration("TIMEOUT", c.Timeout)
	c.PollInterval = getEnvDuration("POLL_INTERVAL", c.PollInterval)
	c.MaxPollInterval = getEnvDuration("MAX_POLL_INTERVAL", c.MaxPollInterval)
	c.Verbose = getEnvBool("VERBOSE", c.Verbose)
	c.Debug = getEnvBool("DEBUG", c.Debug)
	c.LogFile = getEnvString("LOG_FILE", c.LogFile)
	c.Pattern = getEnvString("PATTERN", c.Pattern)
}

// AddGlobalFlags registers the flags every command accepts
func AddGlobalFlags(fs *pflag.FlagSet) {
	fs.String(FlagConfig, "", "Path to a YAML config file (default: $XDG_CONFIG_HOME/filelock/config.yaml)")
	fs.Bool(FlagDebug, false, "Enable debug logging")
	fs.String(FlagLogFile, "", "Path to log file (default: ~/.local/share/filelock/logs/filelock-{lock-hash}.log)")
	fs.BoolP(FlagQuiet, "q", false, "Hide informational messages")
}

// AddAcquireFlags registers the flags that control waiting for a lock
func AddAcquireFlags(fs *pflag.FlagSet) {
	fs.DurationP(FlagTimeout, "t", DefaultTimeout, "How long to wait for the lock; 0 tries once, negative waits forever")
	fs.Duration(FlagPollInterval, DefaultPollInterval, "Pause between attempts to create the lock file")
	fs.Duration(FlagMaxPollInterval, 0, "Grow the pause exponentially up to this bound (0 disables backoff)")
}

// AddReleaseFlags registers the flags of the release command
func AddReleaseFlags(fs *pflag.FlagSet) {
	fs.BoolP(FlagForce, "f", false, "Remove the lock file even though this process does not hold it")
}

// AddListFlags registers the flags of the list command
func AddListFlags(fs *pflag.FlagSet) {
	fs.StringP(FlagPattern, "p", DefaultPattern, "Glob pattern selecting lock files, relative to the root")
}

// ApplyFlags copies every flag the user explicitly set onto the config.
// Flags that are not registered on fs are skipped.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	if fs == nil {
		return nil
	}

	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case FlagDebug:
			c.Debug, err = fs.GetBool(FlagDebug)
		case FlagLogFile:
			c.LogFile, err = fs.GetString(FlagLogFile)
		case FlagQuiet:
			var quiet bool
			quiet, err = fs.GetBool(FlagQuiet)
			c.Verbose = !quiet
		case FlagTimeout:
			c.Timeout, err = fs.GetDuration(FlagTimeout)
		case FlagPollInterval:
			c.PollInterval, err = fs.GetDuration(FlagPollInterval)
		case FlagMaxPollInterval:
			c.MaxPollInterval, err = fs.GetDuration(FlagMaxPollInterval)
		case FlagForce:
			c.Force, err = fs.GetBool(FlagForce)
		case FlagPattern:
			c.Pattern, err = fs.GetString(FlagPattern)
		}
		if err != nil {
			err = errors.NewConfigError(f.Name, f.Value.String(), errors.Wrap(errors.ErrInvalidConfiguration, err.Error()))
		}
	})
	return err
}

// Finalize validates and finalizes the configuration
func (c *Config) Finalize() error {
	if c.PollInterval <= 0 {
		err := fmt.Errorf("invalid poll interval: %s (must be positive)", c.PollInterval)
		return errors.NewConfigError("pollInterval", c.PollInterval, errors.Wrap(errors.ErrInvalidConfiguration, err.Error()))
	}

	if c.MaxPollInterval < 0 || (c.MaxPollInterval > 0 && c.MaxPollInterval < c.PollInterval) {
		err := fmt.Errorf("invalid max poll interval: %s (must be 0 or at least the poll interval %s)", c.MaxPollInterval, c.PollInterval)
		return errors.NewConfigError("maxPollInterval", c.MaxPollInterval, errors.Wrap(errors.ErrInvalidConfiguration, err.Error()))
	}

	if c.LockPath != "" {
		local, err := fsutil.LocalPath(c.LockPath)
		if err != nil {
			return errors.NewConfigError("lockPath", c.LockPath, errors.Wrap(errors.ErrInvalidConfiguration, err.Error()))
		}
		abs, err := filepath.Abs(local)
		if err != nil {
			return errors.NewConfigError("lockPath", c.LockPath, errors.Wrap(errors.ErrInvalidConfiguration, fmt.Sprintf("failed to resolve absolute path: %v", err)))
		}
		c.LockPath = abs
	}

	if c.Root == "" {
		c.Root = "."
	}
	absRoot, err := filepath.Abs(c.Root)
	if err != nil {
		return errors.NewConfigError("root", c.Root, errors.Wrap(errors.ErrInvalidConfiguration, fmt.Sprintf("failed to resolve absolute path: %v", err)))
	}
	c.Root = absRoot

	if c.Pattern == "" {
		c.Pattern = DefaultPattern
	}

	if c.LogFile == "" {
		// Follow XDG Base Directory Specification
		logDir := os.Getenv("XDG_DATA_HOME")
		if logDir == "" {
			homeDir, err := os.UserHomeDir()
			if err == nil {
				logDir = filepath.Join(homeDir, ".local", "share")
			} else {
				logDir = os.TempDir()
			}
		}

		name := "filelock.log"
		if c.LockPath != "" {
			name = fmt.Sprintf("filelock-%x.log", sha256OfString(c.LockPath)[:8])
		}
		c.LogFile = filepath.Join(logDir, "filelock", "logs", name)
	}

	return nil
}

// getEnvString returns FILELOCK_<key> or a default value
func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(EnvPrefix + key); exists {
		return value
	}
	return defaultValue
}

// getEnvDuration returns FILELOCK_<key> as a duration or a default value.
// Bare integers are read as seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr, exists := os.LookupEnv(EnvPrefix + key)
	if !exists {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	if seconds, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return defaultValue
}

// getEnvBool returns FILELOCK_<key> as bool or a default value
func getEnvBool(key string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(EnvPrefix + key); exists {
		valueLower := strings.ToLower(valueStr)
		if valueLower == "true" || valueLower == "1" || valueLower == "yes" {
			return true
		}
		if valueLower == "false" || valueLower == "0" || valueLower == "no" {
			return false
		}
	}
	return defaultValue
}

// sha256OfString returns the SHA256 hash of a string
func sha256OfString(input string) []byte {
	hash := sha256.Sum256([]byte(input))
	return hash[:]
}
