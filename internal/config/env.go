package config

import (
	"flag"
	"os"
	"strconv"
	"time"
)

// getEnvString returns the environment variable value or fallback if unset.
func getEnvString(key, fallback string) string {
	if value, ok := os.LookupEnv(EnvPrefix + key); ok {
		return value
	}
	return fallback
}

// getEnvUint64 returns the environment variable as uint64 or fallback if
// unset or invalid.
func getEnvUint64(key string, fallback uint64) uint64 {
	if value, ok := os.LookupEnv(EnvPrefix + key); ok {
		if parsed, err := strconv.ParseUint(value, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

// getEnvInt returns the environment variable as int or fallback if unset or
// invalid.
func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(EnvPrefix + key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

// getEnvBool returns the environment variable as bool or fallback if unset
// or invalid. Accepts: true, false, 1, 0 (case-insensitive).
func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(EnvPrefix + key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

// getEnvDuration returns the environment variable as time.Duration or
// fallback if unset or invalid. Accepts Go duration format (e.g., "5m", "30s").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(EnvPrefix + key); ok {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

// isFlagSet checks whether a flag was explicitly set on the command line.
// Used to implement precedence: CLI flags > environment variables > defaults.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// envOverride describes one environment variable fallback. The apply function
// reads the variable and updates the config only when none of the associated
// flags were set explicitly.
type envOverride struct {
	flags []string
	apply func(c *AppConfig)
}

// envOverrides is the declarative table mapping flags to their environment
// variable equivalents (BIGFACT_N, BIGFACT_ALGO, ...).
var envOverrides = []envOverride{
	{[]string{"n"}, func(c *AppConfig) { c.N = getEnvUint64("N", c.N) }},
	{[]string{"algo"}, func(c *AppConfig) { c.Algo = getEnvString("ALGO", c.Algo) }},
	{[]string{"timeout"}, func(c *AppConfig) { c.Timeout = getEnvDuration("TIMEOUT", c.Timeout) }},
	{[]string{"workers"}, func(c *AppConfig) { c.Workers = getEnvInt("WORKERS", c.Workers) }},
	{[]string{"window-size"}, func(c *AppConfig) { c.WindowSize = getEnvUint64("WINDOW_SIZE", c.WindowSize) }},
	{[]string{"window-timeout"}, func(c *AppConfig) { c.WindowTimeout = getEnvDuration("WINDOW_TIMEOUT", c.WindowTimeout) }},
	{[]string{"max-attempts"}, func(c *AppConfig) { c.MaxAttempts = getEnvInt("MAX_ATTEMPTS", c.MaxAttempts) }},
	{[]string{"v", "verbose"}, func(c *AppConfig) { c.Verbose = getEnvBool("VERBOSE", c.Verbose) }},
	{[]string{"d", "details"}, func(c *AppConfig) { c.Details = getEnvBool("DETAILS", c.Details) }},
	{[]string{"q", "quiet"}, func(c *AppConfig) { c.Quiet = getEnvBool("QUIET", c.Quiet) }},
	{[]string{"o", "output"}, func(c *AppConfig) { c.OutputFile = getEnvString("OUTPUT", c.OutputFile) }},
	{[]string{"no-color"}, func(c *AppConfig) { c.NoColor = getEnvBool("NO_COLOR", c.NoColor) }},
	{[]string{"c", "calculate"}, func(c *AppConfig) { c.ShowValue = getEnvBool("CALCULATE", c.ShowValue) }},
}

// applyEnvOverrides applies environment variable values for flags that were
// not explicitly set on the command line. CLI flags always take precedence.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		set := false
		for _, name := range o.flags {
			if isFlagSet(fs, name) {
				set = true
				break
			}
		}
		if !set {
			o.apply(config)
		}
	}
}
