package loader

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// TTL configuration constants and defaults for the parsed-file cache.
const (
	DefaultTTLSeconds = 3600
	MinTTLSeconds     = 60
	MaxTTLSeconds     = 604800

	// EnvTTLSeconds overrides the cache TTL.
	EnvTTLSeconds = "FAMENGINE_CACHE_TTL_SECONDS"

	// EnvCacheEnabled toggles the cache on/off.
	EnvCacheEnabled = "FAMENGINE_CACHE_ENABLED"

	// EnvCacheDir overrides the cache directory.
	EnvCacheDir = "FAMENGINE_CACHE_DIR"
)

// ErrInvalidTTL reports a TTL outside the supported range.
var ErrInvalidTTL = fmt.Errorf("TTL must be between %d and %d seconds", MinTTLSeconds, MaxTTLSeconds)

// GetTTLFromEnv reads the TTL from the environment, falling back to
// DefaultTTLSeconds if unset or invalid.
func GetTTLFromEnv() int {
	envVal := os.Getenv(EnvTTLSeconds)
	if envVal == "" {
		return DefaultTTLSeconds
	}
	ttl, err := strconv.Atoi(envVal)
	if err != nil || ttl < MinTTLSeconds || ttl > MaxTTLSeconds {
		return DefaultTTLSeconds
	}
	return ttl
}

// GetCacheEnabledFromEnv reads the cache-enabled flag, defaulting to
// true.
func GetCacheEnabledFromEnv() bool {
	envVal := os.Getenv(EnvCacheEnabled)
	if envVal == "" {
		return true
	}
	enabled, err := strconv.ParseBool(envVal)
	if err != nil {
		return true
	}
	return enabled
}

// GetCacheDirFromEnv reads the cache directory override, or "" if
// unset.
func GetCacheDirFromEnv() string {
	return os.Getenv(EnvCacheDir)
}

// FormatDuration renders a duration in compact units: rounded seconds
// under a minute ("45s"), rounded minutes under an hour ("6m"), and
// whole hours plus minutes otherwise ("2h30m").
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	if minutes == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%dm", hours, minutes)
}
