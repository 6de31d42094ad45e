package config

import "github.com/takrawm/famengine/internal/logging"

// Apply reconfigures the global logger (internal/logging) from this
// LoggingConfig. Only the console writer is supported today; Format
// and File are carried in the YAML schema for forward compatibility
// but are not yet consumed.
func (lc LoggingConfig) Apply() {
	logging.InitLogger(lc.Level)
}

// GetLoggingConfig returns the Logging section of the global
// configuration. Callers applying a --debug flag should override
// Level on the returned copy before calling Apply.
func GetLoggingConfig() LoggingConfig {
	return GetGlobalConfig().Logging
}
