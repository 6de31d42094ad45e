// Package config loads and merges the YAML configuration and model
// files (model.yaml, accounts.yaml, periods.yaml, rules.yaml) that
// drive the famengine CLI: a defaulted Config struct, a process-wide
// singleton resolved lazily, and a shallow-merge overlay for
// project-local overrides.
package config

import "sync"

// OutputConfig controls how CLI subcommands render results.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Precision     int    `yaml:"precision"`
}

// LoggingConfig controls the global logger (see internal/logging).
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// ModelConfig locates the model files and gates their schema version.
type ModelConfig struct {
	Dir           string `yaml:"dir"`
	SchemaVersion string `yaml:"schema_version"`
}

// Config is the root of famengine's configuration tree.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Model   ModelConfig   `yaml:"model"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Output: OutputConfig{
			DefaultFormat: "table",
			Precision:     2,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Model: ModelConfig{
			Dir: ".",
		},
	}
}

//nolint:gochecknoglobals // Singleton pattern for process-wide configuration.
var (
	globalConfig     *Config
	globalConfigMu   sync.RWMutex
	globalConfigInit bool
)

// InitGlobalConfig initializes the global configuration once.
func InitGlobalConfig() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()

	if globalConfigInit {
		return
	}
	globalConfig = New()
	globalConfigInit = true
}

// ResetGlobalConfigForTest clears the global configuration singleton.
func ResetGlobalConfigForTest() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()

	globalConfig = nil
	globalConfigInit = false
}

// GetGlobalConfig returns the global configuration, initializing it
// with defaults if needed.
func GetGlobalConfig() *Config {
	InitGlobalConfig()
	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobalConfig replaces the global configuration outright. Used by
// the CLI root command once the --model-dir flag is resolved.
func SetGlobalConfig(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
	globalConfigInit = true
}
