package cli

import (
	"github.com/spf13/cobra"

	"github.com/takrawm/famengine/internal/config"
	"github.com/takrawm/famengine/internal/logging"
)

// setupLogging configures the package logger based on config and the
// --debug flag.
func setupLogging(cmd *cobra.Command) {
	loggingCfg := config.GetLoggingConfig()

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
	}

	loggingCfg.Apply()
	logger = logging.ComponentLogger(logging.Logger, "cli")

	ctx := logging.ContextWithLogger(cmd.Context(), logger)
	cmd.SetContext(ctx)

	logger.Debug().Str("command", cmd.Name()).Msg("command started")
}

// resolveModelConfig resolves the model directory from --model-dir, the
// FAMENGINE_MODEL_DIR env var, or a walk-up search from the working
// directory, and installs it as the global configuration.
func resolveModelConfig(cmd *cobra.Command) error {
	flagValue, _ := cmd.Flags().GetString("model-dir")

	cwd, err := workingDir()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	dir := config.ResolveModelDir(ctx, flagValue, cwd)
	cfg := config.NewWithModelDir(ctx, dir)
	config.SetGlobalConfig(cfg)

	return nil
}
