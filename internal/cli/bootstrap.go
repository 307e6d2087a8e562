// Package cli provides CLI commands for the rollcall application.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/example/rollcall/internal/ctxutil"
	"github.com/example/rollcall/internal/logging"
	"github.com/example/rollcall/internal/wire"
)

// globalRunID identifies the current invocation in the resolution log.
// Set once at startup by Bootstrap.
var globalRunID string

// GetRunID returns the run id for this invocation.
func GetRunID() string {
	return globalRunID
}

// NewContext creates a context.Background() with the current run id embedded.
// CLI commands should use this instead of context.Background() directly.
func NewContext() context.Context {
	ctx := context.Background()
	if globalRunID != "" {
		return ctxutil.WithRunID(ctx, globalRunID)
	}
	return ctx
}

// AddGlobalFlags registers the persistent flags every command understands.
func AddGlobalFlags(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.String("config", "", "Config file (default .rollcall/config.yaml)")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
	flags.Bool("log-json", false, "Write logs as JSON")
	flags.Bool("no-color", false, "Disable colored output")
	flags.Bool("skip-fatal", false, "Record data errors and continue instead of aborting")
}

// Bootstrap applies the global flags. It runs in the root's
// PersistentPreRunE.
func Bootstrap(cmd *cobra.Command, args []string) error {
	level, _ := cmd.Flags().GetString("log-level")
	logJSON, _ := cmd.Flags().GetBool("log-json")
	if err := logging.Init(level, logJSON, os.Stderr); err != nil {
		return err
	}

	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		color.NoColor = true
	}

	configPath, _ := cmd.Flags().GetString("config")
	skipFatal, _ := cmd.Flags().GetBool("skip-fatal")
	wire.Configure(wire.Options{
		ConfigPath: configPath,
		SkipFatal:  skipFatal,
	})

	globalRunID = uuid.NewString()
	logging.Log.Debug("run started", "run", globalRunID, "command", cmd.CommandPath())
	return nil
}

// requireServices opens configuration and storage for commands that need them.
func requireServices() error {
	if err := wire.Init(); err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	return nil
}
