// Package cmd provides the CLI commands for plaindex.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/plainhq/plaindex/internal/logging"
	"github.com/plainhq/plaindex/pkg/version"
)

// Debug logging flag
var (
	debugMode      bool
	loggingCleanup func()
)

// NewRootCmd creates the root command for the plaindex CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plaindex",
		Short: "Concept index and MCP server for plain documents",
		Long: `plaindex indexes the concept vocabulary of a plain document tree:
definitions declared in definitions sections and usages written as
:name: tokens anywhere in a document.

It serves lookups, cursor classification, and workspace-wide renames
over MCP for editors, and answers the same queries from the command
line.

Just run 'plaindex' in your workspace to index it and start serving.`,
		Version: version.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return cmd.Help()
			}
			// Smart default: index the workspace, then serve over stdio.
			return runServe(cmd.Context(), serveOptions{transport: "stdio"})
		},
	}

	cmd.SetVersionTemplate("plaindex version {{.Version}}\n")

	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.plaindex/logs/")
	cmd.PersistentPreRunE = startLogging
	cmd.PersistentPostRunE = stopLogging

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newIndexCmd())
	cmd.AddCommand(newDefinitionCmd())
	cmd.AddCommand(newUsagesCmd())
	cmd.AddCommand(newHoverCmd())
	cmd.AddCommand(newSymbolCmd())
	cmd.AddCommand(newRenameCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// startLogging enables debug logging if the flag is set.
func startLogging(_ *cobra.Command, _ []string) error {
	if !debugMode {
		return nil
	}

	logger, cleanup, err := logging.Setup(logging.DebugConfig())
	if err != nil {
		return fmt.Errorf("failed to setup debug logging: %w", err)
	}
	loggingCleanup = cleanup
	slog.SetDefault(logger)
	slog.Info("Debug logging enabled",
		slog.String("log_file", logging.DefaultLogPath()),
		slog.String("version", version.Short()))
	return nil
}

// stopLogging flushes the debug log.
func stopLogging(_ *cobra.Command, _ []string) error {
	if loggingCleanup != nil {
		slog.Info("Debug logging stopped")
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
