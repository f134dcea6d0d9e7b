package cmd

import (
	"github.com/spf13/cobra"

	"github.com/plainhq/plaindex/internal/ui"
)

func newIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Index the workspace and report what was found",
		Long: `Scan the document roots, extract concept definitions and usages,
and report index statistics.

The index lives in memory; this command is a dry run of what 'serve'
builds at startup, useful for checking coverage and read errors.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := openWorkspace(cmd.Context())
			if err != nil {
				return err
			}

			out := ui.NewRenderer(cmd.OutOrStdout())
			out.Status(ws.coord.Stats(), ws.coord.DocumentErrors())
			return nil
		},
	}

	return cmd
}
