package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/plainhq/plaindex/internal/index"
	"github.com/plainhq/plaindex/internal/ui"
)

func newStatusCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show index statistics for the workspace",
		Long: `Show concept counts and per-document read errors for the workspace,
rebuilt from the current document tree.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := openWorkspace(cmd.Context())
			if err != nil {
				return err
			}

			stats := ws.coord.Stats()
			docErrors := ws.coord.DocumentErrors()

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Root           string            `json:"root"`
					Stats          index.Stats       `json:"stats"`
					DocumentErrors map[string]string `json:"document_errors,omitempty"`
				}{ws.root, stats, docErrors})
			}

			ui.NewRenderer(cmd.OutOrStdout()).Status(stats, docErrors)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output status as JSON")

	return cmd
}
