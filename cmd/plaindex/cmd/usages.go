package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/plainhq/plaindex/internal/ui"
)

func newUsagesCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "usages <name>",
		Short: "List every place a concept is referenced",
		Long: `List the usage sightings of a concept, one per continuation block
per document. Definition lines count as usages of the names they declare.

Examples:
  plaindex usages widget
  plaindex usages widget --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context())
			if err != nil {
				return err
			}

			occs := ws.nav.FindUsages(args[0])
			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(occs)
			}

			ui.NewRenderer(cmd.OutOrStdout()).Occurrences(args[0], occs)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output occurrences as JSON")

	return cmd
}
