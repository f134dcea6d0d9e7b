package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/plainhq/plaindex/internal/ui"
)

func newDefinitionCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "definition <name>",
		Aliases: []string{"def"},
		Short:   "Locate where a concept is defined",
		Long: `Locate the definition list items declaring a concept.

Examples:
  plaindex definition widget
  plaindex def widget --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context())
			if err != nil {
				return err
			}

			occs := ws.nav.FindDefinition(args[0])
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
