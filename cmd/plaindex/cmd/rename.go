package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/plainhq/plaindex/internal/ui"
)

func newRenameCmd() *cobra.Command {
	var write bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "rename <old-name> <new-name>",
		Short: "Rename a concept across the workspace",
		Long: `Plan a workspace-wide concept rename: one replacement batch per
document covering every usage of the old name, definition lines
included. Dry run by default; pass --write to rewrite the documents.

Examples:
  plaindex rename widget gadget
  plaindex rename widget gadget --write`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context())
			if err != nil {
				return err
			}

			plan, err := ws.nav.PlanRename(args[0], args[1])
			if err != nil {
				return err
			}

			if write {
				if err := ws.nav.Apply(plan); err != nil {
					return err
				}
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(plan)
			}

			ui.NewRenderer(cmd.OutOrStdout()).RenamePlan(plan, write)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Apply the plan to disk")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the plan as JSON")

	return cmd
}
