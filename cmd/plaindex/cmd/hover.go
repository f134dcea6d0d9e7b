package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHoverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hover <name>",
		Short: "Show a concept's defining text",
		Long: `Show the raw content of a concept's first definition, the text an
editor would display on hover.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context())
			if err != nil {
				return err
			}

			text, err := ws.nav.Hover(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}

	return cmd
}
