package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
)

func newSymbolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "symbol <document> <line> <column>",
		Short: "Classify the concept token at a cursor position",
		Long: `Classify the concept token covering a cursor position as a
definition or a usage. Line and column are zero-based.

Examples:
  plaindex symbol docs/glossary.plain 4 7`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid line %q: %w", args[1], err)
			}
			column, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid column %q: %w", args[2], err)
			}
			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}

			ws, err := openWorkspace(cmd.Context())
			if err != nil {
				return err
			}

			kind, name, err := ws.nav.KindAt(path, line, column)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", kind, name)
			return err
		},
	}

	return cmd
}
