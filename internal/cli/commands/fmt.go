package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/axiom-lang/axiom/internal/format"
)

// NewFmtCommand reformats an Axiom script to canonical style, printing
// to stdout by default and writing in place with --write, matching
// original_source's `Commands::Fmt { path, write }` arm.
func NewFmtCommand() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt <path>",
		Short: "Format an Axiom script to standard style",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			source, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("cannot read %q: %w", path, err)
			}

			formatted, ferr := format.FormatFile(path, string(source), nil)
			if ferr != nil {
				return fmt.Errorf("formatting %q: %w", path, ferr)
			}

			if write {
				return os.WriteFile(path, []byte(formatted), 0o644)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatted)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write formatted output back to the file")
	return cmd
}
