package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/axiom-lang/axiom/internal/checker"
	axerrors "github.com/axiom-lang/axiom/internal/errors"
	"github.com/axiom-lang/axiom/internal/diagnostics"
	"github.com/axiom-lang/axiom/internal/parser"
)

// NewChkCommand runs semantic analysis over an Axiom script without
// executing it, matching original_source's `Commands::Chk` arm. Exit
// status is non-zero only when an Error-level diagnostic is reported
// (spec.md §6); warnings and info diagnostics still print but succeed.
func NewChkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chk <path>",
		Short: "Perform semantic analysis and type checking (does not execute)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			source, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("cannot read %q: %w", path, err)
			}

			p, lexErrs := parser.New(string(source), 0)
			if p == nil {
				for _, le := range lexErrs {
					fmt.Fprintln(cmd.ErrOrStderr(), le.Error())
				}
				return fmt.Errorf("lexing %q failed", path)
			}
			items, perr := p.Parse()
			if perr != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), perr.Error())
				return fmt.Errorf("parsing %q failed", path)
			}

			diags := checker.Check(items)
			fatal := false
			for _, d := range diags {
				diagnostics.PrintDiagnostic(cmd.OutOrStdout(), d)
				if d.Level == axerrors.DiagError {
					fatal = true
				}
			}
			if fatal {
				return fmt.Errorf("semantic errors found in %q", path)
			}
			return nil
		},
	}
}
