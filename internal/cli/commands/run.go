package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/axiom-lang/axiom/internal/diagnostics"
	"github.com/axiom-lang/axiom/internal/interp"
	"github.com/axiom-lang/axiom/internal/parser"
	"github.com/axiom-lang/axiom/internal/stdlib"
)

// NewRunCommand executes an Axiom script end to end: lex, parse, and
// evaluate, matching original_source's `Commands::Run` arm in
// axiom/src/main.rs.
func NewRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run <path>",
		Short: "Execute an Axiom script (.ax)",
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

			rt := interp.New()
			rt.Out = cmd.OutOrStdout()
			stdlib.Install(rt)

			if rerr := rt.Run(items); rerr != nil {
				diagnostics.PrintRuntimeError(cmd.ErrOrStderr(), rerr)
				return fmt.Errorf("%s", rerr.Error())
			}
			return nil
		},
	}
}
