package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/axiom-lang/axiom/internal/pkgmgr"
)

// NewPkgCommand wraps internal/pkgmgr as `axiom pkg add|remove|upgrade|list|info`,
// matching original_source's `PkgCommands` enum.
func NewPkgCommand() *cobra.Command {
	pkgCmd := &cobra.Command{
		Use:   "pkg",
		Short: "Manage Axiomite.toml dependencies",
	}

	pkgCmd.AddCommand(
		&cobra.Command{
			Use:   "add <name>",
			Short: "Add a dependency to Axiomite.toml: axiom pkg add <user>/<repo>",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := pkgmgr.New()
				if err != nil {
					return err
				}
				return m.Add(args[0])
			},
		},
		&cobra.Command{
			Use:   "remove <name>",
			Short: "Remove a package",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := pkgmgr.New()
				if err != nil {
					return err
				}
				return m.Remove(args[0])
			},
		},
		&cobra.Command{
			Use:   "upgrade <name>",
			Short: "Upgrade a package to latest",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := pkgmgr.New()
				if err != nil {
					return err
				}
				return m.Upgrade(args[0])
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List dependencies declared in Axiomite.toml",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := pkgmgr.New()
				if err != nil {
					return err
				}
				deps, err := m.List()
				if err != nil {
					return err
				}
				for _, d := range deps {
					fmt.Fprintln(cmd.OutOrStdout(), d)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "info <name>",
			Short: "Show package info: axiom pkg info <user>/<repo>  OR  axiom pkg info .",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := pkgmgr.New()
				if err != nil {
					return err
				}
				if args[0] == "." {
					manifest, err := m.LocalInfo()
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d dependencies)\n", manifest.Name, manifest.Version, len(manifest.Dependencies))
					return nil
				}
				info, err := m.Info(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), info)
				return nil
			},
		},
	)

	return pkgCmd
}
