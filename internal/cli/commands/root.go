// Package commands implements the `axiom` CLI's cobra command tree:
// run, chk, fmt, pkg, and conf, grounded on the teacher's
// internal/cli/commands/root.go structure and on original_source's
// axiom/src/main.rs Cli/Commands enum shape.
package commands

import (
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Version information; overwritten at build time via -ldflags.
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// NewRootCommand builds the `axiom` root command and registers every
// subcommand family.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "axiom",
		Short: "The Axiom language toolchain",
		Long: color.CyanString(`Axiom - a small dynamically-typed scripting language

axiom runs, checks, formats, and manages packages for Axiom (.ax) scripts.

Commands:
  • run   execute a .ax script
  • chk   run semantic analysis without executing
  • fmt   reformat a .ax script to canonical style
  • pkg   manage Axiomite.toml dependencies
  • conf  read and write <user config dir>/axiom/conf.txt`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewChkCommand())
	rootCmd.AddCommand(NewFmtCommand())
	rootCmd.AddCommand(NewPkgCommand())
	rootCmd.AddCommand(NewConfCommand())

	return rootCmd
}

// NewVersionCommand reports build-time version information.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}
			titleColor := color.New(color.FgCyan, color.Bold)
			valueColor := color.New(color.FgWhite)

			titleColor.Print("axiom version: ")
			valueColor.Println(Version)
			titleColor.Print("git commit: ")
			valueColor.Println(GitCommit)
			titleColor.Print("build date: ")
			valueColor.Println(BuildDate)
			titleColor.Print("go version: ")
			valueColor.Println(goVer)
		},
	}
}

// Execute runs the root command, printing a colorized error on failure.
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}
