package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/axiom-lang/axiom/internal/config"
)

// NewConfCommand wraps internal/config as `axiom conf set|get|list|reset|describe`,
// matching original_source's `ConfCommands` enum.
func NewConfCommand() *cobra.Command {
	confCmd := &cobra.Command{
		Use:   "conf",
		Short: "Manage Axiom runtime configuration (<user config dir>/axiom/conf.txt)",
	}

	confCmd.AddCommand(
		&cobra.Command{
			Use:   "set <property>=<value>",
			Short: "Set a property: axiom conf set property=value",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, warnings, err := config.Load()
				if err != nil {
					return err
				}
				printWarnings(cmd, warnings)
				if err := config.Set(cfg, args[0]); err != nil {
					return err
				}
				return config.Save(cfg)
			},
		},
		&cobra.Command{
			Use:   "get <key>",
			Short: "Get a property's current value",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, warnings, err := config.Load()
				if err != nil {
					return err
				}
				printWarnings(cmd, warnings)
				val, ok := cfg.Values[args[0]]
				if !ok {
					return fmt.Errorf("unknown key %q", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), val)
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List all properties with current values",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, warnings, err := config.Load()
				if err != nil {
					return err
				}
				printWarnings(cmd, warnings)
				keys := make([]string, 0, len(cfg.Values))
				for k := range cfg.Values {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", k, cfg.Values[k])
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Reset all properties to their defaults",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, warnings, err := config.Load()
				if err != nil {
					return err
				}
				printWarnings(cmd, warnings)
				config.Reset(cfg)
				return config.Save(cfg)
			},
		},
		&cobra.Command{
			Use:   "describe <key>",
			Short: "Show detailed documentation for a property",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				desc := config.Describe(args[0])
				if desc == "" {
					return fmt.Errorf("unknown key %q", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), desc)
				return nil
			},
		},
	)

	return confCmd
}

func printWarnings(cmd *cobra.Command, warnings []string) {
	for _, w := range warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}
}
