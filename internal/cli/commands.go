package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salat-clock/internal/config"
	"github.com/smokyabdulrahman/salat-clock/internal/display"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or modify configuration",
		Long:  "Display current configuration, or use subcommands to modify it.\nWhen run without subcommands, shows the current configuration.",
		RunE:  runConfigShow,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Long: fmt.Sprintf("Set a configuration value. Valid keys: %s\n\nEach key can also be set with a %s<KEY> environment variable.\n\nExamples:\n  salat-clock config set locale ar\n  salat-clock config set time_format 12h\n  salat-clock config set log_file ~/.local/state/salat-clock.log\n  salat-clock config set timeout 5s",
			strings.Join(config.ValidKeys, ", "), config.EnvPrefix),
		Args: cobra.ExactArgs(2),
		RunE: runConfigSet,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset config to defaults",
		Long:  "Delete the config file and restore all settings to defaults.",
		Args:  cobra.NoArgs,
		RunE:  runConfigReset,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print config file path",
		Args:  cobra.NoArgs,
		RunE:  runConfigPath,
	})

	return cmd
}

// runConfigShow displays the configuration file's values next to the
// values in effect after environment and flag overrides.
func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}

	file, err := config.Load()
	if err != nil {
		return err
	}
	effective, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "  %s\n\n", display.Boldf("Configuration (%s)", path))

	for _, key := range config.ValidKeys {
		val, _ := file.Get(key)
		shown := val
		if shown == "" {
			shown = display.Dim("(not set)")
		}
		line := fmt.Sprintf("  %-12s %s", key, shown)
		if eff, _ := effective.Get(key); eff != val && eff != "" {
			line += "  " + display.Yellow(fmt.Sprintf("[effective: %s]", eff))
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

// runConfigSet sets a config key to the given value.
func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := cfg.Set(key, value); err != nil {
		return err
	}

	if err := cfg.Save(); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), display.Green(fmt.Sprintf("Set %s = %s", key, value)))
	return nil
}

// runConfigReset deletes the config file.
func runConfigReset(cmd *cobra.Command, args []string) error {
	if err := config.Reset(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), display.Green("Configuration reset to defaults."))
	return nil
}

// runConfigPath prints the config file path.
func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
