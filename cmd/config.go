package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/marcus/datemath/internal/config"
	"github.com/marcus/datemath/internal/output"
	"github.com/marcus/datemath/internal/paths"
)

var configCmd = &cobra.Command{
	Use:   "config [get <key> | set <key> <value>]",
	Short: "View or change persisted settings",
	Long: `Settings:
  color          styled output: auto, always, never (default auto)
  history        record evaluations: true, false (default true)
  history-limit  retained history entries (default 500)`,
	Args: cobra.MaximumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceErrors = true
		cmd.SilenceUsage = true
		path, err := paths.ConfigFile()
		if err != nil {
			output.Error("config: %v", err)
			return err
		}
		cfg, err := config.Load(path)
		if err != nil {
			output.Error("config: %v", err)
			return err
		}

		switch {
		case len(args) == 0:
			output.Info("color          %s", cfg.EffectiveColor())
			output.Info("history        %t", cfg.HistoryEnabled())
			output.Info("history-limit  %d", cfg.EffectiveHistoryLimit())
			return nil
		case args[0] == "get" && len(args) == 2:
			return configGet(cfg, args[1])
		case args[0] == "set" && len(args) == 3:
			if err := configSet(cfg, args[1], args[2]); err != nil {
				output.Error("config: %v", err)
				return err
			}
			if err := config.Save(path, cfg); err != nil {
				output.Error("config: %v", err)
				return err
			}
			output.Info("%s = %s", args[1], args[2])
			return nil
		default:
			err := fmt.Errorf("usage: datemath config [get <key> | set <key> <value>]")
			output.Error("%v", err)
			return err
		}
	},
}

func configGet(cfg *config.Config, key string) error {
	switch key {
	case "color":
		output.Info("%s", cfg.EffectiveColor())
	case "history":
		output.Info("%t", cfg.HistoryEnabled())
	case "history-limit":
		output.Info("%d", cfg.EffectiveHistoryLimit())
	default:
		err := fmt.Errorf("unknown config key %q", key)
		output.Error("%v", err)
		return err
	}
	return nil
}

func configSet(cfg *config.Config, key, value string) error {
	switch key {
	case "color":
		switch value {
		case "auto", "always", "never":
			cfg.Color = value
		default:
			return fmt.Errorf("color must be auto, always, or never")
		}
	case "history":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("history must be true or false")
		}
		cfg.History = &enabled
	case "history-limit":
		limit, err := strconv.Atoi(value)
		if err != nil || limit < 1 {
			return fmt.Errorf("history-limit must be a positive integer")
		}
		cfg.HistoryLimit = limit
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
}
