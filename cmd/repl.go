package cmd

import (
	"github.com/spf13/cobra"

	"github.com/marcus/datemath/internal/history"
	"github.com/marcus/datemath/internal/output"
	"github.com/marcus/datemath/internal/paths"
	"github.com/marcus/datemath/internal/tui/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive expression prompt with live evaluation",
	Long: `Opens an interactive prompt that re-evaluates the expression on every
keystroke. Enter records the line to history; esc or ctrl+c exits.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceErrors = true
		cmd.SilenceUsage = true
		today := referenceDate()

		var db *history.DB
		if !noHistory && loadConfig().HistoryEnabled() {
			if path, err := paths.HistoryFile(); err == nil {
				if opened, err := history.Open(path); err == nil {
					db = opened
					defer db.Close()
				}
			}
		}

		if err := repl.Run(today, db); err != nil {
			output.Error("repl: %v", err)
			return err
		}
		return nil
	},
}

func init() {
	replCmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record evaluations")
	rootCmd.AddCommand(replCmd)
}
