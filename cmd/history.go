package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/marcus/datemath/internal/history"
	"github.com/marcus/datemath/internal/output"
	"github.com/marcus/datemath/internal/paths"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded evaluations",
	Long: `Lists recent evaluations, newest first. Every successful evaluation is
recorded unless history is disabled via config or --no-history.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceErrors = true
		cmd.SilenceUsage = true
		path, err := paths.HistoryFile()
		if err != nil {
			output.Error("history: %v", err)
			return err
		}
		db, err := history.Open(path)
		if err != nil {
			output.Error("history: %v", err)
			return err
		}
		defer db.Close()

		clear, _ := cmd.Flags().GetBool("clear")
		if clear {
			return clearHistory(cmd, db)
		}

		limit, _ := cmd.Flags().GetInt("limit")
		entries, err := db.List(limit)
		if err != nil {
			output.Error("history: %v", err)
			return err
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			type jsonEntry struct {
				Expression string `json:"expression"`
				Result     string `json:"result"`
				Today      string `json:"today"`
				CreatedAt  string `json:"created_at"`
			}
			out := make([]jsonEntry, 0, len(entries))
			for _, e := range entries {
				out = append(out, jsonEntry{
					Expression: e.Expression,
					Result:     e.Result,
					Today:      e.Today,
					CreatedAt:  e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
				})
			}
			return output.JSON(out)
		}

		if len(entries) == 0 {
			output.Info("no recorded evaluations")
			return nil
		}
		for _, e := range entries {
			output.Info("%s  %-40q  %s",
				output.Subtle(e.CreatedAt.Local().Format("2006-01-02 15:04")),
				e.Expression,
				e.Result)
		}
		return nil
	},
}

// clearHistory wipes the store after confirmation. --yes skips the prompt
// for scripted use.
func clearHistory(cmd *cobra.Command, db *history.DB) error {
	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		n, err := db.Count()
		if err != nil {
			output.Error("history: %v", err)
			return err
		}
		confirm := false
		prompt := huh.NewConfirm().
			Title(fmt.Sprintf("Delete %d recorded evaluations?", n)).
			Value(&confirm)
		if err := prompt.Run(); err != nil {
			return err
		}
		if !confirm {
			output.Info("aborted")
			return nil
		}
	}

	if err := db.Clear(); err != nil {
		output.Error("history: %v", err)
		return err
	}
	output.Info("history cleared")
	return nil
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum entries to list")
	historyCmd.Flags().Bool("clear", false, "delete all recorded evaluations")
	historyCmd.Flags().Bool("yes", false, "skip the confirmation prompt for --clear")
	historyCmd.Flags().Bool("json", false, "emit JSON instead of plain text")
	rootCmd.AddCommand(historyCmd)
}
