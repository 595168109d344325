// Package cmd implements the datemath command tree.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/marcus/datemath/internal/calendar"
	"github.com/marcus/datemath/internal/config"
	"github.com/marcus/datemath/internal/expr"
	"github.com/marcus/datemath/internal/history"
	"github.com/marcus/datemath/internal/output"
	"github.com/marcus/datemath/internal/paths"
)

var version string

// SetVersion sets the version string reported by --version.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// todayValue is a pflag.Value holding an injected reference date.
type todayValue struct {
	date calendar.Date
	set  bool
}

var _ pflag.Value = (*todayValue)(nil)

func (t *todayValue) String() string {
	if !t.set {
		return ""
	}
	return t.date.String()
}

func (t *todayValue) Set(s string) error {
	ast, err := expr.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid --today date %q: %w", s, err)
	}
	offset, ok := ast.(*expr.Offset)
	if !ok || offset.Anchor == nil || offset.Anchor.Kind != expr.AnchorDate || len(offset.Terms) != 0 {
		return fmt.Errorf("--today must be an explicit date like 2021-07-02")
	}
	t.date = offset.Anchor.Date
	t.set = true
	return nil
}

func (t *todayValue) Type() string {
	return "date"
}

var (
	todayFlag todayValue
	jsonFlag  bool
	noColor   bool
	noHistory bool
)

var rootCmd = &cobra.Command{
	Use:   "datemath <expression>",
	Short: "Calendar date arithmetic from natural-language expressions",
	Long: `datemath evaluates a short natural-language expression describing a date
and/or signed duration offsets and prints the resulting calendar date.

Examples:
  datemath 'dec 30, 2021 + 2 weeks + 1 day'
  datemath '2 weeks + 3 days'
  datemath '1 year, 2 weeks, and 3 days ago'
  datemath '2021-03-01 - 2021-01-15'

Run "datemath grammar" for the full expression reference.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Errors are reported styled (or as JSON); suppress Cobra's
		// own error output while still returning exit code 1.
		cmd.SilenceErrors = true
		cmd.SilenceUsage = true
		return runEval(args[0])
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runEval(input string) error {
	today := referenceDate()

	result, err := evaluate(input, today)
	if err != nil {
		reportError(err)
		return err
	}

	if jsonFlag {
		if err := output.JSONResult(input, result); err != nil {
			return err
		}
	} else {
		output.Result(result)
	}

	recordHistory(input, result, today)
	return nil
}

func evaluate(input string, today calendar.Date) (string, error) {
	ast, err := expr.Parse(input)
	if err != nil {
		return "", err
	}
	res, err := ast.Eval(today)
	if err != nil {
		return "", err
	}
	return res.String(), nil
}

// referenceDate returns the injected --today date or the system clock date.
func referenceDate() calendar.Date {
	if todayFlag.set {
		return todayFlag.date
	}
	return calendar.Today()
}

func reportError(err error) {
	if jsonFlag {
		code := string(expr.KindOf(err))
		if code == "" {
			code = "internal"
		}
		output.JSONError(code, err.Error())
		return
	}
	output.Error("%v", err)
}

// recordHistory stores a successful evaluation, pruning to the configured
// cap. History failures are reported but never fail the evaluation.
func recordHistory(input, result string, today calendar.Date) {
	if noHistory {
		return
	}
	cfg := loadConfig()
	if !cfg.HistoryEnabled() {
		return
	}

	path, err := paths.HistoryFile()
	if err != nil {
		return
	}
	db, err := history.Open(path)
	if err != nil {
		return
	}
	defer db.Close()

	if err := db.Record(input, result, today.String()); err != nil {
		output.Error("history: %v", err)
		return
	}
	_ = db.Prune(cfg.EffectiveHistoryLimit())
}

// loadConfig reads persisted settings, falling back to defaults on any
// failure so evaluation never blocks on a broken config file.
func loadConfig() *config.Config {
	path, err := paths.ConfigFile()
	if err != nil {
		return &config.Config{}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return &config.Config{}
	}
	return cfg
}

// applyColorMode reconciles the --no-color flag, the config setting, and
// whether stdout is a terminal.
func applyColorMode() {
	if noColor {
		output.DisableColor()
		return
	}
	switch loadConfig().EffectiveColor() {
	case "never":
		output.DisableColor()
	case "always":
		// leave styling on
	default: // auto
		if !output.IsTerminal() {
			output.DisableColor()
		}
	}
}

func init() {
	cobra.OnInitialize(applyColorMode)

	rootCmd.PersistentFlags().Var(&todayFlag, "today", "reference date for relative expressions (YYYY-MM-DD)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable styled output")
	rootCmd.Flags().BoolVar(&jsonFlag, "json", false, "emit JSON instead of plain text")
	rootCmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record this evaluation")
}
