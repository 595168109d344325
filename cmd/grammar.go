package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marcus/datemath/internal/output"
)

const grammarDoc = `# datemath expression reference

An expression is an optional anchor date followed by signed duration terms,
or a natural-language phrasing of the same thing.

## Operator form

    [date] + <n> <unit> [+ <n> <unit> ...]
    [date] - <n> <unit> [- <n> <unit> ...]
    <n> <unit> [+ <n> <unit> ...]
    -<n> <unit> [...]

Without a date, terms apply to today. The + and - separators need spaces on
both sides; a sign glued to the first count ("-3 days") negates that term.

## Natural form

    <n> <unit> [, <n> <unit>, and <n> <unit>] ago
    <n> <unit> [and <n> <unit>] from <date>
    <n> <unit> after <date>
    <n> <unit> before <date>

## Day difference

    <date> - <date>

Prints the absolute distance in days.

## Dates

    2021-12-30            ISO
    dec 30, 2021          full or 3-letter month name, any case
    dec 30                year defaults to today's year
    12/30/2021            month/day/year
    today | now | yesterday | tomorrow

Years are 4 digits or more; 2-digit years are not inferred.

## Units

day(s), week(s), month(s), year(s) — any case. Weeks are single 7-day
steps. Adding months or years clamps the day to the target month's last
valid day: jan 31, 2021 + 1 month = 2021-02-28, and a feb 29 anchor plus
1 year lands on feb 28 in non-leap years. Terms fold left to right, so
jan 31, 2021 + 1 month + 1 day = 2021-03-01.

## Examples

    datemath 'dec 30, 2021 + 2 weeks + 1 day'      # 2022-01-14
    datemath --today 2021-07-02 '2 weeks + 3 days' # 2021-07-19
    datemath '1 year, 2 weeks, and 3 days ago'
    datemath '2021-03-01 - 2021-01-15'             # 45 days
`

var grammarCmd = &cobra.Command{
	Use:   "grammar",
	Short: "Show the expression language reference",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if plain, _ := cmd.Flags().GetBool("plain"); plain || !output.IsTerminal() {
			fmt.Print(grammarDoc)
			return nil
		}
		rendered, err := output.RenderMarkdown(grammarDoc)
		if err != nil {
			fmt.Print(grammarDoc)
			return nil
		}
		fmt.Print(rendered)
		return nil
	},
}

func init() {
	grammarCmd.Flags().Bool("plain", false, "print raw markdown without rendering")
	rootCmd.AddCommand(grammarCmd)
}
