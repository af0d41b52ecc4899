package cmd

import (
	"github.com/spf13/cobra"

	"github.com/example/hopstack/internal/parser"
	"github.com/example/hopstack/internal/tui"
)

var (
	flagHistorySince string
	flagHistoryPanel bool
)

// historyCmd shows the recorded action history.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the action history",
	Long: `Show the recorded action history, oldest first. Past actions come
before the current marker, undone actions after it.

Examples:
  hopstack history
  hopstack history --since "this week"
  hopstack history --panel`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagHistoryPanel {
			return tui.RunPanel(ctx.Timeline)
		}

		items := ctx.Timeline.Items()
		if flagHistorySince != "" {
			since, err := parser.ParseSince(flagHistorySince)
			if err != nil {
				return err
			}
			filtered := items[:0]
			for _, item := range items {
				if !item.Record.Timestamp.Before(since) {
					filtered = append(filtered, item)
				}
			}
			items = filtered
		}

		if ctx.IsJSON() {
			return ctx.JSONFormatter().PrintHistory(items)
		}
		if len(items) == 0 {
			ctx.CLIFormatter().Muted("No actions recorded.")
			return nil
		}
		ctx.CLIFormatter().PrintHistory(items)
		return nil
	},
}

// historyClearCmd drops the recorded history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the action history",
	Long: `Clear both the undo and redo stacks and the persisted journal.
The chain itself is not modified.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx.Store.Clear()
		if ctx.JournalRepo != nil {
			if err := ctx.JournalRepo.Clear(); err != nil {
				return err
			}
		}
		if ctx.IsJSON() {
			return ctx.JSONFormatter().PrintResult("cleared", "history cleared")
		}
		ctx.CLIFormatter().Success("History cleared")
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVar(&flagHistorySince, "since", "", "Only show actions since this time (e.g. \"2h ago\", \"this week\")")
	historyCmd.Flags().BoolVar(&flagHistoryPanel, "panel", false, "Open the interactive history panel")

	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}
