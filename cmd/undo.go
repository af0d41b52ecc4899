package cmd

import (
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	apperrors "github.com/example/hopstack/internal/errors"
	"github.com/example/hopstack/internal/history"
)

// undoCmd reverts the most recent action.
var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Undo the most recent action",
	Long: `Undo the most recent action on the chain. The action moves to the
redo stack and can be reapplied with 'hopstack redo'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		done, err := ctx.Store.Undo(cmd.Context())
		if err != nil {
			return err
		}
		if !done {
			if ctx.IsJSON() {
				return ctx.JSONFormatter().PrintResult("noop", "nothing to undo")
			}
			ctx.CLIFormatter().Muted("Nothing to undo.")
			return nil
		}
		future := ctx.Store.FutureActions()
		if ctx.IsJSON() {
			return ctx.JSONFormatter().PrintResult("undone", future[0].Description)
		}
		ctx.CLIFormatter().Success("Undid: " + future[0].Description)
		return nil
	},
}

// redoCmd reapplies the most recently undone action.
var redoCmd = &cobra.Command{
	Use:   "redo",
	Short: "Redo the most recently undone action",
	RunE: func(cmd *cobra.Command, args []string) error {
		done, err := ctx.Store.Redo(cmd.Context())
		if err != nil {
			return err
		}
		if !done {
			if ctx.IsJSON() {
				return ctx.JSONFormatter().PrintResult("noop", "nothing to redo")
			}
			ctx.CLIFormatter().Muted("Nothing to redo.")
			return nil
		}
		past := ctx.Store.PastActions()
		if ctx.IsJSON() {
			return ctx.JSONFormatter().PrintResult("redone", past[len(past)-1].Description)
		}
		ctx.CLIFormatter().Success("Redid: " + past[len(past)-1].Description)
		return nil
	},
}

// jumpCmd steps to an arbitrary point in the history.
var jumpCmd = &cobra.Command{
	Use:   "jump <index>",
	Short: "Jump to a point in the history",
	Long: `Jump to the given history index, undoing or redoing one step at a
time until the chain matches that point. Index -1 is the state before
any recorded action; 'hopstack history' shows the indexes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return apperrors.NewUserErrorWithField("index", args[0],
				"index must be a number", "Use 'hopstack history' to see indexes.")
		}
		if err := ctx.Store.JumpToIndex(cmd.Context(), index); err != nil {
			if errors.Is(err, history.ErrIndexOutOfRange) {
				return apperrors.ErrIndexOutOfRange
			}
			return err
		}
		if ctx.IsJSON() {
			return ctx.JSONFormatter().PrintResult("jumped", args[0])
		}
		ctx.CLIFormatter().Success("Jumped to index " + args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(redoCmd)
	rootCmd.AddCommand(jumpCmd)
}
