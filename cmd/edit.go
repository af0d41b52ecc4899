package cmd

import (
	"github.com/spf13/cobra"

	"github.com/example/hopstack/internal/tui"
)

// editCmd opens the interactive chain editor.
var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the chain interactively",
	Long: `Open the interactive chain editor. Hops can be reordered by
drag-style keyboard moves, toggled, removed, and every change is
undoable. Press ? inside the editor for the key reference.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.RunEditor(ctx.Service)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
