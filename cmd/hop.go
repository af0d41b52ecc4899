package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	apperrors "github.com/example/hopstack/internal/errors"
	"github.com/example/hopstack/internal/model"
	"github.com/example/hopstack/internal/output"
)

var (
	flagHopEndpoint string
	flagHopIndex    int
)

// hopCmd groups hop subcommands.
var hopCmd = &cobra.Command{
	Use:   "hop",
	Short: "Manage the chain's hops",
}

// hopListCmd lists the chain's hops in order.
var hopListCmd = &cobra.Command{
	Use:   "list",
	Short: "List hops in chain order",
	RunE: func(cmd *cobra.Command, args []string) error {
		chain, err := ctx.Service.Chain()
		if err != nil {
			return err
		}
		if ctx.IsJSON() {
			return ctx.JSONFormatter().PrintChain(chain)
		}

		cli := ctx.CLIFormatter()
		if len(chain.Hops) == 0 {
			cli.Muted("Chain is empty.")
			return nil
		}
		rows := make([]output.TableRow, 0, len(chain.Hops))
		for i, hop := range chain.Hops {
			state := "enabled"
			if hop.Disabled {
				state = "disabled"
			}
			rows = append(rows, output.TableRow{Columns: []string{
				strconv.Itoa(i), hop.Service, hop.Endpoint, state, hop.ID,
			}})
		}
		cli.PrintTable([]string{"POS", "SERVICE", "ENDPOINT", "STATE", "ID"}, rows)
		return nil
	},
}

// hopAddCmd adds a hop to the chain.
var hopAddCmd = &cobra.Command{
	Use:   "add <service>",
	Short: "Add a hop to the chain",
	Long: `Add a hop to the chain, by default at the end.

Examples:
  hopstack hop add dns-filter --endpoint 10.0.0.2:53
  hopstack hop add vpn-exit --at 0`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hop := model.Hop{
			Service:  args[0],
			Endpoint: flagHopEndpoint,
		}
		added, err := ctx.Service.AddHop(cmd.Context(), hop, flagHopIndex)
		if err != nil {
			return err
		}
		if ctx.IsJSON() {
			return ctx.Formatter.JSON(added)
		}
		ctx.CLIFormatter().Success(fmt.Sprintf("Added hop %s (%s)", added.Service, added.ID))
		return nil
	},
}

// hopRemoveCmd removes a hop.
var hopRemoveCmd = &cobra.Command{
	Use:   "remove <id-or-position>",
	Short: "Remove a hop from the chain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hop, err := resolveHop(args[0])
		if err != nil {
			return err
		}
		if err := ctx.Service.RemoveHop(cmd.Context(), hop.ID); err != nil {
			return err
		}
		if ctx.IsJSON() {
			return ctx.JSONFormatter().PrintResult("removed", hop.Service)
		}
		ctx.CLIFormatter().Success("Removed hop " + hop.Service)
		return nil
	},
}

// hopMoveCmd reorders the chain.
var hopMoveCmd = &cobra.Command{
	Use:   "move <from> <to>",
	Short: "Move a hop to a new position",
	Long: `Move the hop at position <from> to position <to>. The move is
recorded as a single undoable reorder.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := strconv.Atoi(args[0])
		if err != nil {
			return apperrors.NewUserErrorWithField("from", args[0],
				"position must be a number", "Use 'hopstack hop list' to see positions.")
		}
		to, err := strconv.Atoi(args[1])
		if err != nil {
			return apperrors.NewUserErrorWithField("to", args[1],
				"position must be a number", "Use 'hopstack hop list' to see positions.")
		}
		if err := ctx.Service.MoveHop(cmd.Context(), from, to); err != nil {
			return err
		}
		if ctx.IsJSON() {
			return ctx.JSONFormatter().PrintResult("moved", fmt.Sprintf("%d -> %d", from, to))
		}
		ctx.CLIFormatter().Success(fmt.Sprintf("Moved hop from %d to %d", from, to))
		return nil
	},
}

// hopEnableCmd / hopDisableCmd flip a hop's disabled flag.
var hopEnableCmd = &cobra.Command{
	Use:   "enable <id-or-position>",
	Short: "Enable a hop",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setHopDisabled(cmd, args[0], false)
	},
}

var hopDisableCmd = &cobra.Command{
	Use:   "disable <id-or-position>",
	Short: "Disable a hop without removing it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setHopDisabled(cmd, args[0], true)
	},
}

func setHopDisabled(cmd *cobra.Command, ref string, disabled bool) error {
	hop, err := resolveHop(ref)
	if err != nil {
		return err
	}
	if err := ctx.Service.SetDisabled(cmd.Context(), hop.ID, disabled); err != nil {
		return err
	}
	verb := "Enabled"
	if disabled {
		verb = "Disabled"
	}
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintResult("ok", verb+" "+hop.Service)
	}
	ctx.CLIFormatter().Success(verb + " hop " + hop.Service)
	return nil
}

// resolveHop accepts either a hop id or a zero-based position.
func resolveHop(ref string) (model.Hop, error) {
	chain, err := ctx.Service.Chain()
	if err != nil {
		return model.Hop{}, err
	}
	if pos, err := strconv.Atoi(ref); err == nil {
		if pos < 0 || pos >= len(chain.Hops) {
			return model.Hop{}, apperrors.ErrIndexOutOfRange
		}
		return chain.Hops[pos], nil
	}
	if hop, ok := chain.Hop(ref); ok {
		return hop, nil
	}
	// Fall back to matching by service name when unique.
	var match *model.Hop
	for i := range chain.Hops {
		if chain.Hops[i].Service == ref {
			if match != nil {
				return model.Hop{}, apperrors.NewUserErrorWithField("hop", ref,
					"service name is ambiguous", "Refer to the hop by position or id.")
			}
			match = &chain.Hops[i]
		}
	}
	if match == nil {
		return model.Hop{}, apperrors.ErrHopNotFound
	}
	return *match, nil
}

func init() {
	hopAddCmd.Flags().StringVar(&flagHopEndpoint, "endpoint", "", "Service endpoint (host:port)")
	hopAddCmd.Flags().IntVar(&flagHopIndex, "at", -1, "Position to insert at (default: end)")

	hopCmd.AddCommand(hopListCmd)
	hopCmd.AddCommand(hopAddCmd)
	hopCmd.AddCommand(hopRemoveCmd)
	hopCmd.AddCommand(hopMoveCmd)
	hopCmd.AddCommand(hopEnableCmd)
	hopCmd.AddCommand(hopDisableCmd)
	rootCmd.AddCommand(hopCmd)
}
