// Package chain owns routing-chain mutations and their undo history.
//
// Every mutation is expressed twice: once as a live execute/undo closure
// pushed to the history store, and once as a data-only command journaled
// alongside the action metadata. After a restart the dispatcher rebuilds
// the closures from the journaled commands, which is what lets history
// survive a reload without ever serializing a function.
package chain

import (
	"encoding/json"
	"fmt"

	"github.com/example/hopstack/internal/model"
)

// CommandKind tags a command payload.
type CommandKind string

const (
	CmdAddHop    CommandKind = "add_hop"
	CmdRemoveHop CommandKind = "remove_hop"
	CmdMoveHops  CommandKind = "move_hops"
	CmdUpdateHop CommandKind = "update_hop"
	CmdSetChain  CommandKind = "set_chain"
)

// Command is the tagged, serializable form of one chain mutation. Only the
// fields relevant to the kind are set.
type Command struct {
	Kind CommandKind `json:"kind"`

	// CmdAddHop / CmdRemoveHop: the hop and its position.
	Hop   *model.Hop `json:"hop,omitempty"`
	Index int        `json:"index,omitempty"`

	// CmdMoveHops: the complete hop-id order before and after the move.
	// Recording full orders keeps apply/revert deterministic for block
	// moves as well as single-item moves.
	OrderBefore []string `json:"order_before,omitempty"`
	OrderAfter  []string `json:"order_after,omitempty"`

	// CmdUpdateHop: the hop state before and after the edit.
	Before *model.Hop `json:"before,omitempty"`
	After  *model.Hop `json:"after,omitempty"`

	// CmdSetChain: the full hop list before and after a changeset.
	HopsBefore []model.Hop `json:"hops_before,omitempty"`
	HopsAfter  []model.Hop `json:"hops_after,omitempty"`
}

// Marshal encodes the command for journaling.
func (c Command) Marshal() (json.RawMessage, error) {
	return json.Marshal(c)
}

// UnmarshalCommand decodes a journaled command payload.
func UnmarshalCommand(raw json.RawMessage) (Command, error) {
	var cmd Command
	if len(raw) == 0 {
		return cmd, fmt.Errorf("empty command payload")
	}
	if err := json.Unmarshal(raw, &cmd); err != nil {
		return cmd, fmt.Errorf("decode command: %w", err)
	}
	return cmd, nil
}

// Inverse returns the command that reverses this one.
func (c Command) Inverse() Command {
	switch c.Kind {
	case CmdAddHop:
		return Command{Kind: CmdRemoveHop, Hop: c.Hop, Index: c.Index}
	case CmdRemoveHop:
		return Command{Kind: CmdAddHop, Hop: c.Hop, Index: c.Index}
	case CmdMoveHops:
		return Command{Kind: CmdMoveHops, OrderBefore: c.OrderAfter, OrderAfter: c.OrderBefore}
	case CmdUpdateHop:
		return Command{Kind: CmdUpdateHop, Before: c.After, After: c.Before}
	case CmdSetChain:
		return Command{Kind: CmdSetChain, HopsBefore: c.HopsAfter, HopsAfter: c.HopsBefore}
	default:
		return c
	}
}

// ActionType maps a command kind to its history action type.
func (c Command) ActionType() model.ActionType {
	switch c.Kind {
	case CmdAddHop:
		return model.ActionCreate
	case CmdRemoveHop:
		return model.ActionDelete
	case CmdMoveHops:
		return model.ActionReorder
	case CmdUpdateHop:
		return model.ActionEdit
	case CmdSetChain:
		return model.ActionChangeset
	default:
		return model.ActionEdit
	}
}
