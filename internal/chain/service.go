package chain

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/example/hopstack/internal/device"
	apperrors "github.com/example/hopstack/internal/errors"
	"github.com/example/hopstack/internal/history"
	"github.com/example/hopstack/internal/logging"
	"github.com/example/hopstack/internal/model"
	"github.com/example/hopstack/internal/sortable"
	"github.com/example/hopstack/internal/storage"
)

// DefaultChainName names the chain created on first use.
const DefaultChainName = "default"

// ResourceTypeHop is the resource type recorded on hop-level actions.
const ResourceTypeHop = "hop"

// Service owns chain mutations. Every mutation is applied first (persisted
// locally and, when a device is configured, pushed to it) and then recorded
// on the history store; the store itself never executes a freshly pushed
// action.
type Service struct {
	repo  *storage.ChainRepo
	store *history.Store
	dev   *device.Client
}

// NewService creates a chain service. dev may be nil for offline mode.
func NewService(repo *storage.ChainRepo, store *history.Store, dev *device.Client) *Service {
	return &Service{repo: repo, store: store, dev: dev}
}

// History returns the service's history store.
func (s *Service) History() *history.Store {
	return s.store
}

// Chain returns the current chain, creating an empty one on first use.
func (s *Service) Chain() (*model.Chain, error) {
	return s.repo.GetOrCreate(DefaultChainName)
}

// AddHop appends (index < 0) or inserts a hop and records the action.
// A missing hop ID is assigned; a duplicate ID is rejected.
func (s *Service) AddHop(ctx context.Context, hop model.Hop, index int) (model.Hop, error) {
	if hop.Service == "" {
		return model.Hop{}, apperrors.ErrServiceRequired
	}
	if hop.ID == "" {
		hop.ID = uuid.NewString()
	}

	chain, err := s.Chain()
	if err != nil {
		return model.Hop{}, err
	}
	if chain.HopIndex(hop.ID) >= 0 {
		return model.Hop{}, apperrors.ErrHopExists
	}
	if index < 0 || index > len(chain.Hops) {
		index = len(chain.Hops)
	}

	cmd := Command{Kind: CmdAddHop, Hop: &hop, Index: index}
	if err := s.apply(ctx, cmd); err != nil {
		return model.Hop{}, err
	}
	s.record(cmd, fmt.Sprintf("Add hop %s at position %d", hop.Service, index), hop.ID)
	return hop, nil
}

// RemoveHop deletes a hop by id and records the action.
func (s *Service) RemoveHop(ctx context.Context, id string) error {
	chain, err := s.Chain()
	if err != nil {
		return err
	}
	index := chain.HopIndex(id)
	if index < 0 {
		return apperrors.ErrHopNotFound
	}
	hop := chain.Hops[index]

	cmd := Command{Kind: CmdRemoveHop, Hop: &hop, Index: index}
	if err := s.apply(ctx, cmd); err != nil {
		return err
	}
	s.record(cmd, fmt.Sprintf("Remove hop %s", hop.Service), hop.ID)
	return nil
}

// UpdateHop replaces a hop's fields and records the edit. The hop is
// matched by ID.
func (s *Service) UpdateHop(ctx context.Context, hop model.Hop) error {
	chain, err := s.Chain()
	if err != nil {
		return err
	}
	before, ok := chain.Hop(hop.ID)
	if !ok {
		return apperrors.ErrHopNotFound
	}
	if before == hop {
		return nil
	}

	cmd := Command{Kind: CmdUpdateHop, Before: &before, After: &hop}
	if err := s.apply(ctx, cmd); err != nil {
		return err
	}
	s.record(cmd, fmt.Sprintf("Edit hop %s", hop.Service), hop.ID)
	return nil
}

// SetDisabled toggles a hop's disabled flag and records the edit.
func (s *Service) SetDisabled(ctx context.Context, id string, disabled bool) error {
	chain, err := s.Chain()
	if err != nil {
		return err
	}
	before, ok := chain.Hop(id)
	if !ok {
		return apperrors.ErrHopNotFound
	}
	if before.Disabled == disabled {
		return nil
	}
	after := before
	after.Disabled = disabled

	verb := "Enable"
	if disabled {
		verb = "Disable"
	}
	cmd := Command{Kind: CmdUpdateHop, Before: &before, After: &after}
	if err := s.apply(ctx, cmd); err != nil {
		return err
	}
	s.record(cmd, fmt.Sprintf("%s hop %s", verb, before.Service), id)
	return nil
}

// ApplyMove commits a reorder computed by the sortable engine: the chain is
// reordered to the move's resulting order and a reorder action is recorded.
func (s *Service) ApplyMove(ctx context.Context, mv sortable.Move) error {
	chain, err := s.Chain()
	if err != nil {
		return err
	}

	before := hopOrder(chain.Hops)
	after := make([]string, len(mv.Items))
	for i, e := range mv.Items {
		after[i] = e.ID
	}
	if equalOrder(before, after) {
		return nil
	}

	cmd := Command{Kind: CmdMoveHops, OrderBefore: before, OrderAfter: after}
	if err := s.apply(ctx, cmd); err != nil {
		return err
	}

	desc := fmt.Sprintf("Move hop from %d to %d", mv.FromIndex, mv.ToIndex)
	if len(mv.IDs) > 1 {
		desc = fmt.Sprintf("Move %d hops to %d", len(mv.IDs), mv.ToIndex)
	}
	s.record(cmd, desc, mv.ID)
	return nil
}

// MoveHop moves the hop at from to index to, driving the same engine the
// TUI uses so both paths share one permutation semantics.
func (s *Service) MoveHop(ctx context.Context, from, to int) error {
	chain, err := s.Chain()
	if err != nil {
		return err
	}
	if len(chain.Hops) == 0 {
		return apperrors.ErrChainEmpty
	}
	if from < 0 || from >= len(chain.Hops) || to < 0 || to >= len(chain.Hops) {
		return apperrors.ErrIndexOutOfRange
	}

	list := sortable.New(sortable.Config{})
	list.SetEntries(Entries(chain.Hops))
	if !list.DragStart(chain.Hops[from].ID) {
		return apperrors.ErrHopDisabled
	}
	list.DragOver(chain.Hops[to].ID)
	mv, ok := list.Drop()
	if !ok {
		return nil
	}
	return s.ApplyMove(ctx, mv)
}

// ApplyChangeset replaces the whole hop list in one undoable step.
func (s *Service) ApplyChangeset(ctx context.Context, hops []model.Hop, description string) error {
	chain, err := s.Chain()
	if err != nil {
		return err
	}
	cmd := Command{
		Kind:       CmdSetChain,
		HopsBefore: append([]model.Hop(nil), chain.Hops...),
		HopsAfter:  append([]model.Hop(nil), hops...),
	}
	if err := s.apply(ctx, cmd); err != nil {
		return err
	}
	if description == "" {
		description = fmt.Sprintf("Replace chain (%d hops)", len(hops))
	}
	s.record(cmd, description, "")
	return nil
}

// Entries converts hops to sortable engine entries.
func Entries(hops []model.Hop) []sortable.Entry {
	out := make([]sortable.Entry, len(hops))
	for i, h := range hops {
		out[i] = sortable.Entry{ID: h.ID, Disabled: h.Disabled}
	}
	return out
}

// record pushes an action for an already-applied command. Execute re-applies
// the command; Undo applies its inverse.
func (s *Service) record(cmd Command, description, resourceID string) {
	raw, err := cmd.Marshal()
	if err != nil {
		// The live closures still work; only journaling degrades.
		logging.Warn("failed to encode command for journal", logging.KeyError, err)
		raw = nil
	}
	rec := s.store.Push(history.Input{
		Type:         cmd.ActionType(),
		Description:  description,
		Scope:        model.ScopeChain,
		ResourceID:   resourceID,
		ResourceType: ResourceTypeHop,
		Command:      raw,
		Execute:      s.callback(cmd),
		Undo:         s.callback(cmd.Inverse()),
	})
	logging.Debug("recorded action",
		logging.KeyAction, rec.ID,
		logging.KeyOperation, string(cmd.Kind),
		logging.KeyHop, resourceID)
}

func (s *Service) callback(cmd Command) history.CallbackFunc {
	return func(ctx context.Context) error {
		return s.apply(ctx, cmd)
	}
}

// apply runs a command against the current chain: the device (when
// configured) must accept the new state before the local record is updated.
func (s *Service) apply(ctx context.Context, cmd Command) error {
	chain, err := s.Chain()
	if err != nil {
		return err
	}
	next, err := applyCommand(chain, cmd)
	if err != nil {
		return err
	}
	if s.dev != nil {
		if err := s.dev.PutChain(ctx, next); err != nil {
			return apperrors.NewSystemErrorWithOp(string(cmd.Kind), "device rejected chain update", err)
		}
	}
	return s.repo.Set(next)
}

// applyCommand computes the chain state after one command. It never
// mutates its input.
func applyCommand(chain *model.Chain, cmd Command) (*model.Chain, error) {
	next := chain.Clone()

	switch cmd.Kind {
	case CmdAddHop:
		if cmd.Hop == nil {
			return nil, fmt.Errorf("add_hop: missing hop")
		}
		if next.HopIndex(cmd.Hop.ID) >= 0 {
			return nil, apperrors.ErrHopExists
		}
		index := cmd.Index
		if index < 0 || index > len(next.Hops) {
			index = len(next.Hops)
		}
		next.Hops = append(next.Hops, model.Hop{})
		copy(next.Hops[index+1:], next.Hops[index:])
		next.Hops[index] = *cmd.Hop

	case CmdRemoveHop:
		if cmd.Hop == nil {
			return nil, fmt.Errorf("remove_hop: missing hop")
		}
		index := next.HopIndex(cmd.Hop.ID)
		if index < 0 {
			return nil, apperrors.ErrHopNotFound
		}
		next.Hops = append(next.Hops[:index], next.Hops[index+1:]...)

	case CmdMoveHops:
		reordered, err := reorderHops(next.Hops, cmd.OrderAfter)
		if err != nil {
			return nil, err
		}
		next.Hops = reordered

	case CmdUpdateHop:
		if cmd.After == nil {
			return nil, fmt.Errorf("update_hop: missing hop state")
		}
		index := next.HopIndex(cmd.After.ID)
		if index < 0 {
			return nil, apperrors.ErrHopNotFound
		}
		next.Hops[index] = *cmd.After

	case CmdSetChain:
		next.Hops = append([]model.Hop(nil), cmd.HopsAfter...)

	default:
		return nil, fmt.Errorf("unknown command kind %q", cmd.Kind)
	}
	return next, nil
}

// reorderHops rearranges hops to the given id order. The order must be a
// permutation of the current hop ids.
func reorderHops(hops []model.Hop, order []string) ([]model.Hop, error) {
	if len(order) != len(hops) {
		return nil, fmt.Errorf("reorder: want %d ids, got %d", len(hops), len(order))
	}
	byID := make(map[string]model.Hop, len(hops))
	for _, h := range hops {
		byID[h.ID] = h
	}
	out := make([]model.Hop, 0, len(order))
	for _, id := range order {
		h, ok := byID[id]
		if !ok {
			return nil, apperrors.ErrHopNotFound
		}
		out = append(out, h)
		delete(byID, id)
	}
	return out, nil
}

func hopOrder(hops []model.Hop) []string {
	out := make([]string, len(hops))
	for i, h := range hops {
		out[i] = h.ID
	}
	return out
}

func equalOrder(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
