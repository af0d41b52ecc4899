// Package history implements the undo/redo engine for Hopstack.
//
// The Store owns two ordered stacks of action records: past (applied, oldest
// first) and future (undone, available for redo). Producers push a record
// after committing a user-visible change; the store never invokes Execute on
// push. Undo and redo invoke the record's callbacks, which may perform slow
// work such as pushing the resulting chain to a device.
package history

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/hopstack/internal/model"
)

// CallbackFunc applies or reverses an action's effect.
type CallbackFunc func(ctx context.Context) error

// Record is a live action record: the durable metadata plus the forward and
// reverse behavior. Callbacks are never serialized; after a reload they are
// rebuilt from the Command payload.
type Record struct {
	model.Action

	Execute CallbackFunc
	Undo    CallbackFunc
}

// Input describes a record to push. ID and Timestamp are assigned by the
// store.
type Input struct {
	Type         model.ActionType
	Description  string
	Scope        model.ActionScope
	ResourceID   string
	ResourceType string
	Command      json.RawMessage
	Execute      CallbackFunc
	Undo         CallbackFunc
}

// Store is the single source of truth for undoable history. All operations
// are serialized by one mutex held for the full duration of the operation,
// callbacks included, so a second undo/redo issued while one is in flight
// queues behind it instead of interleaving.
type Store struct {
	mu     sync.Mutex
	past   []*Record
	future []*Record

	maxDepth int
	onChange func(model.HistorySnapshot)
	now      func() time.Time
	newID    func() string
}

// Option configures a Store.
type Option func(*Store)

// WithMaxDepth bounds the past stack. When a push would exceed the bound the
// oldest records are dropped. Zero means unbounded.
func WithMaxDepth(n int) Option {
	return func(s *Store) { s.maxDepth = n }
}

// WithOnChange registers a hook invoked with a metadata snapshot after every
// mutation. The hook runs while the store lock is held and must not call
// back into the store.
func WithOnChange(fn func(model.HistorySnapshot)) Option {
	return func(s *Store) { s.onChange = fn }
}

// WithClock overrides the timestamp source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDFunc overrides record ID generation. Used in tests.
func WithIDFunc(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// New creates an empty history store. The store is an explicit dependency:
// construct one per session and pass it to whatever needs it.
func New(opts ...Option) *Store {
	s := &Store{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Push records an already-applied action: assigns id and timestamp, appends
// it to past and clears future. Branching history is not supported, so any
// redoable records are discarded. Push never invokes Execute.
func (s *Store) Push(in Input) *Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := &Record{
		Action: model.Action{
			ID:           s.newID(),
			Type:         in.Type,
			Description:  in.Description,
			Scope:        in.Scope,
			ResourceID:   in.ResourceID,
			ResourceType: in.ResourceType,
			Timestamp:    s.now(),
			Command:      in.Command,
		},
		Execute: in.Execute,
		Undo:    in.Undo,
	}
	if rec.Scope == "" {
		rec.Scope = model.ScopeChain
	}

	s.past = append(s.past, rec)
	s.future = nil
	if s.maxDepth > 0 && len(s.past) > s.maxDepth {
		s.past = append([]*Record(nil), s.past[len(s.past)-s.maxDepth:]...)
	}
	s.notifyLocked()
	return rec
}

// Undo reverses the most recent past action. It returns (false, nil) when
// past is empty. On success the record moves to the front of future. If the
// record's Undo callback fails the record stays on past, the visible history
// is unchanged and the error is returned to the caller; no retry is
// attempted here.
func (s *Store) Undo(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.undoLocked(ctx)
}

func (s *Store) undoLocked(ctx context.Context) (bool, error) {
	if len(s.past) == 0 {
		return false, nil
	}
	rec := s.past[len(s.past)-1]
	if rec.Undo != nil {
		if err := rec.Undo(ctx); err != nil {
			return false, err
		}
	}
	s.past = s.past[:len(s.past)-1]
	s.future = append([]*Record{rec}, s.future...)
	s.notifyLocked()
	return true, nil
}

// Redo re-applies the next undone action. It returns (false, nil) when
// future is empty. Error handling mirrors Undo: a failed Execute leaves the
// record on future.
func (s *Store) Redo(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.redoLocked(ctx)
}

func (s *Store) redoLocked(ctx context.Context) (bool, error) {
	if len(s.future) == 0 {
		return false, nil
	}
	rec := s.future[0]
	if rec.Execute != nil {
		if err := rec.Execute(ctx); err != nil {
			return false, err
		}
	}
	s.future = s.future[1:]
	s.past = append(s.past, rec)
	s.notifyLocked()
	return true, nil
}

// JumpToIndex undoes or redoes one step at a time until the current index
// (len(past)-1) equals target. Steps run strictly sequentially because each
// callback may depend on the state left by the previous one. A failed step
// stops the jump, leaving the stacks at the last completed step.
func (s *Store) JumpToIndex(ctx context.Context, target int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if target < -1 || target >= len(s.past)+len(s.future) {
		return ErrIndexOutOfRange
	}
	for len(s.past)-1 > target {
		if _, err := s.undoLocked(ctx); err != nil {
			return err
		}
	}
	for len(s.past)-1 < target {
		if _, err := s.redoLocked(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Clear discards both stacks without invoking any callbacks. History is
// dropped, not unwound.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.past = nil
	s.future = nil
	s.notifyLocked()
}

// Restore seeds the stacks, replacing any existing content. It is used at
// startup to rehydrate a journaled session and does not fire the change
// hook.
func (s *Store) Restore(past, future []*Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.past = append([]*Record(nil), past...)
	s.future = append([]*Record(nil), future...)
}

// CanUndo reports whether past is non-empty.
func (s *Store) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.past) > 0
}

// CanRedo reports whether future is non-empty.
func (s *Store) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.future) > 0
}

// CurrentIndex returns len(past)-1: the index of the most recently applied
// action, or -1 when nothing has been applied.
func (s *Store) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.past) - 1
}

// Len returns the total number of recorded actions across both stacks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.past) + len(s.future)
}

// PastActions returns a copy of the past stack, oldest first.
func (s *Store) PastActions() []*Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Record(nil), s.past...)
}

// FutureActions returns a copy of the future stack. The first element is
// the next redo.
func (s *Store) FutureActions() []*Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Record(nil), s.future...)
}

// Snapshot returns the durable metadata view of both stacks.
func (s *Store) Snapshot() model.HistorySnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() model.HistorySnapshot {
	snap := model.HistorySnapshot{
		Key:    model.KeyJournal,
		Past:   make([]model.Action, len(s.past)),
		Future: make([]model.Action, len(s.future)),
	}
	for i, rec := range s.past {
		snap.Past[i] = rec.Action
	}
	for i, rec := range s.future {
		snap.Future[i] = rec.Action
	}
	return snap
}

func (s *Store) notifyLocked() {
	if s.onChange != nil {
		s.onChange(s.snapshotLocked())
	}
}
