package history

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/hopstack/internal/model"
)

// counterInput returns an Input whose callbacks adjust *n by delta on
// execute and by -delta on undo.
func counterInput(desc string, n *int, delta int) Input {
	return Input{
		Type:        model.ActionEdit,
		Description: desc,
		Execute: func(ctx context.Context) error {
			*n += delta
			return nil
		},
		Undo: func(ctx context.Context) error {
			*n -= delta
			return nil
		},
	}
}

// =============================================================================
// Push Tests
// =============================================================================

func TestPushAssignsMetadata(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := New(
		WithClock(func() time.Time { return fixed }),
		WithIDFunc(func() string { return "id-1" }),
	)

	rec := s.Push(Input{Type: model.ActionCreate, Description: "Add hop dns"})

	assert.Equal(t, "id-1", rec.ID)
	assert.Equal(t, fixed, rec.Timestamp)
	assert.Equal(t, model.ScopeChain, rec.Scope)
	assert.Equal(t, 0, s.CurrentIndex())
	assert.True(t, s.CanUndo())
	assert.False(t, s.CanRedo())
}

func TestPushDoesNotExecute(t *testing.T) {
	s := New()
	n := 0
	s.Push(counterInput("add", &n, 1))
	assert.Equal(t, 0, n, "push must never invoke the execute callback")
}

func TestPushClearsFuture(t *testing.T) {
	s := New()
	n := 0
	s.Push(counterInput("a", &n, 1))
	s.Push(counterInput("b", &n, 1))

	done, err := s.Undo(context.Background())
	require.NoError(t, err)
	require.True(t, done)
	require.True(t, s.CanRedo())

	s.Push(counterInput("c", &n, 1))
	assert.False(t, s.CanRedo(), "a new action discards the redo branch")
	assert.Equal(t, 2, s.Len())
}

func TestPushTrimsToMaxDepth(t *testing.T) {
	s := New(WithMaxDepth(3))
	n := 0
	for i := 0; i < 5; i++ {
		s.Push(counterInput(fmt.Sprintf("action %d", i), &n, 1))
	}

	past := s.PastActions()
	require.Len(t, past, 3)
	assert.Equal(t, "action 2", past[0].Description)
	assert.Equal(t, "action 4", past[2].Description)
}

// =============================================================================
// Undo / Redo Tests
// =============================================================================

func TestUndoRedoRoundTrip(t *testing.T) {
	s := New()
	n := 0
	s.Push(counterInput("increment", &n, 1))
	n = 1 // the caller applied the change before pushing

	done, err := s.Undo(context.Background())
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, 0, n)
	assert.Equal(t, -1, s.CurrentIndex())

	done, err = s.Redo(context.Background())
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, 1, n)
	assert.Equal(t, 0, s.CurrentIndex())
}

func TestUndoEmptyIsNoop(t *testing.T) {
	s := New()
	done, err := s.Undo(context.Background())
	assert.NoError(t, err)
	assert.False(t, done)

	done, err = s.Redo(context.Background())
	assert.NoError(t, err)
	assert.False(t, done)
}

func TestUndoFailureLeavesStacksUnchanged(t *testing.T) {
	s := New()
	boom := errors.New("device unreachable")
	s.Push(Input{
		Description: "add hop",
		Undo:        func(ctx context.Context) error { return boom },
	})

	done, err := s.Undo(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.False(t, done)
	assert.Equal(t, 0, s.CurrentIndex(), "failed undo must not move the record")
	assert.True(t, s.CanUndo())
	assert.False(t, s.CanRedo())
}

func TestRedoFailureLeavesStacksUnchanged(t *testing.T) {
	s := New()
	boom := errors.New("device unreachable")
	calls := 0
	s.Push(Input{
		Description: "add hop",
		Execute: func(ctx context.Context) error {
			calls++
			if calls == 1 {
				return boom
			}
			return nil
		},
	})
	_, err := s.Undo(context.Background())
	require.NoError(t, err)

	done, err := s.Redo(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.False(t, done)
	assert.True(t, s.CanRedo())
	assert.Equal(t, -1, s.CurrentIndex())

	// The record is still redoable once the callback succeeds.
	done, err = s.Redo(context.Background())
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, 0, s.CurrentIndex())
}

func TestFutureOrdering(t *testing.T) {
	s := New()
	n := 0
	s.Push(counterInput("a", &n, 1))
	s.Push(counterInput("b", &n, 1))
	s.Push(counterInput("c", &n, 1))

	ctx := context.Background()
	_, err := s.Undo(ctx)
	require.NoError(t, err)
	_, err = s.Undo(ctx)
	require.NoError(t, err)

	future := s.FutureActions()
	require.Len(t, future, 2)
	assert.Equal(t, "b", future[0].Description, "future[0] is the next redo")
	assert.Equal(t, "c", future[1].Description)

	// past + future concatenated stays chronological.
	past := s.PastActions()
	require.Len(t, past, 1)
	assert.Equal(t, "a", past[0].Description)
}

// =============================================================================
// JumpToIndex Tests
// =============================================================================

func TestJumpToIndexStepsSequentially(t *testing.T) {
	s := New()
	var order []string
	push := func(name string) {
		s.Push(Input{
			Description: name,
			Execute: func(ctx context.Context) error {
				order = append(order, "redo:"+name)
				return nil
			},
			Undo: func(ctx context.Context) error {
				order = append(order, "undo:"+name)
				return nil
			},
		})
	}
	push("a")
	push("b")
	push("c")

	ctx := context.Background()
	require.NoError(t, s.JumpToIndex(ctx, -1))
	assert.Equal(t, []string{"undo:c", "undo:b", "undo:a"}, order)
	assert.Equal(t, -1, s.CurrentIndex())

	order = nil
	require.NoError(t, s.JumpToIndex(ctx, 1))
	assert.Equal(t, []string{"redo:a", "redo:b"}, order)
	assert.Equal(t, 1, s.CurrentIndex())
}

func TestJumpToIndexOutOfRange(t *testing.T) {
	s := New()
	n := 0
	s.Push(counterInput("a", &n, 1))

	ctx := context.Background()
	assert.ErrorIs(t, s.JumpToIndex(ctx, 1), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.JumpToIndex(ctx, -2), ErrIndexOutOfRange)
	assert.Equal(t, 0, s.CurrentIndex())
}

func TestJumpToIndexStopsAtFailedStep(t *testing.T) {
	s := New()
	boom := errors.New("midway failure")
	ok := func(ctx context.Context) error { return nil }
	s.Push(Input{Description: "a", Execute: ok, Undo: ok})
	s.Push(Input{Description: "b", Execute: ok, Undo: func(ctx context.Context) error { return boom }})
	s.Push(Input{Description: "c", Execute: ok, Undo: ok})

	err := s.JumpToIndex(context.Background(), -1)
	assert.ErrorIs(t, err, boom)
	// c was undone, b refused, a never attempted.
	assert.Equal(t, 1, s.CurrentIndex())
	assert.Len(t, s.FutureActions(), 1)
}

// =============================================================================
// Clear / Restore Tests
// =============================================================================

func TestClearDropsWithoutUnwinding(t *testing.T) {
	s := New()
	n := 0
	s.Push(counterInput("a", &n, 1))
	n = 1
	_, err := s.Undo(context.Background())
	require.NoError(t, err)

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())
	assert.Equal(t, 0, n, "clear must not invoke callbacks")
}

func TestRestoreSeedsStacks(t *testing.T) {
	s := New()
	a := &Record{Action: model.Action{ID: "a", Description: "first"}}
	b := &Record{Action: model.Action{ID: "b", Description: "second"}}

	notified := 0
	s2 := New(WithOnChange(func(model.HistorySnapshot) { notified++ }))
	s2.Restore([]*Record{a}, []*Record{b})

	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 2, s2.Len())
	assert.Equal(t, 0, s2.CurrentIndex())
	assert.Equal(t, 0, notified, "restore must not fire the change hook")
}

// =============================================================================
// Snapshot / OnChange Tests
// =============================================================================

func TestOnChangeFiresPerMutation(t *testing.T) {
	var snaps []model.HistorySnapshot
	s := New(WithOnChange(func(snap model.HistorySnapshot) {
		snaps = append(snaps, snap)
	}))
	n := 0
	s.Push(counterInput("a", &n, 1))
	_, err := s.Undo(context.Background())
	require.NoError(t, err)
	_, err = s.Redo(context.Background())
	require.NoError(t, err)
	s.Clear()

	require.Len(t, snaps, 4)
	assert.Len(t, snaps[0].Past, 1)
	assert.Len(t, snaps[1].Future, 1)
	assert.Len(t, snaps[2].Past, 1)
	assert.Empty(t, snaps[3].Past)
	assert.Equal(t, model.KeyJournal, snaps[0].Key)
}

func TestSnapshotCopies(t *testing.T) {
	s := New()
	n := 0
	s.Push(counterInput("a", &n, 1))

	snap := s.Snapshot()
	require.Len(t, snap.Past, 1)
	snap.Past[0].Description = "mutated"
	assert.Equal(t, "a", s.PastActions()[0].Description)
}

// =============================================================================
// Concurrency Tests
// =============================================================================

func TestOperationsDoNotInterleave(t *testing.T) {
	s := New()
	var inFlight, maxInFlight int
	var gauge sync.Mutex
	enter := func() {
		gauge.Lock()
		inFlight++
		if inFlight > maxInFlight {
			maxInFlight = inFlight
		}
		gauge.Unlock()
		time.Sleep(time.Millisecond)
		gauge.Lock()
		inFlight--
		gauge.Unlock()
	}

	for i := 0; i < 10; i++ {
		s.Push(Input{
			Description: "op",
			Execute: func(ctx context.Context) error {
				enter()
				return nil
			},
			Undo: func(ctx context.Context) error {
				enter()
				return nil
			},
		})
	}

	var wg sync.WaitGroup
	ctx := context.Background()
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Undo(ctx)
			_, _ = s.Redo(ctx)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxInFlight, "callbacks must run one at a time")
	assert.Equal(t, 10, s.Len())
}
