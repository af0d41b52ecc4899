package sortable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entries(ids ...string) []Entry {
	out := make([]Entry, len(ids))
	for i, id := range ids {
		out[i] = Entry{ID: id}
	}
	return out
}

func ids(es []Entry) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.ID
	}
	return out
}

// =============================================================================
// Drag Lifecycle Tests
// =============================================================================

func TestDragStart(t *testing.T) {
	l := New(Config{})
	l.SetEntries([]Entry{{ID: "a"}, {ID: "b", Disabled: true}})

	assert.True(t, l.DragStart("a"))
	assert.Equal(t, "a", l.ActiveID())
	assert.Equal(t, "a", l.OverID())
	assert.True(t, l.Dragging())

	l.Cancel()
	assert.False(t, l.DragStart("b"), "disabled items cannot be dragged")
	assert.False(t, l.DragStart("missing"))
	assert.False(t, l.Dragging())
}

func TestDragOverRetargets(t *testing.T) {
	l := New(Config{})
	l.SetEntries(entries("a", "b", "c"))

	l.DragOver("b")
	assert.Empty(t, l.OverID(), "drag-over without a drag is ignored")

	require.True(t, l.DragStart("a"))
	l.DragOver("b")
	l.DragOver("c")
	assert.Equal(t, "c", l.OverID(), "only the latest target matters")

	l.DragOver("missing")
	assert.Equal(t, "c", l.OverID())
}

func TestCancelIsNoop(t *testing.T) {
	fired := 0
	l := New(Config{OnReorder: func(Move) { fired++ }})
	l.SetEntries(entries("a", "b", "c"))

	require.True(t, l.DragStart("a"))
	l.DragOver("c")
	l.Cancel()

	assert.Equal(t, []string{"a", "b", "c"}, ids(l.Entries()))
	assert.Equal(t, 0, fired)
	assert.False(t, l.Dragging())
}

// =============================================================================
// Drop Tests
// =============================================================================

func TestDropMovesEntry(t *testing.T) {
	var moves []Move
	l := New(Config{OnReorder: func(m Move) { moves = append(moves, m) }})
	l.SetEntries(entries("a", "b", "c", "d"))

	require.True(t, l.DragStart("a"))
	l.DragOver("c")
	move, ok := l.Drop()
	require.True(t, ok)

	assert.Equal(t, []string{"b", "c", "a", "d"}, ids(l.Entries()))
	assert.Equal(t, "a", move.ID)
	assert.Equal(t, 0, move.FromIndex)
	assert.Equal(t, 2, move.ToIndex)
	require.Len(t, moves, 1, "OnReorder fires exactly once per drop")
	assert.Equal(t, move, moves[0])
}

func TestDropBackward(t *testing.T) {
	l := New(Config{})
	l.SetEntries(entries("a", "b", "c", "d"))

	require.True(t, l.DragStart("d"))
	l.DragOver("b")
	_, ok := l.Drop()
	require.True(t, ok)
	assert.Equal(t, []string{"a", "d", "b", "c"}, ids(l.Entries()))
}

func TestDropOnSelfIsNoop(t *testing.T) {
	fired := 0
	l := New(Config{OnReorder: func(Move) { fired++ }})
	l.SetEntries(entries("a", "b"))

	require.True(t, l.DragStart("a"))
	_, ok := l.Drop()
	assert.False(t, ok)
	assert.Equal(t, []string{"a", "b"}, ids(l.Entries()))
	assert.Equal(t, 0, fired)
	assert.False(t, l.Dragging(), "drop always resets to idle")
}

func TestValidateDropVeto(t *testing.T) {
	fired := 0
	l := New(Config{
		OnReorder:    func(Move) { fired++ },
		ValidateDrop: func(from, to int, id string) bool { return to != 0 },
	})
	l.SetEntries(entries("a", "b", "c"))

	require.True(t, l.DragStart("c"))
	l.DragOver("a")
	_, ok := l.Drop()
	assert.False(t, ok, "veto is a silent no-op")
	assert.Equal(t, []string{"a", "b", "c"}, ids(l.Entries()))
	assert.Equal(t, 0, fired)

	require.True(t, l.DragStart("c"))
	l.DragOver("b")
	_, ok = l.Drop()
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "c", "b"}, ids(l.Entries()))
	assert.Equal(t, 1, fired)
}

// =============================================================================
// SetEntries Tests
// =============================================================================

func TestSetEntriesPrunesState(t *testing.T) {
	l := New(Config{MultiSelect: true})
	l.SetEntries(entries("a", "b", "c"))
	l.ToggleSelect("a")
	l.ToggleSelect("c")
	require.True(t, l.DragStart("a"))

	l.SetEntries(entries("b", "c"))
	assert.False(t, l.Dragging(), "drag on a removed item is cancelled")
	assert.Equal(t, []string{"c"}, l.Selected())
}

// =============================================================================
// Multi-Select Tests
// =============================================================================

func TestToggleSelect(t *testing.T) {
	l := New(Config{MultiSelect: true})
	l.SetEntries([]Entry{{ID: "a"}, {ID: "b", Disabled: true}, {ID: "c"}})

	l.ToggleSelect("c")
	l.ToggleSelect("a")
	assert.Equal(t, []string{"a", "c"}, l.Selected(), "selection reported in list order")

	l.ToggleSelect("b")
	assert.False(t, l.IsSelected("b"), "disabled items cannot be selected")

	l.ToggleSelect("a")
	assert.Equal(t, []string{"c"}, l.Selected())

	l.ClearSelection()
	assert.Empty(t, l.Selected())
}

func TestDropMovesSelectedBlock(t *testing.T) {
	var moves []Move
	l := New(Config{MultiSelect: true, OnReorder: func(m Move) { moves = append(moves, m) }})
	l.SetEntries(entries("a", "b", "c", "d", "e"))
	l.ToggleSelect("a")
	l.ToggleSelect("c")

	require.True(t, l.DragStart("a"))
	l.DragOver("e")
	move, ok := l.Drop()
	require.True(t, ok)

	assert.Equal(t, []string{"b", "d", "e", "a", "c"}, ids(l.Entries()),
		"selected items move as one block, relative order preserved")
	assert.Equal(t, []string{"a", "c"}, move.IDs)
	require.Len(t, moves, 1)
}

func TestDropUnselectedItemMovesAlone(t *testing.T) {
	l := New(Config{MultiSelect: true})
	l.SetEntries(entries("a", "b", "c", "d"))
	l.ToggleSelect("a")
	l.ToggleSelect("b")

	require.True(t, l.DragStart("d"))
	l.DragOver("a")
	move, ok := l.Drop()
	require.True(t, ok)
	assert.Equal(t, []string{"d"}, move.IDs, "dragging an unselected item ignores the selection")
	assert.Equal(t, []string{"d", "a", "b", "c"}, ids(l.Entries()))
}
