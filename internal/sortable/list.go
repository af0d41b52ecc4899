// Package sortable implements a headless reorderable-list engine.
//
// The engine manages transient drag state over an externally-owned ordered
// collection and computes the resulting permutation on drop. It knows
// nothing about rendering or input devices: the TUI drives it with key
// presses, and anything else could drive it the same way.
package sortable

// Entry is the engine's view of one list item. The entry's rank is its
// index in the list.
type Entry struct {
	ID       string
	Disabled bool
}

// Move describes one committed reorder.
type Move struct {
	// ID is the item that was picked up.
	ID string
	// IDs are all moved items in order. Length is 1 unless a multi-select
	// block was moved.
	IDs []string
	// FromIndex and ToIndex are the picked-up item's index before and after
	// the move.
	FromIndex int
	ToIndex   int
	// Items is the full resulting order.
	Items []Entry
}

// Config configures a List.
type Config struct {
	// OnReorder fires once per committed drop.
	OnReorder func(Move)
	// ValidateDrop may veto a proposed move before it commits. Rejection is
	// a silent no-op, not an error.
	ValidateDrop func(fromIndex, toIndex int, id string) bool
	// MultiSelect enables moving the whole selected set as a contiguous
	// block when a selected item is dragged.
	MultiSelect bool
}

// List holds the drag lifecycle state machine: Idle until DragStart, then
// Dragging until Drop or Cancel.
type List struct {
	cfg      Config
	entries  []Entry
	activeID string
	overID   string
	selected map[string]bool
}

// New creates a list engine.
func New(cfg Config) *List {
	return &List{
		cfg:      cfg,
		selected: make(map[string]bool),
	}
}

// SetEntries replaces the engine's view of the collection. Selection is
// pruned to surviving ids; an in-flight drag whose active item disappeared
// is cancelled.
func (l *List) SetEntries(entries []Entry) {
	l.entries = append([]Entry(nil), entries...)

	known := make(map[string]bool, len(entries))
	for _, e := range entries {
		known[e.ID] = true
	}
	for id := range l.selected {
		if !known[id] {
			delete(l.selected, id)
		}
	}
	if l.activeID != "" && !known[l.activeID] {
		l.Cancel()
	}
	if l.overID != "" && !known[l.overID] {
		l.overID = l.activeID
	}
}

// Entries returns a copy of the current order.
func (l *List) Entries() []Entry {
	return append([]Entry(nil), l.entries...)
}

// ActiveID returns the item being dragged, or "".
func (l *List) ActiveID() string { return l.activeID }

// OverID returns the current drop target, or "".
func (l *List) OverID() string { return l.overID }

// Dragging reports whether a drag is in flight.
func (l *List) Dragging() bool { return l.activeID != "" }

// DragStart begins a drag on the given item. Unknown and disabled items
// cannot be dragged.
func (l *List) DragStart(id string) bool {
	idx := l.indexOf(id)
	if idx < 0 || l.entries[idx].Disabled {
		return false
	}
	l.activeID = id
	l.overID = id
	return true
}

// DragOver retargets the drop position. It may be called any number of
// times while dragging; only the latest target matters.
func (l *List) DragOver(id string) {
	if l.activeID == "" || l.indexOf(id) < 0 {
		return
	}
	l.overID = id
}

// Cancel abandons an in-flight drag. No reorder fires and no state beyond
// the drag markers changes.
func (l *List) Cancel() {
	l.activeID = ""
	l.overID = ""
}

// Drop commits the drag. If the target differs from the start position and
// the validation hook does not veto it, the permutation is applied,
// OnReorder fires once and the move is returned. In every other case Drop
// is a no-op that resets the engine to Idle.
func (l *List) Drop() (Move, bool) {
	active, over := l.activeID, l.overID
	l.activeID = ""
	l.overID = ""

	if active == "" || over == "" || over == active {
		return Move{}, false
	}
	from := l.indexOf(active)
	to := l.indexOf(over)
	if from < 0 || to < 0 || from == to {
		return Move{}, false
	}
	if l.cfg.ValidateDrop != nil && !l.cfg.ValidateDrop(from, to, active) {
		return Move{}, false
	}

	var move Move
	if l.cfg.MultiSelect && l.selected[active] && len(l.selected) > 1 {
		move = l.moveBlock(active, from, to)
	} else {
		move = Move{
			ID:        active,
			IDs:       []string{active},
			FromIndex: from,
			ToIndex:   to,
			Items:     moveEntry(l.entries, from, to),
		}
	}
	l.entries = move.Items

	if l.cfg.OnReorder != nil {
		l.cfg.OnReorder(move)
	}
	return move, true
}

// ToggleSelect flips an item's membership in the multi-select set.
// Disabled items cannot be selected.
func (l *List) ToggleSelect(id string) {
	idx := l.indexOf(id)
	if idx < 0 || l.entries[idx].Disabled {
		return
	}
	if l.selected[id] {
		delete(l.selected, id)
	} else {
		l.selected[id] = true
	}
}

// Selected returns the selected ids in list order.
func (l *List) Selected() []string {
	var out []string
	for _, e := range l.entries {
		if l.selected[e.ID] {
			out = append(out, e.ID)
		}
	}
	return out
}

// ClearSelection empties the multi-select set.
func (l *List) ClearSelection() {
	l.selected = make(map[string]bool)
}

// IsSelected reports whether the item is in the multi-select set.
func (l *List) IsSelected(id string) bool { return l.selected[id] }

func (l *List) indexOf(id string) int {
	for i, e := range l.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// moveEntry removes the entry at from and reinserts it at to, shifting the
// intervening entries one step toward the vacated slot.
func moveEntry(entries []Entry, from, to int) []Entry {
	out := make([]Entry, 0, len(entries))
	out = append(out, entries[:from]...)
	out = append(out, entries[from+1:]...)

	out = append(out, Entry{})
	copy(out[to+1:], out[to:])
	out[to] = entries[from]
	return out
}

// moveBlock moves the whole selected set as a contiguous block, preserving
// relative order, inserted at the drop target's position.
func (l *List) moveBlock(active string, from, to int) Move {
	block := make([]Entry, 0, len(l.selected))
	rest := make([]Entry, 0, len(l.entries))
	activeOffset := 0
	for _, e := range l.entries {
		if l.selected[e.ID] {
			if e.ID == active {
				activeOffset = len(block)
			}
			block = append(block, e)
		} else {
			rest = append(rest, e)
		}
	}

	// Aim the active item at the index a single-item move would land on;
	// the rest of the block stays contiguous around it.
	insertAt := to - activeOffset
	if insertAt > len(rest) {
		insertAt = len(rest)
	}
	if insertAt < 0 {
		insertAt = 0
	}

	items := make([]Entry, 0, len(l.entries))
	items = append(items, rest[:insertAt]...)
	items = append(items, block...)
	items = append(items, rest[insertAt:]...)

	ids := make([]string, len(block))
	toIdx := insertAt
	for i, e := range block {
		ids[i] = e.ID
		if e.ID == active {
			toIdx = insertAt + i
		}
	}
	return Move{
		ID:        active,
		IDs:       ids,
		FromIndex: from,
		ToIndex:   toIdx,
		Items:     items,
	}
}
