package history

import "context"

// TimelineItem is one row of the combined history view: past actions
// followed by future actions, indexed chronologically.
type TimelineItem struct {
	Record *Record
	Index  int

	// IsInPast is true for applied actions (index <= current index).
	IsInPast bool
	// IsCurrent is true for the most recently applied action.
	IsCurrent bool
	IsFirst   bool
	IsLast    bool
}

// Timeline is a read-only derived view over a Store. It owns no state:
// every call recomputes from the store, and all mutation is delegated back
// to it.
type Timeline struct {
	store *Store
}

// NewTimeline creates a timeline over the given store.
func NewTimeline(store *Store) *Timeline {
	return &Timeline{store: store}
}

// Items returns the combined, indexed list of all recorded actions.
func (t *Timeline) Items() []TimelineItem {
	past := t.store.PastActions()
	future := t.store.FutureActions()

	total := len(past) + len(future)
	current := len(past) - 1

	items := make([]TimelineItem, 0, total)
	for i, rec := range append(past, future...) {
		items = append(items, TimelineItem{
			Record:    rec,
			Index:     i,
			IsInPast:  i <= current,
			IsCurrent: i == current,
			IsFirst:   i == 0,
			IsLast:    i == total-1,
		})
	}
	return items
}

// Store returns the underlying store.
func (t *Timeline) Store() *Store {
	return t.store
}

// CurrentIndex returns the display index of the most recently applied
// action, or -1.
func (t *Timeline) CurrentIndex() int {
	return t.store.CurrentIndex()
}

// Total returns the number of items in the combined list.
func (t *Timeline) Total() int {
	return t.store.Len()
}

// CanUndo reports whether an undo step is available.
func (t *Timeline) CanUndo() bool {
	return t.store.CanUndo()
}

// CanRedo reports whether a redo step is available.
func (t *Timeline) CanRedo() bool {
	return t.store.CanRedo()
}

// JumpTo moves the store to the given display index: index+1 becomes the
// past length. Jumping to the current index is a no-op; steps execute
// sequentially inside the store.
func (t *Timeline) JumpTo(ctx context.Context, index int) error {
	return t.store.JumpToIndex(ctx, index)
}

// Clear delegates to the store.
func (t *Timeline) Clear() {
	t.store.Clear()
}
