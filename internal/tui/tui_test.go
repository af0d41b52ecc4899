package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/hopstack/internal/chain"
	"github.com/example/hopstack/internal/history"
	"github.com/example/hopstack/internal/model"
	"github.com/example/hopstack/internal/storage"
)

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func setupPanel(t *testing.T, names ...string) PanelModel {
	t.Helper()
	store := history.New()
	for _, name := range names {
		store.Push(history.Input{
			Type:        model.ActionEdit,
			Description: name,
			Execute:     func(ctx context.Context) error { return nil },
			Undo:        func(ctx context.Context) error { return nil },
		})
	}
	return NewPanelModel(history.NewTimeline(store))
}

// step feeds a message and then runs any returned command synchronously,
// feeding its result back, until the model settles.
func step(m PanelModel, msg tea.Msg) PanelModel {
	var cmd tea.Cmd
	m, cmd = m.Update(msg)
	for cmd != nil {
		m, cmd = m.Update(cmd())
	}
	return m
}

// =============================================================================
// Panel Navigation Tests
// =============================================================================

func TestPanelFocusStartsUnset(t *testing.T) {
	m := setupPanel(t, "a", "b")
	assert.Equal(t, -1, m.FocusedIndex())
}

func TestPanelArrowKeysWrap(t *testing.T) {
	m := setupPanel(t, "a", "b", "c")

	m = step(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, m.FocusedIndex())
	m = step(m, tea.KeyMsg{Type: tea.KeyDown})
	m = step(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.FocusedIndex())

	m = step(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, m.FocusedIndex(), "down from the last item wraps to the first")

	m = step(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 2, m.FocusedIndex(), "up from the first item wraps to the last")
}

func TestPanelHomeEndKeys(t *testing.T) {
	m := setupPanel(t, "a", "b", "c", "d")

	m = step(m, tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, 3, m.FocusedIndex())

	m = step(m, tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, 0, m.FocusedIndex())
}

func TestPanelNavigationOnEmptyTimeline(t *testing.T) {
	m := setupPanel(t)
	m = step(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, -1, m.FocusedIndex())
	m = step(m, tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, -1, m.FocusedIndex())
}

// =============================================================================
// Panel Action Tests
// =============================================================================

func TestPanelEnterJumpsToFocusedItem(t *testing.T) {
	m := setupPanel(t, "a", "b", "c")
	tl := m.timeline
	require.Equal(t, 2, tl.CurrentIndex())

	m = step(m, tea.KeyMsg{Type: tea.KeyHome})
	m = step(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, 0, tl.CurrentIndex())
	assert.False(t, m.busy)
	assert.NoError(t, m.err)
}

func TestPanelUndoRedoKeys(t *testing.T) {
	m := setupPanel(t, "a", "b")
	tl := m.timeline

	m = step(m, key('u'))
	assert.Equal(t, 0, tl.CurrentIndex())

	m = step(m, key('r'))
	assert.Equal(t, 1, tl.CurrentIndex())
}

func TestPanelClearKey(t *testing.T) {
	m := setupPanel(t, "a", "b")
	m = step(m, key('c'))
	assert.Equal(t, 0, m.timeline.Total())
	assert.Empty(t, m.items)
}

func TestPanelEscEmitsClosed(t *testing.T) {
	m := setupPanel(t, "a")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, panelClosedMsg{}, cmd())
	_ = m
}

func TestPanelIgnoresKeysWhileBusy(t *testing.T) {
	m := setupPanel(t, "a", "b")
	m.busy = true
	m, cmd := m.Update(key('u'))
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.timeline.CurrentIndex())
}

// =============================================================================
// Editor Tests
// =============================================================================

func setupEditor(t *testing.T, services ...string) *EditorModel {
	t.Helper()
	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	svc := chain.NewService(storage.NewChainRepo(db), history.New(), nil)
	ctx := context.Background()
	for _, name := range services {
		_, err := svc.AddHop(ctx, model.Hop{Service: name}, -1)
		require.NoError(t, err)
	}
	svc.History().Clear()

	m, err := NewEditorModel(svc)
	require.NoError(t, err)
	return m
}

func stepEditor(m *EditorModel, msg tea.Msg) {
	_, cmd := m.Update(msg)
	for cmd != nil {
		_, cmd = m.Update(cmd())
	}
}

func editorOrder(t *testing.T, m *EditorModel) []string {
	t.Helper()
	out := make([]string, len(m.hops))
	for i, h := range m.hops {
		out[i] = h.Service
	}
	return out
}

func TestEditorKeyboardMove(t *testing.T) {
	m := setupEditor(t, "a", "b", "c", "d")

	// Pick up the first hop, walk it down two rows, drop.
	stepEditor(m, tea.KeyMsg{Type: tea.KeySpace})
	require.True(t, m.list.Dragging())
	stepEditor(m, key('j'))
	stepEditor(m, key('j'))
	stepEditor(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, []string{"b", "c", "a", "d"}, editorOrder(t, m))
	assert.False(t, m.list.Dragging())
	assert.Equal(t, 1, m.svc.History().Len())
}

func TestEditorEscCancelsDrag(t *testing.T) {
	m := setupEditor(t, "a", "b")

	stepEditor(m, tea.KeyMsg{Type: tea.KeySpace})
	stepEditor(m, key('j'))
	stepEditor(m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, m.list.Dragging())
	assert.Equal(t, []string{"a", "b"}, editorOrder(t, m))
	assert.Equal(t, 0, m.svc.History().Len())
}

func TestEditorUndoKey(t *testing.T) {
	m := setupEditor(t, "a", "b")

	stepEditor(m, key('x')) // remove hop under cursor
	assert.Equal(t, []string{"b"}, editorOrder(t, m))

	stepEditor(m, key('u'))
	assert.Equal(t, []string{"a", "b"}, editorOrder(t, m))

	stepEditor(m, key('r'))
	assert.Equal(t, []string{"b"}, editorOrder(t, m))
}

func TestEditorToggleDisabled(t *testing.T) {
	m := setupEditor(t, "a")

	stepEditor(m, key('d'))
	assert.True(t, m.hops[0].Disabled)

	// A disabled hop cannot be picked up.
	stepEditor(m, tea.KeyMsg{Type: tea.KeySpace})
	assert.False(t, m.list.Dragging())
	assert.Equal(t, "hop is disabled", m.status)
}

func TestEditorHistoryPanelToggle(t *testing.T) {
	m := setupEditor(t, "a")
	stepEditor(m, key('h'))
	assert.True(t, m.showPanel)

	stepEditor(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.showPanel)
}
