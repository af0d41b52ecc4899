package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/example/hopstack/internal/chain"
	"github.com/example/hopstack/internal/history"
	"github.com/example/hopstack/internal/model"
	"github.com/example/hopstack/internal/sortable"
)

// editDoneMsg is emitted when an async chain mutation finishes.
type editDoneMsg struct {
	err error
}

// EditorModel is the interactive chain editor. Reordering is a keyboard
// drag over the sortable engine: pick a hop up, retarget, drop or cancel.
// Every committed edit lands on the history store as an undoable action.
type EditorModel struct {
	svc  *chain.Service
	list *sortable.List
	hops []model.Hop

	cursor int
	width  int
	height int

	panel     PanelModel
	showPanel bool

	busy   bool
	err    error
	status string
}

// NewEditorModel creates the chain editor.
func NewEditorModel(svc *chain.Service) (*EditorModel, error) {
	ch, err := svc.Chain()
	if err != nil {
		return nil, err
	}
	m := &EditorModel{
		svc:    svc,
		hops:   ch.Hops,
		list:   sortable.New(sortable.Config{MultiSelect: true}),
		panel:  NewPanelModel(history.NewTimeline(svc.History())),
		width:  80,
		height: 24,
	}
	m.list.SetEntries(chain.Entries(m.hops))
	return m, nil
}

// Init implements tea.Model.
func (m *EditorModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showPanel {
			var cmd tea.Cmd
			m.panel, cmd = m.panel.Update(msg)
			return m, cmd
		}
		return m, nil

	case panelClosedMsg:
		m.showPanel = false
		return m, m.reloadCmd()

	case panelJumpDoneMsg:
		var cmd tea.Cmd
		m.panel, cmd = m.panel.Update(msg)
		return m, cmd

	case editDoneMsg:
		m.busy = false
		m.err = msg.err
		return m, m.reloadCmd()

	case reloadedMsg:
		m.hops = msg.hops
		m.list.SetEntries(chain.Entries(m.hops))
		if m.cursor >= len(m.hops) {
			m.cursor = len(m.hops) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		if m.showPanel {
			var cmd tea.Cmd
			m.panel, cmd = m.panel.Update(msg)
			return m, cmd
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *EditorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	m.status = ""

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "j", "down":
		m.moveCursor(1)

	case "k", "up":
		m.moveCursor(-1)

	case " ":
		if m.list.Dragging() {
			break
		}
		if hop, ok := m.hopAtCursor(); ok {
			if !m.list.DragStart(hop.ID) {
				m.status = "hop is disabled"
			}
		}

	case "enter":
		if !m.list.Dragging() {
			break
		}
		if mv, ok := m.list.Drop(); ok {
			m.busy = true
			return m, m.applyMoveCmd(mv)
		}

	case "esc":
		if m.list.Dragging() {
			m.list.Cancel()
			m.status = "move cancelled"
		}

	case "v":
		if hop, ok := m.hopAtCursor(); ok {
			m.list.ToggleSelect(hop.ID)
		}

	case "d":
		if hop, ok := m.hopAtCursor(); ok {
			m.busy = true
			return m, m.toggleDisabledCmd(hop)
		}

	case "x":
		if hop, ok := m.hopAtCursor(); ok {
			m.busy = true
			return m, m.removeCmd(hop)
		}

	case "u":
		m.busy = true
		return m, m.stepCmd(true)

	case "r":
		m.busy = true
		return m, m.stepCmd(false)

	case "h":
		m.panel.refresh()
		m.showPanel = true
	}
	return m, nil
}

// moveCursor moves the cursor; while dragging it also retargets the drop
// position.
func (m *EditorModel) moveCursor(delta int) {
	if len(m.hops) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.hops) {
		m.cursor = len(m.hops) - 1
	}
	if m.list.Dragging() {
		entries := m.list.Entries()
		if m.cursor < len(entries) {
			m.list.DragOver(entries[m.cursor].ID)
		}
	}
}

func (m *EditorModel) hopAtCursor() (model.Hop, bool) {
	if m.cursor < 0 || m.cursor >= len(m.hops) {
		return model.Hop{}, false
	}
	return m.hops[m.cursor], true
}

// reloadedMsg carries a fresh chain read.
type reloadedMsg struct {
	hops []model.Hop
}

func (m *EditorModel) reloadCmd() tea.Cmd {
	return func() tea.Msg {
		ch, err := m.svc.Chain()
		if err != nil {
			return editDoneMsg{err: err}
		}
		return reloadedMsg{hops: ch.Hops}
	}
}

func (m *EditorModel) applyMoveCmd(mv sortable.Move) tea.Cmd {
	return func() tea.Msg {
		return editDoneMsg{err: m.svc.ApplyMove(context.Background(), mv)}
	}
}

func (m *EditorModel) toggleDisabledCmd(hop model.Hop) tea.Cmd {
	return func() tea.Msg {
		return editDoneMsg{err: m.svc.SetDisabled(context.Background(), hop.ID, !hop.Disabled)}
	}
}

func (m *EditorModel) removeCmd(hop model.Hop) tea.Cmd {
	return func() tea.Msg {
		return editDoneMsg{err: m.svc.RemoveHop(context.Background(), hop.ID)}
	}
}

func (m *EditorModel) stepCmd(undo bool) tea.Cmd {
	return func() tea.Msg {
		var err error
		if undo {
			_, err = m.svc.History().Undo(context.Background())
		} else {
			_, err = m.svc.History().Redo(context.Background())
		}
		return editDoneMsg{err: err}
	}
}

// View implements tea.Model.
func (m *EditorModel) View() string {
	if m.showPanel {
		return m.panel.View()
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Routing chain"))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(StyleError.Render(fmt.Sprintf("✗ %v", m.err)))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(StyleStatus.Render(m.status))
		b.WriteString("\n")
	}

	if len(m.hops) == 0 {
		b.WriteString(StyleHelp.Render("Chain is empty. Add hops with 'hopstack hop add'."))
	} else {
		entries := m.list.Entries()
		for i, e := range entries {
			b.WriteString(m.renderRow(i, e))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	keys := []string{
		helpEntry("j/k", "move"),
		helpEntry("space", "pick up"),
		helpEntry("enter", "drop"),
		helpEntry("v", "select"),
		helpEntry("d", "disable"),
		helpEntry("x", "delete"),
		helpEntry("u/r", "undo/redo"),
		helpEntry("h", "history"),
		helpEntry("q", "quit"),
	}
	b.WriteString(strings.Join(keys, "  "))

	return StyleChainBox.Width(min(m.width-2, 76)).Render(b.String())
}

func (m *EditorModel) renderRow(i int, e sortable.Entry) string {
	hop, ok := m.hopByID(e.ID)
	if !ok {
		return ""
	}

	cursor := "  "
	if i == m.cursor {
		cursor = "> "
	}
	mark := " "
	if m.list.IsSelected(e.ID) {
		mark = StyleSelected.Render("◆")
	}

	label := hop.Service
	if hop.Endpoint != "" {
		label += " → " + hop.Endpoint
	}

	// Row-level styles override the per-part ones, so only the plain case
	// styles service and endpoint separately.
	styled := false
	style := lipgloss.NewStyle()
	switch {
	case m.list.ActiveID() == e.ID:
		style = StyleDragging
		styled = true
	case hop.Disabled:
		style = StyleDisabled
		styled = true
	case i == m.cursor:
		style = StyleCursor
		styled = true
	}
	if !styled {
		label = StyleService.Render(hop.Service)
		if hop.Endpoint != "" {
			label += " → " + StyleEndpoint.Render(hop.Endpoint)
		}
	}

	row := fmt.Sprintf("%s%s %d. %s", cursor, mark, i, label)
	if m.list.Dragging() && m.list.OverID() == e.ID && m.list.ActiveID() != e.ID {
		row += "  ⇐"
	}
	return style.Render(row)
}

func (m *EditorModel) hopByID(id string) (model.Hop, bool) {
	for _, h := range m.hops {
		if h.ID == id {
			return h, true
		}
	}
	return model.Hop{}, false
}

// RunEditor runs the chain editor TUI.
func RunEditor(svc *chain.Service) error {
	m, err := NewEditorModel(svc)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
