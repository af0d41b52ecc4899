package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/example/hopstack/internal/history"
)

// panelClosedMsg is emitted when the user dismisses the panel.
type panelClosedMsg struct{}

// panelJumpDoneMsg is emitted when a jump (or undo/redo) finishes.
type panelJumpDoneMsg struct {
	err error
}

// PanelModel is the history panel: a keyboard-browsable view over the
// combined past+future timeline. It owns no history state; every update
// recomputes the item list from the timeline and all mutation goes back
// through it.
type PanelModel struct {
	timeline *history.Timeline
	items    []history.TimelineItem

	// focused is the keyboard focus index into items; -1 means nothing
	// focused yet.
	focused int
	scroll  int
	height  int
	width   int

	busy bool
	err  error

	// standalone quits the program on close instead of emitting
	// panelClosedMsg.
	standalone bool
}

// NewPanelModel creates a history panel over the given timeline.
func NewPanelModel(timeline *history.Timeline) PanelModel {
	return PanelModel{
		timeline: timeline,
		items:    timeline.Items(),
		focused:  -1,
		height:   24,
		width:    80,
	}
}

// Init implements tea.Model.
func (m PanelModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m PanelModel) Update(msg tea.Msg) (PanelModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case panelJumpDoneMsg:
		m.busy = false
		m.err = msg.err
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// handleKey runs the keyboard navigation state machine.
func (m PanelModel) handleKey(msg tea.KeyMsg) (PanelModel, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	n := len(m.items)

	switch msg.String() {
	case "down", "j":
		if n > 0 {
			m.setFocus((m.focused + 1) % n)
		}

	case "up", "k":
		if n > 0 {
			m.setFocus((m.focused - 1 + n) % n)
		}

	case "home", "g":
		if n > 0 {
			m.setFocus(0)
		}

	case "end", "G":
		if n > 0 {
			m.setFocus(n - 1)
		}

	case "enter", " ":
		if m.focused >= 0 && m.focused < n {
			m.busy = true
			return m, m.jumpCmd(m.focused)
		}

	case "u":
		m.busy = true
		return m, m.stepCmd(true)

	case "r":
		m.busy = true
		return m, m.stepCmd(false)

	case "c":
		m.timeline.Clear()
		m.refresh()

	case "esc", "q":
		if m.standalone {
			return m, tea.Quit
		}
		return m, func() tea.Msg { return panelClosedMsg{} }
	}
	return m, nil
}

// setFocus moves keyboard focus and keeps the focused row scrolled into
// view, which is what lets a screen reader track the active item.
func (m *PanelModel) setFocus(index int) {
	m.focused = index
	visible := m.visibleRows()
	if visible <= 0 {
		return
	}
	if m.focused < m.scroll {
		m.scroll = m.focused
	}
	if m.focused >= m.scroll+visible {
		m.scroll = m.focused - visible + 1
	}
}

// refresh recomputes the item list and clamps focus and scroll.
func (m *PanelModel) refresh() {
	m.items = m.timeline.Items()
	if m.focused >= len(m.items) {
		m.focused = len(m.items) - 1
	}
	if m.scroll > 0 && m.scroll >= len(m.items) {
		m.scroll = len(m.items) - 1
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

func (m PanelModel) jumpCmd(index int) tea.Cmd {
	return func() tea.Msg {
		err := m.timeline.JumpTo(context.Background(), index)
		return panelJumpDoneMsg{err: err}
	}
}

func (m PanelModel) stepCmd(undo bool) tea.Cmd {
	return func() tea.Msg {
		var err error
		if undo {
			_, err = m.timeline.Store().Undo(context.Background())
		} else {
			_, err = m.timeline.Store().Redo(context.Background())
		}
		return panelJumpDoneMsg{err: err}
	}
}

// FocusedIndex returns the keyboard focus index (-1 when unfocused).
func (m PanelModel) FocusedIndex() int {
	return m.focused
}

func (m PanelModel) visibleRows() int {
	// Box border, padding, title and help bar eat into the height.
	rows := m.height - 8
	if rows < 1 {
		rows = 1
	}
	return rows
}

// View implements tea.Model.
func (m PanelModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("History"))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(StyleError.Render(fmt.Sprintf("✗ %v", m.err)))
		b.WriteString("\n")
	}

	if len(m.items) == 0 {
		b.WriteString(StyleHelp.Render("No recorded actions."))
	} else {
		visible := m.visibleRows()
		end := m.scroll + visible
		if end > len(m.items) {
			end = len(m.items)
		}
		for i := m.scroll; i < end; i++ {
			b.WriteString(m.renderItem(m.items[i]))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(strings.Join([]string{
		helpEntry("↑/↓", "browse"),
		helpEntry("enter", "jump"),
		helpEntry("u/r", "undo/redo"),
		helpEntry("c", "clear"),
		helpEntry("esc", "close"),
	}, "  "))

	return StylePanelBox.Width(min(m.width-2, 70)).Render(b.String())
}

func (m PanelModel) renderItem(item history.TimelineItem) string {
	marker := "  "
	if item.IsCurrent {
		marker = "● "
	}
	line := fmt.Sprintf("%s%3d  %-9s %s", marker, item.Index, item.Record.Type, item.Record.Description)

	style := StyleHelp
	switch {
	case !item.IsInPast:
		style = StyleFuture
	case item.IsCurrent:
		style = StyleCurrent
	}
	if item.Index == m.focused {
		style = StyleFocused
	}
	return style.Render(line)
}

// RunPanel runs the history panel as a standalone program.
func RunPanel(timeline *history.Timeline) error {
	m := NewPanelModel(timeline)
	m.standalone = true
	p := tea.NewProgram(panelProgram{m}, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// panelProgram adapts PanelModel's concrete Update signature to tea.Model.
type panelProgram struct {
	panel PanelModel
}

func (p panelProgram) Init() tea.Cmd { return p.panel.Init() }

func (p panelProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	panel, cmd := p.panel.Update(msg)
	p.panel = panel
	return p, cmd
}

func (p panelProgram) View() string { return p.panel.View() }
