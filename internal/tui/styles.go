// Package tui provides the terminal user interface for Hopstack: the chain
// editor and the history panel.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette for the TUI.
var (
	ColorPrimary = lipgloss.Color("#7C3AED") // Purple
	ColorAccent  = lipgloss.Color("#10B981") // Green
	ColorMuted   = lipgloss.Color("#6B7280") // Gray
	ColorWarning = lipgloss.Color("#F59E0B") // Yellow
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorActive  = lipgloss.Color("#3B82F6") // Blue
	ColorBorder  = lipgloss.Color("#4B5563") // Dark gray
)

// Base styles.
var (
	// StyleTitle is used for section titles.
	StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	// StyleService is used for hop service names.
	StyleService = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// StyleEndpoint is used for hop endpoints.
	StyleEndpoint = lipgloss.NewStyle().
			Foreground(ColorAccent)

	// StyleDisabled is used for disabled hops.
	StyleDisabled = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Strikethrough(true)

	// StyleCursor marks the row under the cursor.
	StyleCursor = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorActive)

	// StyleDragging marks the hop being carried.
	StyleDragging = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWarning)

	// StyleSelected marks hops in the multi-select set.
	StyleSelected = lipgloss.NewStyle().
			Foreground(ColorAccent)

	// StyleCurrent marks the current history position.
	StyleCurrent = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorActive)

	// StyleFuture is used for undone (redoable) actions.
	StyleFuture = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleFocused marks the keyboard-focused history row.
	StyleFocused = lipgloss.NewStyle().
			Bold(true).
			Reverse(true)

	// StyleError is used for error messages.
	StyleError = lipgloss.NewStyle().
			Foreground(ColorError)

	// StyleStatus is used for transient status messages.
	StyleStatus = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// StyleHelp is used for help text at the bottom.
	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1)

	// StyleHelpKey is used for keyboard shortcut keys.
	StyleHelpKey = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)
)

// Box styles.
var (
	// StyleChainBox frames the hop list.
	StyleChainBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	// StylePanelBox frames the history panel.
	StylePanelBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2)
)

// helpEntry renders a single "key desc" pair for the help bar.
func helpEntry(key, desc string) string {
	return StyleHelpKey.Render(key) + " " + StyleHelp.Render(desc)
}
