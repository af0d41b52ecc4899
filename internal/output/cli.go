package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/example/hopstack/internal/history"
	"github.com/example/hopstack/internal/model"
)

// Styles for CLI output.
var (
	// Colors
	colorPrimary = lipgloss.Color("#7C3AED") // Purple
	colorMuted   = lipgloss.Color("#6B7280") // Gray
	colorWarning = lipgloss.Color("#F59E0B") // Yellow
	colorError   = lipgloss.Color("#EF4444") // Red
	colorSuccess = lipgloss.Color("#10B981") // Green
	colorActive  = lipgloss.Color("#3B82F6") // Blue

	// Styles
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleBold = lipgloss.NewStyle().
			Bold(true)

	styleService = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleCurrent = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorActive)
)

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	if c.IsColorEnabled() {
		c.Println(styleTitle.Render(text))
	} else {
		c.Println(text)
	}
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	if c.IsColorEnabled() {
		c.Println(styleSuccess.Render("✓ " + text))
	} else {
		c.Println("✓ " + text)
	}
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	if c.IsColorEnabled() {
		c.Println(styleWarning.Render("⚠ " + text))
	} else {
		c.Println("⚠ " + text)
	}
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	if c.IsColorEnabled() {
		c.Println(styleError.Render("✗ " + text))
	} else {
		c.Println("✗ " + text)
	}
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	if c.IsColorEnabled() {
		c.Println(styleMuted.Render(text))
	} else {
		c.Println(text)
	}
}

// ServiceName formats a hop's service name.
func (c *CLIFormatter) ServiceName(name string) string {
	if c.IsColorEnabled() {
		return styleService.Render(name)
	}
	return name
}

// PrintChain prints the chain as an ordered hop list.
func (c *CLIFormatter) PrintChain(chain *model.Chain) {
	if chain == nil || len(chain.Hops) == 0 {
		c.Muted("Chain is empty.")
		c.Muted("Use 'hopstack hop add <service>' to add the first hop.")
		return
	}

	c.Title(fmt.Sprintf("Chain %s (%d hops)", chain.Name, len(chain.Hops)))
	for i, hop := range chain.Hops {
		line := fmt.Sprintf("  %d. %s", i, c.ServiceName(hop.Service))
		if hop.Endpoint != "" {
			line += " → " + hop.Endpoint
		}
		if hop.Disabled {
			line += " (disabled)"
		}
		if hop.Disabled && c.IsColorEnabled() {
			line = styleMuted.Render(line)
		}
		c.Println(line)
	}
}

// PrintHistory prints the combined timeline, marking the current position.
func (c *CLIFormatter) PrintHistory(items []history.TimelineItem) {
	if len(items) == 0 {
		c.Muted("No recorded actions.")
		return
	}

	for _, item := range items {
		marker := " "
		if item.IsCurrent {
			marker = "●"
		}
		line := fmt.Sprintf("%s %3d  %-9s %s  %s",
			marker,
			item.Index,
			item.Record.Type,
			item.Record.Description,
			FormatRelative(item.Record.Timestamp))

		switch {
		case !c.IsColorEnabled():
		case item.IsCurrent:
			line = styleCurrent.Render(line)
		case !item.IsInPast:
			line = styleMuted.Render(line)
		}
		c.Println(line)
	}
}

// PrintStatus prints the chain plus the current history position.
func (c *CLIFormatter) PrintStatus(chain *model.Chain, store *history.Store) {
	c.PrintChain(chain)
	c.Println()
	pos := store.CurrentIndex() + 1
	total := store.Len()
	if total == 0 {
		c.Muted("History: empty")
		return
	}
	c.Muted(fmt.Sprintf("History: %d/%d applied (undo: %v, redo: %v)",
		pos, total, store.CanUndo(), store.CanRedo()))
}

// Table helpers for CLI output.
type TableRow struct {
	Columns []string
}

// PrintTable prints a simple table.
func (c *CLIFormatter) PrintTable(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}

	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, col := range row.Columns {
			if i < len(widths) && len(col) > widths[i] {
				widths[i] = len(col)
			}
		}
	}

	var headerLine strings.Builder
	for i, h := range headers {
		headerLine.WriteString(fmt.Sprintf("%-*s  ", widths[i], h))
	}
	if c.IsColorEnabled() {
		c.Println(styleBold.Render(headerLine.String()))
	} else {
		c.Println(headerLine.String())
	}

	var sep strings.Builder
	for _, w := range widths {
		sep.WriteString(strings.Repeat("─", w) + "  ")
	}
	c.Println(sep.String())

	for _, row := range rows {
		var rowLine strings.Builder
		for i, col := range row.Columns {
			if i < len(widths) {
				rowLine.WriteString(fmt.Sprintf("%-*s  ", widths[i], col))
			}
		}
		c.Println(rowLine.String())
	}
}
