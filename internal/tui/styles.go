package tui

import "github.com/charmbracelet/lipgloss"

// Colors is the widget palette.
var Colors = struct {
	Primary lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Done    lipgloss.Color
	Cursor  lipgloss.Color
}{
	Primary: lipgloss.Color("#6C5CE7"),
	Text:    lipgloss.Color("#DFE6E9"),
	Muted:   lipgloss.Color("#636E72"),
	Done:    lipgloss.Color("#00B894"),
	Cursor:  lipgloss.Color("#FFEAA7"),
}

// Styles holds the lipgloss styles used by View.
type Styles struct {
	App      lipgloss.Style
	Title    lipgloss.Style
	Task     lipgloss.Style
	Selected lipgloss.Style
	Done     lipgloss.Style
	Empty    lipgloss.Style
	Footer   lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		App:      lipgloss.NewStyle().Padding(1, 2),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(Colors.Primary),
		Task:     lipgloss.NewStyle().Foreground(Colors.Text),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(Colors.Cursor),
		Done:     lipgloss.NewStyle().Strikethrough(true).Foreground(Colors.Done),
		Empty:    lipgloss.NewStyle().Italic(true).Foreground(Colors.Muted),
		Footer:   lipgloss.NewStyle().Foreground(Colors.Muted),
	}
}
