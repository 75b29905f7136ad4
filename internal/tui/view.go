package tui

import (
	"strings"

	"todo/internal/output"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Todo List"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(m.styles.Empty.Render("Loading…"))
		b.WriteString("\n")
	case len(m.snapshot.Tasks) == 0:
		b.WriteString(m.styles.Empty.Render("No tasks yet."))
		b.WriteString("\n")
	default:
		for i, task := range m.snapshot.Tasks {
			b.WriteString(m.renderTask(i, task.Text, task.Completed))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render(output.Remaining(m.snapshot.RemainingCount)))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return m.styles.App.Render(b.String())
}

func (m *Model) renderTask(i int, text string, completed bool) string {
	selected := m.focus == focusList && i == m.cursor

	marker := "  "
	if selected {
		marker = "> "
	}
	box := "[ ] "
	if completed {
		box = "[x] "
	}

	style := m.styles.Task
	switch {
	case completed:
		style = m.styles.Done
	case selected:
		style = m.styles.Selected
	}
	return marker + box + style.Render(text)
}
