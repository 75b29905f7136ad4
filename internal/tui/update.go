package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MsgLoaded:
		m.loading = false
		m.setSnapshot(msg)
		return m, nil

	case MsgAdded:
		m.setSnapshot(msg)
		if msg.Err == nil {
			m.input.Reset()
		}
		return m, nil

	case MsgChanged:
		m.setSnapshot(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-8, 10)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// setSnapshot applies an operation result. Failures were logged by the list
// and leave the snapshot as it was, so the view does not change.
func (m *Model) setSnapshot(msg Msg) {
	switch msg := msg.(type) {
	case MsgLoaded:
		m.snapshot = msg.Snapshot
	case MsgAdded:
		m.snapshot = msg.Snapshot
	case MsgChanged:
		m.snapshot = msg.Snapshot
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.snapshot.Tasks)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Focus) {
		return m, m.switchFocus()
	}
	if m.focus == focusInput {
		return m.handleInputKey(msg)
	}
	return m.handleListKey(msg)
}

func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Add) {
		text := m.input.Value()
		if strings.TrimSpace(text) == "" {
			return m, nil
		}
		return m, m.addCmd(text)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.snapshot.Tasks)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Toggle):
		if id, ok := m.selectedID(); ok {
			return m, m.changeCmd(func(ctx context.Context) error { return m.list.Toggle(ctx, id) })
		}

	case key.Matches(msg, m.keys.Delete):
		if id, ok := m.selectedID(); ok {
			return m, m.changeCmd(func(ctx context.Context) error { return m.list.Remove(ctx, id) })
		}

	case key.Matches(msg, m.keys.Clear):
		return m, m.changeCmd(m.list.ClearCompleted)
	}
	return m, nil
}

func (m *Model) switchFocus() tea.Cmd {
	if m.focus == focusInput {
		m.focus = focusList
		m.input.Blur()
		return nil
	}
	m.focus = focusInput
	return m.input.Focus()
}

func (m *Model) selectedID() (string, bool) {
	if m.cursor < 0 || m.cursor >= len(m.snapshot.Tasks) {
		return "", false
	}
	return m.snapshot.Tasks[m.cursor].ID, true
}
