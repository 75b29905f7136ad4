// Package tui is the interactive to-do widget built on bubbletea.
package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todo/internal/todolist"
)

const placeholder = "Add a new task"

type focus int

const (
	focusInput focus = iota
	focusList
)

// Options configures a Model.
type Options struct {
	// Load, when set, runs once at startup before the first render of the
	// list (the persisted fetch-all). A failure leaves the list empty.
	Load func(ctx context.Context) error
}

// Model is the bubbletea model of the widget.
type Model struct {
	ctx  context.Context
	list todolist.List
	load func(ctx context.Context) error

	keys   KeyMap
	styles Styles
	help   help.Model
	input  textinput.Model

	snapshot todolist.Snapshot
	focus    focus
	cursor   int
	loading  bool
	quitting bool
}

// New returns a widget over list. Operations run with ctx.
func New(ctx context.Context, list todolist.List, opts Options) *Model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.Focus()

	return &Model{
		ctx:      ctx,
		list:     list,
		load:     opts.Load,
		keys:     DefaultKeyMap(),
		styles:   DefaultStyles(),
		help:     help.New(),
		input:    input,
		snapshot: list.Snapshot(),
		loading:  opts.Load != nil,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.load == nil {
		return textinput.Blink
	}
	return tea.Batch(textinput.Blink, m.loadCmd())
}

// Run starts the widget on the terminal and blocks until it quits or ctx
// is cancelled.
func Run(ctx context.Context, list todolist.List, opts Options) error {
	p := tea.NewProgram(New(ctx, list, opts), tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m *Model) loadCmd() tea.Cmd {
	load, list, ctx := m.load, m.list, m.ctx
	return func() tea.Msg {
		err := load(ctx)
		return MsgLoaded{Snapshot: list.Snapshot(), Err: err}
	}
}

func (m *Model) addCmd(text string) tea.Cmd {
	list, ctx := m.list, m.ctx
	return func() tea.Msg {
		err := list.Add(ctx, text)
		return MsgAdded{Snapshot: list.Snapshot(), Err: err}
	}
}

func (m *Model) changeCmd(op func(ctx context.Context) error) tea.Cmd {
	list, ctx := m.list, m.ctx
	return func() tea.Msg {
		err := op(ctx)
		return MsgChanged{Snapshot: list.Snapshot(), Err: err}
	}
}
