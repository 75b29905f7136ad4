package tui

import "todo/internal/todolist"

// Msg is the sealed interface for messages produced by list operations.
type Msg interface {
	sealed()
}

// MsgLoaded is sent once the initial fetch finished.
type MsgLoaded struct {
	Snapshot todolist.Snapshot
	Err      error
}

func (MsgLoaded) sealed() {}

// MsgAdded is sent when an add finished. The input is cleared only when
// Err is nil.
type MsgAdded struct {
	Snapshot todolist.Snapshot
	Err      error
}

func (MsgAdded) sealed() {}

// MsgChanged is sent after a toggle, delete or clear.
type MsgChanged struct {
	Snapshot todolist.Snapshot
	Err      error
}

func (MsgChanged) sealed() {}
