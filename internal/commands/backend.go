package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/todolist"
)

// openSynced builds the persisted list for a one-shot command. The local
// backend is refused because its tasks would vanish when the process exits.
// When load is set the tasks are fetched first.
func openSynced(ctx context.Context, cfg *config.Config, svc service.Service, load bool, errOut io.Writer) (*todolist.Synced, int) {
	if svc == nil {
		fmt.Fprintf(errOut, "error: backend %q keeps tasks in memory only (use: todo tui, todo serve)\n", cfg.Settings.Backend)
		return nil, exitcode.AuthError
	}
	list := todolist.NewSynced(svc, cfg.Logger())
	if load {
		if err := list.Load(ctx); err != nil {
			return nil, backendError(errOut, err)
		}
	}
	return list, exitcode.Success
}

// backendError reports a failed backend call.
func backendError(errOut io.Writer, err error) int {
	msg := err.Error()
	var remote *service.RemoteError
	if errors.As(err, &remote) {
		msg = remote.Message
	}
	fmt.Fprintf(errOut, "error: backend error: %s\n", msg)
	return exitcode.BackendError
}

// taskRefError reports a reference that could not be parsed or resolved.
func taskRefError(errOut io.Writer, err error) int {
	if errors.Is(err, ErrTaskRefRequired) {
		fmt.Fprintln(errOut, "error: task reference required")
	} else {
		fmt.Fprintf(errOut, "error: %v\n", err)
	}
	return exitcode.UserError
}

func ok(cfg *config.Config, out io.Writer) int {
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
