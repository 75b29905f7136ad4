package commands

import (
	"context"
	"flag"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/todolist"
)

func init() {
	Register(&ToggleCmd{})
	Register(&RmCmd{})
}

// ToggleCmd flips a task between open and completed.
type ToggleCmd struct{}

func (c *ToggleCmd) Name() string       { return "toggle" }
func (c *ToggleCmd) Aliases() []string  { return []string{"check"} }
func (c *ToggleCmd) Synopsis() string   { return "Mark a task completed, or open again" }
func (c *ToggleCmd) Usage() string      { return "todo toggle <n|id:<id>>" }
func (c *ToggleCmd) NeedsBackend() bool { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runOnTask(ctx, cfg, svc, args, out, errOut, (*todolist.Synced).Toggle)
}

// RmCmd deletes a task.
type RmCmd struct{}

func (c *RmCmd) Name() string       { return "rm" }
func (c *RmCmd) Aliases() []string  { return []string{"remove"} }
func (c *RmCmd) Synopsis() string   { return "Delete a task" }
func (c *RmCmd) Usage() string      { return "todo rm <n|id:<id>>" }
func (c *RmCmd) NeedsBackend() bool { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runOnTask(ctx, cfg, svc, args, out, errOut, (*todolist.Synced).Remove)
}

// runOnTask resolves the task reference against a fresh fetch and applies op
// to the task it names.
func runOnTask(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer,
	op func(*todolist.Synced, context.Context, string) error) int {
	ref, err := ParseTaskRef(args)
	if err != nil {
		return taskRefError(errOut, err)
	}

	list, code := openSynced(ctx, cfg, svc, true, errOut)
	if code != exitcode.Success {
		return code
	}
	task, err := resolveTaskRef(list.Tasks(), ref)
	if err != nil {
		return taskRefError(errOut, err)
	}

	if err := op(list, ctx, task.ID); err != nil {
		return backendError(errOut, err)
	}
	return ok(cfg, out)
}
