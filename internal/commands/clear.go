package commands

import (
	"context"
	"flag"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&ClearCmd{})
}

// ClearCmd deletes every completed task.
type ClearCmd struct{}

func (c *ClearCmd) Name() string       { return "clear" }
func (c *ClearCmd) Aliases() []string  { return nil }
func (c *ClearCmd) Synopsis() string   { return "Delete completed tasks" }
func (c *ClearCmd) Usage() string      { return "todo clear" }
func (c *ClearCmd) NeedsBackend() bool { return true }

func (c *ClearCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ClearCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	list, code := openSynced(ctx, cfg, svc, false, errOut)
	if code != exitcode.Success {
		return code
	}
	if err := list.ClearCompleted(ctx); err != nil {
		return backendError(errOut, err)
	}
	return ok(cfg, out)
}
