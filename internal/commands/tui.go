package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/logging"
	"todo/internal/service"
	"todo/internal/todolist"
	"todo/internal/tui"
)

func init() {
	Register(&TuiCmd{})
}

// TuiRunner starts the interactive widget.
type TuiRunner func(ctx context.Context, list todolist.List, opts tui.Options) error

// TuiCmd runs the interactive widget. Logs go to todo.log in the config
// directory while the widget owns the terminal.
type TuiCmd struct {
	run TuiRunner
}

// SetRunner replaces the widget runner (for testing).
func (c *TuiCmd) SetRunner(run TuiRunner) {
	c.run = run
}

func (c *TuiCmd) Name() string       { return "tui" }
func (c *TuiCmd) Aliases() []string  { return nil }
func (c *TuiCmd) Synopsis() string   { return "Open the interactive to-do list" }
func (c *TuiCmd) Usage() string      { return "todo tui" }
func (c *TuiCmd) NeedsBackend() bool { return true }

func (c *TuiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *TuiCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.AuthError
	}
	logger, closer, err := logging.NewFile(cfg.LogPath(), cfg.LogOptions())
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}
	defer closer.Close()

	var list todolist.List = todolist.NewLocal()
	var opts tui.Options
	if svc != nil {
		synced := todolist.NewSynced(svc, logger)
		list = synced
		opts.Load = synced.Load
	}
	logger.Info("starting widget", "backend", cfg.Settings.Backend)

	run := c.run
	if run == nil {
		run = tui.Run
	}
	if err := run(ctx, list, opts); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
