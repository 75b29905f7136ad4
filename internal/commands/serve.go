package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net"

	"github.com/gin-gonic/gin"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/httpapi"
	"todo/internal/service"
	"todo/internal/todolist"
)

func init() {
	Register(&ServeCmd{})
}

// ServeCmd serves the to-do list as a JSON API until interrupted.
type ServeCmd struct {
	addr string
}

// SetAddr sets the listen address (for testing).
func (c *ServeCmd) SetAddr(addr string) {
	c.addr = addr
}

func (c *ServeCmd) Name() string       { return "serve" }
func (c *ServeCmd) Aliases() []string  { return nil }
func (c *ServeCmd) Synopsis() string   { return "Serve the to-do list as a JSON API" }
func (c *ServeCmd) Usage() string      { return "todo serve [--addr <host:port>]" }
func (c *ServeCmd) NeedsBackend() bool { return true }

func (c *ServeCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.addr, "addr", "", "")
}

func (c *ServeCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	addr := c.addr
	if addr == "" {
		addr = cfg.Settings.Serve.Addr
	}

	var list todolist.List = todolist.NewLocal()
	if svc != nil {
		synced, code := openSynced(ctx, cfg, svc, true, errOut)
		if code != exitcode.Success {
			return code
		}
		list = synced
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		fmt.Fprintf(errOut, "error: failed to listen on %s: %v\n", addr, err)
		return exitcode.UserError
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	logger := cfg.Logger()
	logger.Info("serving", "addr", ln.Addr().String(), "backend", cfg.Settings.Backend)
	if !cfg.Quiet {
		fmt.Fprintf(out, "listening on http://%s\n", ln.Addr())
	}

	if err := httpapi.NewServer(list, logger).Serve(ctx, ln); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
