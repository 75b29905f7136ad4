// Package httpapi serves a to-do list as a JSON API.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"todo/internal/logging"
	"todo/internal/todolist"
)

const shutdownTimeout = 5 * time.Second

// Server is the JSON API over a todolist.List.
type Server struct {
	list   todolist.List
	logger *log.Logger
	router *gin.Engine
}

// NewServer creates the API server. A nil logger discards request logs.
func NewServer(list todolist.List, logger *log.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	s := &Server{
		list:   list,
		logger: logger,
		router: router,
	}

	api := router.Group("/api")
	{
		api.GET("/todos", s.handleList)
		api.POST("/todos", s.handleAdd)
		api.POST("/todos/clear-completed", s.handleClearCompleted)
		api.POST("/todos/:id/toggle", s.handleToggle)
		api.DELETE("/todos/:id", s.handleRemove)
	}

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve answers requests on ln until ctx is cancelled, then shuts down.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func requestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
