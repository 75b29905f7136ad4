package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"todo/internal/service"
)

const maxTextSize = 4 << 10

type addRequest struct {
	Text string `json:"text"`
}

// errorResponse carries the unchanged snapshot next to the error.
type errorResponse struct {
	Error          string         `json:"error"`
	Tasks          []service.Task `json:"tasks"`
	RemainingCount int            `json:"remainingCount"`
}

func (s *Server) handleList(c *gin.Context) {
	s.respond(c, nil)
}

func (s *Server) handleAdd(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxTextSize)

	var req addRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	s.respond(c, s.list.Add(c.Request.Context(), req.Text))
}

func (s *Server) handleToggle(c *gin.Context) {
	s.respond(c, s.list.Toggle(c.Request.Context(), c.Param("id")))
}

func (s *Server) handleRemove(c *gin.Context) {
	s.respond(c, s.list.Remove(c.Request.Context(), c.Param("id")))
}

func (s *Server) handleClearCompleted(c *gin.Context) {
	s.respond(c, s.list.ClearCompleted(c.Request.Context()))
}

// respond writes the current snapshot. Backend failures answer 502; the
// snapshot is unchanged because the list only updates after a confirmed write.
func (s *Server) respond(c *gin.Context, err error) {
	snap := s.list.Snapshot()
	if snap.Tasks == nil {
		snap.Tasks = []service.Task{}
	}
	if err == nil {
		c.JSON(http.StatusOK, snap)
		return
	}

	status := http.StatusInternalServerError
	msg := err.Error()
	var remote *service.RemoteError
	switch {
	case errors.As(err, &remote):
		status = http.StatusBadGateway
		msg = remote.Message
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}
	c.JSON(status, errorResponse{Error: msg, Tasks: snap.Tasks, RemainingCount: snap.RemainingCount})
}
