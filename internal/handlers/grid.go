package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/testcloud/grid-proxy/api/v1"
	"github.com/testcloud/grid-proxy/internal/models"
	"github.com/testcloud/grid-proxy/internal/report"
)

// GetStatus returns the flattened grid status
// (GET /status)
func (h *Handler) GetStatus(c *gin.Context) {
	view, err := h.gridSrv.Status(c.Request.Context())
	if err != nil {
		zap.S().Named("grid_handler").Errorw("failed to fetch grid status", "error", err)
		h.writeError(c, err, "Failed to fetch grid status")
		return
	}

	c.JSON(http.StatusOK, v1.Envelope{
		Success: true,
		Data:    v1.NewGridStatus(view, h.cfg.Grid.URL, h.vncPassword()),
	})
}

// ListSessions returns the active sessions only
// (GET /sessions)
func (h *Handler) ListSessions(c *gin.Context) {
	sessions, err := h.gridSrv.Sessions(c.Request.Context())
	if err != nil {
		zap.S().Named("grid_handler").Errorw("failed to list sessions", "error", err)
		h.writeError(c, err, "Failed to list sessions")
		return
	}

	c.JSON(http.StatusOK, v1.Envelope{
		Success: true,
		Data: v1.SessionList{
			Sessions: v1.NewSessions(sessions),
			Count:    len(sessions),
		},
	})
}

// GetSession returns one active session
// (GET /session/{sessionId})
func (h *Handler) GetSession(c *gin.Context) {
	session, err := h.gridSrv.Session(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		h.writeError(c, err, "Failed to get session")
		return
	}

	c.JSON(http.StatusOK, v1.Envelope{Success: true, Data: v1.NewSession(session)})
}

// CreateSession requests a new browser session from the grid
// (POST /session)
func (h *Handler) CreateSession(c *gin.Context) {
	var req v1.NewSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, v1.Envelope{
			Error:   "desiredCapabilities required",
			Details: err.Error(),
		})
		return
	}

	ack, err := h.gridSrv.CreateSession(c.Request.Context(), models.Capabilities(req.DesiredCapabilities))
	if err != nil {
		zap.S().Named("grid_handler").Errorw("failed to create session", "error", err)
		h.writeError(c, err, "Failed to create session")
		return
	}

	c.JSON(http.StatusCreated, v1.Envelope{
		Success: true,
		Message: "Session created successfully",
		Data:    ack,
	})
}

// DeleteSession kills a session on the grid
// (DELETE /session/{sessionId})
func (h *Handler) DeleteSession(c *gin.Context) {
	sessionID := c.Param("sessionId")
	zap.S().Named("grid_handler").Infow("deleting session", "session_id", sessionID)

	ack, err := h.gridSrv.DeleteSession(c.Request.Context(), sessionID)
	if err != nil {
		zap.S().Named("grid_handler").Errorw("failed to delete session", "session_id", sessionID, "error", err)
		h.writeError(c, err, "Failed to delete session")
		return
	}

	c.JSON(http.StatusOK, v1.Envelope{
		Success: true,
		Message: fmt.Sprintf("Session %s deleted successfully", sessionID),
		Data:    ack,
	})
}

// GetSessionVNC is the VNC stream entry point. Proxying the stream is not supported.
// (GET /session/{sessionId}/se/vnc)
func (h *Handler) GetSessionVNC(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, v1.Envelope{
		Error: "VNC WebSocket proxy not yet implemented. Use direct connection to grid.",
	})
}

// IssueVNCToken returns a short lived credential for one active session
// (POST /session/{sessionId}/vnc/token)
func (h *Handler) IssueVNCToken(c *gin.Context) {
	cred, err := h.gridSrv.IssueVNCToken(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		h.writeError(c, err, "Failed to issue VNC token")
		return
	}

	c.JSON(http.StatusCreated, v1.Envelope{Success: true, Data: v1.NewVNCToken(cred)})
}

// GetNode returns one node of the current status
// (GET /nodes/{nodeId})
func (h *Handler) GetNode(c *gin.Context) {
	node, err := h.gridSrv.Node(c.Request.Context(), c.Param("nodeId"))
	if err != nil {
		h.writeError(c, err, "Failed to get node")
		return
	}

	c.JSON(http.StatusOK, v1.Envelope{Success: true, Data: v1.NewNode(node)})
}

// DrainNode stops a node from taking new sessions
// (POST /nodes/{nodeId}/drain)
func (h *Handler) DrainNode(c *gin.Context) {
	nodeID := c.Param("nodeId")
	ack, err := h.gridSrv.DrainNode(c.Request.Context(), nodeID)
	if err != nil {
		zap.S().Named("grid_handler").Errorw("failed to drain node", "node_id", nodeID, "error", err)
		h.writeError(c, err, "Failed to drain node")
		return
	}

	c.JSON(http.StatusOK, v1.Envelope{
		Success: true,
		Message: fmt.Sprintf("Node %s is being drained", nodeID),
		Data:    ack,
	})
}

// RemoveNode unregisters a node
// (DELETE /nodes/{nodeId})
func (h *Handler) RemoveNode(c *gin.Context) {
	nodeID := c.Param("nodeId")
	ack, err := h.gridSrv.RemoveNode(c.Request.Context(), nodeID)
	if err != nil {
		zap.S().Named("grid_handler").Errorw("failed to remove node", "node_id", nodeID, "error", err)
		h.writeError(c, err, "Failed to remove node")
		return
	}

	c.JSON(http.StatusOK, v1.Envelope{
		Success: true,
		Message: fmt.Sprintf("Node %s removed successfully", nodeID),
		Data:    ack,
	})
}

// GetQueue lists pending new session requests
// (GET /queue)
func (h *Handler) GetQueue(c *gin.Context) {
	queue, err := h.gridSrv.Queue(c.Request.Context())
	if err != nil {
		h.writeError(c, err, "Failed to get session queue")
		return
	}

	c.JSON(http.StatusOK, v1.Envelope{
		Success: true,
		Data:    v1.Queue{Queue: queue, Size: len(queue)},
	})
}

// ClearQueue drops pending new session requests
// (DELETE /queue)
func (h *Handler) ClearQueue(c *gin.Context) {
	ack, err := h.gridSrv.ClearQueue(c.Request.Context())
	if err != nil {
		h.writeError(c, err, "Failed to clear session queue")
		return
	}

	c.JSON(http.StatusOK, v1.Envelope{
		Success: true,
		Message: "Queue cleared successfully",
		Data:    ack,
	})
}

// GetReport returns the current snapshot as an xlsx workbook
// (GET /report)
func (h *Handler) GetReport(c *gin.Context) {
	view, err := h.gridSrv.Status(c.Request.Context())
	if err != nil {
		h.writeError(c, err, "Failed to fetch grid status")
		return
	}

	now := time.Now()
	buf, err := report.Build(view, h.cfg.Grid.URL, now)
	if err != nil {
		zap.S().Named("grid_handler").Errorw("failed to build report", "error", err)
		h.writeError(c, err, "Failed to build report")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename(now)))
	c.Data(http.StatusOK, report.ContentType, buf.Bytes())
}
