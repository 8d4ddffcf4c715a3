package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/testcloud/grid-proxy/api/v1"
	"github.com/testcloud/grid-proxy/internal/config"
	"github.com/testcloud/grid-proxy/internal/services"
	srvErrors "github.com/testcloud/grid-proxy/pkg/errors"
)

const serviceName = "Selenium Grid Backend Proxy"

type Handler struct {
	gridSrv *services.GridService
	cfg     config.Configuration
	started time.Time
}

func New(gridSrv *services.GridService, cfg config.Configuration) *Handler {
	return &Handler{
		gridSrv: gridSrv,
		cfg:     cfg,
		started: time.Now(),
	}
}

func (h *Handler) vncPassword() string {
	if !h.cfg.VNC.ExposeSharedPassword {
		return ""
	}
	return h.cfg.VNC.Password
}

// writeError maps service errors to status codes. fallback is the message used
// for errors without a dedicated mapping.
func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case srvErrors.IsUpstreamUnreachableError(err):
		c.JSON(http.StatusServiceUnavailable, v1.Envelope{
			Error:   fmt.Sprintf("Cannot connect to Selenium Grid at %s. Please ensure the grid is running.", h.cfg.Grid.URL),
			Details: err.Error(),
		})
	case srvErrors.IsSessionNotFoundError(err):
		c.JSON(http.StatusNotFound, v1.Envelope{Error: "Session not found"})
	case srvErrors.IsNodeNotFoundError(err):
		c.JSON(http.StatusNotFound, v1.Envelope{Error: "Node not found"})
	default:
		c.JSON(http.StatusInternalServerError, v1.Envelope{
			Error:   fallback,
			Details: err.Error(),
		})
		return
	}
	zap.S().Named("handlers").Debugw("request failed", "path", c.Request.URL.Path, "error", err)
}

// NotFound answers every unmatched route.
func (h *Handler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, v1.Envelope{
		Error: "Endpoint not found",
		Path:  c.Request.URL.Path,
	})
}

// Recover is the last resort for panics raised by any handler.
func (h *Handler) Recover(c *gin.Context, err any) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, v1.Envelope{
		Error:   "Internal server error",
		Message: fmt.Sprintf("%v", err),
	})
}
