package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	v1 "github.com/testcloud/grid-proxy/api/v1"
)

// Health reports that the proxy itself is up. It does not call the grid.
// (GET /health)
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, v1.Health{
		Status:    "healthy",
		Service:   serviceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Uptime:    time.Since(h.started).Seconds(),
	})
}

// GetConfig returns the non-secret configuration.
// (GET /config)
func (h *Handler) GetConfig(c *gin.Context) {
	origins := h.cfg.Server.AllowedOrigins
	if origins == nil {
		origins = []string{}
	}
	c.JSON(http.StatusOK, v1.Envelope{
		Success: true,
		Data: v1.ProxyConfig{
			GridURL:        h.cfg.Grid.URL,
			GridTimeout:    h.cfg.Grid.Timeout.String(),
			Port:           h.cfg.Server.HTTPPort,
			AllowedOrigins: origins,
		},
	})
}
