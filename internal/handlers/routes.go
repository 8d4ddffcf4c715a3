package handlers

import "github.com/gin-gonic/gin"

// Mounts are the prefixes under which the grid routes are served. The dashboard
// and older deployments each use a different one.
var Mounts = []string{"", "/api", "/api/selenium-grid"}

// RegisterRoutes registers the grid routes on router.
func RegisterRoutes(router gin.IRouter, h *Handler) {
	router.GET("/status", h.GetStatus)
	router.GET("/report", h.GetReport)
	router.GET("/config", h.GetConfig)

	router.GET("/sessions", h.ListSessions)
	router.POST("/session", h.CreateSession)
	router.GET("/session/:sessionId", h.GetSession)
	router.DELETE("/session/:sessionId", h.DeleteSession)
	router.GET("/session/:sessionId/se/vnc", h.GetSessionVNC)
	router.POST("/session/:sessionId/vnc/token", h.IssueVNCToken)

	router.GET("/nodes/:nodeId", h.GetNode)
	router.POST("/nodes/:nodeId/drain", h.DrainNode)
	router.DELETE("/nodes/:nodeId", h.RemoveNode)

	router.GET("/queue", h.GetQueue)
	router.DELETE("/queue", h.ClearQueue)
}
