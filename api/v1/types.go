package v1

import (
	"encoding/json"
	"time"
)

// Envelope wraps every JSON answer of the proxy.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
	Message string `json:"message,omitempty"`
	Path    string `json:"path,omitempty"`
}

type GridStatus struct {
	Nodes       []Node     `json:"nodes"`
	Sessions    []Session  `json:"sessions"`
	Statistics  Statistics `json:"statistics"`
	GridURL     string     `json:"gridUrl"`
	VNCPassword string     `json:"vncPassword,omitempty"`
	Ready       *bool      `json:"ready,omitempty"`
	Message     string     `json:"message,omitempty"`
}

// Node carries its slots exactly as the grid reported them.
type Node struct {
	ID           string            `json:"id"`
	URI          string            `json:"uri"`
	Availability string            `json:"availability"`
	Slots        []json.RawMessage `json:"slots"`
}

type Session struct {
	SessionID    string         `json:"sessionId"`
	Capabilities map[string]any `json:"capabilities"`
	NodeID       string         `json:"nodeId"`
	NodeURI      string         `json:"nodeUri"`
	StartTime    string         `json:"startTime,omitempty"`
	URI          string         `json:"uri,omitempty"`
}

type Statistics struct {
	TotalNodes     int `json:"totalNodes"`
	TotalSlots     int `json:"totalSlots"`
	ActiveSessions int `json:"activeSessions"`
	AvailableSlots int `json:"availableSlots"`
}

type SessionList struct {
	Sessions []Session `json:"sessions"`
	Count    int       `json:"count"`
}

type Queue struct {
	Queue []json.RawMessage `json:"queue"`
	Size  int               `json:"size"`
}

// NewSessionRequest is the body of POST /session.
type NewSessionRequest struct {
	DesiredCapabilities map[string]any `json:"desiredCapabilities" binding:"required"`
}

type VNCToken struct {
	Token     string    `json:"token"`
	SessionID string    `json:"sessionId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Health struct {
	Status    string  `json:"status"`
	Service   string  `json:"service"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
}

// ProxyConfig is the non-secret part of the configuration.
type ProxyConfig struct {
	GridURL        string   `json:"gridUrl"`
	GridTimeout    string   `json:"gridTimeout"`
	Port           int      `json:"port"`
	AllowedOrigins []string `json:"allowedOrigins"`
}
