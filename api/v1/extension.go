package v1

import (
	"encoding/json"

	"github.com/testcloud/grid-proxy/internal/models"
	"github.com/testcloud/grid-proxy/pkg/vnc"
)

// NewGridStatus converts a grid view to the status payload.
func NewGridStatus(view models.GridView, gridURL, vncPassword string) GridStatus {
	status := GridStatus{
		Nodes:       make([]Node, 0, len(view.Nodes)),
		Sessions:    NewSessions(view.Sessions),
		Statistics:  NewStatistics(view.Statistics),
		GridURL:     gridURL,
		VNCPassword: vncPassword,
		Ready:       view.Ready,
		Message:     view.Message,
	}
	for _, n := range view.Nodes {
		status.Nodes = append(status.Nodes, NewNode(n))
	}
	return status
}

func NewNode(n models.GridNode) Node {
	node := Node{
		ID:           n.ID,
		URI:          n.URI,
		Availability: string(n.Availability),
		Slots:        make([]json.RawMessage, 0, len(n.Slots)),
	}
	for _, s := range n.Slots {
		node.Slots = append(node.Slots, slotJSON(s))
	}
	return node
}

// slotJSON forwards the grid's slot untouched. Slots built in code have no
// original payload and are rendered from their fields.
func slotJSON(s models.Slot) json.RawMessage {
	if len(s.Detail) > 0 {
		return s.Detail
	}

	slot := map[string]any{
		"id":         s.ID,
		"stereotype": s.Stereotype,
		"session":    nil,
	}
	if s.Session != nil {
		slot["session"] = NewSession(*s.Session)
	}
	b, err := json.Marshal(slot)
	if err != nil {
		return json.RawMessage("null")
	}
	return b
}

func NewSession(s models.Session) Session {
	caps := s.Capabilities
	if caps == nil {
		caps = models.Capabilities{}
	}
	return Session{
		SessionID:    s.SessionID,
		Capabilities: caps,
		NodeID:       s.NodeID,
		NodeURI:      s.NodeURI,
		StartTime:    s.StartTime,
		URI:          s.URI,
	}
}

func NewSessions(sessions []models.Session) []Session {
	out := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, NewSession(s))
	}
	return out
}

func NewStatistics(s models.GridStatistics) Statistics {
	return Statistics{
		TotalNodes:     s.TotalNodes,
		TotalSlots:     s.TotalSlots,
		ActiveSessions: s.ActiveSessions,
		AvailableSlots: s.AvailableSlots,
	}
}

func NewVNCToken(c vnc.Credential) VNCToken {
	return VNCToken{
		Token:     c.Token,
		SessionID: c.SessionID,
		ExpiresAt: c.ExpiresAt.UTC(),
	}
}
