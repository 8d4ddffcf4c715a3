package models

import "encoding/json"

// Availability is the node state reported by the grid.
type Availability string

const (
	AvailabilityUp       Availability = "UP"
	AvailabilityDown     Availability = "DOWN"
	AvailabilityDraining Availability = "DRAINING"
	AvailabilityUnknown  Availability = "UNKNOWN"
)

// ParseAvailability maps the raw grid value. Empty means the grid did not report one.
// Values outside the known set are kept verbatim.
func ParseAvailability(s string) Availability {
	if s == "" {
		return AvailabilityUnknown
	}
	return Availability(s)
}

// Capabilities is an open key/value map, never schema checked.
type Capabilities map[string]any

type GridNode struct {
	ID           string
	URI          string
	Availability Availability
	Slots        []Slot
}

// Slot is a single session capacity unit on a node.
type Slot struct {
	ID         string
	Stereotype Capabilities
	Session    *Session
	// Detail is the slot as sent by the grid.
	Detail json.RawMessage
}

func (s Slot) Available() bool {
	return s.Session == nil
}

// Session is one live browser session. SessionID is assigned by the grid.
type Session struct {
	SessionID    string
	Capabilities Capabilities
	NodeID       string
	NodeURI      string
	StartTime    string
	URI          string
}

type GridStatistics struct {
	TotalNodes     int
	TotalSlots     int
	ActiveSessions int
	AvailableSlots int
}

// GridView is the flattened form of one grid status snapshot.
type GridView struct {
	Ready      *bool
	Message    string
	Nodes      []GridNode
	Sessions   []Session
	Statistics GridStatistics
}

// FindSession returns the active session with the given id.
func (v GridView) FindSession(id string) (Session, bool) {
	for _, s := range v.Sessions {
		if s.SessionID == id {
			return s, true
		}
	}
	return Session{}, false
}

// FindNode returns the node with the given id.
func (v GridView) FindNode(id string) (GridNode, bool) {
	for _, n := range v.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return GridNode{}, false
}
