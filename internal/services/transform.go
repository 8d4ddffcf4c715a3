package services

import (
	"github.com/testcloud/grid-proxy/internal/models"
	"github.com/testcloud/grid-proxy/pkg/grid"
)

// TransformStatus flattens a raw grid status into nodes, active sessions and counts.
// It never fails: missing parts of the payload count as empty. Node and session
// order is the order the grid sent them in.
func TransformStatus(raw *grid.RawStatus) models.GridView {
	view := models.GridView{
		Nodes:    []models.GridNode{},
		Sessions: []models.Session{},
	}
	if raw == nil || raw.Value == nil {
		return view
	}

	view.Ready = raw.Value.Ready
	view.Message = raw.Value.Message

	for _, rn := range raw.Value.Nodes {
		node := models.GridNode{
			ID:           rn.ID,
			URI:          rn.URI,
			Availability: models.ParseAvailability(rn.Availability),
			Slots:        make([]models.Slot, 0, len(rn.Slots)),
		}

		for _, rs := range rn.Slots {
			slot := models.Slot{
				ID:         rs.ID,
				Stereotype: models.Capabilities(rs.Stereotype),
				Detail:     rs.Detail,
			}
			if rs.Session != nil {
				session := models.Session{
					SessionID:    rs.Session.SessionID,
					Capabilities: sessionCapabilities(rs),
					NodeID:       rn.ID,
					NodeURI:      rn.URI,
					StartTime:    rs.Session.Start,
					URI:          rs.Session.URI,
				}
				slot.Session = &session
				view.Sessions = append(view.Sessions, session)
			}
			node.Slots = append(node.Slots, slot)
		}

		view.Statistics.TotalSlots += len(node.Slots)
		view.Nodes = append(view.Nodes, node)
	}

	view.Statistics.TotalNodes = len(view.Nodes)
	view.Statistics.ActiveSessions = len(view.Sessions)
	view.Statistics.AvailableSlots = view.Statistics.TotalSlots - view.Statistics.ActiveSessions

	return view
}

// sessionCapabilities prefers what the session reports and falls back to the slot
// stereotype. It is unclear whether the grid ever lets the two diverge.
func sessionCapabilities(rs grid.RawSlot) models.Capabilities {
	if rs.Session.Capabilities != nil {
		return models.Capabilities(rs.Session.Capabilities)
	}
	if rs.Stereotype != nil {
		return models.Capabilities(rs.Stereotype)
	}
	return models.Capabilities{}
}
