package services

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/testcloud/grid-proxy/internal/models"
	srvErrors "github.com/testcloud/grid-proxy/pkg/errors"
	"github.com/testcloud/grid-proxy/pkg/grid"
	"github.com/testcloud/grid-proxy/pkg/metrics"
	"github.com/testcloud/grid-proxy/pkg/vnc"
)

// GridClient is the set of grid coordinator calls the service needs.
type GridClient interface {
	Status(ctx context.Context) (*grid.RawStatus, error)
	CreateSession(ctx context.Context, capabilities map[string]any) (json.RawMessage, error)
	DeleteSession(ctx context.Context, sessionID string) (json.RawMessage, error)
	DrainNode(ctx context.Context, nodeID string) (json.RawMessage, error)
	RemoveNode(ctx context.Context, nodeID string) (json.RawMessage, error)
	Queue(ctx context.Context) ([]json.RawMessage, error)
	ClearQueue(ctx context.Context) (json.RawMessage, error)
}

// GridService holds no state between calls: every read is a fresh grid round trip.
type GridService struct {
	client GridClient
	issuer *vnc.Issuer
}

func NewGridService(client GridClient, issuer *vnc.Issuer) *GridService {
	return &GridService{client: client, issuer: issuer}
}

func (s *GridService) Status(ctx context.Context) (models.GridView, error) {
	raw, err := s.client.Status(ctx)
	if err != nil {
		return models.GridView{}, err
	}

	view := TransformStatus(raw)
	metrics.RecordSnapshot(view.Statistics.TotalNodes, view.Statistics.ActiveSessions, view.Statistics.AvailableSlots)

	zap.S().Named("grid_service").Debugw("grid status",
		"nodes", view.Statistics.TotalNodes,
		"slots", view.Statistics.TotalSlots,
		"sessions", view.Statistics.ActiveSessions)

	return view, nil
}

func (s *GridService) Sessions(ctx context.Context) ([]models.Session, error) {
	view, err := s.Status(ctx)
	if err != nil {
		return nil, err
	}
	return view.Sessions, nil
}

func (s *GridService) Session(ctx context.Context, sessionID string) (models.Session, error) {
	view, err := s.Status(ctx)
	if err != nil {
		return models.Session{}, err
	}
	session, ok := view.FindSession(sessionID)
	if !ok {
		return models.Session{}, srvErrors.NewSessionNotFoundError(sessionID)
	}
	return session, nil
}

// CreateSession asks the grid for a new session. The grid decides which node serves it.
func (s *GridService) CreateSession(ctx context.Context, capabilities models.Capabilities) (json.RawMessage, error) {
	ack, err := s.client.CreateSession(ctx, capabilities)
	if err != nil {
		return nil, err
	}
	zap.S().Named("grid_service").Infow("session created", "capabilities", capabilities)
	return ack, nil
}

// DeleteSession forwards the kill to the grid. The local view only reflects it on the next status read.
func (s *GridService) DeleteSession(ctx context.Context, sessionID string) (json.RawMessage, error) {
	ack, err := s.client.DeleteSession(ctx, sessionID)

	outcome := metrics.OutcomeSuccess
	switch {
	case srvErrors.IsSessionNotFoundError(err):
		outcome = "not_found"
	case srvErrors.IsUpstreamUnreachableError(err):
		outcome = metrics.OutcomeUnreachable
	case err != nil:
		outcome = metrics.OutcomeError
	}
	metrics.SessionDeletionsTotal.WithLabelValues(outcome).Inc()

	if err != nil {
		return nil, err
	}

	zap.S().Named("grid_service").Infow("session deleted", "session_id", sessionID)
	return ack, nil
}

func (s *GridService) Node(ctx context.Context, nodeID string) (models.GridNode, error) {
	view, err := s.Status(ctx)
	if err != nil {
		return models.GridNode{}, err
	}
	node, ok := view.FindNode(nodeID)
	if !ok {
		return models.GridNode{}, srvErrors.NewNodeNotFoundError(nodeID)
	}
	return node, nil
}

func (s *GridService) DrainNode(ctx context.Context, nodeID string) (json.RawMessage, error) {
	ack, err := s.client.DrainNode(ctx, nodeID)
	if err != nil {
		return nil, err
	}
	zap.S().Named("grid_service").Infow("node draining", "node_id", nodeID)
	return ack, nil
}

func (s *GridService) RemoveNode(ctx context.Context, nodeID string) (json.RawMessage, error) {
	ack, err := s.client.RemoveNode(ctx, nodeID)
	if err != nil {
		return nil, err
	}
	zap.S().Named("grid_service").Infow("node removed", "node_id", nodeID)
	return ack, nil
}

func (s *GridService) Queue(ctx context.Context) ([]json.RawMessage, error) {
	q, err := s.client.Queue(ctx)
	if err != nil {
		return nil, err
	}
	if q == nil {
		q = []json.RawMessage{}
	}
	return q, nil
}

func (s *GridService) ClearQueue(ctx context.Context) (json.RawMessage, error) {
	ack, err := s.client.ClearQueue(ctx)
	if err != nil {
		return nil, err
	}
	zap.S().Named("grid_service").Info("session queue cleared")
	return ack, nil
}

// IssueVNCToken hands out a credential scoped to one session. The session must
// be active in the current grid status.
func (s *GridService) IssueVNCToken(ctx context.Context, sessionID string) (vnc.Credential, error) {
	session, err := s.Session(ctx, sessionID)
	if err != nil {
		return vnc.Credential{}, err
	}
	return s.issuer.Issue(session.SessionID, session.NodeURI)
}
