package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/hiveguard/honeytrap/internal/domain"
)

// recordEvent appends an event to the audit log. Best-effort: a failed write
// is logged and never fails the ingest or finalization path.
func (s *Service) recordEvent(ctx context.Context, sessionID string, eventType domain.EventType, payload interface{}) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		log.Printf("WARN: failed to marshal %s payload: %v", eventType, err)
		return
	}

	event := &domain.Event{
		EventID:   "evt_" + uuid.New().String()[:8],
		SessionID: sessionID,
		Ts:        time.Now().UnixMilli(),
		Type:      eventType,
		Payload:   payloadBytes,
	}

	if err := s.events.CreateEvent(ctx, event); err != nil {
		log.Printf("WARN: failed to record %s event: %v", eventType, err)
	}
}

// GetEvents returns a session's audit events.
func (s *Service) GetEvents(ctx context.Context, sessionID string, afterTs int64, types []string, limit int) ([]domain.Event, error) {
	return s.events.GetEvents(ctx, sessionID, afterTs, types, limit)
}

// GetSession returns a snapshot of a session's live state.
func (s *Service) GetSession(sessionID string) (domain.Session, bool) {
	return s.sessions.Snapshot(sessionID)
}
