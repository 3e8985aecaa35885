package service

import (
	"context"
	"log"

	"github.com/hiveguard/honeytrap/internal/domain"
)

// Finish runs the one-time finalization for a session: intelligence
// extraction over the full retained history, then a single callback
// delivery. It is dispatched at most once per session (the caller holds the
// FinalizationTriggered latch) and absorbs every failure internally.
func (s *Service) Finish(ctx context.Context, sessionID string) {
	sess, ok := s.sessions.Snapshot(sessionID)
	if !ok {
		log.Printf("WARN: finalization requested for unknown session %s", sessionID)
		return
	}

	log.Printf("Extracting intelligence for session %s (%d messages)", sessionID, len(sess.History))
	report, err := s.oracle.Extract(ctx, sessionID, sess.History)
	if err != nil {
		// No callback on a failed extraction: a partial or fabricated
		// report must never reach the collector.
		log.Printf("ERROR: intelligence extraction failed for session %s: %v", sessionID, err)
		s.recordEvent(ctx, sessionID, domain.EventTypeExtractionFailed, domain.ExtractionFailedPayload{
			Error: err.Error(),
		})
		return
	}

	s.recordEvent(ctx, sessionID, domain.EventTypeIntelExtracted, report)

	payload := &domain.CallbackPayload{
		SessionID:              sessionID,
		ScamDetected:           sess.ScamDetected,
		TotalMessagesExchanged: sess.MessageCount,
		ExtractedIntelligence: domain.ExtractedIntelligence{
			BankAccounts:       report.BankAccounts,
			UPIIDs:             report.UPIIDs,
			PhishingLinks:      report.PhishingLinks,
			PhoneNumbers:       report.PhoneNumbers,
			SuspiciousKeywords: report.SuspiciousKeywords,
		},
		AgentNotes: report.AgentNotes,
	}

	if err := s.collector.Deliver(ctx, payload); err != nil {
		// At-most-once: the latch stays set, no retry.
		log.Printf("ERROR: callback delivery failed for session %s: %v", sessionID, err)
		s.recordEvent(ctx, sessionID, domain.EventTypeCallbackFailed, domain.CallbackPayloadEvent{
			Error: err.Error(),
		})
		return
	}

	log.Printf("Callback delivered for session %s", sessionID)
	s.recordEvent(ctx, sessionID, domain.EventTypeCallbackSent, domain.CallbackPayloadEvent{})
}
