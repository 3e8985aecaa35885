package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hiveguard/honeytrap/internal/domain"
	"github.com/hiveguard/honeytrap/policy"
)

// Ingest processes one inbound message for a session and returns the reply
// to send back to the scammer. It never fails: classification errors collapse
// into the safe default, and finalization runs detached so its outcome is
// invisible to the caller.
func (s *Service) Ingest(ctx context.Context, req domain.IngestRequest) domain.IngestResponse {
	start := time.Now()
	classification, fallback := s.oracle.Classify(ctx, req.Message, req.ConversationHistory, req.Metadata)
	latencyMs := time.Since(start).Milliseconds()

	snapshot := s.sessions.Update(req.SessionID, func(sess *domain.Session) {
		// The supplied history is trusted only as a length hint; the
		// session keeps its own append-only copy.
		sess.MessageCount = len(req.ConversationHistory) + 1
		sess.History = append(sess.History, req.Message)
		if classification.IsScam {
			sess.ScamDetected = true
		}
	})

	s.recordEvent(ctx, req.SessionID, domain.EventTypeMessageReceived, domain.MessageReceivedPayload{
		MessageCount:  snapshot.MessageCount,
		SuppliedTurns: len(req.ConversationHistory),
	})
	s.recordEvent(ctx, req.SessionID, domain.EventTypeClassificationDone, domain.ClassificationDonePayload{
		IsScam:     classification.IsScam,
		IsFinished: classification.IsFinished,
		Reasoning:  classification.Reasoning,
		LatencyMs:  latencyMs,
		Fallback:   fallback,
	})

	decision := s.decide(ctx, snapshot, classification)
	if decision == policy.DecisionFinalize && s.sessions.TryBeginFinalization(req.SessionID) {
		log.Printf("Triggering finalization for session %s (messages=%d)", req.SessionID, snapshot.MessageCount)
		s.recordEvent(ctx, req.SessionID, domain.EventTypeFinalizationStarted, domain.FinalizationStartedPayload{
			MessageCount: snapshot.MessageCount,
			Decision:     decision,
		})
		// Detached: completion, ordering, and failures are invisible to
		// the inbound caller.
		go s.Finish(context.Background(), req.SessionID)
	}

	return domain.IngestResponse{
		Status: "success",
		Reply:  classification.Reply,
	}
}

// decide evaluates the finalization policy for the post-update session state.
// A policy engine failure falls back to the built-in rule so the decision
// never depends on rego health.
func (s *Service) decide(ctx context.Context, sess domain.Session, c domain.ClassificationResult) string {
	input := policy.Input{
		ScamDetected: sess.ScamDetected,
		IsFinished:   c.IsFinished,
		MessageCount: sess.MessageCount,
		MaxMessages:  s.config.MaxMessages,
	}

	decision, err := s.policy.Evaluate(ctx, input)
	if err != nil {
		log.Printf("ERROR: policy evaluation failed, using built-in rule: %v", err)
		if input.ScamDetected && (input.IsFinished || input.MessageCount >= input.MaxMessages) {
			return policy.DecisionFinalize
		}
		return policy.DecisionContinue
	}
	return decision
}

// ValidateIngest checks the request's required fields. Validation failures
// surface to the caller before the state machine runs.
func ValidateIngest(req domain.IngestRequest) error {
	if req.SessionID == "" {
		return fmt.Errorf("sessionId is required")
	}
	if len(req.Message) == 0 {
		return fmt.Errorf("message is required")
	}
	return nil
}
