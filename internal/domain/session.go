package domain

import (
	"encoding/json"
	"time"
)

// Session tracks one scammer-facing conversation. The record is created
// lazily on the first message for an unseen id and retained for the lifetime
// of the process.
type Session struct {
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`

	// ScamDetected is a one-way latch: once true it is never cleared,
	// regardless of later classifications.
	ScamDetected bool `json:"scam_detected"`

	// MessageCount is len(suppliedHistory)+1 as of the latest ingest.
	MessageCount int `json:"message_count"`

	// History is the session's own append-only copy of every ingested
	// message. The caller-supplied history is only a length hint.
	History []json.RawMessage `json:"history"`

	// FinalizationTriggered is a one-way latch set exactly once, under the
	// session lock, when the finalization decision fires.
	FinalizationTriggered bool `json:"finalization_triggered"`
}

// IngestRequest is the inbound message envelope. Message payloads are opaque:
// the core never validates their shape, it only folds them into prompts.
type IngestRequest struct {
	SessionID           string            `json:"sessionId"`
	Message             json.RawMessage   `json:"message"`
	ConversationHistory []json.RawMessage `json:"conversationHistory,omitempty"`
	Metadata            json.RawMessage   `json:"metadata,omitempty"`
}

// IngestResponse is the synchronous reply to the inbound caller.
type IngestResponse struct {
	Status string `json:"status"`
	Reply  string `json:"reply"`
}
