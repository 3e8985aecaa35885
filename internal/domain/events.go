package domain

import "encoding/json"

// Event is one entry in the per-session audit log.
type Event struct {
	EventID   string          `json:"event_id"`
	SessionID string          `json:"session_id"`
	Ts        int64           `json:"ts"` // unix milliseconds
	Type      EventType       `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// MessageReceivedPayload records an inbound message.
type MessageReceivedPayload struct {
	MessageCount  int `json:"message_count"`
	SuppliedTurns int `json:"supplied_turns"`
}

// ClassificationDonePayload records the oracle's judgment for one message.
type ClassificationDonePayload struct {
	IsScam     bool   `json:"is_scam"`
	IsFinished bool   `json:"is_finished"`
	Reasoning  string `json:"reasoning,omitempty"`
	LatencyMs  int64  `json:"latency_ms"`
	Fallback   bool   `json:"fallback,omitempty"` // safe default was used
}

// FinalizationStartedPayload records the winning finalization dispatch.
type FinalizationStartedPayload struct {
	MessageCount int    `json:"message_count"`
	Decision     string `json:"decision"`
}

// ExtractionFailedPayload records a failed intelligence extraction.
type ExtractionFailedPayload struct {
	Error string `json:"error"`
}

// CallbackPayloadEvent records the outcome of the collector delivery.
type CallbackPayloadEvent struct {
	URL   string `json:"url,omitempty"`
	Error string `json:"error,omitempty"`
}
