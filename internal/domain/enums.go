// Package domain defines the core domain models for the honeypot
// orchestrator.
package domain

// EventType represents the type of an audit event.
type EventType string

const (
	EventTypeMessageReceived     EventType = "message_received"
	EventTypeClassificationDone  EventType = "classification_done"
	EventTypeFinalizationStarted EventType = "finalization_started"
	EventTypeIntelExtracted      EventType = "intelligence_extracted"
	EventTypeExtractionFailed    EventType = "extraction_failed"
	EventTypeCallbackSent        EventType = "callback_sent"
	EventTypeCallbackFailed      EventType = "callback_failed"
)
