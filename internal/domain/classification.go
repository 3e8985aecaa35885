package domain

// ClassificationResult is the oracle's per-message judgment: whether the
// message is fraudulent, the persona reply to send back, and whether the
// conversation has yielded enough signal to stop.
type ClassificationResult struct {
	IsScam     bool   `json:"isScam"`
	Reply      string `json:"reply"`
	Reasoning  string `json:"reasoning,omitempty"`
	IsFinished bool   `json:"isFinished"`
}

// IntelligenceReport is the oracle's one-shot extraction over a session's
// full history. All fields are optional on the wire; Normalize defaults them
// so the callback never carries nulls.
type IntelligenceReport struct {
	BankAccounts       []string `json:"bankAccounts"`
	UPIIDs             []string `json:"upiIds"`
	PhishingLinks      []string `json:"phishingLinks"`
	PhoneNumbers       []string `json:"phoneNumbers"`
	SuspiciousKeywords []string `json:"suspiciousKeywords"`
	AgentNotes         string   `json:"agentNotes"`
}

// DefaultAgentNotes is used when the oracle returns no notes.
const DefaultAgentNotes = "Conversation completed."

// Normalize replaces nil slices with empty ones and defaults AgentNotes.
func (r *IntelligenceReport) Normalize() {
	if r.BankAccounts == nil {
		r.BankAccounts = []string{}
	}
	if r.UPIIDs == nil {
		r.UPIIDs = []string{}
	}
	if r.PhishingLinks == nil {
		r.PhishingLinks = []string{}
	}
	if r.PhoneNumbers == nil {
		r.PhoneNumbers = []string{}
	}
	if r.SuspiciousKeywords == nil {
		r.SuspiciousKeywords = []string{}
	}
	if r.AgentNotes == "" {
		r.AgentNotes = DefaultAgentNotes
	}
}

// ExtractedIntelligence is the intelligence block of the callback body.
type ExtractedIntelligence struct {
	BankAccounts       []string `json:"bankAccounts"`
	UPIIDs             []string `json:"upiIds"`
	PhishingLinks      []string `json:"phishingLinks"`
	PhoneNumbers       []string `json:"phoneNumbers"`
	SuspiciousKeywords []string `json:"suspiciousKeywords"`
}

// CallbackPayload is the body POSTed to the collector when a session is
// finalized.
type CallbackPayload struct {
	SessionID              string                `json:"sessionId"`
	ScamDetected           bool                  `json:"scamDetected"`
	TotalMessagesExchanged int                   `json:"totalMessagesExchanged"`
	ExtractedIntelligence  ExtractedIntelligence `json:"extractedIntelligence"`
	AgentNotes             string                `json:"agentNotes"`
}
