// Package oracle wraps the text-generation capability: it builds the
// classification and extraction prompts, calls the LLM, and tolerantly
// decodes its free-text output into typed results.
package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/hiveguard/honeytrap/internal/adapter/llm"
	"github.com/hiveguard/honeytrap/internal/domain"
)

// Oracle is the client for the two generative capabilities.
type Oracle struct {
	client        llm.LLMClient
	model         string
	historyWindow int
}

// New creates an Oracle backed by the given LLM client. historyWindow bounds
// how many prior turns the classification prompt carries.
func New(client llm.LLMClient, model string, historyWindow int) *Oracle {
	if historyWindow <= 0 {
		historyWindow = 3
	}
	return &Oracle{
		client:        client,
		model:         model,
		historyWindow: historyWindow,
	}
}

// SafeDefault is the classification used whenever the oracle's output cannot
// be obtained or trusted. It errs toward continuing engagement: the message
// is treated as a scam and the conversation is not finished.
func SafeDefault() domain.ClassificationResult {
	return domain.ClassificationResult{
		IsScam:     true,
		Reply:      SafeDefaultReply,
		Reasoning:  "oracle unavailable, safe default applied",
		IsFinished: false,
	}
}

// Classify judges one inbound message and produces the persona reply. It
// never fails: any capability or decode error collapses into SafeDefault.
// The returned bool reports whether the fallback was used.
func (o *Oracle) Classify(ctx context.Context, message json.RawMessage, history []json.RawMessage, metadata json.RawMessage) (domain.ClassificationResult, bool) {
	prompt := fmt.Sprintf(classifyPrompt,
		rawOrNull(message),
		encodeHistory(tail(history, o.historyWindow)),
		rawOrNull(metadata),
	)

	text, err := o.complete(ctx, prompt)
	if err != nil {
		log.Printf("WARN: classification call failed: %v", err)
		return SafeDefault(), true
	}

	result, err := decode[domain.ClassificationResult](text)
	if err != nil {
		log.Printf("WARN: classification decode failed: %v", err)
		return SafeDefault(), true
	}

	return *result, false
}

// Extract runs the one-shot intelligence extraction over the full history.
// Unlike Classify it propagates failure: the caller must not fabricate an
// intelligence report.
func (o *Oracle) Extract(ctx context.Context, sessionID string, history []json.RawMessage) (*domain.IntelligenceReport, error) {
	prompt := fmt.Sprintf(extractPrompt, encodeHistory(history))

	text, err := o.complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("extraction call for session %s failed: %w", sessionID, err)
	}

	report, err := decode[domain.IntelligenceReport](text)
	if err != nil {
		return nil, fmt.Errorf("extraction decode for session %s failed: %w", sessionID, err)
	}

	report.Normalize()
	return report, nil
}

func (o *Oracle) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, &llm.ChatCompletionRequest{
		Model: o.model,
		Messages: []llm.ChatMessage{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message == nil {
		return "", fmt.Errorf("empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

// tail returns at most n trailing entries of history.
func tail(history []json.RawMessage, n int) []json.RawMessage {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}

func encodeHistory(history []json.RawMessage) string {
	if len(history) == 0 {
		return "[]"
	}
	b, err := json.Marshal(history)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func rawOrNull(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "null"
	}
	return string(raw)
}
