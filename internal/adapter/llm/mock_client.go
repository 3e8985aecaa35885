package llm

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// MockClient is a mock implementation of LLMClient for testing and for
// running the orchestrator without a live LLM backend.
type MockClient struct {
	// RespondFn, when set, overrides the canned response generation.
	RespondFn func(req *ChatCompletionRequest) (string, error)
}

// NewMockClient creates a new mock LLM client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Ensure MockClient implements LLMClient interface.
var _ LLMClient = (*MockClient)(nil)

// CreateChatCompletion returns a mock response.
func (m *MockClient) CreateChatCompletion(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error) {
	var content string
	if m.RespondFn != nil {
		c, err := m.RespondFn(req)
		if err != nil {
			return nil, err
		}
		content = c
	} else {
		content = m.generateMockResponse(req)
	}

	return &ChatCompletionResponse{
		ID:      fmt.Sprintf("mock-chatcmpl-%d", time.Now().UnixNano()),
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   req.Model,
		Choices: []Choice{
			{
				Index: 0,
				Message: &ChatMessage{
					Role:    "assistant",
					Content: content,
				},
				FinishReason: "stop",
			},
		},
		Usage: &Usage{
			PromptTokens:     m.estimateTokens(req),
			CompletionTokens: len(content) / 4,
			TotalTokens:      m.estimateTokens(req) + len(content)/4,
		},
	}, nil
}

// generateMockResponse produces a canned oracle reply matching the shape the
// orchestrator expects: an intelligence report for extraction prompts, a
// classification for everything else.
func (m *MockClient) generateMockResponse(req *ChatCompletionRequest) string {
	var lastUserMessage string
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == "user" {
			lastUserMessage = req.Messages[i].Content
			break
		}
	}

	if strings.Contains(lastUserMessage, "Extract scam intelligence") {
		return `{"bankAccounts":[],"upiIds":["mock@upi"],"phishingLinks":[],"phoneNumbers":[],"suspiciousKeywords":["urgent"],"agentNotes":"Mock extraction."}`
	}

	return `{"isScam":true,"reply":"Oh dear, my internet is being slow again. Could you explain that one more time?","reasoning":"Mock classification.","isFinished":false}`
}

// estimateTokens provides a rough token count estimate.
func (m *MockClient) estimateTokens(req *ChatCompletionRequest) int {
	total := 0
	for _, msg := range req.Messages {
		total += len(msg.Content) / 4
	}
	return total
}
