package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/hiveguard/honeytrap/internal/adapter/llm"
)

func msg(s string) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{"text":%q}`, s))
}

func TestClassifySuccess(t *testing.T) {
	client := &llm.MockClient{
		RespondFn: func(req *llm.ChatCompletionRequest) (string, error) {
			return "```json\n{\"isScam\":true,\"reply\":\"oh no, which account?\",\"isFinished\":false}\n```", nil
		},
	}
	o := New(client, "test-model", 3)

	result, fallback := o.Classify(context.Background(), msg("your account is blocked"), nil, nil)
	if fallback {
		t.Fatalf("unexpected fallback")
	}
	if !result.IsScam || result.Reply != "oh no, which account?" || result.IsFinished {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestClassifyMalformedOutputReturnsSafeDefault(t *testing.T) {
	client := &llm.MockClient{
		RespondFn: func(req *llm.ChatCompletionRequest) (string, error) {
			return "not json at all", nil
		},
	}
	o := New(client, "test-model", 3)

	result, fallback := o.Classify(context.Background(), msg("hello"), nil, nil)
	if !fallback {
		t.Fatalf("expected fallback")
	}
	if !result.IsScam || result.Reply != SafeDefaultReply || result.IsFinished {
		t.Fatalf("unexpected safe default: %+v", result)
	}
}

func TestClassifyCallFailureReturnsSafeDefault(t *testing.T) {
	client := &llm.MockClient{
		RespondFn: func(req *llm.ChatCompletionRequest) (string, error) {
			return "", fmt.Errorf("quota exceeded")
		},
	}
	o := New(client, "test-model", 3)

	result, fallback := o.Classify(context.Background(), msg("hello"), nil, nil)
	if !fallback {
		t.Fatalf("expected fallback")
	}
	if !result.IsScam || result.Reply != SafeDefaultReply {
		t.Fatalf("unexpected safe default: %+v", result)
	}
}

func TestClassifyBoundsHistoryWindow(t *testing.T) {
	var prompt string
	client := &llm.MockClient{
		RespondFn: func(req *llm.ChatCompletionRequest) (string, error) {
			prompt = req.Messages[len(req.Messages)-1].Content
			return `{"isScam":false,"reply":"hi","isFinished":false}`, nil
		},
	}
	o := New(client, "test-model", 3)

	history := []json.RawMessage{msg("turn1"), msg("turn2"), msg("turn3"), msg("turn4"), msg("turn5")}
	o.Classify(context.Background(), msg("latest"), history, nil)

	if strings.Contains(prompt, "turn1") || strings.Contains(prompt, "turn2") {
		t.Fatalf("prompt includes turns beyond the window")
	}
	for _, want := range []string{"turn3", "turn4", "turn5", "latest"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}

func TestExtractSuccessNormalizes(t *testing.T) {
	client := &llm.MockClient{
		RespondFn: func(req *llm.ChatCompletionRequest) (string, error) {
			return `{"upiIds":["fraud@upi"],"suspiciousKeywords":["urgent"]}`, nil
		},
	}
	o := New(client, "test-model", 3)

	report, err := o.Extract(context.Background(), "s1", []json.RawMessage{msg("pay me")})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(report.UPIIDs) != 1 || report.UPIIDs[0] != "fraud@upi" {
		t.Fatalf("unexpected report: %+v", report)
	}
	// Absent fields normalize to empty, never nil.
	if report.BankAccounts == nil || report.PhishingLinks == nil || report.PhoneNumbers == nil {
		t.Fatalf("nil slices after normalize: %+v", report)
	}
	if report.AgentNotes != "Conversation completed." {
		t.Fatalf("agentNotes not defaulted: %q", report.AgentNotes)
	}
}

func TestExtractFailurePropagates(t *testing.T) {
	client := &llm.MockClient{
		RespondFn: func(req *llm.ChatCompletionRequest) (string, error) {
			return "completely unusable output", nil
		},
	}
	o := New(client, "test-model", 3)

	if _, err := o.Extract(context.Background(), "s1", []json.RawMessage{msg("x")}); err == nil {
		t.Fatalf("expected extraction error")
	}
}
