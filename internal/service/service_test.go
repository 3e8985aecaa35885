package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/hiveguard/honeytrap/internal/adapter/llm"
	"github.com/hiveguard/honeytrap/internal/config"
	"github.com/hiveguard/honeytrap/internal/domain"
	"github.com/hiveguard/honeytrap/internal/oracle"
	"github.com/hiveguard/honeytrap/internal/repository"
	"github.com/hiveguard/honeytrap/internal/session"
	"github.com/hiveguard/honeytrap/policy"
)

// fakeCollector records deliveries and signals each one on a channel so
// tests can wait for the detached finalization goroutine.
type fakeCollector struct {
	mu        sync.Mutex
	payloads  []*domain.CallbackPayload
	err       error
	delivered chan *domain.CallbackPayload
}

func newFakeCollector() *fakeCollector {
	return &fakeCollector{delivered: make(chan *domain.CallbackPayload, 16)}
}

func (f *fakeCollector) Deliver(ctx context.Context, payload *domain.CallbackPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		f.delivered <- payload
		return f.err
	}
	f.payloads = append(f.payloads, payload)
	f.delivered <- payload
	return nil
}

func (f *fakeCollector) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.payloads)
}

// scriptedResponses drives the mock LLM: one response for classification
// prompts, one for extraction prompts.
type scriptedResponses struct {
	classify    string
	classifyErr error
	extract     string
	extractErr  error
}

func newTestService(t *testing.T, script scriptedResponses) (*Service, *fakeCollector) {
	t.Helper()

	events, err := repository.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	t.Cleanup(func() { events.Close() })

	client := &llm.MockClient{
		RespondFn: func(req *llm.ChatCompletionRequest) (string, error) {
			prompt := req.Messages[len(req.Messages)-1].Content
			if strings.Contains(prompt, "Extract scam intelligence") {
				return script.extract, script.extractErr
			}
			return script.classify, script.classifyErr
		},
	}

	engine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	cfg := &config.Config{MaxMessages: 10, HistoryWindow: 3}
	fc := newFakeCollector()
	svc := New(session.NewStore(), events, oracle.New(client, "test-model", cfg.HistoryWindow), fc, engine, cfg)
	return svc, fc
}

// switchableScript lets a test change the mock classification mid-session.
type switchableScript struct {
	mu   sync.Mutex
	next string
}

func newSwitchableScript(initial string) *switchableScript {
	return &switchableScript{next: initial}
}

func (s *switchableScript) set(response string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next = response
}

func (s *switchableScript) oracle() *oracle.Oracle {
	client := &llm.MockClient{
		RespondFn: func(req *llm.ChatCompletionRequest) (string, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			return s.next, nil
		},
	}
	return oracle.New(client, "test-model", 3)
}

func classification(isScam, isFinished bool) string {
	return fmt.Sprintf(`{"isScam":%t,"reply":"persona reply","isFinished":%t}`, isScam, isFinished)
}

func rawMsg(text string) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{"sender":"scammer","text":%q}`, text))
}

func suppliedHistory(n int) []json.RawMessage {
	h := make([]json.RawMessage, n)
	for i := range h {
		h[i] = rawMsg(fmt.Sprintf("turn %d", i))
	}
	return h
}
