// Package policy evaluates the finalization-decision policy. The rule that
// ends a conversation and triggers intelligence extraction is expressed in
// rego so operators can tune it without a rebuild.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/rego"
)

// Decisions returned by the policy.
const (
	DecisionContinue = "continue"
	DecisionFinalize = "finalize"
)

// Input is the evaluation input for one ingested message.
type Input struct {
	ScamDetected bool `json:"scam_detected"`
	IsFinished   bool `json:"is_finished"`
	MessageCount int  `json:"message_count"`
	MaxMessages  int  `json:"max_messages"`
}

// Engine is the OPA policy engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.honeypot.decision"),
		rego.Module("honeypot.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Evaluate returns the finalization decision for the given input.
func (e *Engine) Evaluate(ctx context.Context, input Input) (string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return DecisionContinue, nil
	}

	if s, ok := results[0].Expressions[0].Value.(string); ok {
		return s, nil
	}

	return "", fmt.Errorf("policy returned non-string decision")
}

// DefaultPolicy finalizes a session once a scam has been detected and either
// the oracle declares the conversation finished or the message count reaches
// the configured ceiling.
const DefaultPolicy = `
package honeypot

import rego.v1

default decision := "continue"

decision := "finalize" if {
	input.scam_detected
	input.is_finished
}

decision := "finalize" if {
	input.scam_detected
	input.message_count >= input.max_messages
}
`
