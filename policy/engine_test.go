package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultPolicyDecisions(t *testing.T) {
	engine, err := NewEngine(context.Background(), DefaultPolicy)
	require.NoError(t, err)

	tests := []struct {
		name  string
		input Input
		want  string
	}{
		{
			name:  "no scam, no finish",
			input: Input{ScamDetected: false, IsFinished: false, MessageCount: 3, MaxMessages: 10},
			want:  DecisionContinue,
		},
		{
			name:  "scam but not finished, below ceiling",
			input: Input{ScamDetected: true, IsFinished: false, MessageCount: 9, MaxMessages: 10},
			want:  DecisionContinue,
		},
		{
			name:  "scam and oracle says finished",
			input: Input{ScamDetected: true, IsFinished: true, MessageCount: 1, MaxMessages: 10},
			want:  DecisionFinalize,
		},
		{
			name:  "scam at the message ceiling",
			input: Input{ScamDetected: true, IsFinished: false, MessageCount: 10, MaxMessages: 10},
			want:  DecisionFinalize,
		},
		{
			name:  "scam past the ceiling",
			input: Input{ScamDetected: true, IsFinished: false, MessageCount: 14, MaxMessages: 10},
			want:  DecisionFinalize,
		},
		{
			name:  "finished but never classified as scam",
			input: Input{ScamDetected: false, IsFinished: true, MessageCount: 12, MaxMessages: 10},
			want:  DecisionContinue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.Evaluate(context.Background(), tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestNewEngineRejectsBrokenPolicy(t *testing.T) {
	_, err := NewEngine(context.Background(), "package honeypot\n\ndecision := {")
	require.Error(t, err)
}
