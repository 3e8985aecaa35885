// Package service implements the session lifecycle: ingesting messages,
// applying the finalization-decision policy, and running the one-time
// finalization for each conversation.
package service

import (
	"github.com/hiveguard/honeytrap/internal/adapter/collector"
	"github.com/hiveguard/honeytrap/internal/config"
	"github.com/hiveguard/honeytrap/internal/oracle"
	"github.com/hiveguard/honeytrap/internal/repository"
	"github.com/hiveguard/honeytrap/internal/session"
	"github.com/hiveguard/honeytrap/policy"
)

type Service struct {
	sessions  *session.Store
	events    repository.Store
	oracle    *oracle.Oracle
	collector collector.Client
	policy    *policy.Engine
	config    *config.Config
}

func New(sessions *session.Store, events repository.Store, o *oracle.Oracle, c collector.Client, policyEngine *policy.Engine, cfg *config.Config) *Service {
	return &Service{
		sessions:  sessions,
		events:    events,
		oracle:    o,
		collector: c,
		policy:    policyEngine,
		config:    cfg,
	}
}

// SessionCount returns the number of retained sessions.
func (s *Service) SessionCount() int {
	return s.sessions.Len()
}
