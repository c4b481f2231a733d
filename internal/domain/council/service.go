// Package council orchestrates the stores and the language model into the chat, journal
// and meditation flows.
package council

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/janhq/mirror-server/internal/domain/analytics"
	"github.com/janhq/mirror-server/internal/domain/convstate"
	"github.com/janhq/mirror-server/internal/domain/journal"
	"github.com/janhq/mirror-server/internal/domain/llm"
	"github.com/janhq/mirror-server/internal/domain/meditation"
	"github.com/janhq/mirror-server/internal/domain/profile"
	"github.com/janhq/mirror-server/internal/domain/session"
	"github.com/janhq/mirror-server/internal/metrics"
)

// Config holds recall and state window settings.
type Config struct {
	RecallThreshold   float64
	RecallTopK        int
	StateHistoryLimit int
}

// Deps are the collaborators of the council.
type Deps struct {
	Profiles   profile.Service
	Sessions   session.Service
	States     convstate.Service
	Journal    journal.Service
	Meditation meditation.Service
	Analytics  analytics.Sink
	LLM        llm.Provider
	Catalog    *meditation.Catalog
}

// Service runs the user facing flows.
type Service struct {
	profiles   profile.Service
	sessions   session.Service
	states     convstate.Service
	journal    journal.Service
	meditation meditation.Service
	analytics  analytics.Sink
	llm        llm.Provider
	catalog    *meditation.Catalog
	cfg        Config
	log        zerolog.Logger
}

func NewService(deps Deps, cfg Config, log zerolog.Logger) *Service {
	if cfg.RecallTopK <= 0 {
		cfg.RecallTopK = 3
	}
	if cfg.StateHistoryLimit <= 0 {
		cfg.StateHistoryLimit = 20
	}
	return &Service{
		profiles:   deps.Profiles,
		sessions:   deps.Sessions,
		states:     deps.States,
		journal:    deps.Journal,
		meditation: deps.Meditation,
		analytics:  deps.Analytics,
		llm:        deps.LLM,
		catalog:    deps.Catalog,
		cfg:        cfg,
		log:        log.With().Str("component", "council").Logger(),
	}
}

// Catalog exposes the meditation stage catalog.
func (s *Service) Catalog() *meditation.Catalog {
	return s.catalog
}

// generate asks the model and falls back to fallback on any failure.
func (s *Service) generate(ctx context.Context, purpose string, req llm.Request, fallback string) (string, bool) {
	if s.llm == nil {
		metrics.RecordLLMFallback(purpose)
		return fallback, false
	}
	text, err := s.llm.Complete(ctx, req)
	if err == nil {
		text = strings.TrimSpace(text)
	}
	if err != nil || text == "" {
		metrics.RecordLLMFallback(purpose)
		s.log.Warn().Err(err).Str("purpose", purpose).Msg("generation failed, using fallback")
		return fallback, false
	}
	return text, true
}

// personalization returns the prompt context for owner, or "" when the profile is unavailable.
func (s *Service) personalization(ctx context.Context, owner string) (*profile.Profile, string) {
	p, err := s.profiles.GetOrCreate(ctx, owner)
	if err != nil {
		s.log.Warn().Err(err).Str("owner", owner).Msg("profile unavailable for personalization")
		return nil, ""
	}
	return p, profile.PersonalizationContext(p)
}
