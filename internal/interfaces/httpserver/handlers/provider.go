package handlers

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/janhq/mirror-server/internal/domain/convstate"
	"github.com/janhq/mirror-server/internal/domain/council"
	"github.com/janhq/mirror-server/internal/domain/journal"
	"github.com/janhq/mirror-server/internal/domain/meditation"
	"github.com/janhq/mirror-server/internal/domain/profile"
	"github.com/janhq/mirror-server/internal/domain/session"
)

// ChatFlows is the part of the council the chat endpoints use.
type ChatFlows interface {
	Chat(ctx context.Context, owner string, in council.ChatInput) (*council.ChatReply, error)
	Reset(ctx context.Context, owner, key string) error
	State(ctx context.Context, owner, key string) (*convstate.AgentState, bool, error)
}

// JournalFlows is the part of the council the journal endpoints use.
type JournalFlows interface {
	IngestJournal(ctx context.Context, owner, content string, tags journal.Tags) (*council.IngestReply, error)
	FollowUp(ctx context.Context, owner, entryID string, answers []council.QA) (*council.FollowUpReply, error)
	JournalSession(ctx context.Context, owner string) (*convstate.Interview, bool, error)
}

// MeditationFlows is the part of the council the meditation endpoints use.
type MeditationFlows interface {
	Catalog() *meditation.Catalog
	StartMeditation(ctx context.Context, owner string, durationSeconds int) (*meditation.Session, bool, error)
	StageContent(ctx context.Context, owner, stageID string) (*council.StageContent, error)
	Reflect(ctx context.Context, owner, sessionID string, in council.ReflectInput) (*council.ReflectReply, error)
}

var (
	_ ChatFlows       = (*council.Service)(nil)
	_ JournalFlows    = (*council.Service)(nil)
	_ MeditationFlows = (*council.Service)(nil)
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Profile    *ProfileHandler
	Chat       *ChatHandler
	Journal    *JournalHandler
	Meditation *MeditationHandler
}

// JournalSettings are the defaults applied to search requests that omit them.
type JournalSettings struct {
	SearchThreshold float64
	SearchLimit     int
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(
	flows *council.Service,
	profiles profile.Service,
	sessions session.Service,
	journalService journal.Service,
	meditationService meditation.Service,
	settings JournalSettings,
	log zerolog.Logger,
) *Provider {
	return &Provider{
		Profile:    NewProfileHandler(profiles, log),
		Chat:       NewChatHandler(flows, sessions, log),
		Journal:    NewJournalHandler(flows, journalService, settings, log),
		Meditation: NewMeditationHandler(flows, meditationService, log),
	}
}
