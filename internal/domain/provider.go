package domain

import (
	"github.com/google/wire"

	"github.com/janhq/mirror-server/internal/config"
	"github.com/janhq/mirror-server/internal/domain/analytics"
	"github.com/janhq/mirror-server/internal/domain/convstate"
	"github.com/janhq/mirror-server/internal/domain/council"
	"github.com/janhq/mirror-server/internal/domain/journal"
	"github.com/janhq/mirror-server/internal/domain/meditation"
	"github.com/janhq/mirror-server/internal/domain/profile"
	"github.com/janhq/mirror-server/internal/domain/session"
)

// ServiceProvider provides all domain services
var ServiceProvider = wire.NewSet(
	// Stores
	profile.NewService,
	session.NewService,
	convstate.NewService,
	meditation.NewService,
	meditation.LoadCatalog,
	analytics.NewSink,
	ProvideJournalConfig,
	journal.NewService,

	// Orchestration
	wire.Struct(new(council.Deps), "*"),
	ProvideCouncilConfig,
	council.NewService,
)

func ProvideJournalConfig(cfg *config.Config) journal.Config {
	return journal.Config{
		EmbeddingTimeout: cfg.EmbeddingTimeout,
	}
}

func ProvideCouncilConfig(cfg *config.Config) council.Config {
	return council.Config{
		RecallThreshold:   cfg.RecallMatchThreshold,
		RecallTopK:        cfg.RecallTopK,
		StateHistoryLimit: cfg.StateHistoryLimit,
	}
}
