package interfaces

import (
	"context"

	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/janhq/mirror-server/internal/config"
	"github.com/janhq/mirror-server/internal/infrastructure/cache"
	"github.com/janhq/mirror-server/internal/infrastructure/database"
	"github.com/janhq/mirror-server/internal/interfaces/httpserver"
	"github.com/janhq/mirror-server/internal/interfaces/httpserver/handlers"
)

var InterfacesProvider = wire.NewSet(
	ProvideJournalSettings,
	ProvideReadiness,
	handlers.NewProvider,
	httpserver.New,
)

func ProvideJournalSettings(cfg *config.Config) handlers.JournalSettings {
	return handlers.JournalSettings{
		SearchThreshold: cfg.RecallMatchThreshold,
		SearchLimit:     cfg.RecallTopK,
	}
}

// ProvideReadiness checks postgres and, when configured, redis.
func ProvideReadiness(db *gorm.DB, rc *cache.RedisCache) httpserver.ReadinessCheck {
	return func(ctx context.Context) error {
		if err := database.Ping(ctx, db); err != nil {
			return err
		}
		if rc != nil {
			return rc.HealthCheck(ctx)
		}
		return nil
	}
}
