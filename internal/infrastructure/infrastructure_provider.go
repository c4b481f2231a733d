package infrastructure

import (
	"context"
	"errors"
	"time"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/janhq/mirror-server/internal/config"
	"github.com/janhq/mirror-server/internal/domain/embedding"
	"github.com/janhq/mirror-server/internal/domain/journal"
	domainllm "github.com/janhq/mirror-server/internal/domain/llm"
	"github.com/janhq/mirror-server/internal/domain/profile"
	"github.com/janhq/mirror-server/internal/infrastructure/auth"
	"github.com/janhq/mirror-server/internal/infrastructure/cache"
	"github.com/janhq/mirror-server/internal/infrastructure/crontab"
	"github.com/janhq/mirror-server/internal/infrastructure/database"
	"github.com/janhq/mirror-server/internal/infrastructure/database/repository"
	"github.com/janhq/mirror-server/internal/infrastructure/llm"
	"github.com/janhq/mirror-server/internal/infrastructure/logger"
	"github.com/janhq/mirror-server/internal/infrastructure/observability"
)

// ProvideConfig loads and provides the application configuration
func ProvideConfig() (*config.Config, error) {
	return config.Load()
}

// ProvideLogger builds the root logger from config.
func ProvideLogger(cfg *config.Config) (zerolog.Logger, error) {
	return logger.New(cfg.LogLevel, cfg.LogFormat)
}

// ProvideDatabase connects to postgres and applies migrations when DB_AUTO_MIGRATE is set.
func ProvideDatabase(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*gorm.DB, func(), error) {
	db, err := database.Connect(database.Config{
		DatabaseURL: cfg.DatabaseURL,
		MaxIdle:     cfg.DBMaxIdleConns,
		MaxOpen:     cfg.DBMaxOpenConns,
		MaxLifetime: cfg.DBConnLifetime,
		LogLevel:    logger.GormLevel(cfg.DBLogLevel),
	}, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := database.Close(db); err != nil {
			log.Error().Err(err).Msg("close database")
		}
	}

	if cfg.DBAutoMigrate {
		log.Info().Msg("Running database migrations...")
		if err := database.AutoMigrate(ctx, db, log); err != nil {
			cleanup()
			return nil, nil, err
		}
		log.Info().Msg("Database migrations completed successfully")
	}
	return db, cleanup, nil
}

// ProvideRedis connects to redis when REDIS_URL is set. It returns nil otherwise.
func ProvideRedis(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*cache.RedisCache, func(), error) {
	if cfg.RedisURL == "" {
		return nil, func() {}, nil
	}
	rc, err := cache.NewRedisCache(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	return rc, func() {
		if err := rc.Close(); err != nil {
			log.Error().Err(err).Msg("close redis")
		}
	}, nil
}

// ProvideEmbeddingCache builds the vector cache named by EMBEDDING_CACHE_TYPE.
func ProvideEmbeddingCache(cfg *config.Config, rc *cache.RedisCache) (embedding.Cache, error) {
	var store embedding.ByteStore
	if rc != nil {
		store = rc
	}
	return embedding.NewCache(embedding.CacheConfig{
		Type:      cfg.EmbeddingCacheType,
		KeyPrefix: cfg.EmbeddingCacheKeyPrefix,
		MaxSize:   cfg.EmbeddingCacheMaxSize,
		TTL:       cfg.EmbeddingCacheTTL,
	}, store)
}

// ProvideEmbeddingClient builds the embedding provider and, when configured, checks that
// it answers with vectors of the configured dimension.
func ProvideEmbeddingClient(ctx context.Context, cfg *config.Config, c embedding.Cache, log zerolog.Logger) (embedding.Client, error) {
	client, err := embedding.NewClient(embedding.ProviderConfig{
		Provider:  cfg.EmbeddingProvider,
		BaseURL:   cfg.EmbeddingServiceURL,
		APIKey:    cfg.EmbeddingAPIKey,
		Model:     cfg.EmbeddingModel,
		Dimension: cfg.EmbeddingDimension,
		Timeout:   cfg.EmbeddingTimeout,
	}, c)
	if err != nil {
		return nil, err
	}

	if cfg.ValidateEmbedding {
		validateCtx, cancel := context.WithTimeout(ctx, cfg.ValidateEmbeddingTimeout)
		defer cancel()
		if err := client.ValidateServer(validateCtx); err != nil {
			return nil, err
		}
		log.Info().Str("provider", cfg.EmbeddingProvider).Int("dimension", cfg.EmbeddingDimension).Msg("embedding provider validated")
	}
	return client, nil
}

// ProvideLLM builds the chat completion client.
func ProvideLLM(cfg *config.Config, log zerolog.Logger) domainllm.Provider {
	return llm.NewClient(llm.Config{
		BaseURL: cfg.LLMBaseURL,
		APIKey:  cfg.LLMAPIKey,
		Model:   cfg.LLMModel,
		Timeout: cfg.LLMTimeout,
		Sanitizer: observability.NewSanitizer(
			observability.ParseContentLevel(cfg.TraceContentLevel),
			cfg.TraceContentSalt,
		),
	}, log)
}

// ProvideAuthValidator builds the JWT validator.
func ProvideAuthValidator(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*auth.Validator, func(), error) {
	v, err := auth.NewValidator(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return v, v.Close, nil
}

// ProvideArchiveLock serializes the archive job across replicas through redis. Without
// redis every replica runs the job.
func ProvideArchiveLock(rc *cache.RedisCache) crontab.LockFunc {
	if rc == nil {
		return nil
	}
	return func(ctx context.Context, name string, ttl time.Duration, fn func() error) error {
		err := cache.WithLock(ctx, rc, name, ttl, fn)
		if errors.Is(err, cache.ErrLockHeld) {
			return crontab.ErrSkipped
		}
		return err
	}
}

// ProvideCrontab builds the scheduled jobs.
func ProvideCrontab(cfg *config.Config, profiles profile.Service, journalService journal.Service, lock crontab.LockFunc, log zerolog.Logger) *crontab.Crontab {
	return crontab.NewCrontab(profiles, journalService, lock, crontab.Config{
		ArchiveAfter: cfg.JournalArchiveAfter,
		Schedule:     cfg.JournalArchiveSchedule,
	}, log)
}

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	ProvideConfig,
	ProvideLogger,
	ProvideDatabase,
	ProvideRedis,
	ProvideEmbeddingCache,
	ProvideEmbeddingClient,
	ProvideLLM,
	ProvideAuthValidator,
	ProvideArchiveLock,
	ProvideCrontab,
	repository.RepositoryProvider,
)
