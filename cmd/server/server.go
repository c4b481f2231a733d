package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/janhq/mirror-server/internal/config"
	"github.com/janhq/mirror-server/internal/infrastructure/crontab"
	"github.com/janhq/mirror-server/internal/infrastructure/observability"
	"github.com/janhq/mirror-server/internal/interfaces/httpserver"
)

type Application struct {
	httpServer *httpserver.HttpServer
	crontab    *crontab.Crontab
	cfg        *config.Config
	log        zerolog.Logger
}

// @title Mirror API
// @version 1.0
// @description Journal, mentor chat and guided meditation service with semantic recall over past entries.
// @contact.name Jan Server Team
// @contact.url https://github.com/janhq/mirror-server
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func (application *Application) Start(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return application.crontab.Run(ctx)
	})
	eg.Go(func() error {
		return application.httpServer.Run(ctx)
	})
	return eg.Wait()
}

func main() {
	loadEnvFiles()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, cleanup, err := CreateApplication(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("create application")
	}
	defer cleanup()

	otelShutdown, err := observability.Setup(ctx, application.cfg, application.log)
	if err != nil {
		application.log.Error().Err(err).Msg("initialize observability")
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := otelShutdown(shutdownCtx); err != nil {
				application.log.Error().Err(err).Msg("shutdown telemetry")
			}
		}()
	}

	if err := application.Start(ctx); err != nil {
		application.log.Error().Err(err).Msg("application stopped with error")
		return
	}
	application.log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
