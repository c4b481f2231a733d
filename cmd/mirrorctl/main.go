package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/janhq/mirror-server/internal/config"
	"github.com/janhq/mirror-server/internal/infrastructure/database"
	"github.com/janhq/mirror-server/internal/infrastructure/logger"
)

var version = "1.0.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mirrorctl",
	Short: "Operator tool for the mirror server",
	Long: `mirrorctl runs maintenance tasks against the mirror server's database and providers.

It reads the same environment variables (and .env file) as the server.

Examples:
  mirrorctl migrate up
  mirrorctl archive --older-than 720h
  mirrorctl archive --owner 6f9619ff-8b86-d011-b42d-00c04fc964ff --older-than 2160h
  mirrorctl embed-check
  mirrorctl config show`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		envFile, _ := cmd.Flags().GetString("env-file")
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Overload(envFile); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", envFile, err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(embedCheckCmd)
	rootCmd.AddCommand(configCmd)

	rootCmd.PersistentFlags().String("env-file", ".env", "Environment file to load before reading config")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
}

// bootstrap loads config and a logger honouring --verbose.
func bootstrap(cmd *cobra.Command) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	level := cfg.LogLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = "debug"
	}
	log, err := logger.New(level, "console")
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, log, nil
}

func openDatabase(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	return database.Connect(database.Config{
		DatabaseURL: cfg.DatabaseURL,
		MaxIdle:     1,
		MaxOpen:     2,
		MaxLifetime: cfg.DBConnLifetime,
		LogLevel:    logger.GormLevel(cfg.DBLogLevel),
	}, log)
}
