package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/janhq/mirror-server/internal/domain/embedding"
)

var embedCheckCmd = &cobra.Command{
	Use:   "embed-check",
	Short: "Validate the configured embedding provider",
	Long: `Embed a sample string with the configured provider and check that the vector has
EMBEDDING_DIMENSION components. The journal schema stores vector(768).`,
	RunE: runEmbedCheck,
}

func runEmbedCheck(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap(cmd)
	if err != nil {
		return err
	}

	client, err := embedding.NewClient(embedding.ProviderConfig{
		Provider:  cfg.EmbeddingProvider,
		BaseURL:   cfg.EmbeddingServiceURL,
		APIKey:    cfg.EmbeddingAPIKey,
		Model:     cfg.EmbeddingModel,
		Dimension: cfg.EmbeddingDimension,
		Timeout:   cfg.EmbeddingTimeout,
	}, embedding.NewNoOpsCache())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.ValidateEmbeddingTimeout)
	defer cancel()
	if err := client.ValidateServer(ctx); err != nil {
		return fmt.Errorf("embedding provider %s failed validation: %w", cfg.EmbeddingProvider, err)
	}

	log.Debug().Str("model", cfg.EmbeddingModel).Msg("sample embedded")
	fmt.Fprintf(cmd.OutOrStdout(), "ok: %s %s returns %d dimensions\n", cfg.EmbeddingProvider, cfg.EmbeddingModel, client.Dimension())
	return nil
}
