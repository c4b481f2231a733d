package embedding

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

// TEIClient talks to a Hugging Face text-embeddings-inference server.
type TEIClient struct {
	client    *resty.Client
	model     string
	dimension int
	cache     Cache
}

type EmbedRequest struct {
	Inputs    []string `json:"inputs"`
	Normalize bool     `json:"normalize"`
	Truncate  bool     `json:"truncate"`
}

type ModelInfo struct {
	ModelID string `json:"model_id"`
}

func NewTEIClient(baseURL, model string, dimension int, timeout time.Duration, cache Cache) *TEIClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if cache == nil {
		cache = NewNoOpsCache()
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	return &TEIClient{
		client:    client,
		model:     model,
		dimension: dimension,
		cache:     cache,
	}
}

func (c *TEIClient) Dimension() int { return c.dimension }

func (c *TEIClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return cachedEmbed(ctx, c.cache, c.model, c.dimension, texts, c.fetch)
}

func (c *TEIClient) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	return single(c.Embed(ctx, []string{text}))
}

func (c *TEIClient) fetch(ctx context.Context, texts []string) ([][]float32, error) {
	var vectors [][]float32
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(EmbedRequest{Inputs: texts, Normalize: true, Truncate: true}).
		SetResult(&vectors).
		Post("/embed")
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("embedding service returned status %d", resp.StatusCode())
	}
	return vectors, nil
}

func (c *TEIClient) ValidateServer(ctx context.Context) error {
	resp, err := c.client.R().SetContext(ctx).Get("/health")
	if err != nil || resp.IsError() {
		return fmt.Errorf("embedding server not healthy")
	}

	var info ModelInfo
	resp, err = c.client.R().SetContext(ctx).SetResult(&info).Get("/info")
	if err != nil {
		return fmt.Errorf("failed to get model info: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("model info returned status %d", resp.StatusCode())
	}
	if c.model != "" && info.ModelID != c.model {
		log.Warn().Str("expected", c.model).Str("model", info.ModelID).Msg("Embedding server runs a different model")
	}

	vectors, err := c.fetch(ctx, []string{"test"})
	if err != nil {
		return fmt.Errorf("test embedding failed: %w", err)
	}
	if len(vectors) == 0 || len(vectors[0]) != c.dimension {
		got := 0
		if len(vectors) > 0 {
			got = len(vectors[0])
		}
		return fmt.Errorf("%w: expected %d, got %d", ErrDimensionMismatch, c.dimension, got)
	}
	return nil
}
