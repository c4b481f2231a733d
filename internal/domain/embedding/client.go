package embedding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/janhq/mirror-server/internal/metrics"
)

// ErrDimensionMismatch is returned when the provider answers with vectors of the wrong size.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// Client produces dense embeddings for text.
type Client interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedSingle(ctx context.Context, text string) ([]float32, error)
	Dimension() int
	ValidateServer(ctx context.Context) error
}

// batchFunc calls the provider for texts that missed the cache.
type batchFunc func(ctx context.Context, texts []string) ([][]float32, error)

// cachedEmbed serves texts from cache and sends the misses to fetch in a single batch.
func cachedEmbed(ctx context.Context, cache Cache, model string, dimension int, texts []string, fetch batchFunc) ([][]float32, error) {
	results := make([][]float32, len(texts))
	var missIdx []int
	var missTexts []string

	for i, text := range texts {
		if cached, found := cache.Get(ctx, CacheKey(model, text)); found {
			metrics.RecordCacheHit(cache.Name())
			results[i] = cached
			continue
		}
		metrics.RecordCacheMiss(cache.Name())
		missIdx = append(missIdx, i)
		missTexts = append(missTexts, text)
	}

	if len(missTexts) == 0 {
		return results, nil
	}

	ctx, span := otel.Tracer("mirror-embedding").Start(ctx, "embedding.fetch")
	defer span.End()
	span.SetAttributes(
		attribute.String("embedding.model", model),
		attribute.Int("embedding.inputs", len(missTexts)),
		attribute.Int("embedding.cache_hits", len(texts)-len(missTexts)),
	)

	start := time.Now()
	vectors, err := fetch(ctx, missTexts)
	metrics.RecordEmbedding(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if len(vectors) != len(missTexts) {
		return nil, fmt.Errorf("embedding provider returned %d vectors for %d inputs", len(vectors), len(missTexts))
	}

	for i, idx := range missIdx {
		if dimension > 0 && len(vectors[i]) != dimension {
			return nil, fmt.Errorf("%w: expected %d, got %d", ErrDimensionMismatch, dimension, len(vectors[i]))
		}
		results[idx] = vectors[i]
		cache.Set(ctx, CacheKey(model, missTexts[i]), vectors[i])
	}

	return results, nil
}

func single(vectors [][]float32, err error) ([]float32, error) {
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embedding provider returned no vectors")
	}
	return vectors[0], nil
}
