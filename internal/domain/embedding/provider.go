package embedding

import (
	"fmt"
	"time"
)

const (
	ProviderOpenAI = "openai"
	ProviderTEI    = "tei"
)

// ProviderConfig selects and configures an embedding backend.
type ProviderConfig struct {
	Provider  string
	BaseURL   string
	APIKey    string
	Model     string
	Dimension int
	Timeout   time.Duration
}

// NewClient returns the client for cfg.Provider sharing cache.
func NewClient(cfg ProviderConfig, cache Cache) (Client, error) {
	switch cfg.Provider {
	case ProviderOpenAI, "":
		return NewOpenAIClient(OpenAIConfig{
			BaseURL:   cfg.BaseURL,
			APIKey:    cfg.APIKey,
			Model:     cfg.Model,
			Dimension: cfg.Dimension,
			Timeout:   cfg.Timeout,
		}, cache), nil
	case ProviderTEI:
		return NewTEIClient(cfg.BaseURL, cfg.Model, cfg.Dimension, cfg.Timeout, cache), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Provider)
	}
}
