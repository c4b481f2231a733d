package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel/attribute"

	domainllm "github.com/janhq/mirror-server/internal/domain/llm"
	"github.com/janhq/mirror-server/internal/infrastructure/observability"
)

const tracerName = "mirror-llm"

// Config configures the OpenAI compatible chat completion endpoint.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
	// Sanitizer scrubs prompts recorded on spans. Nil records nothing readable.
	Sanitizer *observability.Sanitizer
}

// Client implements the domain llm.Provider over go-openai.
type Client struct {
	client *openai.Client
	model     string
	sanitizer *observability.Sanitizer
	log       zerolog.Logger
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	clientCfg.HTTPClient = &http.Client{Timeout: timeout}

	return &Client{
		client: openai.NewClientWithConfig(clientCfg),
		model:     cfg.Model,
		sanitizer: cfg.Sanitizer,
		log:       log.With().Str("component", "llm-client").Logger(),
	}
}

func (c *Client) Complete(ctx context.Context, req domainllm.Request) (string, error) {
	ctx, span := observability.StartSpan(ctx, tracerName, "llm.complete")
	defer span.End()
	observability.AddSpanAttributes(ctx,
		attribute.String("llm.model", c.model),
		attribute.String("llm.prompt", c.sanitizer.Text(req.Prompt)),
	)

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.Prompt})

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		observability.RecordError(ctx, err)
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", domainllm.ErrEmptyCompletion
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", domainllm.ErrEmptyCompletion
	}

	observability.AddSpanAttributes(ctx,
		attribute.Int("llm.total_tokens", resp.Usage.TotalTokens),
		attribute.String("llm.completion", c.sanitizer.Text(text)),
	)
	c.log.Debug().
		Str("model", c.model).
		Int("total_tokens", resp.Usage.TotalTokens).
		Dur("duration", time.Since(start)).
		Msg("completion finished")
	return text, nil
}
