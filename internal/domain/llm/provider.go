package llm

import (
	"context"
	"errors"
)

// ErrEmptyCompletion is returned when the model answered with no text.
var ErrEmptyCompletion = errors.New("llm returned no choices")

// Request is a single turn completion request.
type Request struct {
	System      string
	Prompt      string
	Temperature float32
	MaxTokens   int
}

// Provider generates text.
type Provider interface {
	Complete(ctx context.Context, req Request) (string, error)
}
