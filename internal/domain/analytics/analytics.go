package analytics

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/janhq/mirror-server/internal/metrics"
	"github.com/janhq/mirror-server/internal/utils/platformerrors"
)

// Selection records which persona answered. Rows are never updated or deleted.
type Selection struct {
	ID              string
	Owner           string
	PersonaID       string
	ContextKeywords []string
	SessionID       *string
	CreatedAt       time.Time
}

type Repository interface {
	Insert(ctx context.Context, s *Selection) error
}

// Sink is the append-only analytics writer.
type Sink interface {
	Record(ctx context.Context, s Selection) error
}

type sink struct {
	repo Repository
}

func NewSink(repo Repository) Sink {
	return &sink{repo: repo}
}

func (k *sink) Record(ctx context.Context, s Selection) error {
	if strings.TrimSpace(s.PersonaID) == "" {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "persona id is required", nil, "")
	}

	s.ID = uuid.NewString()
	s.CreatedAt = time.Now().UTC()
	if s.ContextKeywords == nil {
		s.ContextKeywords = []string{}
	}

	if err := k.repo.Insert(ctx, &s); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "record persona selection")
	}
	metrics.RecordPersonaSelection(s.PersonaID)
	return nil
}
