package meditation

import (
	"context"
	"errors"
	"time"
)

// ErrIncompleteSessionExists is returned by Create when the owner already has an
// incomplete session.
var ErrIncompleteSessionExists = errors.New("incomplete meditation session already exists")

type Repository interface {
	FindIncomplete(ctx context.Context, owner string) (*Session, error)
	Create(ctx context.Context, s *Session) error
	FindByID(ctx context.Context, owner, id string) (*Session, error)
	// AdvanceStage sets stage_reached when the session is incomplete and its current stage
	// is one of from. It reports rows changed.
	AdvanceStage(ctx context.Context, owner, id string, to Stage, from []Stage) (int64, error)
	// Complete flips completed once and reports rows changed.
	Complete(ctx context.Context, owner, id string, at time.Time) (int64, error)

	CreateReflection(ctx context.Context, r *Reflection) error
	ListReflections(ctx context.Context, sessionID string) ([]Reflection, error)
}
