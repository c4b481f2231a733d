package convstate

import (
	"context"
	"time"
)

// Record is the stored row behind an AgentState.
type Record struct {
	Owner      string
	SessionKey string
	State      []byte
	LastAgent  string
	UpdatedAt  time.Time
}

type Repository interface {
	Find(ctx context.Context, owner, sessionKey string) (*Record, error)
	// Upsert replaces the row for (owner, session key). The last write wins.
	Upsert(ctx context.Context, r *Record) error
	Delete(ctx context.Context, owner, sessionKey string) error
}
