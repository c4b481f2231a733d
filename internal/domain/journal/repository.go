package journal

import (
	"context"
	"time"
)

// Repository persists entries and followups. Every lookup is scoped by owner.
type Repository interface {
	Create(ctx context.Context, e *Entry) error
	FindByID(ctx context.Context, owner, id string) (*Entry, error)
	// SearchSimilar returns non-archived embedded entries with similarity above threshold,
	// closest first.
	SearchSimilar(ctx context.Context, owner string, vector []float32, threshold float64, limit int) ([]ScoredEntry, error)
	FindRecent(ctx context.Context, owner string, limit int) ([]Entry, error)
	ArchiveBefore(ctx context.Context, owner string, cutoff time.Time) (int64, error)

	CreateFollowup(ctx context.Context, f *Followup) error
	FindFollowup(ctx context.Context, owner, id string) (*Followup, error)
	// LinkFollowup sets synthesized_entry_id only while it is null and reports rows changed.
	LinkFollowup(ctx context.Context, owner, followupID, entryID string) (int64, error)
}
