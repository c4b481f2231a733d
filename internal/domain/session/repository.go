package session

import (
	"context"
	"errors"
	"time"
)

// ErrOpenSessionExists is returned by Create when the owner already has an open session.
var ErrOpenSessionExists = errors.New("open session already exists")

// Repository persists sessions and messages.
type Repository interface {
	// FindOpen returns the open session of owner, or a not found error.
	FindOpen(ctx context.Context, owner string) (*Session, error)
	// Create fails with ErrOpenSessionExists when the open session slot is taken.
	Create(ctx context.Context, s *Session) error
	FindByID(ctx context.Context, owner, id string) (*Session, error)
	// End stamps ended_at only while it is null and reports rows changed.
	End(ctx context.Context, owner, id string, at time.Time) (int64, error)

	// AppendMessage inserts a message while the session is still open and reports rows
	// inserted.
	AppendMessage(ctx context.Context, m *Message) (int64, error)
	ListMessages(ctx context.Context, sessionID string) ([]Message, error)
}
