package profile

import "context"

// Repository exposes data access for user profiles.
type Repository interface {
	// Ensure inserts the profile unless a row with the same id already exists.
	Ensure(ctx context.Context, p *Profile) error
	FindByID(ctx context.Context, id string) (*Profile, error)
	Update(ctx context.Context, p *Profile) error
	// ListIDs pages owner ids in ascending order, starting after afterID.
	ListIDs(ctx context.Context, afterID string, limit int) ([]string, error)
}
