package profile

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/janhq/mirror-server/internal/utils/platformerrors"
)

// Service describes the profile use cases.
type Service interface {
	GetOrCreate(ctx context.Context, owner string) (*Profile, error)
	Update(ctx context.Context, owner string, params UpdateParams) (*Profile, error)
	ListOwnerIDs(ctx context.Context, afterID string, limit int) ([]string, error)
}

type service struct {
	repo Repository
	log  zerolog.Logger
}

// NewService wires the profile service with its repository.
func NewService(repo Repository, log zerolog.Logger) Service {
	return &service{
		repo: repo,
		log:  log.With().Str("component", "profile-service").Logger(),
	}
}

// GetOrCreate returns the owner's profile, creating the default one on first access.
// Concurrent first accesses converge on the same row.
func (s *service) GetOrCreate(ctx context.Context, owner string) (*Profile, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "owner is required", nil, "")
	}

	existing, err := s.repo.FindByID(ctx, owner)
	if err == nil {
		return existing, nil
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "load profile")
	}

	if err := s.repo.Ensure(ctx, NewDefault(owner)); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "create profile")
	}
	s.log.Info().Str("owner", owner).Msg("created default profile")

	created, err := s.repo.FindByID(ctx, owner)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "reload profile")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, owner string, params UpdateParams) (*Profile, error) {
	p, err := s.GetOrCreate(ctx, owner)
	if err != nil {
		return nil, err
	}

	if params.PreferredMeditationDuration != nil && *params.PreferredMeditationDuration <= 0 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "preferred meditation duration must be positive", nil, "")
	}
	if params.Theme != nil && !params.Theme.Valid() {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "unknown theme", nil, "")
	}

	if params.DisplayName != nil {
		p.DisplayName = strings.TrimSpace(*params.DisplayName)
	}
	if params.FirstName != nil {
		p.FirstName = strings.TrimSpace(*params.FirstName)
	}
	if params.Occupation != nil {
		p.Occupation = strings.TrimSpace(*params.Occupation)
	}
	if params.CurrentChallenges != nil {
		p.CurrentChallenges = strings.TrimSpace(*params.CurrentChallenges)
	}
	if params.PersonalGoals != nil {
		p.PersonalGoals = strings.TrimSpace(*params.PersonalGoals)
	}
	if params.Interests != nil {
		p.Interests = compact(params.Interests)
	}
	if params.StressSources != nil {
		p.StressSources = compact(params.StressSources)
	}
	if params.PreferredMeditationDuration != nil {
		p.PreferredMeditationDuration = *params.PreferredMeditationDuration
	}
	if params.Theme != nil {
		p.Theme = *params.Theme
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "update profile")
	}
	return p, nil
}

func (s *service) ListOwnerIDs(ctx context.Context, afterID string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 100
	}
	ids, err := s.repo.ListIDs(ctx, afterID, limit)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "list owners")
	}
	return ids, nil
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
