package meditation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/janhq/mirror-server/internal/utils/platformerrors"
)

// StartParams configures StartOrResume. DefaultDuration is used when DurationSeconds is
// not positive.
type StartParams struct {
	DurationSeconds int
	DefaultDuration int
}

// Service is the meditation store.
type Service interface {
	StartOrResume(ctx context.Context, owner string, params StartParams) (*Session, bool, error)
	Get(ctx context.Context, owner, sessionID string) (*Session, error)
	AdvanceStage(ctx context.Context, owner, sessionID string, stage Stage) (*Session, error)
	Complete(ctx context.Context, owner, sessionID string) (*Session, error)
	AddReflection(ctx context.Context, owner, sessionID, text, insight string, emotionalState *string) (*Reflection, error)
	ListReflections(ctx context.Context, owner, sessionID string) ([]Reflection, error)
}

type service struct {
	repo Repository
	log  zerolog.Logger
	now  func() time.Time
}

func NewService(repo Repository, log zerolog.Logger) Service {
	return &service{
		repo: repo,
		log:  log.With().Str("component", "meditation-service").Logger(),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// StartOrResume returns the incomplete session if there is one, resumed=true.
func (s *service) StartOrResume(ctx context.Context, owner string, params StartParams) (*Session, bool, error) {
	existing, found, err := s.findIncomplete(ctx, owner)
	if err != nil {
		return nil, false, err
	}
	if found {
		return existing, true, nil
	}

	duration := params.DurationSeconds
	if duration <= 0 {
		duration = params.DefaultDuration
	}
	if duration <= 0 {
		return nil, false, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "duration must be positive", nil, "")
	}

	created := &Session{
		ID:              uuid.NewString(),
		Owner:           owner,
		DurationSeconds: duration,
		StageReached:    StageWelcome,
		StartedAt:       s.now(),
	}
	err = s.repo.Create(ctx, created)
	if err == nil {
		return created, false, nil
	}
	if !errors.Is(err, ErrIncompleteSessionExists) {
		return nil, false, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "create meditation session")
	}

	winner, found, err := s.findIncomplete(ctx, owner)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict, "meditation session changed concurrently, retry", err, "")
	}
	return winner, true, nil
}

func (s *service) findIncomplete(ctx context.Context, owner string) (*Session, bool, error) {
	existing, err := s.repo.FindIncomplete(ctx, owner)
	if err == nil {
		return existing, true, nil
	}
	if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		return nil, false, nil
	}
	return nil, false, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "find incomplete meditation session")
}

func (s *service) Get(ctx context.Context, owner, sessionID string) (*Session, error) {
	sess, err := s.repo.FindByID(ctx, owner, sessionID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "get meditation session")
	}
	return sess, nil
}

// AdvanceStage moves the session forward. Asking for an earlier or equal stage leaves it
// untouched.
func (s *service) AdvanceStage(ctx context.Context, owner, sessionID string, stage Stage) (*Session, error) {
	if !stage.Valid() {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "unknown meditation stage", nil, "")
	}

	sess, err := s.Get(ctx, owner, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Completed {
		return nil, errCompleted(ctx)
	}
	if stage.Rank() <= sess.StageReached.Rank() {
		return sess, nil
	}

	rows, err := s.repo.AdvanceStage(ctx, owner, sessionID, stage, stage.Before())
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "advance meditation stage")
	}

	sess, err = s.Get(ctx, owner, sessionID)
	if err != nil {
		return nil, err
	}
	if rows == 0 && sess.Completed {
		return nil, errCompleted(ctx)
	}
	return sess, nil
}

// Complete is idempotent.
func (s *service) Complete(ctx context.Context, owner, sessionID string) (*Session, error) {
	sess, err := s.Get(ctx, owner, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Completed {
		return sess, nil
	}

	if _, err := s.repo.Complete(ctx, owner, sessionID, s.now()); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "complete meditation session")
	}
	return s.Get(ctx, owner, sessionID)
}

// AddReflection does not require the session to be completed.
func (s *service) AddReflection(ctx context.Context, owner, sessionID, text, insight string, emotionalState *string) (*Reflection, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "reflection content is required", nil, "")
	}
	if _, err := s.Get(ctx, owner, sessionID); err != nil {
		return nil, err
	}

	if emotionalState != nil {
		trimmed := strings.TrimSpace(*emotionalState)
		emotionalState = &trimmed
		if trimmed == "" {
			emotionalState = nil
		}
	}

	r := &Reflection{
		ID:             uuid.NewString(),
		SessionID:      sessionID,
		Content:        text,
		Insight:        strings.TrimSpace(insight),
		EmotionalState: emotionalState,
		CreatedAt:      s.now(),
	}
	if err := s.repo.CreateReflection(ctx, r); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "create reflection")
	}
	return r, nil
}

func (s *service) ListReflections(ctx context.Context, owner, sessionID string) ([]Reflection, error) {
	if _, err := s.Get(ctx, owner, sessionID); err != nil {
		return nil, err
	}
	reflections, err := s.repo.ListReflections(ctx, sessionID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "list reflections")
	}
	return reflections, nil
}

func errCompleted(ctx context.Context) error {
	return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict, "meditation session already completed", nil, "")
}
