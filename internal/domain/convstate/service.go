package convstate

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/janhq/mirror-server/internal/utils/platformerrors"
)

// Service loads and stores conversation state per (owner, session key).
type Service interface {
	Load(ctx context.Context, owner, sessionKey string) (*AgentState, bool, error)
	Save(ctx context.Context, owner, sessionKey string, state *AgentState) error
	Clear(ctx context.Context, owner, sessionKey string) error
}

type service struct {
	repo Repository
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) Service {
	return &service{
		repo: repo,
		log:  log.With().Str("component", "convstate-service").Logger(),
	}
}

// NormalizeKey maps an empty key to DefaultSessionKey.
func NormalizeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return DefaultSessionKey
	}
	return key
}

// Load reports found=false when nothing was saved yet.
func (s *service) Load(ctx context.Context, owner, sessionKey string) (*AgentState, bool, error) {
	rec, err := s.repo.Find(ctx, owner, NormalizeKey(sessionKey))
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return nil, false, nil
		}
		return nil, false, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "load conversation state")
	}

	state, err := Decode(rec.State)
	if err != nil {
		return nil, false, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal, "stored conversation state is unreadable", err, "")
	}
	return state, true, nil
}

func (s *service) Save(ctx context.Context, owner, sessionKey string, state *AgentState) error {
	raw, err := Encode(state)
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "invalid conversation state", err, "")
	}

	rec := &Record{
		Owner:      owner,
		SessionKey: NormalizeKey(sessionKey),
		State:      raw,
		LastAgent:  state.CurrentAgent,
		UpdatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Upsert(ctx, rec); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "save conversation state")
	}
	return nil
}

// Clear is a no-op when no state exists.
func (s *service) Clear(ctx context.Context, owner, sessionKey string) error {
	if err := s.repo.Delete(ctx, owner, NormalizeKey(sessionKey)); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "clear conversation state")
	}
	return nil
}
