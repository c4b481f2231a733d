package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/janhq/mirror-server/internal/utils/platformerrors"
)

// Service is the chat session store.
type Service interface {
	GetOrCreateOpenSession(ctx context.Context, owner string, params OpenParams) (*Session, error)
	FindOpenSession(ctx context.Context, owner string) (*Session, bool, error)
	Get(ctx context.Context, owner, sessionID string) (*Session, error)
	AppendMessage(ctx context.Context, owner, sessionID string, role Role, content string, personaID *string) (*Message, error)
	EndSession(ctx context.Context, owner, sessionID string) (*Session, error)
	ListHistory(ctx context.Context, owner, sessionID string) ([]Message, error)
}

type service struct {
	repo Repository
	log  zerolog.Logger
	now  func() time.Time
}

func NewService(repo Repository, log zerolog.Logger) Service {
	return &service{
		repo: repo,
		log:  log.With().Str("component", "session-service").Logger(),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// GetOrCreateOpenSession returns the open session, creating it if needed. When two callers
// race, storage admits the first insert and the loser reloads the winner's session.
func (s *service) GetOrCreateOpenSession(ctx context.Context, owner string, params OpenParams) (*Session, error) {
	existing, found, err := s.FindOpenSession(ctx, owner)
	if err != nil {
		return nil, err
	}
	if found {
		return existing, nil
	}

	created := &Session{
		ID:               uuid.NewString(),
		Owner:            owner,
		MentorID:         trimmed(params.MentorID),
		SituationContext: trimmed(params.Situation),
		StartedAt:        s.now(),
	}

	err = s.repo.Create(ctx, created)
	if err == nil {
		s.log.Debug().Str("owner", owner).Str("session_id", created.ID).Msg("opened chat session")
		return created, nil
	}
	if !errors.Is(err, ErrOpenSessionExists) {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "create chat session")
	}

	winner, found, err := s.FindOpenSession(ctx, owner)
	if err != nil {
		return nil, err
	}
	if !found {
		// the winner was ended between our insert and reload
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict, "open session changed concurrently, retry", err, "")
	}
	return winner, nil
}

// FindOpenSession reports the open session without creating one.
func (s *service) FindOpenSession(ctx context.Context, owner string) (*Session, bool, error) {
	existing, err := s.repo.FindOpen(ctx, owner)
	if err == nil {
		return existing, true, nil
	}
	if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		return nil, false, nil
	}
	return nil, false, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "find open session")
}

func (s *service) Get(ctx context.Context, owner, sessionID string) (*Session, error) {
	sess, err := s.repo.FindByID(ctx, owner, sessionID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "get chat session")
	}
	return sess, nil
}

func (s *service) AppendMessage(ctx context.Context, owner, sessionID string, role Role, content string, personaID *string) (*Message, error) {
	if !role.Valid() {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "role must be user or assistant", nil, "")
	}
	if strings.TrimSpace(content) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "message content is required", nil, "")
	}

	sess, err := s.Get(ctx, owner, sessionID)
	if err != nil {
		return nil, err
	}
	if !sess.IsOpen() {
		return nil, errSessionEnded(ctx)
	}

	msg := &Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		PersonaID: trimmed(personaID),
		CreatedAt: s.now(),
	}
	inserted, err := s.repo.AppendMessage(ctx, msg)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "append message")
	}
	if inserted == 0 {
		return nil, errSessionEnded(ctx)
	}
	return msg, nil
}

// EndSession is idempotent: ending an ended session returns it unchanged.
func (s *service) EndSession(ctx context.Context, owner, sessionID string) (*Session, error) {
	sess, err := s.Get(ctx, owner, sessionID)
	if err != nil {
		return nil, err
	}
	if !sess.IsOpen() {
		return sess, nil
	}

	if _, err := s.repo.End(ctx, owner, sessionID, s.now()); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "end chat session")
	}
	return s.Get(ctx, owner, sessionID)
}

func (s *service) ListHistory(ctx context.Context, owner, sessionID string) ([]Message, error) {
	if _, err := s.Get(ctx, owner, sessionID); err != nil {
		return nil, err
	}
	messages, err := s.repo.ListMessages(ctx, sessionID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "list messages")
	}
	return messages, nil
}

func errSessionEnded(ctx context.Context) error {
	return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict, "chat session has ended", nil, "")
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
