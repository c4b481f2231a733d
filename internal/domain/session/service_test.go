package session_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/mirror-server/internal/domain/session"
	"github.com/janhq/mirror-server/internal/utils/platformerrors"
)

const owner = "00000000-0000-0000-0000-000000000001"

// memoryRepository enforces the one-open-session rule the way the partial unique index does.
type memoryRepository struct {
	mu         sync.Mutex
	sessions   map[string]*session.Session
	messages   []session.Message
	seq        int64
	staleReads int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{sessions: map[string]*session.Session{}}
}

func (m *memoryRepository) FindOpen(ctx context.Context, owner string) (*session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.staleReads > 0 {
		m.staleReads--
		return nil, notFound(ctx)
	}
	for _, s := range m.sessions {
		if s.Owner == owner && s.IsOpen() {
			copied := *s
			return &copied, nil
		}
	}
	return nil, notFound(ctx)
}

func (m *memoryRepository) Create(_ context.Context, s *session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.sessions {
		if existing.Owner == s.Owner && existing.IsOpen() {
			return session.ErrOpenSessionExists
		}
	}
	copied := *s
	m.sessions[s.ID] = &copied
	return nil
}

func (m *memoryRepository) FindByID(ctx context.Context, owner, id string) (*session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok || s.Owner != owner {
		return nil, notFound(ctx)
	}
	copied := *s
	return &copied, nil
}

func (m *memoryRepository) End(_ context.Context, owner, id string, at time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok || s.Owner != owner || !s.IsOpen() {
		return 0, nil
	}
	s.EndedAt = &at
	return 1, nil
}

func (m *memoryRepository) AppendMessage(_ context.Context, msg *session.Message) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[msg.SessionID]
	if !ok || !s.IsOpen() {
		return 0, nil
	}
	m.seq++
	msg.Seq = m.seq
	m.messages = append(m.messages, *msg)
	return 1, nil
}

func (m *memoryRepository) ListMessages(_ context.Context, sessionID string) ([]session.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []session.Message
	for _, msg := range m.messages {
		if msg.SessionID == sessionID {
			out = append(out, msg)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}

func (m *memoryRepository) openCount(owner string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.sessions {
		if s.Owner == owner && s.IsOpen() {
			n++
		}
	}
	return n
}

func notFound(ctx context.Context) error {
	return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "chat session not found", nil, "")
}

func TestConcurrentGetOrCreateYieldsOneSession(t *testing.T) {
	repo := newMemoryRepository()
	svc := session.NewService(repo, zerolog.Nop())

	const callers = 10
	ids := make([]string, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := svc.GetOrCreateOpenSession(context.Background(), owner, session.OpenParams{})
			if assert.NoError(t, err) {
				ids[i] = s.ID
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, repo.openCount(owner))
	for _, id := range ids[1:] {
		assert.Equal(t, ids[0], id)
	}
}

func TestLosingWriterReloadsWinner(t *testing.T) {
	repo := newMemoryRepository()
	svc := session.NewService(repo, zerolog.Nop())
	ctx := context.Background()

	winner, err := svc.GetOrCreateOpenSession(ctx, owner, session.OpenParams{})
	require.NoError(t, err)

	// the next caller reads before the winner's insert is visible
	repo.staleReads = 1
	loser, err := svc.GetOrCreateOpenSession(ctx, owner, session.OpenParams{})
	require.NoError(t, err)
	assert.Equal(t, winner.ID, loser.ID)
	assert.Equal(t, 1, repo.openCount(owner))
}

func TestEndSessionIsIdempotent(t *testing.T) {
	svc := session.NewService(newMemoryRepository(), zerolog.Nop())
	ctx := context.Background()

	s, err := svc.GetOrCreateOpenSession(ctx, owner, session.OpenParams{})
	require.NoError(t, err)

	first, err := svc.EndSession(ctx, owner, s.ID)
	require.NoError(t, err)
	require.NotNil(t, first.EndedAt)

	second, err := svc.EndSession(ctx, owner, s.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	next, err := svc.GetOrCreateOpenSession(ctx, owner, session.OpenParams{})
	require.NoError(t, err)
	assert.NotEqual(t, s.ID, next.ID)
}

func TestAppendMessageOrderingAndRules(t *testing.T) {
	svc := session.NewService(newMemoryRepository(), zerolog.Nop())
	ctx := context.Background()
	mentor := "stoic"

	s, err := svc.GetOrCreateOpenSession(ctx, owner, session.OpenParams{MentorID: &mentor})
	require.NoError(t, err)
	require.NotNil(t, s.MentorID)

	contents := []string{"hello", "hi there", "how are you", "well"}
	for i, c := range contents {
		role := session.RoleUser
		if i%2 == 1 {
			role = session.RoleAssistant
		}
		_, err := svc.AppendMessage(ctx, owner, s.ID, role, c, nil)
		require.NoError(t, err)
	}

	history, err := svc.ListHistory(ctx, owner, s.ID)
	require.NoError(t, err)
	require.Len(t, history, len(contents))
	for i, msg := range history {
		assert.Equal(t, contents[i], msg.Content)
	}

	_, err = svc.AppendMessage(ctx, owner, s.ID, session.Role("system"), "x", nil)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

	_, err = svc.AppendMessage(ctx, "00000000-0000-0000-0000-000000000002", s.ID, session.RoleUser, "x", nil)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))

	_, err = svc.EndSession(ctx, owner, s.ID)
	require.NoError(t, err)
	_, err = svc.AppendMessage(ctx, owner, s.ID, session.RoleUser, "late", nil)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict))
}
