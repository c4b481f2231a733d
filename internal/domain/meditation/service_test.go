package meditation_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/mirror-server/internal/domain/meditation"
	"github.com/janhq/mirror-server/internal/utils/platformerrors"
)

const owner = "00000000-0000-0000-0000-000000000001"

type memoryRepository struct {
	mu          sync.Mutex
	sessions    map[string]*meditation.Session
	reflections []meditation.Reflection
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{sessions: map[string]*meditation.Session{}}
}

func notFound(ctx context.Context) error {
	return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "meditation session not found", nil, "")
}

func (m *memoryRepository) FindIncomplete(ctx context.Context, owner string) (*meditation.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.Owner == owner && !s.Completed {
			copied := *s
			return &copied, nil
		}
	}
	return nil, notFound(ctx)
}

func (m *memoryRepository) Create(_ context.Context, s *meditation.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.sessions {
		if existing.Owner == s.Owner && !existing.Completed {
			return meditation.ErrIncompleteSessionExists
		}
	}
	copied := *s
	m.sessions[s.ID] = &copied
	return nil
}

func (m *memoryRepository) FindByID(ctx context.Context, owner, id string) (*meditation.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok || s.Owner != owner {
		return nil, notFound(ctx)
	}
	copied := *s
	return &copied, nil
}

func (m *memoryRepository) AdvanceStage(_ context.Context, owner, id string, to meditation.Stage, from []meditation.Stage) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok || s.Owner != owner || s.Completed {
		return 0, nil
	}
	for _, st := range from {
		if s.StageReached == st {
			s.StageReached = to
			return 1, nil
		}
	}
	return 0, nil
}

func (m *memoryRepository) Complete(_ context.Context, owner, id string, at time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok || s.Owner != owner || s.Completed {
		return 0, nil
	}
	s.Completed = true
	s.CompletedAt = &at
	return 1, nil
}

func (m *memoryRepository) CreateReflection(_ context.Context, r *meditation.Reflection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reflections = append(m.reflections, *r)
	return nil
}

func (m *memoryRepository) ListReflections(_ context.Context, sessionID string) ([]meditation.Reflection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []meditation.Reflection
	for _, r := range m.reflections {
		if r.SessionID == sessionID {
			out = append(out, r)
		}
	}
	return out, nil
}

func TestStartOrResume(t *testing.T) {
	svc := meditation.NewService(newMemoryRepository(), zerolog.Nop())
	ctx := context.Background()

	first, resumed, err := svc.StartOrResume(ctx, owner, meditation.StartParams{DefaultDuration: 600})
	require.NoError(t, err)
	assert.False(t, resumed)
	assert.Equal(t, 600, first.DurationSeconds)
	assert.Equal(t, meditation.StageWelcome, first.StageReached)

	again, resumed, err := svc.StartOrResume(ctx, owner, meditation.StartParams{DurationSeconds: 300})
	require.NoError(t, err)
	assert.True(t, resumed)
	assert.Equal(t, first.ID, again.ID)

	_, err = svc.Complete(ctx, owner, first.ID)
	require.NoError(t, err)

	next, resumed, err := svc.StartOrResume(ctx, owner, meditation.StartParams{DurationSeconds: 300})
	require.NoError(t, err)
	assert.False(t, resumed)
	assert.NotEqual(t, first.ID, next.ID)
	assert.Equal(t, 300, next.DurationSeconds)
}

func TestConcurrentStartYieldsOneSession(t *testing.T) {
	svc := meditation.NewService(newMemoryRepository(), zerolog.Nop())

	ids := make([]string, 8)
	var wg sync.WaitGroup
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, _, err := svc.StartOrResume(context.Background(), owner, meditation.StartParams{DefaultDuration: 360})
			if assert.NoError(t, err) {
				ids[i] = s.ID
			}
		}(i)
	}
	wg.Wait()

	for _, id := range ids[1:] {
		assert.Equal(t, ids[0], id)
	}
}

func TestStageOnlyMovesForward(t *testing.T) {
	svc := meditation.NewService(newMemoryRepository(), zerolog.Nop())
	ctx := context.Background()

	s, _, err := svc.StartOrResume(ctx, owner, meditation.StartParams{DurationSeconds: 360})
	require.NoError(t, err)

	s, err = svc.AdvanceStage(ctx, owner, s.ID, meditation.StageBodyScan)
	require.NoError(t, err)
	assert.Equal(t, meditation.StageBodyScan, s.StageReached)

	s, err = svc.AdvanceStage(ctx, owner, s.ID, meditation.StageBreathing)
	require.NoError(t, err)
	assert.Equal(t, meditation.StageBodyScan, s.StageReached)

	_, err = svc.AdvanceStage(ctx, owner, s.ID, meditation.Stage("levitation"))
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

	done, err := svc.Complete(ctx, owner, s.ID)
	require.NoError(t, err)
	_, err = svc.AdvanceStage(ctx, owner, s.ID, meditation.StageClosing)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict))

	again, err := svc.Complete(ctx, owner, s.ID)
	require.NoError(t, err)
	assert.Equal(t, done, again)
	require.NotNil(t, again.CompletedAt)
}

func TestAddReflection(t *testing.T) {
	svc := meditation.NewService(newMemoryRepository(), zerolog.Nop())
	ctx := context.Background()

	s, _, err := svc.StartOrResume(ctx, owner, meditation.StartParams{DurationSeconds: 360})
	require.NoError(t, err)

	calm := " calm "
	r, err := svc.AddReflection(ctx, owner, s.ID, "I felt lighter", "May this peace stay with you.", &calm)
	require.NoError(t, err)
	require.NotNil(t, r.EmotionalState)
	assert.Equal(t, "calm", *r.EmotionalState)

	_, err = svc.AddReflection(ctx, owner, s.ID, "  ", "", nil)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

	_, err = svc.AddReflection(ctx, "00000000-0000-0000-0000-000000000002", s.ID, "text", "", nil)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))

	list, err := svc.ListReflections(ctx, owner, s.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCatalog(t *testing.T) {
	catalog, err := meditation.LoadCatalog()
	require.NoError(t, err)

	assert.Len(t, catalog.Stages, 5)
	assert.Equal(t, 360, catalog.TotalDuration())

	breathing, ok := catalog.Lookup("breathing")
	require.True(t, ok)
	assert.Equal(t, 120, breathing.Duration)
	assert.Equal(t, "wind", breathing.Icon)
	assert.NotEmpty(t, breathing.Prompt)

	assert.Contains(t, catalog.FallbackContent("welcome"), "You're here... and that's enough.")
	assert.Equal(t, "Breathe... and be here... just as you are.", catalog.FallbackContent("unknown"))
}

func TestParseCatalogRejectsWrongOrder(t *testing.T) {
	_, err := meditation.ParseCatalog([]byte(`stages:
  - {id: closing, duration: 30}
  - {id: welcome, duration: 30}
  - {id: breathing, duration: 30}
  - {id: bodyscan, duration: 30}
  - {id: visualization, duration: 30}
`))
	assert.Error(t, err)
}

func TestStageBefore(t *testing.T) {
	assert.Nil(t, meditation.StageWelcome.Before())
	assert.Equal(t, []meditation.Stage{meditation.StageWelcome, meditation.StageBreathing}, meditation.StageBodyScan.Before())
	assert.Equal(t, -1, meditation.Stage("x").Rank())
}
