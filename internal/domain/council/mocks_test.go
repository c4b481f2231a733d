package council_test

import (
	"context"
	"sync"
	"time"

	"github.com/janhq/mirror-server/internal/domain/analytics"
	"github.com/janhq/mirror-server/internal/domain/convstate"
	"github.com/janhq/mirror-server/internal/domain/journal"
	"github.com/janhq/mirror-server/internal/domain/llm"
	"github.com/janhq/mirror-server/internal/domain/meditation"
	"github.com/janhq/mirror-server/internal/domain/profile"
	"github.com/janhq/mirror-server/internal/domain/session"
)

type MockProfileService struct {
	GetOrCreateFunc func(ctx context.Context, owner string) (*profile.Profile, error)
}

func (m *MockProfileService) GetOrCreate(ctx context.Context, owner string) (*profile.Profile, error) {
	if m.GetOrCreateFunc != nil {
		return m.GetOrCreateFunc(ctx, owner)
	}
	return profile.NewDefault(owner), nil
}

func (m *MockProfileService) Update(ctx context.Context, owner string, _ profile.UpdateParams) (*profile.Profile, error) {
	return profile.NewDefault(owner), nil
}

func (m *MockProfileService) ListOwnerIDs(context.Context, string, int) ([]string, error) {
	return nil, nil
}

// MockSessionService keeps one open session and records appended messages.
type MockSessionService struct {
	mu       sync.Mutex
	open     *session.Session
	Messages []session.Message
	Ended    []string
}

func (m *MockSessionService) GetOrCreateOpenSession(_ context.Context, owner string, params session.OpenParams) (*session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.open == nil {
		m.open = &session.Session{ID: "session-1", Owner: owner, MentorID: params.MentorID, StartedAt: time.Now()}
	}
	copied := *m.open
	return &copied, nil
}

func (m *MockSessionService) FindOpenSession(context.Context, string) (*session.Session, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.open == nil {
		return nil, false, nil
	}
	copied := *m.open
	return &copied, true, nil
}

func (m *MockSessionService) Get(_ context.Context, _, sessionID string) (*session.Session, error) {
	return &session.Session{ID: sessionID}, nil
}

func (m *MockSessionService) AppendMessage(_ context.Context, _, sessionID string, role session.Role, content string, personaID *string) (*session.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg := session.Message{SessionID: sessionID, Role: role, Content: content, PersonaID: personaID}
	m.Messages = append(m.Messages, msg)
	return &msg, nil
}

func (m *MockSessionService) EndSession(_ context.Context, _, sessionID string) (*session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Ended = append(m.Ended, sessionID)
	m.open = nil
	now := time.Now()
	return &session.Session{ID: sessionID, EndedAt: &now}, nil
}

func (m *MockSessionService) ListHistory(context.Context, string, string) ([]session.Message, error) {
	return m.Messages, nil
}

// MockStateService stores states in memory.
type MockStateService struct {
	States map[string]*convstate.AgentState
}

func newMockStateService() *MockStateService {
	return &MockStateService{States: map[string]*convstate.AgentState{}}
}

func (m *MockStateService) Load(_ context.Context, owner, key string) (*convstate.AgentState, bool, error) {
	s, ok := m.States[owner+"/"+key]
	if !ok {
		return nil, false, nil
	}
	copied := *s
	copied.Messages = append([]convstate.Turn(nil), s.Messages...)
	return &copied, true, nil
}

func (m *MockStateService) Save(_ context.Context, owner, key string, state *convstate.AgentState) error {
	copied := *state
	m.States[owner+"/"+key] = &copied
	return nil
}

func (m *MockStateService) Clear(_ context.Context, owner, key string) error {
	delete(m.States, owner+"/"+key)
	return nil
}

type MockJournalService struct {
	AppendFunc          func(ctx context.Context, owner, text string, tags journal.Tags) (*journal.Entry, error)
	RecallFunc          func(ctx context.Context, owner, query string, threshold float64, limit int) (*journal.RecallResult, error)
	GetFunc             func(ctx context.Context, owner, entryID string) (*journal.Entry, error)
	AddFollowupFunc     func(ctx context.Context, owner, entryID, question, answer string) (*journal.Followup, error)
	SynthesizeFunc      func(ctx context.Context, owner, followupID, text string) (*journal.Entry, error)
	LinkSynthesizedFunc func(ctx context.Context, owner, followupID, entryID string) error
}

func (m *MockJournalService) Append(ctx context.Context, owner, text string, tags journal.Tags) (*journal.Entry, error) {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, owner, text, tags)
	}
	return &journal.Entry{ID: "entry-1", Owner: owner, Content: text, MoodTags: tags.Mood, TopicTags: tags.Topic}, nil
}

func (m *MockJournalService) FindSimilar(context.Context, string, string, float64, int) ([]journal.ScoredEntry, error) {
	return nil, nil
}

func (m *MockJournalService) FindRecent(context.Context, string, int) ([]journal.Entry, error) {
	return nil, nil
}

func (m *MockJournalService) Recall(ctx context.Context, owner, query string, threshold float64, limit int) (*journal.RecallResult, error) {
	if m.RecallFunc != nil {
		return m.RecallFunc(ctx, owner, query, threshold, limit)
	}
	return &journal.RecallResult{Entries: []journal.Entry{}, Source: journal.RecallSourceRecent}, nil
}

func (m *MockJournalService) ArchiveOlderThan(context.Context, string, time.Duration) (int64, error) {
	return 0, nil
}

func (m *MockJournalService) Get(ctx context.Context, owner, entryID string) (*journal.Entry, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, owner, entryID)
	}
	return &journal.Entry{ID: entryID, Owner: owner}, nil
}

func (m *MockJournalService) AddFollowup(ctx context.Context, owner, entryID, question, answer string) (*journal.Followup, error) {
	if m.AddFollowupFunc != nil {
		return m.AddFollowupFunc(ctx, owner, entryID, question, answer)
	}
	return &journal.Followup{EntryID: entryID, Owner: owner, Question: question, Answer: answer}, nil
}

func (m *MockJournalService) GetFollowup(context.Context, string, string) (*journal.Followup, error) {
	return &journal.Followup{}, nil
}

func (m *MockJournalService) Synthesize(ctx context.Context, owner, followupID, text string) (*journal.Entry, error) {
	if m.SynthesizeFunc != nil {
		return m.SynthesizeFunc(ctx, owner, followupID, text)
	}
	return &journal.Entry{ID: "synth-1", Owner: owner, Content: text}, nil
}

func (m *MockJournalService) LinkSynthesized(ctx context.Context, owner, followupID, entryID string) error {
	if m.LinkSynthesizedFunc != nil {
		return m.LinkSynthesizedFunc(ctx, owner, followupID, entryID)
	}
	return nil
}

type MockMeditationService struct {
	StartOrResumeFunc func(ctx context.Context, owner string, params meditation.StartParams) (*meditation.Session, bool, error)
	Completed         []string
	Reflections       []meditation.Reflection
}

func (m *MockMeditationService) StartOrResume(ctx context.Context, owner string, params meditation.StartParams) (*meditation.Session, bool, error) {
	if m.StartOrResumeFunc != nil {
		return m.StartOrResumeFunc(ctx, owner, params)
	}
	return &meditation.Session{ID: "med-1", Owner: owner, DurationSeconds: params.DurationSeconds}, false, nil
}

func (m *MockMeditationService) Get(_ context.Context, owner, sessionID string) (*meditation.Session, error) {
	return &meditation.Session{ID: sessionID, Owner: owner}, nil
}

func (m *MockMeditationService) AdvanceStage(_ context.Context, owner, sessionID string, stage meditation.Stage) (*meditation.Session, error) {
	return &meditation.Session{ID: sessionID, Owner: owner, StageReached: stage}, nil
}

func (m *MockMeditationService) Complete(_ context.Context, owner, sessionID string) (*meditation.Session, error) {
	m.Completed = append(m.Completed, sessionID)
	now := time.Now()
	return &meditation.Session{ID: sessionID, Owner: owner, Completed: true, CompletedAt: &now}, nil
}

func (m *MockMeditationService) AddReflection(_ context.Context, _, sessionID, text, insight string, emotionalState *string) (*meditation.Reflection, error) {
	r := meditation.Reflection{ID: "refl-1", SessionID: sessionID, Content: text, Insight: insight, EmotionalState: emotionalState}
	m.Reflections = append(m.Reflections, r)
	return &r, nil
}

func (m *MockMeditationService) ListReflections(context.Context, string, string) ([]meditation.Reflection, error) {
	return m.Reflections, nil
}

type MockAnalyticsSink struct {
	RecordFunc func(ctx context.Context, s analytics.Selection) error
	Recorded   []analytics.Selection
}

func (m *MockAnalyticsSink) Record(ctx context.Context, s analytics.Selection) error {
	m.Recorded = append(m.Recorded, s)
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, s)
	}
	return nil
}

// MockLLM answers with CompleteFunc and remembers every request.
type MockLLM struct {
	CompleteFunc func(ctx context.Context, req llm.Request) (string, error)
	Requests     []llm.Request
}

func (m *MockLLM) Complete(ctx context.Context, req llm.Request) (string, error) {
	m.Requests = append(m.Requests, req)
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, req)
	}
	return "", llm.ErrEmptyCompletion
}
