package handlers_test

import (
	"context"
	"time"

	"github.com/janhq/mirror-server/internal/domain/convstate"
	"github.com/janhq/mirror-server/internal/domain/council"
	"github.com/janhq/mirror-server/internal/domain/journal"
	"github.com/janhq/mirror-server/internal/domain/meditation"
	"github.com/janhq/mirror-server/internal/domain/profile"
	"github.com/janhq/mirror-server/internal/domain/session"
)

// MockFlows implements the council flow interfaces used by the handlers.
type MockFlows struct {
	ChatFunc            func(ctx context.Context, owner string, in council.ChatInput) (*council.ChatReply, error)
	ResetFunc           func(ctx context.Context, owner, key string) error
	StateFunc           func(ctx context.Context, owner, key string) (*convstate.AgentState, bool, error)
	IngestJournalFunc   func(ctx context.Context, owner, content string, tags journal.Tags) (*council.IngestReply, error)
	FollowUpFunc        func(ctx context.Context, owner, entryID string, answers []council.QA) (*council.FollowUpReply, error)
	JournalSessionFunc  func(ctx context.Context, owner string) (*convstate.Interview, bool, error)
	StartMeditationFunc func(ctx context.Context, owner string, durationSeconds int) (*meditation.Session, bool, error)
	StageContentFunc    func(ctx context.Context, owner, stageID string) (*council.StageContent, error)
	ReflectFunc         func(ctx context.Context, owner, sessionID string, in council.ReflectInput) (*council.ReflectReply, error)
	CatalogValue        *meditation.Catalog
}

func (m *MockFlows) Chat(ctx context.Context, owner string, in council.ChatInput) (*council.ChatReply, error) {
	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, owner, in)
	}
	return &council.ChatReply{}, nil
}

func (m *MockFlows) Reset(ctx context.Context, owner, key string) error {
	if m.ResetFunc != nil {
		return m.ResetFunc(ctx, owner, key)
	}
	return nil
}

func (m *MockFlows) State(ctx context.Context, owner, key string) (*convstate.AgentState, bool, error) {
	if m.StateFunc != nil {
		return m.StateFunc(ctx, owner, key)
	}
	return nil, false, nil
}

func (m *MockFlows) IngestJournal(ctx context.Context, owner, content string, tags journal.Tags) (*council.IngestReply, error) {
	if m.IngestJournalFunc != nil {
		return m.IngestJournalFunc(ctx, owner, content, tags)
	}
	return &council.IngestReply{}, nil
}

func (m *MockFlows) FollowUp(ctx context.Context, owner, entryID string, answers []council.QA) (*council.FollowUpReply, error) {
	if m.FollowUpFunc != nil {
		return m.FollowUpFunc(ctx, owner, entryID, answers)
	}
	return &council.FollowUpReply{}, nil
}

func (m *MockFlows) JournalSession(ctx context.Context, owner string) (*convstate.Interview, bool, error) {
	if m.JournalSessionFunc != nil {
		return m.JournalSessionFunc(ctx, owner)
	}
	return nil, false, nil
}

func (m *MockFlows) Catalog() *meditation.Catalog {
	return m.CatalogValue
}

func (m *MockFlows) StartMeditation(ctx context.Context, owner string, durationSeconds int) (*meditation.Session, bool, error) {
	if m.StartMeditationFunc != nil {
		return m.StartMeditationFunc(ctx, owner, durationSeconds)
	}
	return &meditation.Session{}, false, nil
}

func (m *MockFlows) StageContent(ctx context.Context, owner, stageID string) (*council.StageContent, error) {
	if m.StageContentFunc != nil {
		return m.StageContentFunc(ctx, owner, stageID)
	}
	return &council.StageContent{}, nil
}

func (m *MockFlows) Reflect(ctx context.Context, owner, sessionID string, in council.ReflectInput) (*council.ReflectReply, error) {
	if m.ReflectFunc != nil {
		return m.ReflectFunc(ctx, owner, sessionID, in)
	}
	return &council.ReflectReply{}, nil
}

// MockProfileService is a mock implementation of profile.Service.
type MockProfileService struct {
	GetOrCreateFunc  func(ctx context.Context, owner string) (*profile.Profile, error)
	UpdateFunc       func(ctx context.Context, owner string, params profile.UpdateParams) (*profile.Profile, error)
	ListOwnerIDsFunc func(ctx context.Context, afterID string, limit int) ([]string, error)
}

func (m *MockProfileService) GetOrCreate(ctx context.Context, owner string) (*profile.Profile, error) {
	if m.GetOrCreateFunc != nil {
		return m.GetOrCreateFunc(ctx, owner)
	}
	return profile.NewDefault(owner), nil
}

func (m *MockProfileService) Update(ctx context.Context, owner string, params profile.UpdateParams) (*profile.Profile, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, owner, params)
	}
	return profile.NewDefault(owner), nil
}

func (m *MockProfileService) ListOwnerIDs(ctx context.Context, afterID string, limit int) ([]string, error) {
	if m.ListOwnerIDsFunc != nil {
		return m.ListOwnerIDsFunc(ctx, afterID, limit)
	}
	return nil, nil
}

// MockSessionService is a mock implementation of session.Service.
type MockSessionService struct {
	FindOpenSessionFunc func(ctx context.Context, owner string) (*session.Session, bool, error)
	EndSessionFunc      func(ctx context.Context, owner, sessionID string) (*session.Session, error)
	ListHistoryFunc     func(ctx context.Context, owner, sessionID string) ([]session.Message, error)
}

func (m *MockSessionService) GetOrCreateOpenSession(ctx context.Context, owner string, params session.OpenParams) (*session.Session, error) {
	return &session.Session{Owner: owner}, nil
}

func (m *MockSessionService) FindOpenSession(ctx context.Context, owner string) (*session.Session, bool, error) {
	if m.FindOpenSessionFunc != nil {
		return m.FindOpenSessionFunc(ctx, owner)
	}
	return nil, false, nil
}

func (m *MockSessionService) Get(ctx context.Context, owner, sessionID string) (*session.Session, error) {
	return &session.Session{ID: sessionID, Owner: owner}, nil
}

func (m *MockSessionService) AppendMessage(ctx context.Context, owner, sessionID string, role session.Role, content string, personaID *string) (*session.Message, error) {
	return &session.Message{SessionID: sessionID, Role: role, Content: content}, nil
}

func (m *MockSessionService) EndSession(ctx context.Context, owner, sessionID string) (*session.Session, error) {
	if m.EndSessionFunc != nil {
		return m.EndSessionFunc(ctx, owner, sessionID)
	}
	now := time.Now()
	return &session.Session{ID: sessionID, Owner: owner, EndedAt: &now}, nil
}

func (m *MockSessionService) ListHistory(ctx context.Context, owner, sessionID string) ([]session.Message, error) {
	if m.ListHistoryFunc != nil {
		return m.ListHistoryFunc(ctx, owner, sessionID)
	}
	return nil, nil
}

// MockJournalService is a mock implementation of journal.Service.
// Only the methods reached by the handlers have func fields.
type MockJournalService struct {
	FindSimilarFunc      func(ctx context.Context, owner, query string, threshold float64, limit int) ([]journal.ScoredEntry, error)
	FindRecentFunc       func(ctx context.Context, owner string, count int) ([]journal.Entry, error)
	ArchiveOlderThanFunc func(ctx context.Context, owner string, age time.Duration) (int64, error)
	GetFunc              func(ctx context.Context, owner, entryID string) (*journal.Entry, error)
	GetFollowupFunc      func(ctx context.Context, owner, followupID string) (*journal.Followup, error)
	LinkSynthesizedFunc  func(ctx context.Context, owner, followupID, entryID string) error
}

func (m *MockJournalService) Append(ctx context.Context, owner, text string, tags journal.Tags) (*journal.Entry, error) {
	return &journal.Entry{Owner: owner, Content: text}, nil
}

func (m *MockJournalService) FindSimilar(ctx context.Context, owner, query string, threshold float64, limit int) ([]journal.ScoredEntry, error) {
	if m.FindSimilarFunc != nil {
		return m.FindSimilarFunc(ctx, owner, query, threshold, limit)
	}
	return nil, nil
}

func (m *MockJournalService) FindRecent(ctx context.Context, owner string, count int) ([]journal.Entry, error) {
	if m.FindRecentFunc != nil {
		return m.FindRecentFunc(ctx, owner, count)
	}
	return nil, nil
}

func (m *MockJournalService) Recall(ctx context.Context, owner, query string, threshold float64, limit int) (*journal.RecallResult, error) {
	return &journal.RecallResult{Source: journal.RecallSourceRecent}, nil
}

func (m *MockJournalService) ArchiveOlderThan(ctx context.Context, owner string, age time.Duration) (int64, error) {
	if m.ArchiveOlderThanFunc != nil {
		return m.ArchiveOlderThanFunc(ctx, owner, age)
	}
	return 0, nil
}

func (m *MockJournalService) Get(ctx context.Context, owner, entryID string) (*journal.Entry, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, owner, entryID)
	}
	return &journal.Entry{ID: entryID, Owner: owner}, nil
}

func (m *MockJournalService) AddFollowup(ctx context.Context, owner, entryID, question, answer string) (*journal.Followup, error) {
	return &journal.Followup{EntryID: entryID, Question: question, Answer: answer}, nil
}

func (m *MockJournalService) GetFollowup(ctx context.Context, owner, followupID string) (*journal.Followup, error) {
	if m.GetFollowupFunc != nil {
		return m.GetFollowupFunc(ctx, owner, followupID)
	}
	return &journal.Followup{ID: followupID, Owner: owner}, nil
}

func (m *MockJournalService) Synthesize(ctx context.Context, owner, followupID, text string) (*journal.Entry, error) {
	return &journal.Entry{Owner: owner, Content: text}, nil
}

func (m *MockJournalService) LinkSynthesized(ctx context.Context, owner, followupID, entryID string) error {
	if m.LinkSynthesizedFunc != nil {
		return m.LinkSynthesizedFunc(ctx, owner, followupID, entryID)
	}
	return nil
}

// MockMeditationService is a mock implementation of meditation.Service.
type MockMeditationService struct {
	AdvanceStageFunc    func(ctx context.Context, owner, sessionID string, stage meditation.Stage) (*meditation.Session, error)
	CompleteFunc        func(ctx context.Context, owner, sessionID string) (*meditation.Session, error)
	ListReflectionsFunc func(ctx context.Context, owner, sessionID string) ([]meditation.Reflection, error)
}

func (m *MockMeditationService) StartOrResume(ctx context.Context, owner string, params meditation.StartParams) (*meditation.Session, bool, error) {
	return &meditation.Session{Owner: owner}, false, nil
}

func (m *MockMeditationService) Get(ctx context.Context, owner, sessionID string) (*meditation.Session, error) {
	return &meditation.Session{ID: sessionID, Owner: owner}, nil
}

func (m *MockMeditationService) AdvanceStage(ctx context.Context, owner, sessionID string, stage meditation.Stage) (*meditation.Session, error) {
	if m.AdvanceStageFunc != nil {
		return m.AdvanceStageFunc(ctx, owner, sessionID, stage)
	}
	return &meditation.Session{ID: sessionID, Owner: owner, StageReached: stage}, nil
}

func (m *MockMeditationService) Complete(ctx context.Context, owner, sessionID string) (*meditation.Session, error) {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, owner, sessionID)
	}
	return &meditation.Session{ID: sessionID, Owner: owner, Completed: true}, nil
}

func (m *MockMeditationService) AddReflection(ctx context.Context, owner, sessionID, text, insight string, emotionalState *string) (*meditation.Reflection, error) {
	return &meditation.Reflection{SessionID: sessionID, Content: text, Insight: insight}, nil
}

func (m *MockMeditationService) ListReflections(ctx context.Context, owner, sessionID string) ([]meditation.Reflection, error) {
	if m.ListReflectionsFunc != nil {
		return m.ListReflectionsFunc(ctx, owner, sessionID)
	}
	return nil, nil
}
