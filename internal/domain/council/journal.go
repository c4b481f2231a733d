package council

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/janhq/mirror-server/internal/domain/convstate"
	"github.com/janhq/mirror-server/internal/domain/journal"
	"github.com/janhq/mirror-server/internal/domain/llm"
	"github.com/janhq/mirror-server/internal/utils/platformerrors"
)

// IngestReply is a stored entry with the interview opened on it.
type IngestReply struct {
	Entry     *journal.Entry `json:"entry"`
	Questions []string       `json:"questions"`
	Insight   string         `json:"insight"`
	Generated bool           `json:"generated"`
}

// QA is one answered interview question.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FollowUpReply is the synthesized entry produced by an interview.
type FollowUpReply struct {
	Entry     *journal.Entry     `json:"entry"`
	Followups []journal.Followup `json:"followups"`
	Insight   string             `json:"insight"`
}

// IngestJournal stores content and asks follow-up questions about it.
func (s *Service) IngestJournal(ctx context.Context, owner, content string, tags journal.Tags) (*IngestReply, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "journal content is required", nil, "")
	}
	_, personal := s.personalization(ctx, owner)

	// recall runs first so the new entry is not its own context
	previous := s.recallForJournal(ctx, owner, content)

	insight, questions := fallbackJournalInsight, append([]string(nil), fallbackQuestions...)
	generated := false
	text, ok := s.generate(ctx, "journal_interview", llm.Request{
		Prompt:      withPersonalization(interviewPrompt(content, previous), personal),
		Temperature: 0.7,
		MaxTokens:   500,
	}, "")
	if ok {
		parsedInsight, parsedQuestions := parseInterview(text)
		if len(parsedQuestions) > 0 {
			questions = parsedQuestions
			generated = true
		}
		if parsedInsight != "" {
			insight = parsedInsight
		}
	}

	entry, err := s.journal.Append(ctx, owner, content, tags)
	if err != nil {
		return nil, err
	}

	state := convstate.New()
	state.Interview = &convstate.Interview{
		EntryID:   entry.ID,
		Content:   entry.Content,
		Questions: questions,
		Insight:   insight,
		CreatedAt: entry.CreatedAt,
	}
	if err := s.states.Save(ctx, owner, convstate.JournalSessionKey, state); err != nil {
		s.log.Warn().Err(err).Str("owner", owner).Str("entry_id", entry.ID).Msg("journal interview state not saved")
	}

	return &IngestReply{Entry: entry, Questions: questions, Insight: insight, Generated: generated}, nil
}

// FollowUp records answers to the interview and writes a synthesized entry. Unanswered
// questions are kept. If the synthesized entry is stored but a followup cannot be linked,
// the reply is returned together with the *journal.LinkError.
func (s *Service) FollowUp(ctx context.Context, owner, entryID string, answers []QA) (*FollowUpReply, error) {
	pairs := make([]QA, 0, len(answers))
	for _, qa := range answers {
		if strings.TrimSpace(qa.Question) == "" {
			continue
		}
		pairs = append(pairs, QA{Question: strings.TrimSpace(qa.Question), Answer: strings.TrimSpace(qa.Answer)})
	}
	if len(pairs) == 0 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "at least one interview question is required", nil, "")
	}
	_, personal := s.personalization(ctx, owner)

	original, err := s.journal.Get(ctx, owner, entryID)
	if err != nil {
		return nil, err
	}

	followups := make([]journal.Followup, 0, len(pairs))
	for _, qa := range pairs {
		f, err := s.journal.AddFollowup(ctx, owner, entryID, qa.Question, qa.Answer)
		if err != nil {
			return nil, err
		}
		followups = append(followups, *f)
	}

	block := qaBlock(pairs)
	synthesized, _ := s.generate(ctx, "journal_synthesis", llm.Request{
		Prompt:      withPersonalization(synthesisPrompt(original.Content, block), personal),
		Temperature: 0.6,
		MaxTokens:   600,
	}, original.Content+"\n\n"+block)

	entry, err := s.journal.Synthesize(ctx, owner, followups[0].ID, synthesized)
	if err != nil {
		var linkErr *journal.LinkError
		if errors.As(err, &linkErr) && entry != nil {
			return &FollowUpReply{Entry: entry, Followups: followups}, err
		}
		return nil, err
	}
	now := time.Now().UTC()
	followups[0].SynthesizedEntryID = &entry.ID
	followups[0].UpdatedAt = now

	for i := 1; i < len(followups); i++ {
		if err := s.journal.LinkSynthesized(ctx, owner, followups[i].ID, entry.ID); err != nil {
			s.log.Error().Err(err).Str("entry_id", entry.ID).Str("followup_id", followups[i].ID).Msg("synthesized entry left unlinked")
			return &FollowUpReply{Entry: entry, Followups: followups},
				&journal.LinkError{Entry: entry, FollowupID: followups[i].ID, Err: err}
		}
		followups[i].SynthesizedEntryID = &entry.ID
		followups[i].UpdatedAt = now
	}

	insight, _ := s.generate(ctx, "journal_insight", llm.Request{
		Prompt:      entryInsightPrompt(entry.Content),
		Temperature: 0.7,
		MaxTokens:   150,
	}, fallbackJournalInsight)

	if err := s.states.Clear(ctx, owner, convstate.JournalSessionKey); err != nil {
		s.log.Warn().Err(err).Str("owner", owner).Msg("journal interview state not cleared")
	}

	return &FollowUpReply{Entry: entry, Followups: followups, Insight: insight}, nil
}

// JournalSession returns the pending interview, found=false when there is none.
func (s *Service) JournalSession(ctx context.Context, owner string) (*convstate.Interview, bool, error) {
	state, found, err := s.states.Load(ctx, owner, convstate.JournalSessionKey)
	if err != nil {
		return nil, false, err
	}
	if !found || state.Interview == nil {
		return nil, false, nil
	}
	return state.Interview, true, nil
}
