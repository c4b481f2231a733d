package requests

import (
	"github.com/janhq/mirror-server/internal/domain/council"
	"github.com/janhq/mirror-server/internal/domain/journal"
	"github.com/janhq/mirror-server/internal/domain/profile"
)

// UpdateProfileRequest is a partial profile update; omitted fields stay unchanged.
type UpdateProfileRequest struct {
	DisplayName                 *string  `json:"display_name,omitempty" binding:"omitempty,max=120"`
	FirstName                   *string  `json:"first_name,omitempty" binding:"omitempty,max=120"`
	Occupation                  *string  `json:"occupation,omitempty" binding:"omitempty,max=200"`
	CurrentChallenges           *string  `json:"current_challenges,omitempty" binding:"omitempty,max=2000"`
	PersonalGoals               *string  `json:"personal_goals,omitempty" binding:"omitempty,max=2000"`
	Interests                   []string `json:"interests,omitempty" binding:"omitempty,max=20,dive,max=80"`
	StressSources               []string `json:"stress_sources,omitempty" binding:"omitempty,max=20,dive,max=80"`
	PreferredMeditationDuration *int     `json:"preferred_meditation_duration,omitempty" binding:"omitempty,gt=0,lte=7200"`
	Theme                       *string  `json:"theme,omitempty" binding:"omitempty,theme"`
}

// ToParams maps the request onto the profile update.
func (r UpdateProfileRequest) ToParams() profile.UpdateParams {
	params := profile.UpdateParams{
		DisplayName:                 r.DisplayName,
		FirstName:                   r.FirstName,
		Occupation:                  r.Occupation,
		CurrentChallenges:           r.CurrentChallenges,
		PersonalGoals:               r.PersonalGoals,
		Interests:                   r.Interests,
		StressSources:               r.StressSources,
		PreferredMeditationDuration: r.PreferredMeditationDuration,
	}
	if r.Theme != nil {
		theme := profile.Theme(*r.Theme)
		params.Theme = &theme
	}
	return params
}

// ChatMessageRequest is one user chat turn.
type ChatMessageRequest struct {
	Message    string  `json:"message" binding:"required,max=8000"`
	SessionKey string  `json:"session_key,omitempty" binding:"omitempty,max=64"`
	MentorID   *string `json:"mentor_id,omitempty" binding:"omitempty,mentor"`
	Situation  *string `json:"situation,omitempty" binding:"omitempty,max=2000"`
}

func (r ChatMessageRequest) ToInput() council.ChatInput {
	return council.ChatInput{
		Message:    r.Message,
		SessionKey: r.SessionKey,
		MentorID:   r.MentorID,
		Situation:  r.Situation,
	}
}

// ResetChatRequest clears a conversation state.
type ResetChatRequest struct {
	SessionKey string `json:"session_key,omitempty" binding:"omitempty,max=64"`
}

// CreateJournalEntryRequest stores an entry and opens an interview on it.
type CreateJournalEntryRequest struct {
	Content   string   `json:"content" binding:"required,max=20000"`
	MoodTags  []string `json:"mood_tags,omitempty" binding:"omitempty,max=10,dive,max=40"`
	TopicTags []string `json:"topic_tags,omitempty" binding:"omitempty,max=10,dive,max=40"`
}

func (r CreateJournalEntryRequest) Tags() journal.Tags {
	return journal.Tags{Mood: r.MoodTags, Topic: r.TopicTags}
}

// FollowUpAnswer is one answered interview question.
type FollowUpAnswer struct {
	Question string `json:"question" binding:"required,max=1000"`
	Answer   string `json:"answer" binding:"max=8000"`
}

// FollowUpRequest answers the questions asked about an entry.
type FollowUpRequest struct {
	Answers []FollowUpAnswer `json:"answers" binding:"required,min=1,max=10,dive"`
}

func (r FollowUpRequest) ToQA() []council.QA {
	out := make([]council.QA, len(r.Answers))
	for i, a := range r.Answers {
		out[i] = council.QA{Question: a.Question, Answer: a.Answer}
	}
	return out
}

// LinkFollowupRequest points a followup at its synthesized entry.
type LinkFollowupRequest struct {
	EntryID string `json:"entry_id" binding:"required,uuid"`
}

// SearchJournalRequest is a similarity search over the caller's entries.
type SearchJournalRequest struct {
	Query     string   `json:"query" binding:"required,max=8000"`
	Threshold *float64 `json:"threshold,omitempty" binding:"omitempty,gte=-1,lte=1"`
	Limit     int      `json:"limit,omitempty" binding:"omitempty,gte=1,lte=50"`
}

// ArchiveJournalRequest archives entries older than OlderThan, a Go duration such as "720h".
type ArchiveJournalRequest struct {
	OlderThan string `json:"older_than" binding:"required"`
}

// StartMeditationRequest starts or resumes a session.
type StartMeditationRequest struct {
	DurationSeconds int `json:"duration_seconds,omitempty" binding:"omitempty,gt=0,lte=7200"`
}

// AdvanceStageRequest moves a session forward.
type AdvanceStageRequest struct {
	Stage string `json:"stage" binding:"required,stage"`
}

// ReflectionRequest is what the user shares after a session.
type ReflectionRequest struct {
	Content         string  `json:"content" binding:"required,max=8000"`
	EmotionalState  *string `json:"emotional_state,omitempty" binding:"omitempty,max=40"`
	MirrorToJournal bool    `json:"mirror_to_journal,omitempty"`
}

func (r ReflectionRequest) ToInput() council.ReflectInput {
	return council.ReflectInput{
		Content:         r.Content,
		EmotionalState:  r.EmotionalState,
		MirrorToJournal: r.MirrorToJournal,
	}
}
