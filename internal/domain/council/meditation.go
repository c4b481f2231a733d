package council

import (
	"context"
	"strings"

	"github.com/janhq/mirror-server/internal/domain/journal"
	"github.com/janhq/mirror-server/internal/domain/llm"
	"github.com/janhq/mirror-server/internal/domain/meditation"
	"github.com/janhq/mirror-server/internal/domain/profile"
	"github.com/janhq/mirror-server/internal/utils/platformerrors"
)

// StageContent is the spoken text for one meditation stage.
type StageContent struct {
	StageID   meditation.Stage `json:"stage_id"`
	StageName string           `json:"stage_name"`
	Content   string           `json:"content"`
	Duration  int              `json:"duration"`
	Generated bool             `json:"generated"`
}

// ReflectInput is what the user shares after a session.
type ReflectInput struct {
	Content         string
	EmotionalState  *string
	MirrorToJournal bool
}

// ReflectReply is the stored reflection plus the optional journal mirror.
type ReflectReply struct {
	Session      *meditation.Session    `json:"session"`
	Reflection   *meditation.Reflection `json:"reflection"`
	JournalEntry *journal.Entry         `json:"journal_entry,omitempty"`
}

// StartMeditation resumes the incomplete session or starts one. A non-positive duration
// uses the profile's preferred duration.
func (s *Service) StartMeditation(ctx context.Context, owner string, durationSeconds int) (*meditation.Session, bool, error) {
	defaultDuration := profile.DefaultMeditationDuration
	if p, _ := s.personalization(ctx, owner); p != nil && p.PreferredMeditationDuration > 0 {
		defaultDuration = p.PreferredMeditationDuration
	}
	return s.meditation.StartOrResume(ctx, owner, meditation.StartParams{
		DurationSeconds: durationSeconds,
		DefaultDuration: defaultDuration,
	})
}

// StageContent generates guidance for stageID, falling back to the catalog text.
func (s *Service) StageContent(ctx context.Context, owner, stageID string) (*StageContent, error) {
	info, ok := s.catalog.Lookup(stageID)
	if !ok {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "unknown meditation stage", nil, "")
	}

	p, personal := s.personalization(ctx, owner)
	prompt := s.catalog.Guide + "\n\n" + info.Prompt
	if personal != "" {
		prompt += "\n\nPersonalize gently for this person, addressing them as " + profile.GreetingName(p) + ":\n" + personal
		if ack := profile.StressAcknowledgment(p); ack != "" {
			prompt += "\nYou may acknowledge: \"" + ack + "\""
		}
	}

	content, generated := s.generate(ctx, "meditation_"+stageID, llm.Request{
		Prompt:      prompt,
		Temperature: 0.85,
		MaxTokens:   600,
	}, s.catalog.FallbackContent(stageID))

	return &StageContent{
		StageID:   info.ID,
		StageName: info.Name,
		Content:   content,
		Duration:  info.Duration,
		Generated: generated,
	}, nil
}

// Reflect completes the session and stores the reflection with a generated insight.
func (s *Service) Reflect(ctx context.Context, owner, sessionID string, in ReflectInput) (*ReflectReply, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "reflection content is required", nil, "")
	}
	if _, err := s.meditation.Get(ctx, owner, sessionID); err != nil {
		return nil, err
	}
	_, personal := s.personalization(ctx, owner)

	insight, _ := s.generate(ctx, "meditation_reflection", llm.Request{
		Prompt:      withPersonalization(reflectionPrompt(content), personal),
		Temperature: 0.8,
		MaxTokens:   150,
	}, fallbackReflectInsight)

	sess, err := s.meditation.Complete(ctx, owner, sessionID)
	if err != nil {
		return nil, err
	}
	reflection, err := s.meditation.AddReflection(ctx, owner, sessionID, content, insight, in.EmotionalState)
	if err != nil {
		return nil, err
	}

	reply := &ReflectReply{Session: sess, Reflection: reflection}
	if !in.MirrorToJournal {
		return reply, nil
	}

	tags := journal.Tags{Topic: []string{meditationTopic}}
	if reflection.EmotionalState != nil {
		tags.Mood = []string{*reflection.EmotionalState}
	}
	entry, err := s.journal.Append(ctx, owner, mirrorEntry(content, insight), tags)
	if err != nil {
		s.log.Warn().Err(err).Str("owner", owner).Str("session_id", sessionID).Msg("reflection not mirrored to journal")
		return reply, nil
	}
	reply.JournalEntry = entry
	return reply, nil
}
