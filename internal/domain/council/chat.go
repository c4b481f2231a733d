package council

import (
	"context"
	"strings"
	"time"

	"github.com/janhq/mirror-server/internal/domain/analytics"
	"github.com/janhq/mirror-server/internal/domain/convstate"
	"github.com/janhq/mirror-server/internal/domain/journal"
	"github.com/janhq/mirror-server/internal/domain/llm"
	"github.com/janhq/mirror-server/internal/domain/persona"
	"github.com/janhq/mirror-server/internal/domain/session"
	"github.com/janhq/mirror-server/internal/utils/platformerrors"
)

// ChatInput is one user turn.
type ChatInput struct {
	Message    string
	SessionKey string
	MentorID   *string
	Situation  *string
}

// ChatReply is the assistant side of a turn.
type ChatReply struct {
	Message      string          `json:"message"`
	Agent        persona.Agent   `json:"agent"`
	Persona      persona.Persona `json:"persona"`
	PersonaID    string          `json:"persona_id"`
	SessionID    string          `json:"session_id"`
	RecallSource string          `json:"recall_source,omitempty"`
	Generated    bool            `json:"generated"`
}

// Chat runs one conversational turn for owner.
func (s *Service) Chat(ctx context.Context, owner string, in ChatInput) (*ChatReply, error) {
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "message is required", nil, "")
	}
	key := convstate.NormalizeKey(in.SessionKey)

	_, personal := s.personalization(ctx, owner)

	sess, err := s.sessions.GetOrCreateOpenSession(ctx, owner, session.OpenParams{MentorID: in.MentorID, Situation: in.Situation})
	if err != nil {
		return nil, err
	}

	state, found, err := s.states.Load(ctx, owner, key)
	if err != nil {
		return nil, err
	}
	if !found {
		state = convstate.New()
	}

	requested := ""
	switch {
	case in.MentorID != nil:
		requested = strings.TrimSpace(*in.MentorID)
	case sess.MentorID != nil:
		requested = *sess.MentorID
	}
	sel := persona.Select(persona.Input{
		Message:         message,
		RequestedMentor: persona.MentorKey(requested),
		PreviousPersona: persona.MentorKey(state.Persona),
	})

	reply := &ChatReply{
		Agent:     sel.Agent,
		Persona:   sel.Persona,
		PersonaID: sel.PersonaID(),
		SessionID: sess.ID,
	}

	var req llm.Request
	contextText := ""
	if sel.Agent == persona.AgentWiseMentor {
		contextText = s.mentorRecall(ctx, owner, message, reply)
		req = llm.Request{
			System:      withPersonalization(mentorSystem(sel.Persona, contextText), personal),
			Prompt:      chatPrompt(state.Messages, message, sel.Persona.Name),
			Temperature: 0.8,
			MaxTokens:   500,
		}
	} else {
		req = llm.Request{
			System:      withPersonalization(mindfulnessSystem, personal),
			Prompt:      chatPrompt(state.Messages, message, "The Empath"),
			Temperature: 0.7,
			MaxTokens:   500,
		}
	}

	fallback := fallbackMentorReply
	if sel.Agent == persona.AgentMindfulness {
		fallback = fallbackMindfulnessReply
	}
	reply.Message, reply.Generated = s.generate(ctx, "chat_"+string(sel.Agent), req, fallback)

	if _, err := s.sessions.AppendMessage(ctx, owner, sess.ID, session.RoleUser, message, nil); err != nil {
		return nil, err
	}
	personaID := reply.PersonaID
	if _, err := s.sessions.AppendMessage(ctx, owner, sess.ID, session.RoleAssistant, reply.Message, &personaID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	state.PushTurns(s.cfg.StateHistoryLimit,
		convstate.Turn{Role: string(session.RoleUser), Content: message, At: now},
		convstate.Turn{Role: string(session.RoleAssistant), Content: reply.Message, Agent: string(sel.Agent), At: now},
	)
	state.CurrentAgent = string(sel.Agent)
	state.Persona = string(sel.Persona.Key)
	state.Context = contextText
	if err := s.states.Save(ctx, owner, key, state); err != nil {
		return nil, err
	}

	if s.analytics != nil {
		sessionID := sess.ID
		err := s.analytics.Record(ctx, analytics.Selection{
			Owner:           owner,
			PersonaID:       reply.PersonaID,
			ContextKeywords: sel.Keywords,
			SessionID:       &sessionID,
		})
		if err != nil {
			s.log.Warn().Err(err).Str("owner", owner).Str("persona_id", reply.PersonaID).Msg("persona selection not recorded")
		}
	}

	return reply, nil
}

// mentorRecall builds the mentor context from the journal. Recall errors degrade to the
// first-conversation text.
func (s *Service) mentorRecall(ctx context.Context, owner, message string, reply *ChatReply) string {
	result, err := s.journal.Recall(ctx, owner, message, s.cfg.RecallThreshold, s.cfg.RecallTopK)
	if err != nil {
		s.log.Warn().Err(err).Str("owner", owner).Msg("journal recall failed")
		return firstConversationContext
	}
	reply.RecallSource = result.Source
	return mentorContext(result.Entries)
}

// Reset clears the conversation state under key and ends the open chat session.
func (s *Service) Reset(ctx context.Context, owner, key string) error {
	if err := s.states.Clear(ctx, owner, convstate.NormalizeKey(key)); err != nil {
		return err
	}
	open, found, err := s.sessions.FindOpenSession(ctx, owner)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	_, err = s.sessions.EndSession(ctx, owner, open.ID)
	return err
}

// State returns the saved conversation state, found=false when there is none.
func (s *Service) State(ctx context.Context, owner, key string) (*convstate.AgentState, bool, error) {
	return s.states.Load(ctx, owner, convstate.NormalizeKey(key))
}

// recallForJournal is the context lookup used by the journal interview.
func (s *Service) recallForJournal(ctx context.Context, owner, content string) []journal.Entry {
	result, err := s.journal.Recall(ctx, owner, content, s.cfg.RecallThreshold, s.cfg.RecallTopK)
	if err != nil {
		s.log.Warn().Err(err).Str("owner", owner).Msg("journal recall failed")
		return nil
	}
	return result.Entries
}
