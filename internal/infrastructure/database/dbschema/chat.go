package dbschema

import (
	"time"

	"github.com/janhq/mirror-server/internal/domain/session"
)

// ChatSession is the database schema for the chat_sessions table. A partial unique index
// on user_id where ended_at is null keeps one open session per owner.
type ChatSession struct {
	ID               string     `gorm:"type:uuid;primaryKey"`
	UserID           string     `gorm:"type:uuid;not null"`
	MentorID         *string    `gorm:"size:32"`
	SituationContext *string    `gorm:"type:text"`
	StartedAt        time.Time  `gorm:"not null"`
	EndedAt          *time.Time
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}

func NewSchemaChatSession(s *session.Session) *ChatSession {
	return &ChatSession{
		ID:               s.ID,
		UserID:           s.Owner,
		MentorID:         s.MentorID,
		SituationContext: s.SituationContext,
		StartedAt:        s.StartedAt,
		EndedAt:          s.EndedAt,
	}
}

func (e *ChatSession) EtoD() *session.Session {
	s := &session.Session{
		ID:               e.ID,
		Owner:            e.UserID,
		MentorID:         e.MentorID,
		SituationContext: e.SituationContext,
		StartedAt:        e.StartedAt.UTC(),
	}
	if e.EndedAt != nil {
		ended := e.EndedAt.UTC()
		s.EndedAt = &ended
	}
	return s
}

// ChatMessage is the database schema for the chat_messages table. Seq is assigned by the
// identity column.
type ChatMessage struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	SessionID string    `gorm:"type:uuid;not null"`
	Seq       int64     `gorm:"->"`
	Role      string    `gorm:"size:16;not null"`
	Content   string    `gorm:"type:text;not null"`
	PersonaID *string   `gorm:"size:32"`
	CreatedAt time.Time `gorm:"not null"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}

func NewSchemaChatMessage(m *session.Message) *ChatMessage {
	return &ChatMessage{
		ID:        m.ID,
		SessionID: m.SessionID,
		Role:      string(m.Role),
		Content:   m.Content,
		PersonaID: m.PersonaID,
		CreatedAt: m.CreatedAt,
	}
}

func (e *ChatMessage) EtoD() *session.Message {
	return &session.Message{
		ID:        e.ID,
		SessionID: e.SessionID,
		Seq:       e.Seq,
		Role:      session.Role(e.Role),
		Content:   e.Content,
		PersonaID: e.PersonaID,
		CreatedAt: e.CreatedAt.UTC(),
	}
}
