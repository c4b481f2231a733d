package session

import "time"

// Role is the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Session is a chat conversation. At most one session per owner is open.
type Session struct {
	ID               string     `json:"id"`
	Owner            string     `json:"user_id"`
	MentorID         *string    `json:"mentor_id,omitempty"`
	SituationContext *string    `json:"situation_context,omitempty"`
	StartedAt        time.Time  `json:"started_at"`
	EndedAt          *time.Time `json:"ended_at,omitempty"`
}

func (s *Session) IsOpen() bool {
	return s.EndedAt == nil
}

// Message is immutable once stored.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Seq       int64     `json:"seq"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	PersonaID *string   `json:"persona_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// OpenParams seeds a session when one has to be created.
type OpenParams struct {
	MentorID  *string
	Situation *string
}
