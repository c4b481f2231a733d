package dbschema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/janhq/mirror-server/internal/domain/convstate"
)

// ConversationState is the database schema for the conversation_states table.
type ConversationState struct {
	ID         string         `gorm:"type:uuid;primaryKey"`
	UserID     string         `gorm:"type:uuid;not null;uniqueIndex:ux_conversation_states_user_key,priority:1"`
	SessionKey string         `gorm:"size:64;not null;uniqueIndex:ux_conversation_states_user_key,priority:2"`
	State      datatypes.JSON `gorm:"type:jsonb;not null"`
	LastAgent  string         `gorm:"size:32;not null"`
	UpdatedAt  time.Time      `gorm:"not null"`
}

func (ConversationState) TableName() string {
	return "conversation_states"
}

func NewSchemaConversationState(id string, r *convstate.Record) *ConversationState {
	return &ConversationState{
		ID:         id,
		UserID:     r.Owner,
		SessionKey: r.SessionKey,
		State:      datatypes.JSON(r.State),
		LastAgent:  r.LastAgent,
		UpdatedAt:  r.UpdatedAt,
	}
}

func (e *ConversationState) EtoD() *convstate.Record {
	return &convstate.Record{
		Owner:      e.UserID,
		SessionKey: e.SessionKey,
		State:      []byte(e.State),
		LastAgent:  e.LastAgent,
		UpdatedAt:  e.UpdatedAt.UTC(),
	}
}
