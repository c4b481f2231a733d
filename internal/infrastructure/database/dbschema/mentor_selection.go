package dbschema

import (
	"time"

	"github.com/lib/pq"

	"github.com/janhq/mirror-server/internal/domain/analytics"
)

// MentorSelection is the database schema for the append-only mentor_selections table.
type MentorSelection struct {
	ID              string         `gorm:"type:uuid;primaryKey"`
	UserID          string         `gorm:"type:uuid;not null"`
	PersonaID       string         `gorm:"size:32;not null"`
	ContextKeywords pq.StringArray `gorm:"type:text[];not null"`
	SessionID       *string        `gorm:"type:uuid"`
	CreatedAt       time.Time      `gorm:"not null"`
}

func (MentorSelection) TableName() string {
	return "mentor_selections"
}

func NewSchemaMentorSelection(s *analytics.Selection) *MentorSelection {
	return &MentorSelection{
		ID:              s.ID,
		UserID:          s.Owner,
		PersonaID:       s.PersonaID,
		ContextKeywords: stringArray(s.ContextKeywords),
		SessionID:       s.SessionID,
		CreatedAt:       s.CreatedAt,
	}
}
