package dbschema

import (
	"time"

	"github.com/janhq/mirror-server/internal/domain/meditation"
)

// MeditationSession is the database schema for the meditation_sessions table.
type MeditationSession struct {
	ID              string     `gorm:"type:uuid;primaryKey"`
	UserID          string     `gorm:"type:uuid;not null"`
	DurationSeconds int        `gorm:"not null"`
	Completed       bool       `gorm:"not null;default:false"`
	StageReached    string     `gorm:"size:16;not null;default:welcome"`
	StartedAt       time.Time  `gorm:"not null"`
	CompletedAt     *time.Time
}

func (MeditationSession) TableName() string {
	return "meditation_sessions"
}

func NewSchemaMeditationSession(s *meditation.Session) *MeditationSession {
	return &MeditationSession{
		ID:              s.ID,
		UserID:          s.Owner,
		DurationSeconds: s.DurationSeconds,
		Completed:       s.Completed,
		StageReached:    string(s.StageReached),
		StartedAt:       s.StartedAt,
		CompletedAt:     s.CompletedAt,
	}
}

func (e *MeditationSession) EtoD() *meditation.Session {
	s := &meditation.Session{
		ID:              e.ID,
		Owner:           e.UserID,
		DurationSeconds: e.DurationSeconds,
		Completed:       e.Completed,
		StageReached:    meditation.Stage(e.StageReached),
		StartedAt:       e.StartedAt.UTC(),
	}
	if e.CompletedAt != nil {
		at := e.CompletedAt.UTC()
		s.CompletedAt = &at
	}
	return s
}

// MeditationReflection is the database schema for the meditation_reflections table.
type MeditationReflection struct {
	ID             string    `gorm:"type:uuid;primaryKey"`
	SessionID      string    `gorm:"type:uuid;not null;index"`
	Content        string    `gorm:"type:text;not null"`
	Insight        string    `gorm:"type:text;not null"`
	EmotionalState *string   `gorm:"size:64"`
	CreatedAt      time.Time `gorm:"not null"`
}

func (MeditationReflection) TableName() string {
	return "meditation_reflections"
}

func NewSchemaMeditationReflection(r *meditation.Reflection) *MeditationReflection {
	return &MeditationReflection{
		ID:             r.ID,
		SessionID:      r.SessionID,
		Content:        r.Content,
		Insight:        r.Insight,
		EmotionalState: r.EmotionalState,
		CreatedAt:      r.CreatedAt,
	}
}

func (e *MeditationReflection) EtoD() *meditation.Reflection {
	return &meditation.Reflection{
		ID:             e.ID,
		SessionID:      e.SessionID,
		Content:        e.Content,
		Insight:        e.Insight,
		EmotionalState: e.EmotionalState,
		CreatedAt:      e.CreatedAt.UTC(),
	}
}
