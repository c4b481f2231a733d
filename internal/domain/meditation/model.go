package meditation

import "time"

// Stage is how far a meditation session got. Stages only move forward.
type Stage string

const (
	StageWelcome       Stage = "welcome"
	StageBreathing     Stage = "breathing"
	StageBodyScan      Stage = "bodyscan"
	StageVisualization Stage = "visualization"
	StageClosing       Stage = "closing"
)

var stageOrder = []Stage{StageWelcome, StageBreathing, StageBodyScan, StageVisualization, StageClosing}

// Rank is the position of s in the session, or -1 when s is unknown.
func (s Stage) Rank() int {
	for i, st := range stageOrder {
		if st == s {
			return i
		}
	}
	return -1
}

func (s Stage) Valid() bool {
	return s.Rank() >= 0
}

// Before lists the stages ranked strictly lower than s.
func (s Stage) Before() []Stage {
	rank := s.Rank()
	if rank <= 0 {
		return nil
	}
	return append([]Stage(nil), stageOrder[:rank]...)
}

// Stages returns every stage in order.
func Stages() []Stage {
	return append([]Stage(nil), stageOrder...)
}

// Session is one sitting. At most one incomplete session exists per owner.
type Session struct {
	ID              string     `json:"id"`
	Owner           string     `json:"user_id"`
	DurationSeconds int        `json:"duration_seconds"`
	Completed       bool       `json:"completed"`
	StageReached    Stage      `json:"stage_reached"`
	StartedAt       time.Time  `json:"started_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

// Reflection is what the user wrote after a session.
type Reflection struct {
	ID             string    `json:"id"`
	SessionID      string    `json:"session_id"`
	Content        string    `json:"content"`
	Insight        string    `json:"insight"`
	EmotionalState *string   `json:"emotional_state,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
