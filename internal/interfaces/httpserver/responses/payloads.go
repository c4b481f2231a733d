package responses

import (
	"github.com/janhq/mirror-server/internal/domain/convstate"
	"github.com/janhq/mirror-server/internal/domain/meditation"
	"github.com/janhq/mirror-server/internal/domain/session"
)

// SessionResponse is the open chat session lookup.
type SessionResponse struct {
	Session *session.Session `json:"session"`
	Open    bool             `json:"open"`
}

// StateResponse is a stored conversation state.
type StateResponse struct {
	SessionKey string                `json:"session_key"`
	Found      bool                  `json:"found"`
	State      *convstate.AgentState `json:"state,omitempty"`
}

// InterviewResponse is the pending journal interview.
type InterviewResponse struct {
	Pending   bool                 `json:"pending"`
	Interview *convstate.Interview `json:"interview,omitempty"`
}

// ArchiveResponse reports archived entries.
type ArchiveResponse struct {
	Archived int64 `json:"archived"`
}

// MeditationStartResponse is a started or resumed session.
type MeditationStartResponse struct {
	Session *meditation.Session `json:"session"`
	Resumed bool                `json:"resumed"`
}

// StagesResponse is the stage catalog.
type StagesResponse struct {
	Stages        []meditation.StageInfo `json:"stages"`
	TotalDuration int                    `json:"total_duration"`
}
