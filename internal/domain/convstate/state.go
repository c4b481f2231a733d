package convstate

import (
	"encoding/json"
	"fmt"
	"time"
)

// CurrentVersion is the AgentState schema version written by this build.
const CurrentVersion = 1

const (
	DefaultSessionKey = "default"
	JournalSessionKey = "journal"
)

// Turn is one message kept in the rolling state window.
type Turn struct {
	Role    string    `json:"role" jsonschema:"enum=user,enum=assistant"`
	Content string    `json:"content"`
	Agent   string    `json:"agent,omitempty"`
	At      time.Time `json:"at,omitempty"`
}

// Interview is a pending journal followup conversation.
type Interview struct {
	EntryID   string    `json:"entry_id"`
	Content   string    `json:"content"`
	Questions []string  `json:"questions"`
	Insight   string    `json:"insight"`
	CreatedAt time.Time `json:"created_at"`
}

// AgentState is the serialized conversation state.
type AgentState struct {
	Version      int        `json:"version" jsonschema:"minimum=0"`
	CurrentAgent string     `json:"current_agent,omitempty"`
	Persona      string     `json:"persona,omitempty"`
	Context      string     `json:"context,omitempty"`
	Messages     []Turn     `json:"messages"`
	Interview    *Interview `json:"interview,omitempty"`
}

// New returns an empty state at the current version.
func New() *AgentState {
	return &AgentState{Version: CurrentVersion, Messages: []Turn{}}
}

// PushTurns appends turns and keeps only the newest limit entries.
func (s *AgentState) PushTurns(limit int, turns ...Turn) {
	s.Messages = append(s.Messages, turns...)
	if limit > 0 && len(s.Messages) > limit {
		s.Messages = append([]Turn(nil), s.Messages[len(s.Messages)-limit:]...)
	}
}

// Encode serializes the state, stamping the current version.
func Encode(s *AgentState) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("nil agent state")
	}
	out := *s
	out.Version = CurrentVersion
	if out.Messages == nil {
		out.Messages = []Turn{}
	}
	return json.Marshal(out)
}

// Decode parses a stored blob. Blobs without a version field are upgraded; blobs from a
// newer schema are rejected instead of losing fields.
func Decode(raw []byte) (*AgentState, error) {
	var header struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(raw, &header); err != nil {
		return nil, fmt.Errorf("decode agent state: %w", err)
	}
	if header.Version > CurrentVersion {
		return nil, fmt.Errorf("agent state version %d is newer than supported version %d", header.Version, CurrentVersion)
	}

	var s AgentState
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode agent state: %w", err)
	}
	if s.Version == 0 {
		upgradeV0(&s)
	}
	if s.Messages == nil {
		s.Messages = []Turn{}
	}
	return &s, nil
}

// v0 blobs carried the same keys without a version and often no message list.
func upgradeV0(s *AgentState) {
	s.Version = CurrentVersion
	for i := range s.Messages {
		if s.Messages[i].Role == "" {
			s.Messages[i].Role = "user"
		}
	}
}
