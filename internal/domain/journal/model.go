package journal

import (
	"errors"
	"fmt"
	"time"
)

// ErrFollowupLinkFailed marks a synthesized entry that was stored but not linked.
var ErrFollowupLinkFailed = errors.New("followup link failed")

// Entry is a single journal text owned by a user.
type Entry struct {
	ID         string    `json:"id"`
	Owner      string    `json:"user_id"`
	Content    string    `json:"content"`
	Embedding  []float32 `json:"-"`
	MoodTags   []string  `json:"mood_tags"`
	TopicTags  []string  `json:"topic_tags"`
	IsArchived bool      `json:"is_archived"`
	CreatedAt  time.Time `json:"created_at"`
}

// HasEmbedding reports whether the entry takes part in similarity search.
func (e *Entry) HasEmbedding() bool {
	return len(e.Embedding) > 0
}

// Tags are the optional labels attached on append.
type Tags struct {
	Mood  []string
	Topic []string
}

// ScoredEntry is an entry returned by similarity search.
type ScoredEntry struct {
	Entry
	Similarity float64 `json:"similarity"`
}

// Followup is a question and answer attached to an entry.
type Followup struct {
	ID                 string    `json:"id"`
	EntryID            string    `json:"entry_id"`
	Owner              string    `json:"user_id"`
	Question           string    `json:"question"`
	Answer             string    `json:"answer"`
	SynthesizedEntryID *string   `json:"synthesized_entry_id,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (f *Followup) IsSynthesized() bool {
	return f.SynthesizedEntryID != nil && *f.SynthesizedEntryID != ""
}

const (
	RecallSourceSimilar = "similar"
	RecallSourceRecent  = "recent"
)

// RecallResult is what the orchestrator uses as journal context.
type RecallResult struct {
	Entries []Entry
	Source  string
}

// LinkError reports a synthesized entry that exists but could not be linked back to its
// followup. Callers can still use Entry.
type LinkError struct {
	Entry      *Entry
	FollowupID string
	Err        error
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("link entry %s to followup %s: %v", e.Entry.ID, e.FollowupID, e.Err)
}

func (e *LinkError) Unwrap() []error {
	return []error{ErrFollowupLinkFailed, e.Err}
}
