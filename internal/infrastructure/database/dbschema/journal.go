package dbschema

import (
	"time"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"github.com/janhq/mirror-server/internal/domain/journal"
)

// JournalEntry is the database schema for the journal_entries table. Embedding is nil
// when the provider failed at write time.
type JournalEntry struct {
	ID         string           `gorm:"type:uuid;primaryKey"`
	UserID     string           `gorm:"type:uuid;not null;index:idx_journal_entries_user_created,priority:1"`
	Content    string           `gorm:"type:text;not null"`
	Embedding  *pgvector.Vector `gorm:"type:vector(768)"`
	MoodTags   pq.StringArray   `gorm:"type:text[];not null"`
	TopicTags  pq.StringArray   `gorm:"type:text[];not null"`
	IsArchived bool             `gorm:"not null;default:false"`
	CreatedAt  time.Time        `gorm:"not null;index:idx_journal_entries_user_created,priority:2,sort:desc"`
}

func (JournalEntry) TableName() string {
	return "journal_entries"
}

func NewSchemaJournalEntry(e *journal.Entry) *JournalEntry {
	var vec *pgvector.Vector
	if e.HasEmbedding() {
		v := pgvector.NewVector(e.Embedding)
		vec = &v
	}
	return &JournalEntry{
		ID:         e.ID,
		UserID:     e.Owner,
		Content:    e.Content,
		Embedding:  vec,
		MoodTags:   stringArray(e.MoodTags),
		TopicTags:  stringArray(e.TopicTags),
		IsArchived: e.IsArchived,
		CreatedAt:  e.CreatedAt,
	}
}

func (e *JournalEntry) EtoD() *journal.Entry {
	entry := &journal.Entry{
		ID:         e.ID,
		Owner:      e.UserID,
		Content:    e.Content,
		MoodTags:   toStrings(e.MoodTags),
		TopicTags:  toStrings(e.TopicTags),
		IsArchived: e.IsArchived,
		CreatedAt:  e.CreatedAt.UTC(),
	}
	if e.Embedding != nil {
		entry.Embedding = e.Embedding.Slice()
	}
	return entry
}

// ScoredJournalEntry is a similarity search row.
type ScoredJournalEntry struct {
	JournalEntry
	Similarity float64
}

// JournalFollowup is the database schema for the journal_followups table.
type JournalFollowup struct {
	ID                 string    `gorm:"type:uuid;primaryKey"`
	EntryID            string    `gorm:"type:uuid;not null;index"`
	UserID             string    `gorm:"type:uuid;not null"`
	Question           string    `gorm:"type:text;not null"`
	Answer             string    `gorm:"type:text;not null"`
	SynthesizedEntryID *string   `gorm:"type:uuid"`
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`
}

func (JournalFollowup) TableName() string {
	return "journal_followups"
}

func NewSchemaJournalFollowup(f *journal.Followup) *JournalFollowup {
	return &JournalFollowup{
		ID:                 f.ID,
		EntryID:            f.EntryID,
		UserID:             f.Owner,
		Question:           f.Question,
		Answer:             f.Answer,
		SynthesizedEntryID: f.SynthesizedEntryID,
		CreatedAt:          f.CreatedAt,
		UpdatedAt:          f.UpdatedAt,
	}
}

func (e *JournalFollowup) EtoD() *journal.Followup {
	return &journal.Followup{
		ID:                 e.ID,
		EntryID:            e.EntryID,
		Owner:              e.UserID,
		Question:           e.Question,
		Answer:             e.Answer,
		SynthesizedEntryID: e.SynthesizedEntryID,
		CreatedAt:          e.CreatedAt.UTC(),
		UpdatedAt:          e.UpdatedAt.UTC(),
	}
}
