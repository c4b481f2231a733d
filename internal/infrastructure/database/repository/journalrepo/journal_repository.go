package journalrepo

import (
	"context"
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/janhq/mirror-server/internal/domain/journal"
	"github.com/janhq/mirror-server/internal/infrastructure/database"
	"github.com/janhq/mirror-server/internal/infrastructure/database/dbschema"
)

// JournalGormRepository implements journal.Repository on Postgres with pgvector.
type JournalGormRepository struct {
	db *gorm.DB
}

var _ journal.Repository = (*JournalGormRepository)(nil)

func NewJournalGormRepository(db *gorm.DB) journal.Repository {
	return &JournalGormRepository{db: db}
}

func (repo *JournalGormRepository) Create(ctx context.Context, e *journal.Entry) error {
	if err := repo.db.WithContext(ctx).Create(dbschema.NewSchemaJournalEntry(e)).Error; err != nil {
		return database.RepoError(ctx, err, "failed to create journal entry", "jr-01")
	}
	return nil
}

func (repo *JournalGormRepository) FindByID(ctx context.Context, owner, id string) (*journal.Entry, error) {
	var entity dbschema.JournalEntry
	err := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, owner).
		First(&entity).
		Error
	if err != nil {
		return nil, database.RepoError(ctx, err, "journal entry not found", "jr-02")
	}
	return entity.EtoD(), nil
}

// SearchSimilar ranks by cosine distance. Similarity is 1 - distance.
func (repo *JournalGormRepository) SearchSimilar(ctx context.Context, owner string, vector []float32, threshold float64, limit int) ([]journal.ScoredEntry, error) {
	query := pgvector.NewVector(vector)

	var rows []dbschema.ScoredJournalEntry
	err := repo.db.WithContext(ctx).
		Model(&dbschema.JournalEntry{}).
		Select("*, 1 - (embedding <=> ?::vector) AS similarity", query).
		Where("user_id = ? AND is_archived = false AND embedding IS NOT NULL", owner).
		Where("1 - (embedding <=> ?::vector) > ?", query, threshold).
		Order(clause.Expr{SQL: "embedding <=> ?::vector", Vars: []any{query}}).
		Limit(limit).
		Scan(&rows).
		Error
	if err != nil {
		return nil, database.RepoError(ctx, err, "failed to search journal entries", "jr-03")
	}

	results := make([]journal.ScoredEntry, 0, len(rows))
	for i := range rows {
		results = append(results, journal.ScoredEntry{Entry: *rows[i].EtoD(), Similarity: rows[i].Similarity})
	}
	return results, nil
}

func (repo *JournalGormRepository) FindRecent(ctx context.Context, owner string, limit int) ([]journal.Entry, error) {
	var rows []dbschema.JournalEntry
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND is_archived = false", owner).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, database.RepoError(ctx, err, "failed to list recent journal entries", "jr-04")
	}

	entries := make([]journal.Entry, 0, len(rows))
	for i := range rows {
		entries = append(entries, *rows[i].EtoD())
	}
	return entries, nil
}

func (repo *JournalGormRepository) ArchiveBefore(ctx context.Context, owner string, cutoff time.Time) (int64, error) {
	result := repo.db.WithContext(ctx).
		Model(&dbschema.JournalEntry{}).
		Where("user_id = ? AND is_archived = false AND created_at < ?", owner, cutoff).
		Update("is_archived", true)
	if result.Error != nil {
		return 0, database.RepoError(ctx, result.Error, "failed to archive journal entries", "jr-05")
	}
	return result.RowsAffected, nil
}

func (repo *JournalGormRepository) CreateFollowup(ctx context.Context, f *journal.Followup) error {
	if err := repo.db.WithContext(ctx).Create(dbschema.NewSchemaJournalFollowup(f)).Error; err != nil {
		return database.RepoError(ctx, err, "failed to create journal followup", "jr-06")
	}
	return nil
}

func (repo *JournalGormRepository) FindFollowup(ctx context.Context, owner, id string) (*journal.Followup, error) {
	var entity dbschema.JournalFollowup
	err := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, owner).
		First(&entity).
		Error
	if err != nil {
		return nil, database.RepoError(ctx, err, "journal followup not found", "jr-07")
	}
	return entity.EtoD(), nil
}

// LinkFollowup only touches followups that are not linked yet.
func (repo *JournalGormRepository) LinkFollowup(ctx context.Context, owner, followupID, entryID string) (int64, error) {
	result := repo.db.WithContext(ctx).
		Model(&dbschema.JournalFollowup{}).
		Where("id = ? AND user_id = ? AND synthesized_entry_id IS NULL", followupID, owner).
		Updates(map[string]any{
			"synthesized_entry_id": entryID,
			"updated_at":           time.Now().UTC(),
		})
	if result.Error != nil {
		return 0, database.RepoError(ctx, result.Error, "failed to link journal followup", "jr-08")
	}
	return result.RowsAffected, nil
}
