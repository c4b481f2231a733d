package convstaterepo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/janhq/mirror-server/internal/domain/convstate"
	"github.com/janhq/mirror-server/internal/infrastructure/database"
	"github.com/janhq/mirror-server/internal/infrastructure/database/dbschema"
)

// ConversationStateGormRepository implements convstate.Repository using GORM.
type ConversationStateGormRepository struct {
	db *gorm.DB
}

var _ convstate.Repository = (*ConversationStateGormRepository)(nil)

func NewConversationStateGormRepository(db *gorm.DB) convstate.Repository {
	return &ConversationStateGormRepository{db: db}
}

func (repo *ConversationStateGormRepository) Find(ctx context.Context, owner, sessionKey string) (*convstate.Record, error) {
	var entity dbschema.ConversationState
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND session_key = ?", owner, sessionKey).
		First(&entity).
		Error
	if err != nil {
		return nil, database.RepoError(ctx, err, "conversation state not found", "st-01")
	}
	return entity.EtoD(), nil
}

// Upsert writes state and last_agent on conflict; concurrent saves resolve last write wins.
func (repo *ConversationStateGormRepository) Upsert(ctx context.Context, r *convstate.Record) error {
	entity := dbschema.NewSchemaConversationState(uuid.NewString(), r)
	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "session_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"state", "last_agent", "updated_at"}),
		}).
		Create(entity).
		Error
	if err != nil {
		return database.RepoError(ctx, err, "failed to save conversation state", "st-02")
	}
	return nil
}

func (repo *ConversationStateGormRepository) Delete(ctx context.Context, owner, sessionKey string) error {
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND session_key = ?", owner, sessionKey).
		Delete(&dbschema.ConversationState{}).
		Error
	if err != nil {
		return database.RepoError(ctx, err, "failed to clear conversation state", "st-03")
	}
	return nil
}
