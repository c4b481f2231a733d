package meditationrepo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/janhq/mirror-server/internal/domain/meditation"
	"github.com/janhq/mirror-server/internal/infrastructure/database"
	"github.com/janhq/mirror-server/internal/infrastructure/database/dbschema"
)

// MeditationGormRepository implements meditation.Repository using GORM.
type MeditationGormRepository struct {
	db *gorm.DB
}

var _ meditation.Repository = (*MeditationGormRepository)(nil)

func NewMeditationGormRepository(db *gorm.DB) meditation.Repository {
	return &MeditationGormRepository{db: db}
}

func (repo *MeditationGormRepository) FindIncomplete(ctx context.Context, owner string) (*meditation.Session, error) {
	var entity dbschema.MeditationSession
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND completed = false", owner).
		Order("started_at DESC").
		First(&entity).
		Error
	if err != nil {
		return nil, database.RepoError(ctx, err, "incomplete meditation session not found", "md-01")
	}
	return entity.EtoD(), nil
}

// Create relies on ux_meditation_sessions_incomplete to reject a second incomplete session.
func (repo *MeditationGormRepository) Create(ctx context.Context, s *meditation.Session) error {
	err := repo.db.WithContext(ctx).Create(dbschema.NewSchemaMeditationSession(s)).Error
	if database.IsUniqueViolation(err) {
		return meditation.ErrIncompleteSessionExists
	}
	if err != nil {
		return database.RepoError(ctx, err, "failed to create meditation session", "md-02")
	}
	return nil
}

func (repo *MeditationGormRepository) FindByID(ctx context.Context, owner, id string) (*meditation.Session, error) {
	var entity dbschema.MeditationSession
	err := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, owner).
		First(&entity).
		Error
	if err != nil {
		return nil, database.RepoError(ctx, err, "meditation session not found", "md-03")
	}
	return entity.EtoD(), nil
}

func (repo *MeditationGormRepository) AdvanceStage(ctx context.Context, owner, id string, to meditation.Stage, from []meditation.Stage) (int64, error) {
	if len(from) == 0 {
		return 0, nil
	}
	previous := make([]string, len(from))
	for i, st := range from {
		previous[i] = string(st)
	}

	result := repo.db.WithContext(ctx).
		Model(&dbschema.MeditationSession{}).
		Where("id = ? AND user_id = ? AND completed = false AND stage_reached IN ?", id, owner, previous).
		Update("stage_reached", string(to))
	if result.Error != nil {
		return 0, database.RepoError(ctx, result.Error, "failed to advance meditation stage", "md-04")
	}
	return result.RowsAffected, nil
}

func (repo *MeditationGormRepository) Complete(ctx context.Context, owner, id string, at time.Time) (int64, error) {
	result := repo.db.WithContext(ctx).
		Model(&dbschema.MeditationSession{}).
		Where("id = ? AND user_id = ? AND completed = false", id, owner).
		Updates(map[string]any{"completed": true, "completed_at": at})
	if result.Error != nil {
		return 0, database.RepoError(ctx, result.Error, "failed to complete meditation session", "md-05")
	}
	return result.RowsAffected, nil
}

func (repo *MeditationGormRepository) CreateReflection(ctx context.Context, r *meditation.Reflection) error {
	if err := repo.db.WithContext(ctx).Create(dbschema.NewSchemaMeditationReflection(r)).Error; err != nil {
		return database.RepoError(ctx, err, "failed to create meditation reflection", "md-06")
	}
	return nil
}

func (repo *MeditationGormRepository) ListReflections(ctx context.Context, sessionID string) ([]meditation.Reflection, error) {
	var rows []dbschema.MeditationReflection
	err := repo.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, database.RepoError(ctx, err, "failed to list meditation reflections", "md-07")
	}

	reflections := make([]meditation.Reflection, 0, len(rows))
	for i := range rows {
		reflections = append(reflections, *rows[i].EtoD())
	}
	return reflections, nil
}
