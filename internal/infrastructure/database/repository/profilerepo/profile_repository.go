package profilerepo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/janhq/mirror-server/internal/domain/profile"
	"github.com/janhq/mirror-server/internal/infrastructure/database"
	"github.com/janhq/mirror-server/internal/infrastructure/database/dbschema"
)

// ProfileGormRepository implements profile.Repository using GORM.
type ProfileGormRepository struct {
	db *gorm.DB
}

var _ profile.Repository = (*ProfileGormRepository)(nil)

func NewProfileGormRepository(db *gorm.DB) profile.Repository {
	return &ProfileGormRepository{db: db}
}

// Ensure inserts p with ON CONFLICT (id) DO NOTHING.
func (repo *ProfileGormRepository) Ensure(ctx context.Context, p *profile.Profile) error {
	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(dbschema.NewSchemaUserProfile(p)).
		Error
	if err != nil {
		return database.RepoError(ctx, err, "failed to ensure user profile", "pr-01")
	}
	return nil
}

func (repo *ProfileGormRepository) FindByID(ctx context.Context, id string) (*profile.Profile, error) {
	var entity dbschema.UserProfile
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		return nil, database.RepoError(ctx, err, "user profile not found", "pr-02")
	}
	return entity.EtoD(), nil
}

func (repo *ProfileGormRepository) Update(ctx context.Context, p *profile.Profile) error {
	entity := dbschema.NewSchemaUserProfile(p)
	result := repo.db.WithContext(ctx).
		Model(&dbschema.UserProfile{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"display_name":                  entity.DisplayName,
			"first_name":                    entity.FirstName,
			"occupation":                    entity.Occupation,
			"current_challenges":            entity.CurrentChallenges,
			"personal_goals":                entity.PersonalGoals,
			"interests":                     entity.Interests,
			"stress_sources":                entity.StressSources,
			"preferred_meditation_duration": entity.PreferredMeditationDuration,
			"theme":                         entity.Theme,
			"updated_at":                    time.Now().UTC(),
		})
	if result.Error != nil {
		return database.RepoError(ctx, result.Error, "failed to update user profile", "pr-03")
	}
	if result.RowsAffected == 0 {
		return database.NotFound(ctx, "user profile not found", "pr-04")
	}
	return nil
}

func (repo *ProfileGormRepository) ListIDs(ctx context.Context, afterID string, limit int) ([]string, error) {
	query := repo.db.WithContext(ctx).Model(&dbschema.UserProfile{}).Order("id ASC").Limit(limit)
	if afterID != "" {
		query = query.Where("id > ?", afterID)
	}
	var ids []string
	if err := query.Pluck("id", &ids).Error; err != nil {
		return nil, database.RepoError(ctx, err, "failed to list profile ids", "pr-05")
	}
	return ids, nil
}
