package analyticsrepo

import (
	"context"

	"gorm.io/gorm"

	"github.com/janhq/mirror-server/internal/domain/analytics"
	"github.com/janhq/mirror-server/internal/infrastructure/database"
	"github.com/janhq/mirror-server/internal/infrastructure/database/dbschema"
)

// MentorSelectionGormRepository appends rows to mentor_selections.
type MentorSelectionGormRepository struct {
	db *gorm.DB
}

var _ analytics.Repository = (*MentorSelectionGormRepository)(nil)

func NewMentorSelectionGormRepository(db *gorm.DB) analytics.Repository {
	return &MentorSelectionGormRepository{db: db}
}

func (repo *MentorSelectionGormRepository) Insert(ctx context.Context, s *analytics.Selection) error {
	if err := repo.db.WithContext(ctx).Create(dbschema.NewSchemaMentorSelection(s)).Error; err != nil {
		return database.RepoError(ctx, err, "failed to record mentor selection", "an-01")
	}
	return nil
}
