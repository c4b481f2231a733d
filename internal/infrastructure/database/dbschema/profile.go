package dbschema

import (
	"time"

	"github.com/lib/pq"

	"github.com/janhq/mirror-server/internal/domain/profile"
)

// UserProfile is the database schema for the user_profiles table.
type UserProfile struct {
	ID                          string         `gorm:"type:uuid;primaryKey"`
	DisplayName                 string         `gorm:"size:255;not null"`
	FirstName                   string         `gorm:"size:255;not null"`
	Occupation                  string         `gorm:"size:255;not null"`
	CurrentChallenges           string         `gorm:"type:text;not null"`
	PersonalGoals               string         `gorm:"type:text;not null"`
	Interests                   pq.StringArray `gorm:"type:text[];not null"`
	StressSources               pq.StringArray `gorm:"type:text[];not null"`
	PreferredMeditationDuration int            `gorm:"not null;default:600"`
	Theme                       string         `gorm:"size:16;not null;default:zen"`
	CreatedAt                   time.Time      `gorm:"not null"`
	UpdatedAt                   time.Time      `gorm:"not null"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

func NewSchemaUserProfile(p *profile.Profile) *UserProfile {
	return &UserProfile{
		ID:                          p.ID,
		DisplayName:                 p.DisplayName,
		FirstName:                   p.FirstName,
		Occupation:                  p.Occupation,
		CurrentChallenges:           p.CurrentChallenges,
		PersonalGoals:               p.PersonalGoals,
		Interests:                   stringArray(p.Interests),
		StressSources:               stringArray(p.StressSources),
		PreferredMeditationDuration: p.PreferredMeditationDuration,
		Theme:                       string(p.Theme),
		CreatedAt:                   p.CreatedAt,
		UpdatedAt:                   p.UpdatedAt,
	}
}

func (e *UserProfile) EtoD() *profile.Profile {
	return &profile.Profile{
		ID:                          e.ID,
		DisplayName:                 e.DisplayName,
		FirstName:                   e.FirstName,
		Occupation:                  e.Occupation,
		CurrentChallenges:           e.CurrentChallenges,
		PersonalGoals:               e.PersonalGoals,
		Interests:                   toStrings(e.Interests),
		StressSources:               toStrings(e.StressSources),
		PreferredMeditationDuration: e.PreferredMeditationDuration,
		Theme:                       profile.Theme(e.Theme),
		CreatedAt:                   e.CreatedAt.UTC(),
		UpdatedAt:                   e.UpdatedAt.UTC(),
	}
}

func stringArray(values []string) pq.StringArray {
	if values == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(values)
}

func toStrings(values pq.StringArray) []string {
	if values == nil {
		return []string{}
	}
	return []string(values)
}
