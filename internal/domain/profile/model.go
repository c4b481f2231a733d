package profile

import "time"

const (
	DefaultMeditationDuration = 600
	DefaultTheme              = ThemeZen
	fallbackName              = "friend"
)

// Theme is the UI theme a user prefers.
type Theme string

const (
	ThemeZen      Theme = "zen"
	ThemeTerminal Theme = "terminal"
)

func (t Theme) Valid() bool {
	return t == ThemeZen || t == ThemeTerminal
}

// Profile is the single row owned by a user identity.
type Profile struct {
	ID                          string    `json:"id"`
	DisplayName                 string    `json:"display_name"`
	FirstName                   string    `json:"first_name"`
	Occupation                  string    `json:"occupation"`
	CurrentChallenges           string    `json:"current_challenges"`
	PersonalGoals               string    `json:"personal_goals"`
	Interests                   []string  `json:"interests"`
	StressSources               []string  `json:"stress_sources"`
	PreferredMeditationDuration int       `json:"preferred_meditation_duration"`
	Theme                       Theme     `json:"theme"`
	CreatedAt                   time.Time `json:"created_at"`
	UpdatedAt                   time.Time `json:"updated_at"`
}

// NewDefault returns the profile created lazily on first access.
func NewDefault(owner string) *Profile {
	now := time.Now().UTC()
	return &Profile{
		ID:                          owner,
		DisplayName:                 "User",
		Interests:                   []string{},
		StressSources:               []string{},
		PreferredMeditationDuration: DefaultMeditationDuration,
		Theme:                       DefaultTheme,
		CreatedAt:                   now,
		UpdatedAt:                   now,
	}
}

// UpdateParams carries a partial profile update. Nil fields are left untouched.
type UpdateParams struct {
	DisplayName                 *string
	FirstName                   *string
	Occupation                  *string
	CurrentChallenges           *string
	PersonalGoals               *string
	Interests                   []string
	StressSources               []string
	PreferredMeditationDuration *int
	Theme                       *Theme
}
