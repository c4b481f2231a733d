package profile

import (
	"fmt"
	"strings"
)

// PersonalizationContext renders the profile as natural language for prompts.
// It is empty until the user has told us their name.
func PersonalizationContext(p *Profile) string {
	if p == nil || p.FirstName == "" || p.FirstName == fallbackName {
		return ""
	}

	parts := []string{fmt.Sprintf("The user's name is %s.", p.FirstName)}
	if p.Occupation != "" {
		parts = append(parts, fmt.Sprintf("They are a %s.", p.Occupation))
	}
	if p.CurrentChallenges != "" {
		parts = append(parts, "Current challenges: "+p.CurrentChallenges)
	}
	if p.PersonalGoals != "" {
		parts = append(parts, "Their goals: "+p.PersonalGoals)
	}
	if len(p.StressSources) > 0 {
		parts = append(parts, fmt.Sprintf("Main sources of stress: %s.", strings.Join(p.StressSources, ", ")))
	}
	if len(p.Interests) > 0 {
		parts = append(parts, fmt.Sprintf("Interests: %s.", strings.Join(p.Interests, ", ")))
	}

	return strings.Join(parts, "\n")
}

// GreetingName returns the first name, or "friend".
func GreetingName(p *Profile) string {
	if p == nil || p.FirstName == "" {
		return fallbackName
	}
	return p.FirstName
}

// StressAcknowledgment names up to two of the user's stressors.
func StressAcknowledgment(p *Profile) string {
	if p == nil || len(p.StressSources) == 0 {
		return ""
	}
	if len(p.StressSources) == 1 {
		return fmt.Sprintf("I know you've been dealing with %s", p.StressSources[0])
	}
	return fmt.Sprintf("I know you've been navigating %s and %s", p.StressSources[0], p.StressSources[1])
}
