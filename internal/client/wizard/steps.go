package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bridgehq/bridge/internal/client/models"
)

// Bounds for the free-text steps and the age preference range.
const (
	MinStatementLen = 20
	MaxStatementLen = 500
	MinBioLen       = 20
	MaxBioLen       = 300
	MinInterests    = 3
	MinAge          = 18
	MaxPrefAge      = 99
	MinPasswordLen  = 8
)

// Step ids, in registry order.
const (
	StepSignup      = "signup"
	StepExplanation = "explanation"
	StepGoals       = "goals"
	StepInterests   = "interests"
	StepPersonality = "personality"
	StepPreferences = "preferences"
	StepStatement   = "statement"
	StepBio         = "bio"
	StepLocation    = "location"
)

// DefaultRegistry returns the production step sequence. The explanation step
// has no validator: it only presents information.
func DefaultRegistry() Registry {
	return Registry{
		{
			ID:        StepSignup,
			Title:     "Create your account",
			Validate:  validateSignup,
			Normalize: normalizeSignup,
		},
		{
			ID:    StepExplanation,
			Title: "How Bridge works",
		},
		{
			ID:       StepGoals,
			Title:    "What brings you here?",
			Validate: validateGoals,
		},
		{
			ID:       StepInterests,
			Title:    "Select your interests",
			Validate: validateInterests,
		},
		{
			ID:        StepPersonality,
			Title:     "Your personality",
			Normalize: normalizePersonality,
		},
		{
			ID:        StepPreferences,
			Title:     "Matching preferences",
			Validate:  validatePreferences,
			Normalize: normalizePreferences,
		},
		{
			ID:       StepStatement,
			Title:    "Your ideal connection",
			Validate: boundedText(func(d *models.Profile) string { return d.Statement }, "statement", MinStatementLen, MaxStatementLen),
			Normalize: func(d *models.Profile) {
				d.Statement = strings.TrimSpace(d.Statement)
			},
		},
		{
			ID:       StepBio,
			Title:    "About you",
			Validate: boundedText(func(d *models.Profile) string { return d.Bio }, "bio", MinBioLen, MaxBioLen),
			Normalize: func(d *models.Profile) {
				d.Bio = strings.TrimSpace(d.Bio)
			},
		},
		{
			ID:        StepLocation,
			Title:     "Where are you?",
			Validate:  validateLocation,
			Normalize: normalizeLocation,
		},
	}
}

func validateSignup(d *models.Profile) error {
	if strings.TrimSpace(d.FirstName) == "" {
		return errors.New("first name is required")
	}
	if strings.TrimSpace(d.Surname) == "" {
		return errors.New("surname is required")
	}
	if !emailOK(d.Email) {
		return errors.New("enter a valid email address")
	}
	if d.Age < MinAge {
		return fmt.Errorf("you must be at least %d", MinAge)
	}
	if len(d.Password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLen)
	}
	if strings.TrimSpace(d.Profession) == "" {
		return errors.New("profession is required")
	}
	return nil
}

func normalizeSignup(d *models.Profile) {
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.Surname = strings.TrimSpace(d.Surname)
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.Profession = strings.TrimSpace(d.Profession)
}

// emailOK accepts addresses containing '@' with a '.' somewhere after it.
func emailOK(s string) bool {
	at := strings.Index(s, "@")
	if at <= 0 {
		return false
	}
	return strings.Contains(s[at+1:], ".")
}

func validateGoals(d *models.Profile) error {
	if len(d.Goals) == 0 {
		return errors.New("pick at least one goal")
	}
	return nil
}

func validateInterests(d *models.Profile) error {
	if len(d.Interests) < MinInterests {
		return fmt.Errorf("pick at least %d interests", MinInterests)
	}
	return nil
}

func normalizePersonality(d *models.Profile) {
	d.Personality.Extroversion = clamp(d.Personality.Extroversion, 0, 100)
	d.Personality.Openness = clamp(d.Personality.Openness, 0, 100)
	d.Personality.Agreeableness = clamp(d.Personality.Agreeableness, 0, 100)
	d.Personality.Conscientiousness = clamp(d.Personality.Conscientiousness, 0, 100)
}

func validatePreferences(d *models.Profile) error {
	p := d.AgePreference
	if p.Min < MinAge || p.Min > p.Max || p.Max > MaxPrefAge {
		return fmt.Errorf("age range must satisfy %d <= min <= max <= %d", MinAge, MaxPrefAge)
	}
	return nil
}

func normalizePreferences(d *models.Profile) {
	if len(d.GenderPreference) == 0 {
		d.GenderPreference = []string{"Any"}
	}
}

func validateLocation(d *models.Profile) error {
	if strings.TrimSpace(d.Location) == "" {
		return errors.New("location is required")
	}
	return nil
}

func normalizeLocation(d *models.Profile) {
	d.Location = strings.TrimSpace(d.Location)
	if d.MaxDistance < 1 {
		d.MaxDistance = 1
	}
}

// boundedText builds a validator for a free-text field with a length floor
// and ceiling, measured after trimming.
func boundedText(get func(d *models.Profile) string, name string, min, max int) func(d *models.Profile) error {
	return func(d *models.Profile) error {
		n := len(strings.TrimSpace(get(d)))
		if n < min {
			return fmt.Errorf("%s must be at least %d characters", name, min)
		}
		if n > max {
			return fmt.Errorf("%s must be at most %d characters", name, max)
		}
		return nil
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
