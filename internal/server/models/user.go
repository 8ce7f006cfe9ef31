// Package models defines the server-side persistence records.
package models

import "time"

// Personality mirrors the four onboarding trait scores, each in [0, 100].
type Personality struct {
	Extroversion      int `json:"extroversion"`
	Openness          int `json:"openness"`
	Agreeableness     int `json:"agreeableness"`
	Conscientiousness int `json:"conscientiousness"`
}

// User is a registered account with its full matching profile. Interests are
// stored ranked, index 0 first.
type User struct {
	ID               string
	Email            string
	PasswordHash     string
	Verified         bool
	VerificationCode string
	FirstName        string
	Surname          string
	Age              int
	Profession       string
	Goals            []string
	Interests        []string
	Personality      Personality
	GenderPreference []string
	AgePrefMin       int
	AgePrefMax       int
	Statement        string
	Bio              string
	Location         string
	MaxDistance      int
	CreatedAt        time.Time
}
