// Package models defines the client-side data types for onboarding,
// matching and group chat.
package models

// Personality holds the four trait scores collected by the onboarding
// sliders. Each score is in [0, 100].
type Personality struct {
	Extroversion      int `json:"extroversion"`
	Openness          int `json:"openness"`
	Agreeableness     int `json:"agreeableness"`
	Conscientiousness int `json:"conscientiousness"`
}

// AgeRange is the age preference pair. Invariant: 18 <= Min <= Max <= 99,
// enforced by the preferences step validator.
type AgeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Profile is the full user profile assembled by the onboarding wizard and
// submitted on signup. Interests are ranked: index 0 is the highest priority.
type Profile struct {
	FirstName        string      `json:"first_name"`
	Surname          string      `json:"surname"`
	Email            string      `json:"email"`
	Password         string      `json:"password,omitempty"`
	Age              int         `json:"age"`
	Profession       string      `json:"profession"`
	Goals            []string    `json:"goals"`
	Interests        []string    `json:"interests"`
	Personality      Personality `json:"personality"`
	GenderPreference []string    `json:"gender_preference"`
	AgePreference    AgeRange    `json:"age_preference"`
	Statement        string      `json:"statement"`
	Bio              string      `json:"bio"`
	Location         string      `json:"location"`
	MaxDistance      int         `json:"max_distance"`
}

// Clone returns a deep copy. Used when the wizard hands the finished draft
// off for submission so later edits cannot alias the submitted value.
func (p Profile) Clone() Profile {
	out := p
	out.Goals = append([]string(nil), p.Goals...)
	out.Interests = append([]string(nil), p.Interests...)
	out.GenderPreference = append([]string(nil), p.GenderPreference...)
	return out
}

// User identifies an authenticated account as returned by the backend.
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
}
