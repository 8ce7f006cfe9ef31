package httpapi

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/bridgehq/bridge/internal/server/models"
)

var validate = validator.New()

type personalityPayload struct {
	Extroversion      int `json:"extroversion" validate:"min=0,max=100"`
	Openness          int `json:"openness" validate:"min=0,max=100"`
	Agreeableness     int `json:"agreeableness" validate:"min=0,max=100"`
	Conscientiousness int `json:"conscientiousness" validate:"min=0,max=100"`
}

type ageRangePayload struct {
	Min int `json:"min" validate:"min=18"`
	Max int `json:"max" validate:"max=99,gtefield=Min"`
}

// signupRequest is the full onboarding profile plus credentials, as submitted
// by the client at the end of the wizard.
type signupRequest struct {
	FirstName        string             `json:"first_name" validate:"required"`
	Surname          string             `json:"surname" validate:"required"`
	Email            string             `json:"email" validate:"required,email"`
	Password         string             `json:"password" validate:"required,min=8"`
	Age              int                `json:"age" validate:"gte=18"`
	Profession       string             `json:"profession" validate:"required"`
	Goals            []string           `json:"goals" validate:"min=1"`
	Interests        []string           `json:"interests" validate:"min=3"`
	Personality      personalityPayload `json:"personality"`
	GenderPreference []string           `json:"gender_preference"`
	AgePreference    ageRangePayload    `json:"age_preference"`
	Statement        string             `json:"statement" validate:"min=20,max=500"`
	Bio              string             `json:"bio" validate:"min=20,max=300"`
	Location         string             `json:"location" validate:"required"`
	MaxDistance      int                `json:"max_distance" validate:"min=1"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type verifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6"`
}

type resendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type sendRequestRequest struct {
	ToUserID string `json:"to_user_id" validate:"required"`
}

type postMessageRequest struct {
	MessageText string `json:"message_text" validate:"required"`
}

type userPayload struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
}

type authResponse struct {
	AccessToken string      `json:"access_token"`
	User        userPayload `json:"user"`
}

// signupResponse carries no token: the account stays locked until the
// verification code is confirmed.
type signupResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

// profilePayload is the stored profile as returned to its owner. The password
// hash never leaves the server.
type profilePayload struct {
	FirstName        string             `json:"first_name"`
	Surname          string             `json:"surname"`
	Email            string             `json:"email"`
	Age              int                `json:"age"`
	Profession       string             `json:"profession"`
	Goals            []string           `json:"goals"`
	Interests        []string           `json:"interests"`
	Personality      personalityPayload `json:"personality"`
	GenderPreference []string           `json:"gender_preference"`
	AgePreference    ageRangePayload    `json:"age_preference"`
	Statement        string             `json:"statement"`
	Bio              string             `json:"bio"`
	Location         string             `json:"location"`
	MaxDistance      int                `json:"max_distance"`
}

type candidatePayload struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Bio                string   `json:"bio"`
	Interests          []string `json:"interests"`
	CompatibilityScore int      `json:"compatibility_score"`
}

type requestPayload struct {
	ID     string `json:"id"`
	FromID string `json:"from_id"`
	ToID   string `json:"to_id"`
	Status string `json:"status"`
}

type memberPayload struct {
	UserID    string `json:"user_id"`
	FirstName string `json:"first_name"`
}

type groupPayload struct {
	ID        string          `json:"id"`
	Members   []memberPayload `json:"members"`
	CreatedAt time.Time       `json:"created_at"`
}

type messagePayload struct {
	ID         string    `json:"id"`
	GroupID    string    `json:"group_id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

func (r *signupRequest) toUser() *models.User {
	return &models.User{
		Email:      r.Email,
		FirstName:  r.FirstName,
		Surname:    r.Surname,
		Age:        r.Age,
		Profession: r.Profession,
		Goals:      r.Goals,
		Interests:  r.Interests,
		Personality: models.Personality{
			Extroversion:      r.Personality.Extroversion,
			Openness:          r.Personality.Openness,
			Agreeableness:     r.Personality.Agreeableness,
			Conscientiousness: r.Personality.Conscientiousness,
		},
		GenderPreference: r.GenderPreference,
		AgePrefMin:       r.AgePreference.Min,
		AgePrefMax:       r.AgePreference.Max,
		Statement:        r.Statement,
		Bio:              r.Bio,
		Location:         r.Location,
		MaxDistance:      r.MaxDistance,
	}
}

func toUserPayload(u *models.User) userPayload {
	return userPayload{ID: u.ID, FirstName: u.FirstName, Email: u.Email}
}

func toProfilePayload(u *models.User) profilePayload {
	return profilePayload{
		FirstName:  u.FirstName,
		Surname:    u.Surname,
		Email:      u.Email,
		Age:        u.Age,
		Profession: u.Profession,
		Goals:      u.Goals,
		Interests:  u.Interests,
		Personality: personalityPayload{
			Extroversion:      u.Personality.Extroversion,
			Openness:          u.Personality.Openness,
			Agreeableness:     u.Personality.Agreeableness,
			Conscientiousness: u.Personality.Conscientiousness,
		},
		GenderPreference: u.GenderPreference,
		AgePreference:    ageRangePayload{Min: u.AgePrefMin, Max: u.AgePrefMax},
		Statement:        u.Statement,
		Bio:              u.Bio,
		Location:         u.Location,
		MaxDistance:      u.MaxDistance,
	}
}

func toCandidatePayload(c models.Candidate) candidatePayload {
	return candidatePayload{
		ID:                 c.User.ID,
		Name:               c.User.FirstName,
		Bio:                c.User.Bio,
		Interests:          c.User.Interests,
		CompatibilityScore: c.Score,
	}
}

func toRequestPayload(r *models.MatchRequest) requestPayload {
	return requestPayload{ID: r.ID, FromID: r.FromID, ToID: r.ToID, Status: r.Status}
}

func toGroupPayload(g *models.Group, members []*models.GroupMember) groupPayload {
	out := groupPayload{ID: g.ID, Members: []memberPayload{}, CreatedAt: g.CreatedAt}
	for _, m := range members {
		out.Members = append(out.Members, memberPayload{UserID: m.UserID, FirstName: m.FirstName})
	}
	return out
}

func toMessagePayload(m *models.Message) messagePayload {
	return messagePayload{
		ID:         m.ID,
		GroupID:    m.GroupID,
		SenderID:   m.SenderID,
		SenderName: m.SenderName,
		Text:       m.Text,
		CreatedAt:  m.CreatedAt,
	}
}
