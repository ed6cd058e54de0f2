package httpapi

import (
	"time"

	"github.com/medassist/symptomchecker/internal/server/symptomchecks"
	"github.com/medassist/symptomchecker/internal/server/users"
)

type signupRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type signinRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	APIKey    string    `json:"api_key"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserResponse(u *users.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		APIKey:    u.APIKey,
		CreatedAt: u.CreatedAt,
	}
}

// symptomCheckRequest carries the structural constraints on a submission:
// age 0–120, severity 1–10, symptom description of at least 10 characters.
type symptomCheckRequest struct {
	Age             int     `json:"age" validate:"min=0,max=120"`
	Sex             string  `json:"sex" validate:"required"`
	Symptoms        string  `json:"symptoms" validate:"required,min=10"`
	Duration        string  `json:"duration" validate:"required"`
	Severity        int     `json:"severity" validate:"required,min=1,max=10"`
	AdditionalNotes *string `json:"additional_notes"`
}

func (r *symptomCheckRequest) submission() symptomchecks.Submission {
	notes := ""
	if r.AdditionalNotes != nil {
		notes = *r.AdditionalNotes
	}
	return symptomchecks.Submission{
		Age:             r.Age,
		Sex:             r.Sex,
		Symptoms:        r.Symptoms,
		Duration:        r.Duration,
		Severity:        r.Severity,
		AdditionalNotes: notes,
	}
}

type symptomCheckInput struct {
	Age             int     `json:"age"`
	Sex             string  `json:"sex"`
	Symptoms        string  `json:"symptoms"`
	Duration        string  `json:"duration"`
	Severity        int     `json:"severity"`
	AdditionalNotes *string `json:"additional_notes"`
}

type symptomCheckResponse struct {
	ID        int64             `json:"id"`
	UserID    int64             `json:"user_id"`
	Timestamp time.Time         `json:"timestamp"`
	Input     symptomCheckInput `json:"input"`
	Analysis  string            `json:"analysis"`
	Status    string            `json:"status"`
}

func newSymptomCheckResponse(c *symptomchecks.SymptomCheck) symptomCheckResponse {
	var notes *string
	if c.AdditionalNotes != "" {
		n := c.AdditionalNotes
		notes = &n
	}
	return symptomCheckResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		Timestamp: c.CreatedAt,
		Input: symptomCheckInput{
			Age:             c.Age,
			Sex:             c.Sex,
			Symptoms:        c.Symptoms,
			Duration:        c.Duration,
			Severity:        c.Severity,
			AdditionalNotes: notes,
		},
		Analysis: c.Analysis,
		Status:   c.Status,
	}
}

type historyResponse struct {
	Checks     []symptomCheckResponse `json:"checks"`
	TotalCount int                    `json:"total_count"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}
