package model

import (
	"time"

	"github.com/google/uuid"
)

// ProblemSession is a generated word problem together with its canonical answer.
// Rows are written once and never updated.
type ProblemSession struct {
	ID            uuid.UUID `json:"id"`
	ProblemText   string    `json:"problem_text"`
	CorrectAnswer float64   `json:"correct_answer"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateSessionResponse is returned by the create endpoint.
// FinalAnswer is nil when the server is configured to withhold it.
type CreateSessionResponse struct {
	Success     bool     `json:"success"`
	SessionID   string   `json:"session_id"`
	ProblemText string   `json:"problem_text"`
	FinalAnswer *float64 `json:"final_answer,omitempty"`
}
