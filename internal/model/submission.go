package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Submission is one graded attempt at a ProblemSession.
type Submission struct {
	ID           uuid.UUID `json:"id"`
	SessionID    uuid.UUID `json:"session_id"`
	UserAnswer   float64   `json:"user_answer"`
	IsCorrect    bool      `json:"is_correct"`
	FeedbackText string    `json:"feedback_text"`
	CreatedAt    time.Time `json:"created_at"`
}

// SubmitAnswerRequest is the payload for submitting an answer.
// UserAnswer is kept raw because clients send either a JSON number or a numeric string.
type SubmitAnswerRequest struct {
	SessionID  string          `json:"session_id"`
	UserAnswer json.RawMessage `json:"user_answer"`
}

// SubmitAnswerResponse is returned after a submission has been graded and stored.
type SubmitAnswerResponse struct {
	Success       bool    `json:"success"`
	IsCorrect     bool    `json:"is_correct"`
	Feedback      string  `json:"feedback"`
	CorrectAnswer float64 `json:"correct_answer"`
	UserAnswer    float64 `json:"user_answer"`
}

// SubmissionHistoryResponse lists the submissions recorded for a session.
type SubmissionHistoryResponse struct {
	Success     bool         `json:"success"`
	SessionID   string       `json:"session_id"`
	Submissions []Submission `json:"submissions"`
}
