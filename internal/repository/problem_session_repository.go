package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/mathsession-backend/internal/model"
	"github.com/stemsi/mathsession-backend/internal/service"
)

// pgForeignKeyViolation is the SQLSTATE for a missing referenced row.
const pgForeignKeyViolation = "23503"

// ProblemSessionRepository stores sessions and submissions in PostgreSQL.
type ProblemSessionRepository struct {
	pool *pgxpool.Pool
}

func NewProblemSessionRepository(pool *pgxpool.Pool) *ProblemSessionRepository {
	return &ProblemSessionRepository{pool: pool}
}

// CreateSession inserts a new session. ID and created_at are assigned by the database.
func (r *ProblemSessionRepository) CreateSession(ctx context.Context, problemText string, correctAnswer float64) (*model.ProblemSession, error) {
	s := &model.ProblemSession{ProblemText: problemText, CorrectAnswer: correctAnswer}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO math_problem_sessions (problem_text, correct_answer)
		 VALUES ($1, $2)
		 RETURNING id, created_at`,
		problemText, correctAnswer,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return s, nil
}

func (r *ProblemSessionRepository) GetSession(ctx context.Context, id string) (*model.ProblemSession, error) {
	sessionID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	s := &model.ProblemSession{}
	err = r.pool.QueryRow(ctx,
		`SELECT id, problem_text, correct_answer, created_at
		 FROM math_problem_sessions WHERE id = $1`, sessionID,
	).Scan(&s.ID, &s.ProblemText, &s.CorrectAnswer, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select session: %w", err)
	}
	return s, nil
}

// CreateSubmission inserts sub and fills its ID and CreatedAt.
func (r *ProblemSessionRepository) CreateSubmission(ctx context.Context, sub *model.Submission) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO math_problem_submissions (session_id, user_answer, is_correct, feedback_text)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		sub.SessionID, sub.UserAnswer, sub.IsCorrect, sub.FeedbackText,
	).Scan(&sub.ID, &sub.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return model.ErrNotFound
		}
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

// ListSubmissions returns a session's submissions, oldest first.
func (r *ProblemSessionRepository) ListSubmissions(ctx context.Context, sessionID string) ([]model.Submission, error) {
	id, err := parseID(sessionID)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, session_id, user_answer, is_correct, feedback_text, created_at
		 FROM math_problem_submissions
		 WHERE session_id = $1
		 ORDER BY created_at ASC, id ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("select submissions: %w", err)
	}
	defer rows.Close()

	submissions := []model.Submission{}
	for rows.Next() {
		var s model.Submission
		if err := rows.Scan(&s.ID, &s.SessionID, &s.UserAnswer, &s.IsCorrect, &s.FeedbackText, &s.CreatedAt); err != nil {
			return nil, err
		}
		submissions = append(submissions, s)
	}
	return submissions, rows.Err()
}

var _ service.SessionStore = (*ProblemSessionRepository)(nil)
