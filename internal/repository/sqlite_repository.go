package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stemsi/mathsession-backend/internal/model"
	"github.com/stemsi/mathsession-backend/internal/service"
)

// SQLiteRepository stores sessions and submissions in SQLite. IDs are
// generated here since SQLite has no UUID default.
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

func (r *SQLiteRepository) CreateSession(ctx context.Context, problemText string, correctAnswer float64) (*model.ProblemSession, error) {
	s := &model.ProblemSession{
		ID:            uuid.New(),
		ProblemText:   problemText,
		CorrectAnswer: correctAnswer,
		CreatedAt:     r.now().UTC(),
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO math_problem_sessions (id, problem_text, correct_answer, created_at)
		 VALUES (?, ?, ?, ?)`,
		s.ID.String(), s.ProblemText, s.CorrectAnswer, s.CreatedAt.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return s, nil
}

func (r *SQLiteRepository) GetSession(ctx context.Context, id string) (*model.ProblemSession, error) {
	sessionID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var s model.ProblemSession
	var rawID string
	var createdAt int64
	err = r.db.QueryRowContext(ctx,
		`SELECT id, problem_text, correct_answer, created_at
		 FROM math_problem_sessions WHERE id = ?`, sessionID.String(),
	).Scan(&rawID, &s.ProblemText, &s.CorrectAnswer, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select session: %w", err)
	}

	if s.ID, err = uuid.Parse(rawID); err != nil {
		return nil, fmt.Errorf("scan session id: %w", err)
	}
	s.CreatedAt = time.Unix(0, createdAt).UTC()
	return &s, nil
}

func (r *SQLiteRepository) CreateSubmission(ctx context.Context, sub *model.Submission) error {
	sub.ID = uuid.New()
	sub.CreatedAt = r.now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO math_problem_submissions (id, session_id, user_answer, is_correct, feedback_text, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sub.ID.String(), sub.SessionID.String(), sub.UserAnswer, sub.IsCorrect, sub.FeedbackText, sub.CreatedAt.UnixNano())
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return model.ErrNotFound
		}
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListSubmissions(ctx context.Context, sessionID string) ([]model.Submission, error) {
	id, err := parseID(sessionID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, session_id, user_answer, is_correct, feedback_text, created_at
		 FROM math_problem_submissions
		 WHERE session_id = ?
		 ORDER BY created_at ASC, rowid ASC`, id.String())
	if err != nil {
		return nil, fmt.Errorf("select submissions: %w", err)
	}
	defer rows.Close()

	submissions := []model.Submission{}
	for rows.Next() {
		var s model.Submission
		var rawID, rawSession string
		var createdAt int64
		if err := rows.Scan(&rawID, &rawSession, &s.UserAnswer, &s.IsCorrect, &s.FeedbackText, &createdAt); err != nil {
			return nil, fmt.Errorf("scan submission row: %w", err)
		}
		if s.ID, err = uuid.Parse(rawID); err != nil {
			return nil, fmt.Errorf("scan submission id: %w", err)
		}
		if s.SessionID, err = uuid.Parse(rawSession); err != nil {
			return nil, fmt.Errorf("scan submission session id: %w", err)
		}
		s.CreatedAt = time.Unix(0, createdAt).UTC()
		submissions = append(submissions, s)
	}
	return submissions, rows.Err()
}

var _ service.SessionStore = (*SQLiteRepository)(nil)
