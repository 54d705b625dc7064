package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS math_problem_sessions (
	id             TEXT PRIMARY KEY,
	problem_text   TEXT NOT NULL CHECK (length(trim(problem_text)) > 0),
	correct_answer REAL NOT NULL,
	created_at     INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS math_problem_submissions (
	id            TEXT PRIMARY KEY,
	session_id    TEXT NOT NULL REFERENCES math_problem_sessions(id),
	user_answer   REAL NOT NULL,
	is_correct    INTEGER NOT NULL,
	feedback_text TEXT NOT NULL CHECK (length(trim(feedback_text)) > 0),
	created_at    INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_math_problem_submissions_session
	ON math_problem_submissions(session_id, created_at);
`

// NewSQLiteDB opens the SQLite database at path, applies pragmas and creates
// the session tables.
func NewSQLiteDB(ctx context.Context, path string, log zerolog.Logger) (*sql.DB, error) {
	if path != MemoryDSN {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A single connection keeps :memory: databases shared and avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(ctx, db, path != MemoryDSN); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	log.Info().
		Str("path", path).
		Msg("SQLite session store opened")

	return db, nil
}

func applyPragmas(ctx context.Context, db *sql.DB, wal bool) error {
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	if wal {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}
