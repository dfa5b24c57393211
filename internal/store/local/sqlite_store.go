package local

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/quizforge/quiz-service/internal/models"
	"github.com/quizforge/quiz-service/internal/store"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS quizzes (
	id TEXT PRIMARY KEY,
	document TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// SQLiteStore is the durable local fallback: a single-file key/document
// table written whenever the remote store is unreachable, and read to
// rehydrate the collection when a cold start cannot reach the backend.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (store.LocalStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init local store schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Put(ctx context.Context, quiz models.Quiz) error {
	document, err := json.Marshal(quiz)
	if err != nil {
		return fmt.Errorf("failed to marshal quiz %s: %w", quiz.ID, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO quizzes (id, document, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(id) DO UPDATE SET document = excluded.document, updated_at = CURRENT_TIMESTAMP`,
		quiz.ID, string(document))
	if err != nil {
		return fmt.Errorf("failed to write quiz %s to local store: %w", quiz.ID, err)
	}
	return nil
}

func (s *SQLiteStore) All(ctx context.Context) ([]models.Quiz, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT document FROM quizzes ORDER BY updated_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to read local store: %w", err)
	}
	defer rows.Close()

	var quizzes []models.Quiz
	for rows.Next() {
		var document string
		if err := rows.Scan(&document); err != nil {
			return nil, fmt.Errorf("failed to scan local quiz row: %w", err)
		}
		var quiz models.Quiz
		if err := json.Unmarshal([]byte(document), &quiz); err != nil {
			return nil, fmt.Errorf("failed to unmarshal local quiz: %w", err)
		}
		quizzes = append(quizzes, quiz)
	}
	return quizzes, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
