package store

import (
	"context"
	"errors"

	"github.com/quizforge/quiz-service/internal/models"
)

// ErrNotFound is returned by stores when no record matches the given id.
var ErrNotFound = errors.New("record not found")

// RemoteStore is the backend-as-a-service contract: three operations against
// the quizzes table. No transactions, no schema migration beyond AutoMigrate.
type RemoteStore interface {
	// Insert persists a new quiz and returns the server-echoed record.
	Insert(ctx context.Context, quiz models.Quiz) (models.Quiz, error)
	// Update replaces the stored quiz matching id.
	Update(ctx context.Context, id string, quiz models.Quiz) error
	// SelectAll returns every stored quiz.
	SelectAll(ctx context.Context) ([]models.Quiz, error)
}

// LocalStore is the durable local fallback used when the remote store is
// unreachable. Writes here must not share the remote failure domain.
type LocalStore interface {
	Put(ctx context.Context, quiz models.Quiz) error
	All(ctx context.Context) ([]models.Quiz, error)
	Close() error
}

// BlobStore holds question image attachments.
type BlobStore interface {
	// Upload stores data under a fresh key and returns its public URL and key.
	Upload(ctx context.Context, filename string, data []byte, contentType string) (url, path string, err error)
	Remove(ctx context.Context, paths ...string) error
	PublicURL(path string) string
}
