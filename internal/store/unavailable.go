package store

import (
	"context"

	"github.com/quizforge/quiz-service/internal/models"
)

// UnavailableRemote stands in for the remote store when the backend could
// not be reached at startup. Every call fails with the original connection
// error, which routes all saves through the local fallback path.
type UnavailableRemote struct {
	Err error
}

func (u UnavailableRemote) Insert(ctx context.Context, quiz models.Quiz) (models.Quiz, error) {
	return models.Quiz{}, u.Err
}

func (u UnavailableRemote) Update(ctx context.Context, id string, quiz models.Quiz) error {
	return u.Err
}

func (u UnavailableRemote) SelectAll(ctx context.Context) ([]models.Quiz, error) {
	return nil, u.Err
}
