package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/quizforge/quiz-service/internal/cache"
	"github.com/quizforge/quiz-service/internal/events"
	"github.com/quizforge/quiz-service/internal/models"
	"github.com/quizforge/quiz-service/internal/presentation"
	"github.com/quizforge/quiz-service/internal/store"
	"github.com/quizforge/quiz-service/internal/utils"
)

// SaveOutcome tells the caller where a save actually landed. A remote
// failure is deliberately not an error: the save succeeds locally either
// way, but callers can now show "saved locally only" instead of guessing.
type SaveOutcome string

const (
	SavedRemote    SaveOutcome = "remote"
	SavedLocalOnly SaveOutcome = "local_only"
)

const cacheKeyAll = "quizzes:all"

// QuizRepository owns the canonical in-memory quiz collection and keeps it
// opportunistically in sync with the remote store. Authoring and answer
// models operate on copies; nothing outside this type aliases the slice.
type QuizRepository struct {
	mu      sync.RWMutex
	quizzes []models.Quiz

	remote    store.RemoteStore
	local     store.LocalStore
	cache     cache.CacheService
	publisher events.EventPublisher
	logger    utils.Logger
}

func NewQuizRepository(
	remote store.RemoteStore,
	local store.LocalStore,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	logger utils.Logger,
) *QuizRepository {
	return &QuizRepository{
		remote:    remote,
		local:     local,
		cache:     cacheService,
		publisher: publisher,
		logger:    logger.With("component", "quiz_repository"),
	}
}

// Load replaces the local collection with the remote contents. On failure
// the prior local state is left untouched and the error is surfaced to the
// caller; if the collection is still empty the local fallback store is used
// to rehydrate instead.
func (r *QuizRepository) Load(ctx context.Context) error {
	quizzes, err := r.remote.SelectAll(ctx)
	if err != nil {
		r.logger.LogError(err, "failed to fetch quizzes from remote store")
		r.publishEvent(ctx, events.NewQuizEvent(events.QuizFetchFailed, "", "", err.Error()))
		if !r.rehydrateFromCache(ctx) {
			r.rehydrateFromLocal(ctx)
		}
		return fmt.Errorf("failed to fetch quizzes: %w", err)
	}

	r.mu.Lock()
	r.quizzes = quizzes
	r.mu.Unlock()

	r.refreshCache(ctx)
	r.logger.Info("quiz collection loaded", "count", len(quizzes))
	return nil
}

// rehydrateFromCache fills an empty collection from the shared cache, which
// holds the last successfully fetched collection and outlives a restart of
// this process. Reports whether the collection is populated afterwards.
func (r *QuizRepository) rehydrateFromCache(ctx context.Context) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.quizzes) > 0 {
		return true
	}
	if r.cache == nil {
		return false
	}
	var quizzes []models.Quiz
	if err := r.cache.Get(ctx, cacheKeyAll, &quizzes); err != nil || len(quizzes) == 0 {
		return false
	}
	r.quizzes = quizzes
	r.logger.Warn("quiz collection rehydrated from cache", "count", len(quizzes))
	return true
}

// rehydrateFromLocal fills an empty collection from the fallback store so a
// cold start without a backend still shows previously saved quizzes.
func (r *QuizRepository) rehydrateFromLocal(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.quizzes) > 0 || r.local == nil {
		return
	}
	quizzes, err := r.local.All(ctx)
	if err != nil {
		r.logger.LogError(err, "failed to rehydrate from local store")
		return
	}
	if len(quizzes) > 0 {
		r.quizzes = quizzes
		r.logger.Warn("quiz collection rehydrated from local fallback", "count", len(quizzes))
	}
}

// Add persists a new quiz. The stored copy is shuffled first so storage
// order does not reveal authoring order. A remote failure falls back to
// local-only persistence and is reported via the outcome, never the error.
func (r *QuizRepository) Add(ctx context.Context, quiz models.Quiz) (models.Quiz, SaveOutcome, error) {
	shuffled := presentation.ShuffleForStorage(quiz)

	stored, err := r.remote.Insert(ctx, shuffled)
	outcome := SavedRemote
	if err != nil {
		r.logger.LogError(err, "failed to save quiz remotely, keeping local copy", "quiz_id", quiz.ID)
		stored = shuffled
		outcome = SavedLocalOnly
		r.writeFallback(ctx, shuffled)
	}

	r.mu.Lock()
	r.quizzes = append(r.quizzes, stored)
	r.mu.Unlock()

	r.afterSave(ctx, stored, outcome)
	return stored.Clone(), outcome, nil
}

// Update replaces the stored quiz by id. The local collection is updated
// unconditionally; the remote write is best-effort.
func (r *QuizRepository) Update(ctx context.Context, id string, quiz models.Quiz) (SaveOutcome, error) {
	quiz.ID = id

	outcome := SavedRemote
	if err := r.remote.Update(ctx, id, quiz); err != nil {
		r.logger.LogError(err, "failed to update quiz remotely, keeping local copy", "quiz_id", id)
		outcome = SavedLocalOnly
		r.writeFallback(ctx, quiz)
	}

	r.mu.Lock()
	for i := range r.quizzes {
		if r.quizzes[i].ID == id {
			r.quizzes[i] = quiz
			break
		}
	}
	r.mu.Unlock()

	r.afterSave(ctx, quiz, outcome)
	return outcome, nil
}

// GetById is a pure lookup against the current local collection.
func (r *QuizRepository) GetByID(id string) (models.Quiz, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.quizzes {
		if r.quizzes[i].ID == id {
			return r.quizzes[i].Clone(), true
		}
	}
	return models.Quiz{}, false
}

// All returns a snapshot copy of the collection.
func (r *QuizRepository) All() []models.Quiz {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Quiz, len(r.quizzes))
	for i, quiz := range r.quizzes {
		out[i] = quiz.Clone()
	}
	return out
}

func (r *QuizRepository) writeFallback(ctx context.Context, quiz models.Quiz) {
	if r.local == nil {
		return
	}
	if err := r.local.Put(ctx, quiz); err != nil {
		r.logger.LogError(err, "failed to write local fallback", "quiz_id", quiz.ID)
	}
}

func (r *QuizRepository) afterSave(ctx context.Context, quiz models.Quiz, outcome SaveOutcome) {
	eventType := events.QuizSaved
	if outcome == SavedLocalOnly {
		eventType = events.QuizSavedLocalOnly
	}
	r.publishEvent(ctx, events.NewQuizEvent(eventType, quiz.ID, quiz.Title, ""))
	r.refreshCache(ctx)
}

func (r *QuizRepository) publishEvent(ctx context.Context, event *events.QuizEvent) {
	if r.publisher == nil {
		return
	}
	if err := r.publisher.PublishQuizEvent(ctx, event); err != nil {
		r.logger.LogError(err, "failed to publish quiz event", "event_type", event.Type)
	}
}

// refreshCache writes the current collection snapshot under cacheKeyAll. An
// empty collection invalidates the key instead, so a stale entry cannot
// shadow the local fallback on the next rehydrate.
func (r *QuizRepository) refreshCache(ctx context.Context) {
	if r.cache == nil {
		return
	}
	quizzes := r.All()
	if len(quizzes) == 0 {
		if err := r.cache.Delete(ctx, cacheKeyAll); err != nil {
			r.logger.LogError(err, "failed to invalidate quiz cache")
		}
		return
	}
	if err := r.cache.Set(ctx, cacheKeyAll, quizzes, 5*time.Minute); err != nil {
		r.logger.LogError(err, "failed to refresh quiz cache")
	}
}
