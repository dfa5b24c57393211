package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/quizforge/quiz-service/internal/events"
	"github.com/quizforge/quiz-service/internal/models"
	"github.com/quizforge/quiz-service/internal/store"
	"github.com/quizforge/quiz-service/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRemote struct {
	mu       sync.Mutex
	quizzes  map[string]models.Quiz
	failWith error
}

func newStubRemote() *stubRemote {
	return &stubRemote{quizzes: map[string]models.Quiz{}}
}

func (s *stubRemote) Insert(ctx context.Context, quiz models.Quiz) (models.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return models.Quiz{}, s.failWith
	}
	s.quizzes[quiz.ID] = quiz.Clone()
	return quiz, nil
}

func (s *stubRemote) Update(ctx context.Context, id string, quiz models.Quiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	if _, ok := s.quizzes[id]; !ok {
		return store.ErrNotFound
	}
	s.quizzes[id] = quiz.Clone()
	return nil
}

func (s *stubRemote) SelectAll(ctx context.Context) ([]models.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	out := make([]models.Quiz, 0, len(s.quizzes))
	for _, q := range s.quizzes {
		out = append(out, q.Clone())
	}
	return out, nil
}

type memoryLocal struct {
	mu      sync.Mutex
	quizzes map[string]models.Quiz
}

func newMemoryLocal() *memoryLocal {
	return &memoryLocal{quizzes: map[string]models.Quiz{}}
}

func (m *memoryLocal) Put(ctx context.Context, quiz models.Quiz) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quizzes[quiz.ID] = quiz.Clone()
	return nil
}

func (m *memoryLocal) All(ctx context.Context) ([]models.Quiz, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Quiz, 0, len(m.quizzes))
	for _, q := range m.quizzes {
		out = append(out, q.Clone())
	}
	return out, nil
}

func (m *memoryLocal) Close() error { return nil }

type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = payload
	return nil
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	payload, ok := f.entries[key]
	if !ok {
		return errors.New("cache miss")
	}
	return json.Unmarshal(payload, dest)
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, key)
	return nil
}

func sampleQuiz(id string) models.Quiz {
	q := models.NewQuestion(models.MultipleChoice)
	q.Text = "Pick"
	q.MultipleChoice.Options = []models.Option{
		{ID: "a", Text: "yes", IsCorrect: true},
		{ID: "b", Text: "no"},
	}
	return models.Quiz{ID: id, Title: "Sample", Questions: []models.Question{q}}
}

func TestAdd_RemoteSuccess(t *testing.T) {
	remote := newStubRemote()
	publisher := events.NewMockEventPublisher(nil)
	repo := NewQuizRepository(remote, newMemoryLocal(), nil, publisher, utils.NewDevelopmentLogger())

	saved, outcome, err := repo.Add(context.Background(), sampleQuiz("z1"))

	require.NoError(t, err)
	assert.Equal(t, SavedRemote, outcome)
	assert.Equal(t, "z1", saved.ID)

	require.Len(t, publisher.Events, 1)
	assert.Equal(t, events.QuizSaved, publisher.Events[0].Type)
}

func TestAdd_RemoteFailureFallsBackToLocal(t *testing.T) {
	remote := newStubRemote()
	remote.failWith = errors.New("connection refused")
	local := newMemoryLocal()
	publisher := events.NewMockEventPublisher(nil)
	repo := NewQuizRepository(remote, local, nil, publisher, utils.NewDevelopmentLogger())

	saved, outcome, err := repo.Add(context.Background(), sampleQuiz("z1"))

	require.NoError(t, err, "a remote failure is an outcome, not an error")
	assert.Equal(t, SavedLocalOnly, outcome)

	// The quiz is still readable and was written to the fallback store.
	got, ok := repo.GetByID("z1")
	require.True(t, ok)
	assert.Equal(t, saved.Title, got.Title)
	fallback, err := local.All(context.Background())
	require.NoError(t, err)
	require.Len(t, fallback, 1)

	require.Len(t, publisher.Events, 1)
	assert.Equal(t, events.QuizSavedLocalOnly, publisher.Events[0].Type)
}

func TestAdd_StoredCopyIsShuffledPermutation(t *testing.T) {
	repo := NewQuizRepository(newStubRemote(), nil, nil, nil, utils.NewDevelopmentLogger())

	quiz := sampleQuiz("z1")
	saved, _, err := repo.Add(context.Background(), quiz)
	require.NoError(t, err)

	require.Len(t, saved.Questions, len(quiz.Questions))
	ids := map[string]bool{}
	for _, q := range saved.Questions {
		ids[q.ID] = true
	}
	for _, q := range quiz.Questions {
		assert.True(t, ids[q.ID])
	}
}

func TestUpdate_RemoteFailureKeepsLocalCopy(t *testing.T) {
	remote := newStubRemote()
	local := newMemoryLocal()
	repo := NewQuizRepository(remote, local, nil, nil, utils.NewDevelopmentLogger())

	_, _, err := repo.Add(context.Background(), sampleQuiz("z1"))
	require.NoError(t, err)

	remote.failWith = errors.New("timeout")
	edited := sampleQuiz("z1")
	edited.Title = "Edited"

	outcome, err := repo.Update(context.Background(), "z1", edited)

	require.NoError(t, err)
	assert.Equal(t, SavedLocalOnly, outcome)
	got, ok := repo.GetByID("z1")
	require.True(t, ok)
	assert.Equal(t, "Edited", got.Title)
}

func TestLoad_FailureRehydratesFromLocal(t *testing.T) {
	remote := newStubRemote()
	remote.failWith = errors.New("unreachable")
	local := newMemoryLocal()
	require.NoError(t, local.Put(context.Background(), sampleQuiz("z1")))
	publisher := events.NewMockEventPublisher(nil)
	repo := NewQuizRepository(remote, local, nil, publisher, utils.NewDevelopmentLogger())

	err := repo.Load(context.Background())

	require.Error(t, err, "the fetch failure is surfaced even though fallback data is served")
	_, ok := repo.GetByID("z1")
	assert.True(t, ok)

	require.Len(t, publisher.Events, 1)
	assert.Equal(t, events.QuizFetchFailed, publisher.Events[0].Type)
}

func TestLoad_SuccessWritesCache(t *testing.T) {
	remote := newStubRemote()
	_, err := remote.Insert(context.Background(), sampleQuiz("z1"))
	require.NoError(t, err)
	cacheSvc := newFakeCache()
	repo := NewQuizRepository(remote, nil, cacheSvc, nil, utils.NewDevelopmentLogger())

	require.NoError(t, repo.Load(context.Background()))

	var cached []models.Quiz
	require.NoError(t, cacheSvc.Get(context.Background(), cacheKeyAll, &cached))
	require.Len(t, cached, 1)
	assert.Equal(t, "z1", cached[0].ID)
}

func TestLoad_FailureRehydratesFromCache(t *testing.T) {
	cacheSvc := newFakeCache()
	cached := sampleQuiz("z1")
	cached.Title = "From cache"
	require.NoError(t, cacheSvc.Set(context.Background(), cacheKeyAll, []models.Quiz{cached}, time.Minute))

	local := newMemoryLocal()
	stale := sampleQuiz("z1")
	stale.Title = "From fallback"
	require.NoError(t, local.Put(context.Background(), stale))

	remote := newStubRemote()
	remote.failWith = errors.New("unreachable")
	repo := NewQuizRepository(remote, local, cacheSvc, nil, utils.NewDevelopmentLogger())

	require.Error(t, repo.Load(context.Background()))

	got, ok := repo.GetByID("z1")
	require.True(t, ok)
	assert.Equal(t, "From cache", got.Title, "the cache is consulted before the local fallback")
}

func TestLoad_FailureCacheMissFallsBackToLocal(t *testing.T) {
	local := newMemoryLocal()
	require.NoError(t, local.Put(context.Background(), sampleQuiz("z1")))

	remote := newStubRemote()
	remote.failWith = errors.New("unreachable")
	repo := NewQuizRepository(remote, local, newFakeCache(), nil, utils.NewDevelopmentLogger())

	require.Error(t, repo.Load(context.Background()))

	_, ok := repo.GetByID("z1")
	assert.True(t, ok)
}

func TestLoad_FailureKeepsExistingCollection(t *testing.T) {
	remote := newStubRemote()
	repo := NewQuizRepository(remote, nil, nil, nil, utils.NewDevelopmentLogger())

	_, _, err := repo.Add(context.Background(), sampleQuiz("z1"))
	require.NoError(t, err)

	remote.failWith = errors.New("unreachable")
	require.Error(t, repo.Load(context.Background()))

	_, ok := repo.GetByID("z1")
	assert.True(t, ok, "existing quizzes survive a failed refresh")
}

func TestGetByID_ReturnsIndependentCopy(t *testing.T) {
	repo := NewQuizRepository(newStubRemote(), nil, nil, nil, utils.NewDevelopmentLogger())

	_, _, err := repo.Add(context.Background(), sampleQuiz("z1"))
	require.NoError(t, err)

	first, ok := repo.GetByID("z1")
	require.True(t, ok)
	first.Title = "mutated"

	second, ok := repo.GetByID("z1")
	require.True(t, ok)
	assert.Equal(t, "Sample", second.Title)
}

func TestGetByID_Missing(t *testing.T) {
	repo := NewQuizRepository(newStubRemote(), nil, nil, nil, utils.NewDevelopmentLogger())

	_, ok := repo.GetByID("missing")
	assert.False(t, ok)
}
