package events

import (
	"time"

	"github.com/google/uuid"
)

type QuizEventType string

const (
	// QuizSaved means the quiz reached the remote store.
	QuizSaved QuizEventType = "quiz.saved"
	// QuizSavedLocalOnly means the remote write failed and the quiz lives
	// only in the local fallback until someone reconciles it by hand.
	QuizSavedLocalOnly QuizEventType = "quiz.saved_local_only"
	// QuizFetchFailed means a collection refresh could not reach the backend.
	QuizFetchFailed QuizEventType = "quiz.fetch_failed"
)

// QuizEvent records a persistence outcome for downstream consumers.
type QuizEvent struct {
	ID        string        `json:"id"`
	Type      QuizEventType `json:"type"`
	QuizID    string        `json:"quiz_id,omitempty"`
	QuizTitle string        `json:"quiz_title,omitempty"`
	Reason    string        `json:"reason,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	Source    string        `json:"source"`
}

func NewQuizEvent(eventType QuizEventType, quizID, quizTitle, reason string) *QuizEvent {
	return &QuizEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		QuizID:    quizID,
		QuizTitle: quizTitle,
		Reason:    reason,
		Timestamp: time.Now().UTC(),
		Source:    "quiz-service",
	}
}
