package services

import (
	"errors"

	apperrors "github.com/quizforge/quiz-service/internal/errors"
)

var (
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrQuestionNotFound = errors.New("question not found in quiz")
	ErrOptionNotFound   = errors.New("option not found in question")
	ErrBlankNotFound    = errors.New("blank not found in question")
	ErrItemNotFound     = errors.New("sequence item not found in question")
	ErrWrongKind        = errors.New("operation does not apply to this question type")
	ErrValidationFailed = errors.New("validation failed")
	ErrWrongPassword    = errors.New("incorrect quiz password")
	ErrAccessDenied     = errors.New("access denied")
	ErrAccessExpired    = errors.New("access grant has expired")
)

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// DraftValidationError carries the human-readable rule violations of a draft
// quiz; save is a no-op while it is non-empty.
type DraftValidationError struct {
	Messages []string `json:"messages"`
}

func (e *DraftValidationError) Error() string {
	if len(e.Messages) == 1 {
		return e.Messages[0]
	}
	return ErrValidationFailed.Error()
}

func (e *DraftValidationError) Unwrap() error {
	return ErrValidationFailed
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrQuizNotFound) ||
		errors.Is(err, ErrQuestionNotFound) ||
		errors.Is(err, ErrOptionNotFound) ||
		errors.Is(err, ErrBlankNotFound) ||
		errors.Is(err, ErrItemNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve ValidationErrors
	return errors.As(err, &ve)
}

// IsUnauthorized checks if error represents a gate or password rejection
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrWrongPassword) ||
		errors.Is(err, ErrAccessDenied) ||
		errors.Is(err, ErrAccessExpired)
}
