package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	apperrors "github.com/quizforge/quiz-service/internal/errors"
	"github.com/quizforge/quiz-service/internal/models"
	"github.com/quizforge/quiz-service/internal/repositories"
	"github.com/quizforge/quiz-service/internal/utils"
	"github.com/quizforge/quiz-service/internal/validator"
)

// AuthoringService mutates draft quizzes. Every mutation takes a draft value
// and returns a fresh one; drafts are never aliased, so an abandoned edit
// can simply be dropped.
type AuthoringService struct {
	repo      *repositories.QuizRepository
	validator *validator.Validator
	logger    utils.Logger
}

func NewAuthoringService(repo *repositories.QuizRepository, v *validator.Validator, logger utils.Logger) *AuthoringService {
	return &AuthoringService{
		repo:      repo,
		validator: v,
		logger:    logger.With("component", "authoring_service"),
	}
}

// NewDraft starts an empty draft. ID stays empty until the first save.
func (s *AuthoringService) NewDraft() models.Quiz {
	return models.Quiz{Questions: []models.Question{}}
}

// EditDraft loads an existing quiz as a draft for editing.
func (s *AuthoringService) EditDraft(id string) (models.Quiz, error) {
	quiz, ok := s.repo.GetByID(id)
	if !ok {
		return models.Quiz{}, ErrQuizNotFound
	}
	return quiz, nil
}

// AddQuestion appends a new question with an empty body appropriate to t.
func (s *AuthoringService) AddQuestion(draft models.Quiz, t models.QuestionType) models.Quiz {
	out := draft.Clone()
	out.Questions = append(out.Questions, models.NewQuestion(t))
	return out
}

func (s *AuthoringService) RemoveQuestion(draft models.Quiz, questionID string) models.Quiz {
	out := draft.Clone()
	kept := out.Questions[:0]
	for _, q := range out.Questions {
		if q.ID != questionID {
			kept = append(kept, q)
		}
	}
	out.Questions = kept
	return out
}

// SetQuestionType switches the question's variant, clearing the fields owned
// by the other variants.
func (s *AuthoringService) SetQuestionType(draft models.Quiz, questionID string, t models.QuestionType) (models.Quiz, error) {
	return s.withQuestion(draft, questionID, func(q *models.Question) error {
		q.SetType(t)
		return nil
	})
}

func (s *AuthoringService) UpdateQuestionText(draft models.Quiz, questionID, text string) (models.Quiz, error) {
	return s.withQuestion(draft, questionID, func(q *models.Question) error {
		q.Text = text
		return nil
	})
}

func (s *AuthoringService) SetCodeSnippet(draft models.Quiz, questionID, snippet string) (models.Quiz, error) {
	return s.withQuestion(draft, questionID, func(q *models.Question) error {
		q.CodeSnippet = snippet
		return nil
	})
}

func (s *AuthoringService) AttachImage(draft models.Quiz, questionID string, image models.QuestionImage) (models.Quiz, error) {
	return s.withQuestion(draft, questionID, func(q *models.Question) error {
		q.Image = &image
		return nil
	})
}

func (s *AuthoringService) RemoveImage(draft models.Quiz, questionID string) (models.Quiz, error) {
	return s.withQuestion(draft, questionID, func(q *models.Question) error {
		q.Image = nil
		return nil
	})
}

func (s *AuthoringService) SetMultipleAnswer(draft models.Quiz, questionID string, multiple bool) (models.Quiz, error) {
	return s.withQuestion(draft, questionID, func(q *models.Question) error {
		if q.MultipleChoice == nil {
			return ErrWrongKind
		}
		q.MultipleChoice.IsMultipleAnswer = multiple
		return nil
	})
}

// ===== OPTION OPERATIONS =====

func (s *AuthoringService) AddOption(draft models.Quiz, questionID string) (models.Quiz, error) {
	return s.withQuestion(draft, questionID, func(q *models.Question) error {
		if q.MultipleChoice == nil {
			return ErrWrongKind
		}
		q.MultipleChoice.Options = append(q.MultipleChoice.Options, models.Option{ID: uuid.NewString()})
		return nil
	})
}

// OptionUpdate is a partial option edit; nil fields are left untouched.
type OptionUpdate struct {
	Text      *string
	IsCorrect *bool
}

// UpdateOption applies a partial edit. Setting IsCorrect on a single-answer
// question forces every other option in that question to incorrect within
// the same operation (exclusive-choice rule).
func (s *AuthoringService) UpdateOption(draft models.Quiz, questionID, optionID string, update OptionUpdate) (models.Quiz, error) {
	return s.withQuestion(draft, questionID, func(q *models.Question) error {
		body := q.MultipleChoice
		if body == nil {
			return ErrWrongKind
		}
		idx := -1
		for i := range body.Options {
			if body.Options[i].ID == optionID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrOptionNotFound
		}

		if update.IsCorrect != nil && *update.IsCorrect && !body.IsMultipleAnswer {
			for i := range body.Options {
				body.Options[i].IsCorrect = body.Options[i].ID == optionID
			}
		} else if update.IsCorrect != nil {
			body.Options[idx].IsCorrect = *update.IsCorrect
		}
		if update.Text != nil {
			body.Options[idx].Text = *update.Text
		}
		return nil
	})
}

func (s *AuthoringService) RemoveOption(draft models.Quiz, questionID, optionID string) (models.Quiz, error) {
	return s.withQuestion(draft, questionID, func(q *models.Question) error {
		if q.MultipleChoice == nil {
			return ErrWrongKind
		}
		q.MultipleChoice.Options = removeByID(q.MultipleChoice.Options, optionID, func(o models.Option) string { return o.ID })
		return nil
	})
}

// ===== BLANK OPERATIONS =====

func (s *AuthoringService) AddBlank(draft models.Quiz, questionID string) (models.Quiz, error) {
	return s.withQuestion(draft, questionID, func(q *models.Question) error {
		if q.FillBlanks == nil {
			return ErrWrongKind
		}
		q.FillBlanks.Blanks = append(q.FillBlanks.Blanks, models.BlankItem{ID: uuid.NewString()})
		return nil
	})
}

func (s *AuthoringService) UpdateBlank(draft models.Quiz, questionID, blankID, answer string) (models.Quiz, error) {
	return s.withQuestion(draft, questionID, func(q *models.Question) error {
		if q.FillBlanks == nil {
			return ErrWrongKind
		}
		for i := range q.FillBlanks.Blanks {
			if q.FillBlanks.Blanks[i].ID == blankID {
				q.FillBlanks.Blanks[i].Answer = answer
				return nil
			}
		}
		return ErrBlankNotFound
	})
}

func (s *AuthoringService) RemoveBlank(draft models.Quiz, questionID, blankID string) (models.Quiz, error) {
	return s.withQuestion(draft, questionID, func(q *models.Question) error {
		if q.FillBlanks == nil {
			return ErrWrongKind
		}
		q.FillBlanks.Blanks = removeByID(q.FillBlanks.Blanks, blankID, func(b models.BlankItem) string { return b.ID })
		return nil
	})
}

// ===== SEQUENCE OPERATIONS =====

// AddSequenceItem appends an item ranked after the current last one.
func (s *AuthoringService) AddSequenceItem(draft models.Quiz, questionID string) (models.Quiz, error) {
	return s.withQuestion(draft, questionID, func(q *models.Question) error {
		if q.Sequence == nil {
			return ErrWrongKind
		}
		item := models.SequenceItem{
			ID:              uuid.NewString(),
			CorrectPosition: len(q.Sequence.Items) + 1,
		}
		q.Sequence.Items = append(q.Sequence.Items, item)
		return nil
	})
}

// SequenceItemUpdate is a partial item edit; nil fields are left untouched.
type SequenceItemUpdate struct {
	Text            *string
	CorrectPosition *int
}

func (s *AuthoringService) UpdateSequenceItem(draft models.Quiz, questionID, itemID string, update SequenceItemUpdate) (models.Quiz, error) {
	return s.withQuestion(draft, questionID, func(q *models.Question) error {
		if q.Sequence == nil {
			return ErrWrongKind
		}
		for i := range q.Sequence.Items {
			if q.Sequence.Items[i].ID == itemID {
				if update.Text != nil {
					q.Sequence.Items[i].Text = *update.Text
				}
				if update.CorrectPosition != nil {
					q.Sequence.Items[i].CorrectPosition = *update.CorrectPosition
				}
				return nil
			}
		}
		return ErrItemNotFound
	})
}

func (s *AuthoringService) RemoveSequenceItem(draft models.Quiz, questionID, itemID string) (models.Quiz, error) {
	return s.withQuestion(draft, questionID, func(q *models.Question) error {
		if q.Sequence == nil {
			return ErrWrongKind
		}
		q.Sequence.Items = removeByID(q.Sequence.Items, itemID, func(i models.SequenceItem) string { return i.ID })
		return nil
	})
}

// SetPreFilledPositions replaces the list of ranks revealed to the taker.
func (s *AuthoringService) SetPreFilledPositions(draft models.Quiz, questionID string, positions []int) (models.Quiz, error) {
	return s.withQuestion(draft, questionID, func(q *models.Question) error {
		if q.Sequence == nil {
			return ErrWrongKind
		}
		q.Sequence.PreFilledPositions = append([]int(nil), positions...)
		return nil
	})
}

// ===== VALIDATION AND SAVE =====

// Validate returns the draft's rule violations. It is pure.
func (s *AuthoringService) Validate(draft models.Quiz) []string {
	return s.validator.Draft().Validate(draft)
}

// Save persists the draft. Struct-tag validation rejects malformed shapes
// (an unrecognized question type) with field errors; the draft rule checks
// come back wrapped in a DraftValidationError. Nothing is persisted while
// either fails.
func (s *AuthoringService) Save(ctx context.Context, draft models.Quiz) (models.Quiz, repositories.SaveOutcome, error) {
	if err := s.validator.ValidateStruct(draft); err != nil {
		if fieldErrors := apperrors.ToValidationErrors(err); len(fieldErrors) > 0 {
			return models.Quiz{}, "", fieldErrors
		}
		return models.Quiz{}, "", fmt.Errorf("failed to validate quiz: %w", err)
	}
	if messages := s.Validate(draft); len(messages) > 0 {
		return models.Quiz{}, "", &DraftValidationError{Messages: messages}
	}

	if draft.ID == "" {
		draft.ID = uuid.NewString()
		s.logger.Info("saving new quiz", "quiz_id", draft.ID, "title", draft.Title)
		saved, outcome, err := s.repo.Add(ctx, draft)
		if err != nil {
			return models.Quiz{}, "", fmt.Errorf("failed to save quiz: %w", err)
		}
		return saved, outcome, nil
	}

	if _, ok := s.repo.GetByID(draft.ID); !ok {
		return models.Quiz{}, "", ErrQuizNotFound
	}
	s.logger.Info("updating quiz", "quiz_id", draft.ID, "title", draft.Title)
	outcome, err := s.repo.Update(ctx, draft.ID, draft)
	if err != nil {
		return models.Quiz{}, "", fmt.Errorf("failed to update quiz: %w", err)
	}
	return draft, outcome, nil
}

// withQuestion clones the draft, applies fn to the addressed question and
// returns the new draft. The input draft is never touched.
func (s *AuthoringService) withQuestion(draft models.Quiz, questionID string, fn func(*models.Question) error) (models.Quiz, error) {
	out := draft.Clone()
	q, ok := out.Question(questionID)
	if !ok {
		return models.Quiz{}, ErrQuestionNotFound
	}
	if err := fn(q); err != nil {
		return models.Quiz{}, err
	}
	return out, nil
}

func removeByID[T any](items []T, id string, idOf func(T) string) []T {
	kept := items[:0]
	for _, item := range items {
		if idOf(item) != id {
			kept = append(kept, item)
		}
	}
	return kept
}
