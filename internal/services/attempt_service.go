package services

import (
	"sort"
	"strings"

	"github.com/quizforge/quiz-service/internal/models"
)

// AttemptSession tracks one user's answers against a (possibly shuffled)
// quiz copy. Sessions are ephemeral: nothing here is ever persisted.
type AttemptSession struct {
	quiz    models.Quiz
	answers map[string]models.UserAnswer
}

func NewAttemptSession(quiz models.Quiz) *AttemptSession {
	return &AttemptSession{
		quiz:    quiz.Clone(),
		answers: map[string]models.UserAnswer{},
	}
}

func (s *AttemptSession) Quiz() models.Quiz {
	return s.quiz.Clone()
}

func (s *AttemptSession) answerFor(questionID string) models.UserAnswer {
	if a, ok := s.answers[questionID]; ok {
		return a
	}
	return models.NewUserAnswer(questionID)
}

// SelectOption records a choice. Single-answer questions replace the
// selection; multiple-answer questions toggle membership.
func (s *AttemptSession) SelectOption(questionID, optionID string) error {
	question, ok := s.quiz.Question(questionID)
	if !ok {
		return ErrQuestionNotFound
	}
	if question.MultipleChoice == nil {
		return ErrWrongKind
	}

	answer := s.answerFor(questionID)
	if question.MultipleChoice.IsMultipleAnswer {
		if answer.HasSelected(optionID) {
			kept := answer.SelectedOptionIDs[:0]
			for _, id := range answer.SelectedOptionIDs {
				if id != optionID {
					kept = append(kept, id)
				}
			}
			answer.SelectedOptionIDs = kept
		} else {
			answer.SelectedOptionIDs = append(answer.SelectedOptionIDs, optionID)
		}
	} else {
		answer.SelectedOptionIDs = []string{optionID}
	}
	s.answers[questionID] = answer
	return nil
}

func (s *AttemptSession) SetBlankAnswer(questionID, blankID, value string) error {
	question, ok := s.quiz.Question(questionID)
	if !ok {
		return ErrQuestionNotFound
	}
	if question.FillBlanks == nil {
		return ErrWrongKind
	}

	answer := s.answerFor(questionID)
	answer.BlankAnswers[blankID] = value
	s.answers[questionID] = answer
	return nil
}

// SetSequencePosition places an item at a 1-based rank; the zero sentinel
// marks the item unanswered again.
func (s *AttemptSession) SetSequencePosition(questionID, itemID string, position int) error {
	question, ok := s.quiz.Question(questionID)
	if !ok {
		return ErrQuestionNotFound
	}
	if question.Sequence == nil {
		return ErrWrongKind
	}

	answer := s.answerFor(questionID)
	if position == models.UnansweredPosition {
		delete(answer.SequencePositions, itemID)
	} else {
		answer.SequencePositions[itemID] = position
	}
	s.answers[questionID] = answer
	return nil
}

// UsedPositions lists the ranks already assigned to some item of the
// question, sorted. It is a UI hint only: assigning the same rank twice is
// allowed by the data model and simply scores both items incorrect.
func (s *AttemptSession) UsedPositions(questionID string) []int {
	answer, ok := s.answers[questionID]
	if !ok {
		return nil
	}
	var used []int
	for _, pos := range answer.SequencePositions {
		if pos != models.UnansweredPosition {
			used = append(used, pos)
		}
	}
	sort.Ints(used)
	return used
}

// IsCorrect evaluates the session's answer for the given question.
func (s *AttemptSession) IsCorrect(questionID string) bool {
	question, ok := s.quiz.Question(questionID)
	if !ok {
		return false
	}
	return IsCorrect(*question, s.answers[questionID])
}

// Answers snapshots the recorded answers, in quiz order.
func (s *AttemptSession) Answers() []models.UserAnswer {
	out := make([]models.UserAnswer, 0, len(s.answers))
	for _, q := range s.quiz.Questions {
		if a, ok := s.answers[q.ID]; ok {
			out = append(out, a.Clone())
		}
	}
	return out
}

// IsCorrect is the correctness predicate, dispatched by question type.
func IsCorrect(question models.Question, answer models.UserAnswer) bool {
	switch question.Type {
	case models.MultipleChoice:
		return choiceCorrect(question, answer)
	case models.FillInBlanks:
		return blanksCorrect(question, answer)
	case models.SequenceArrangement:
		return sequenceCorrect(question, answer)
	}
	return false
}

// choiceCorrect requires the selected set to equal the correct set exactly,
// order-independent.
func choiceCorrect(question models.Question, answer models.UserAnswer) bool {
	correct := question.CorrectOptionIDs()
	if correct == nil || len(answer.SelectedOptionIDs) != len(correct) {
		return false
	}
	for _, id := range answer.SelectedOptionIDs {
		if _, ok := correct[id]; !ok {
			return false
		}
	}
	return true
}

// blanksCorrect compares every blank trimmed and lower-cased.
func blanksCorrect(question models.Question, answer models.UserAnswer) bool {
	if question.FillBlanks == nil || len(question.FillBlanks.Blanks) == 0 {
		return false
	}
	for _, blank := range question.FillBlanks.Blanks {
		if normalize(answer.BlankAnswers[blank.ID]) != normalize(blank.Answer) {
			return false
		}
	}
	return true
}

// sequenceCorrect requires every item at its correct rank. Items whose rank
// is pre-filled are shown solved and always count as correct.
func sequenceCorrect(question models.Question, answer models.UserAnswer) bool {
	body := question.Sequence
	if body == nil || len(body.Items) == 0 {
		return false
	}
	preFilled := make(map[int]bool, len(body.PreFilledPositions))
	for _, pos := range body.PreFilledPositions {
		preFilled[pos] = true
	}
	for _, item := range body.Items {
		if preFilled[item.CorrectPosition] {
			continue
		}
		if answer.SequencePositions[item.ID] != item.CorrectPosition {
			return false
		}
	}
	return true
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// VerifyPassword compares the per-quiz password. Passwords are stored
// plaintext; this is a speed bump, not a security mechanism.
func VerifyPassword(quiz models.Quiz, password string) error {
	if quiz.Password == "" || quiz.Password == password {
		return nil
	}
	return ErrWrongPassword
}
