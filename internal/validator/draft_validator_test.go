package validator

import (
	"testing"

	"github.com/quizforge/quiz-service/internal/models"
	"github.com/stretchr/testify/assert"
)

func choiceQuestion(correct ...bool) models.Question {
	q := models.NewQuestion(models.MultipleChoice)
	q.Text = "Pick one"
	for i, c := range correct {
		q.MultipleChoice.Options = append(q.MultipleChoice.Options, models.Option{
			ID:        string(rune('a' + i)),
			Text:      "option",
			IsCorrect: c,
		})
	}
	return q
}

func TestDraftValidator_EmptyDraft(t *testing.T) {
	v := NewDraftValidator()

	errs := v.Validate(models.Quiz{})

	assert.Equal(t, []string{
		"Quiz title is required",
		"At least one question is required",
	}, errs)
}

func TestDraftValidator_ValidDraft(t *testing.T) {
	v := NewDraftValidator()

	quiz := models.Quiz{
		Title:     "Capitals",
		Questions: []models.Question{choiceQuestion(true, false)},
	}

	assert.Empty(t, v.Validate(quiz))
}

func TestDraftValidator_MultipleChoice(t *testing.T) {
	v := NewDraftValidator()

	tests := []struct {
		name     string
		question models.Question
		expected []string
	}{
		{
			name:     "too few options",
			question: choiceQuestion(true),
			expected: []string{"Question 1 must have at least 2 options"},
		},
		{
			name:     "no correct answer",
			question: choiceQuestion(false, false),
			expected: []string{"Question 1 must have at least one correct answer"},
		},
		{
			name: "missing text",
			question: func() models.Question {
				q := choiceQuestion(true, false)
				q.Text = "   "
				return q
			}(),
			expected: []string{"Question 1 text is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quiz := models.Quiz{Title: "T", Questions: []models.Question{tt.question}}
			assert.Equal(t, tt.expected, v.Validate(quiz))
		})
	}
}

func TestDraftValidator_FillBlanks(t *testing.T) {
	v := NewDraftValidator()

	noBlanks := models.NewQuestion(models.FillInBlanks)
	noBlanks.Text = "Fill"

	emptyAnswer := models.NewQuestion(models.FillInBlanks)
	emptyAnswer.Text = "Fill"
	emptyAnswer.FillBlanks.Blanks = []models.BlankItem{{ID: "b1", Answer: " "}}

	tests := []struct {
		name     string
		question models.Question
		expected []string
	}{
		{
			name:     "no blanks",
			question: noBlanks,
			expected: []string{"Question 1 must have at least one blank to fill"},
		},
		{
			name:     "empty answer",
			question: emptyAnswer,
			expected: []string{"Question 1 has empty answers for blanks"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quiz := models.Quiz{Title: "T", Questions: []models.Question{tt.question}}
			assert.Equal(t, tt.expected, v.Validate(quiz))
		})
	}
}

func TestDraftValidator_Sequence(t *testing.T) {
	v := NewDraftValidator()

	sequence := func(items ...models.SequenceItem) models.Question {
		q := models.NewQuestion(models.SequenceArrangement)
		q.Text = "Order"
		q.Sequence.Items = items
		return q
	}

	tests := []struct {
		name     string
		question models.Question
		expected []string
	}{
		{
			name:     "too few items",
			question: sequence(models.SequenceItem{ID: "i1", Text: "a", CorrectPosition: 1}),
			expected: []string{"Question 1 must have at least 2 sequence items"},
		},
		{
			name: "empty item text",
			question: sequence(
				models.SequenceItem{ID: "i1", Text: "a", CorrectPosition: 1},
				models.SequenceItem{ID: "i2", Text: " ", CorrectPosition: 2},
			),
			expected: []string{"Question 1 has empty sequence items"},
		},
		{
			name: "duplicate positions",
			question: sequence(
				models.SequenceItem{ID: "i1", Text: "a", CorrectPosition: 1},
				models.SequenceItem{ID: "i2", Text: "b", CorrectPosition: 1},
			),
			expected: []string{"Question 1 has duplicate positions in the sequence"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quiz := models.Quiz{Title: "T", Questions: []models.Question{tt.question}}
			assert.Equal(t, tt.expected, v.Validate(quiz))
		})
	}
}

func TestDraftValidator_IsPure(t *testing.T) {
	v := NewDraftValidator()

	quiz := models.Quiz{Title: "T", Questions: []models.Question{choiceQuestion(false, false)}}
	before := quiz.Clone()

	v.Validate(quiz)

	assert.Equal(t, before, quiz)
}
