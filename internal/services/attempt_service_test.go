package services

import (
	"testing"

	"github.com/quizforge/quiz-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func choiceQuestion(id string, multiple bool, options ...models.Option) models.Question {
	q := models.NewQuestion(models.MultipleChoice)
	q.ID = id
	q.Text = "Pick"
	q.MultipleChoice.Options = options
	q.MultipleChoice.IsMultipleAnswer = multiple
	return q
}

func blanksQuestion(id string, blanks ...models.BlankItem) models.Question {
	q := models.NewQuestion(models.FillInBlanks)
	q.ID = id
	q.Text = "Fill"
	q.FillBlanks.Blanks = blanks
	return q
}

func sequenceQuestion(id string, preFilled []int, items ...models.SequenceItem) models.Question {
	q := models.NewQuestion(models.SequenceArrangement)
	q.ID = id
	q.Text = "Order"
	q.Sequence.Items = items
	q.Sequence.PreFilledPositions = preFilled
	return q
}

func TestChoiceCorrectness(t *testing.T) {
	single := choiceQuestion("q1", false,
		models.Option{ID: "a", IsCorrect: true},
		models.Option{ID: "b"},
	)
	multi := choiceQuestion("q2", true,
		models.Option{ID: "a", IsCorrect: true},
		models.Option{ID: "b", IsCorrect: true},
		models.Option{ID: "c"},
	)

	tests := []struct {
		name     string
		question models.Question
		selected []string
		expected bool
	}{
		{"single correct pick", single, []string{"a"}, true},
		{"single wrong pick", single, []string{"b"}, false},
		{"single no pick", single, nil, false},
		{"multi exact set", multi, []string{"b", "a"}, true},
		{"multi missing one", multi, []string{"a"}, false},
		{"multi extra wrong", multi, []string{"a", "b", "c"}, false},
		{"multi only wrong", multi, []string{"c"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answer := models.NewUserAnswer(tt.question.ID)
			answer.SelectedOptionIDs = tt.selected
			assert.Equal(t, tt.expected, IsCorrect(tt.question, answer))
		})
	}
}

func TestBlanksCorrectness(t *testing.T) {
	question := blanksQuestion("q1",
		models.BlankItem{ID: "b1", Answer: "Paris"},
		models.BlankItem{ID: "b2", Answer: "Rome"},
	)

	tests := []struct {
		name     string
		answers  map[string]string
		expected bool
	}{
		{"exact match", map[string]string{"b1": "Paris", "b2": "Rome"}, true},
		{"case insensitive", map[string]string{"b1": "paris", "b2": "ROME"}, true},
		{"surrounding whitespace", map[string]string{"b1": "  Paris ", "b2": "Rome"}, true},
		{"one wrong", map[string]string{"b1": "Paris", "b2": "Milan"}, false},
		{"one missing", map[string]string{"b1": "Paris"}, false},
		{"internal whitespace differs", map[string]string{"b1": "Pa ris", "b2": "Rome"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answer := models.NewUserAnswer("q1")
			answer.BlankAnswers = tt.answers
			assert.Equal(t, tt.expected, IsCorrect(question, answer))
		})
	}
}

func TestSequenceCorrectness(t *testing.T) {
	question := sequenceQuestion("q1", nil,
		models.SequenceItem{ID: "i1", Text: "first", CorrectPosition: 1},
		models.SequenceItem{ID: "i2", Text: "second", CorrectPosition: 2},
		models.SequenceItem{ID: "i3", Text: "third", CorrectPosition: 3},
	)

	tests := []struct {
		name      string
		positions map[string]int
		expected  bool
	}{
		{"all placed correctly", map[string]int{"i1": 1, "i2": 2, "i3": 3}, true},
		{"two swapped", map[string]int{"i1": 2, "i2": 1, "i3": 3}, false},
		{"one unplaced", map[string]int{"i1": 1, "i2": 2}, false},
		{"nothing placed", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answer := models.NewUserAnswer("q1")
			answer.SequencePositions = tt.positions
			if answer.SequencePositions == nil {
				answer.SequencePositions = map[string]int{}
			}
			assert.Equal(t, tt.expected, IsCorrect(question, answer))
		})
	}
}

func TestSequenceCorrectness_PreFilledAlwaysCorrect(t *testing.T) {
	question := sequenceQuestion("q1", []int{2},
		models.SequenceItem{ID: "i1", Text: "first", CorrectPosition: 1},
		models.SequenceItem{ID: "i2", Text: "second", CorrectPosition: 2},
	)

	// i2 sits at a pre-filled rank, so only i1 needs an answer.
	answer := models.NewUserAnswer("q1")
	answer.SequencePositions = map[string]int{"i1": 1}

	assert.True(t, IsCorrect(question, answer))
}

func TestAttemptSession_SelectOption(t *testing.T) {
	single := choiceQuestion("q1", false,
		models.Option{ID: "a", IsCorrect: true},
		models.Option{ID: "b"},
	)
	multi := choiceQuestion("q2", true,
		models.Option{ID: "a", IsCorrect: true},
		models.Option{ID: "b", IsCorrect: true},
	)
	session := NewAttemptSession(models.Quiz{ID: "z", Title: "T", Questions: []models.Question{single, multi}})

	// Single answer replaces the previous selection.
	require.NoError(t, session.SelectOption("q1", "b"))
	require.NoError(t, session.SelectOption("q1", "a"))
	assert.True(t, session.IsCorrect("q1"))

	// Multiple answer toggles membership.
	require.NoError(t, session.SelectOption("q2", "a"))
	require.NoError(t, session.SelectOption("q2", "b"))
	assert.True(t, session.IsCorrect("q2"))
	require.NoError(t, session.SelectOption("q2", "b"))
	assert.False(t, session.IsCorrect("q2"))

	assert.ErrorIs(t, session.SelectOption("missing", "a"), ErrQuestionNotFound)
}

func TestAttemptSession_SequencePositions(t *testing.T) {
	question := sequenceQuestion("q1", nil,
		models.SequenceItem{ID: "i1", Text: "a", CorrectPosition: 1},
		models.SequenceItem{ID: "i2", Text: "b", CorrectPosition: 2},
	)
	session := NewAttemptSession(models.Quiz{ID: "z", Title: "T", Questions: []models.Question{question}})

	require.NoError(t, session.SetSequencePosition("q1", "i1", 1))
	require.NoError(t, session.SetSequencePosition("q1", "i2", 2))
	assert.Equal(t, []int{1, 2}, session.UsedPositions("q1"))
	assert.True(t, session.IsCorrect("q1"))

	// The zero sentinel marks an item unanswered again.
	require.NoError(t, session.SetSequencePosition("q1", "i2", models.UnansweredPosition))
	assert.Equal(t, []int{1}, session.UsedPositions("q1"))
	assert.False(t, session.IsCorrect("q1"))
}

func TestAttemptSession_WrongKind(t *testing.T) {
	question := blanksQuestion("q1", models.BlankItem{ID: "b1", Answer: "x"})
	session := NewAttemptSession(models.Quiz{ID: "z", Title: "T", Questions: []models.Question{question}})

	assert.ErrorIs(t, session.SelectOption("q1", "a"), ErrWrongKind)
	assert.ErrorIs(t, session.SetSequencePosition("q1", "i1", 1), ErrWrongKind)
	require.NoError(t, session.SetBlankAnswer("q1", "b1", "x"))
	assert.True(t, session.IsCorrect("q1"))
}

func TestAttemptSession_AnswersInQuizOrder(t *testing.T) {
	q1 := blanksQuestion("q1", models.BlankItem{ID: "b1", Answer: "x"})
	q2 := blanksQuestion("q2", models.BlankItem{ID: "b2", Answer: "y"})
	session := NewAttemptSession(models.Quiz{ID: "z", Title: "T", Questions: []models.Question{q1, q2}})

	require.NoError(t, session.SetBlankAnswer("q2", "b2", "y"))
	require.NoError(t, session.SetBlankAnswer("q1", "b1", "x"))

	answers := session.Answers()
	require.Len(t, answers, 2)
	assert.Equal(t, "q1", answers[0].QuestionID)
	assert.Equal(t, "q2", answers[1].QuestionID)
}

func TestVerifyPassword(t *testing.T) {
	open := models.Quiz{ID: "z1", Title: "Open"}
	locked := models.Quiz{ID: "z2", Title: "Locked", Password: "secret"}

	assert.NoError(t, VerifyPassword(open, ""))
	assert.NoError(t, VerifyPassword(open, "anything"))
	assert.NoError(t, VerifyPassword(locked, "secret"))
	assert.ErrorIs(t, VerifyPassword(locked, "wrong"), ErrWrongPassword)
	assert.ErrorIs(t, VerifyPassword(locked, ""), ErrWrongPassword)
}
