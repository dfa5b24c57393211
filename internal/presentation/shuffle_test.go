package presentation

import (
	"fmt"
	"sort"
	"testing"

	"github.com/quizforge/quiz-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildQuiz(questionCount int) models.Quiz {
	quiz := models.Quiz{ID: "z1", Title: "Shuffled"}
	for i := 0; i < questionCount; i++ {
		q := models.NewQuestion(models.MultipleChoice)
		q.ID = fmt.Sprintf("q%d", i)
		q.Text = fmt.Sprintf("question %d", i)
		q.MultipleChoice.Options = []models.Option{
			{ID: fmt.Sprintf("q%d-a", i), IsCorrect: true},
			{ID: fmt.Sprintf("q%d-b", i)},
			{ID: fmt.Sprintf("q%d-c", i)},
		}
		quiz.Questions = append(quiz.Questions, q)
	}
	return quiz
}

func questionIDs(qs []models.Question) []string {
	ids := make([]string, len(qs))
	for i, q := range qs {
		ids[i] = q.ID
	}
	return ids
}

func TestShuffleQuiz_IsPermutation(t *testing.T) {
	quiz := buildQuiz(10)

	shuffled := ShuffleQuiz(quiz)

	original := questionIDs(quiz.Questions)
	got := questionIDs(shuffled.Questions)
	sort.Strings(original)
	sort.Strings(got)
	assert.Equal(t, original, got)
}

func TestShuffleQuiz_PreservesCorrectness(t *testing.T) {
	quiz := buildQuiz(5)

	shuffled := ShuffleQuiz(quiz)

	for _, q := range shuffled.Questions {
		correct := 0
		for _, o := range q.MultipleChoice.Options {
			if o.IsCorrect {
				correct++
			}
		}
		assert.Equal(t, 1, correct, "exactly one correct option survives the shuffle")
	}
}

func TestShuffleQuiz_DoesNotMutateInput(t *testing.T) {
	quiz := buildQuiz(8)
	before := quiz.Clone()

	ShuffleQuiz(quiz)

	assert.Equal(t, before, quiz)
}

func TestShuffleQuiz_SequenceRanksUntouched(t *testing.T) {
	q := models.NewQuestion(models.SequenceArrangement)
	q.ID = "q1"
	q.Text = "order"
	q.Sequence.Items = []models.SequenceItem{
		{ID: "i1", Text: "a", CorrectPosition: 1},
		{ID: "i2", Text: "b", CorrectPosition: 2},
		{ID: "i3", Text: "c", CorrectPosition: 3},
	}
	quiz := models.Quiz{ID: "z1", Title: "T", Questions: []models.Question{q}}

	shuffled := ShuffleQuiz(quiz)

	byID := map[string]int{}
	for _, item := range shuffled.Questions[0].Sequence.Items {
		byID[item.ID] = item.CorrectPosition
	}
	assert.Equal(t, map[string]int{"i1": 1, "i2": 2, "i3": 3}, byID)
}

// Every position should see every question over enough runs. With 4
// questions and 400 runs a position that never sees some question is
// astronomically unlikely under a uniform shuffle.
func TestShuffleQuiz_ReachesAllArrangements(t *testing.T) {
	quiz := buildQuiz(4)

	seen := make([]map[string]bool, 4)
	for i := range seen {
		seen[i] = map[string]bool{}
	}
	for run := 0; run < 400; run++ {
		shuffled := ShuffleQuiz(quiz)
		for pos, q := range shuffled.Questions {
			seen[pos][q.ID] = true
		}
	}

	for pos, ids := range seen {
		assert.Len(t, ids, 4, "position %d never saw all questions", pos)
	}
}

func TestShuffleForStorage_KeepsSequenceDisplayOrderSource(t *testing.T) {
	quiz := buildQuiz(6)

	stored := ShuffleForStorage(quiz)

	original := questionIDs(quiz.Questions)
	got := questionIDs(stored.Questions)
	sort.Strings(original)
	sort.Strings(got)
	assert.Equal(t, original, got)
}

func TestCombinedTake_FlattensEveryQuestion(t *testing.T) {
	quizzes := []models.Quiz{buildQuiz(3), buildQuiz(2)}
	quizzes[1].Title = "Second"

	combined := CombinedTake(quizzes)

	require.Len(t, combined, 5)
	titles := map[string]int{}
	for _, tq := range combined {
		titles[tq.QuizTitle]++
	}
	assert.Equal(t, 3, titles["Shuffled"])
	assert.Equal(t, 2, titles["Second"])
}

func TestCombinedAnswers_KeepsOrder(t *testing.T) {
	quizzes := []models.Quiz{buildQuiz(3)}

	combined := CombinedAnswers(quizzes)

	require.Len(t, combined, 3)
	assert.Equal(t, "q0", combined[0].ID)
	assert.Equal(t, "q1", combined[1].ID)
	assert.Equal(t, "q2", combined[2].ID)
}
