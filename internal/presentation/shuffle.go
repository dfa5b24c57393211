// Package presentation reorders quizzes for display. Shuffling is display
// only: correct positions and correctness flags are never altered, and every
// function works on deep copies of its input.
package presentation

import (
	"math/rand/v2"

	"github.com/quizforge/quiz-service/internal/models"
)

// shuffleQuestions returns a uniformly shuffled copy of qs. rand.Shuffle is
// Fisher-Yates; sort-with-random-comparator would bias the ordering.
func shuffleQuestions(qs []models.Question) []models.Question {
	out := make([]models.Question, len(qs))
	for i, q := range qs {
		out[i] = q.Clone()
	}
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

func shuffleOptions(q *models.Question) {
	if q.MultipleChoice == nil {
		return
	}
	opts := q.MultipleChoice.Options
	rand.Shuffle(len(opts), func(i, j int) {
		opts[i], opts[j] = opts[j], opts[i]
	})
}

func shuffleSequenceItems(q *models.Question) {
	if q.Sequence == nil {
		return
	}
	items := q.Sequence.Items
	rand.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

// ShuffleQuiz produces the quiz-taking copy: question order, each choice
// question's option order and each sequence question's displayed item order
// are independently shuffled.
func ShuffleQuiz(quiz models.Quiz) models.Quiz {
	out := quiz.Clone()
	out.Questions = shuffleQuestions(out.Questions)
	for i := range out.Questions {
		shuffleOptions(&out.Questions[i])
		shuffleSequenceItems(&out.Questions[i])
	}
	return out
}

// ShuffleForStorage reorders questions and options before a quiz is
// persisted, so storage order does not reveal authoring order.
func ShuffleForStorage(quiz models.Quiz) models.Quiz {
	out := quiz.Clone()
	out.Questions = shuffleQuestions(out.Questions)
	for i := range out.Questions {
		shuffleOptions(&out.Questions[i])
	}
	return out
}

// TaggedQuestion is a question annotated with the title of the quiz it came
// from, for the combined take-all view.
type TaggedQuestion struct {
	models.Question
	QuizTitle string `json:"quiz_title"`
}

func flatten(quizzes []models.Quiz) []TaggedQuestion {
	var out []TaggedQuestion
	for _, quiz := range quizzes {
		for _, q := range quiz.Questions {
			out = append(out, TaggedQuestion{Question: q.Clone(), QuizTitle: quiz.Title})
		}
	}
	return out
}

// CombinedTake flattens every quiz's questions into one shuffled list.
func CombinedTake(quizzes []models.Quiz) []TaggedQuestion {
	out := flatten(quizzes)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	for i := range out {
		shuffleOptions(&out[i].Question)
		shuffleSequenceItems(&out[i].Question)
	}
	return out
}

// CombinedAnswers is the review companion of CombinedTake: same flattening,
// no shuffling anywhere.
func CombinedAnswers(quizzes []models.Quiz) []TaggedQuestion {
	return flatten(quizzes)
}
