package services

import "github.com/quizforge/quiz-service/internal/models"

// Score reduces per-question correctness into a total. Total is the question
// count; correct counts the questions whose answer passes IsCorrect, so
// correct can never exceed total.
func Score(quiz models.Quiz, answers []models.UserAnswer) models.Score {
	byQuestion := make(map[string]models.UserAnswer, len(answers))
	for _, a := range answers {
		byQuestion[a.QuestionID] = a
	}

	score := models.Score{Total: len(quiz.Questions)}
	for _, question := range quiz.Questions {
		if IsCorrect(question, byQuestion[question.ID]) {
			score.Correct++
		}
	}
	return score
}

// QuestionResult pairs a question id with its correctness, for result views.
type QuestionResult struct {
	QuestionID string `json:"question_id"`
	Correct    bool   `json:"correct"`
}

// ScoreDetailed returns the score plus per-question correctness in quiz order.
func ScoreDetailed(quiz models.Quiz, answers []models.UserAnswer) (models.Score, []QuestionResult) {
	byQuestion := make(map[string]models.UserAnswer, len(answers))
	for _, a := range answers {
		byQuestion[a.QuestionID] = a
	}

	score := models.Score{Total: len(quiz.Questions)}
	results := make([]QuestionResult, 0, len(quiz.Questions))
	for _, question := range quiz.Questions {
		correct := IsCorrect(question, byQuestion[question.ID])
		if correct {
			score.Correct++
		}
		results = append(results, QuestionResult{QuestionID: question.ID, Correct: correct})
	}
	return score, results
}
