package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizforge/quiz-service/internal/models"
	"github.com/quizforge/quiz-service/internal/presentation"
	"github.com/quizforge/quiz-service/internal/repositories"
	"github.com/quizforge/quiz-service/internal/services"
	"github.com/quizforge/quiz-service/internal/utils"
)

// quizPasswordHeader carries the per-quiz password. A header keeps the
// password out of access logs, where a query parameter would end up.
const quizPasswordHeader = "X-Quiz-Password"

// TakeHandler serves the quiz-taking surface: shuffled copies, scoring and
// the combined all-quizzes views.
type TakeHandler struct {
	BaseHandler
	repo *repositories.QuizRepository
}

func NewTakeHandler(repo *repositories.QuizRepository, logger utils.Logger) *TakeHandler {
	return &TakeHandler{
		BaseHandler: NewBaseHandler(logger.With("handler", "take")),
		repo:        repo,
	}
}

// TakeQuiz returns a freshly shuffled copy of the quiz. Each request gets an
// independent shuffle.
func (h *TakeHandler) TakeQuiz(c *gin.Context) {
	quiz, ok := h.repo.GetByID(c.Param("id"))
	if !ok {
		h.RespondWithServiceError(c, services.ErrQuizNotFound)
		return
	}
	if err := services.VerifyPassword(quiz, c.GetHeader(quizPasswordHeader)); err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Quiz ready", presentation.ShuffleQuiz(quiz))
}

// ScoreRequest carries a completed attempt's answers.
type ScoreRequest struct {
	Answers []models.UserAnswer `json:"answers"`
}

// ScoreResponse is the attempt result: aggregate plus per-question verdicts.
type ScoreResponse struct {
	Correct int                       `json:"correct"`
	Total   int                       `json:"total"`
	Percent float64                   `json:"percent"`
	Verdict string                    `json:"verdict"`
	Results []services.QuestionResult `json:"results"`
}

// ScoreQuiz evaluates submitted answers against the stored quiz. Unanswered
// questions count as incorrect.
func (h *TakeHandler) ScoreQuiz(c *gin.Context) {
	quiz, ok := h.repo.GetByID(c.Param("id"))
	if !ok {
		h.RespondWithServiceError(c, services.ErrQuizNotFound)
		return
	}

	var req ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithBindingError(c, "Invalid request body", err)
		return
	}

	score, results := services.ScoreDetailed(quiz, req.Answers)
	h.RespondWithSuccess(c, http.StatusOK, "Quiz scored", ScoreResponse{
		Correct: score.Correct,
		Total:   score.Total,
		Percent: score.Percent(),
		Verdict: string(score.Verdict()),
		Results: results,
	})
}

// TakeAll flattens every quiz into one shuffled question list.
func (h *TakeHandler) TakeAll(c *gin.Context) {
	questions := presentation.CombinedTake(h.repo.All())
	h.RespondWithSuccess(c, http.StatusOK, "Combined quiz ready", questions)
}

// TakeAllAnswers is the unshuffled review companion of TakeAll.
func (h *TakeHandler) TakeAllAnswers(c *gin.Context) {
	questions := presentation.CombinedAnswers(h.repo.All())
	h.RespondWithSuccess(c, http.StatusOK, "Combined answer key ready", questions)
}
