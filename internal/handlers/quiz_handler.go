package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizforge/quiz-service/internal/models"
	"github.com/quizforge/quiz-service/internal/repositories"
	"github.com/quizforge/quiz-service/internal/services"
	"github.com/quizforge/quiz-service/internal/utils"
)

// QuizHandler serves the authoring surface: create, update, list and export.
type QuizHandler struct {
	BaseHandler
	authoring *services.AuthoringService
	export    *services.ExportService
	repo      *repositories.QuizRepository
}

func NewQuizHandler(
	authoring *services.AuthoringService,
	export *services.ExportService,
	repo *repositories.QuizRepository,
	logger utils.Logger,
) *QuizHandler {
	return &QuizHandler{
		BaseHandler: NewBaseHandler(logger.With("handler", "quiz")),
		authoring:   authoring,
		export:      export,
		repo:        repo,
	}
}

// QuizSummary is the list view of a quiz. Passwords never leave the server
// through this endpoint.
type QuizSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	QuestionCount int    `json:"question_count"`
	HasPassword   bool   `json:"has_password"`
}

// ListQuizzes returns summaries of every quiz in the collection.
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	quizzes := h.repo.All()
	summaries := make([]QuizSummary, len(quizzes))
	for i, quiz := range quizzes {
		summaries[i] = QuizSummary{
			ID:            quiz.ID,
			Title:         quiz.Title,
			QuestionCount: len(quiz.Questions),
			HasPassword:   quiz.Password != "",
		}
	}
	h.RespondWithSuccess(c, http.StatusOK, "Quizzes retrieved successfully", summaries)
}

// GetQuiz returns the full quiz including the answer key, for editing.
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quiz, err := h.authoring.EditDraft(c.Param("id"))
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Quiz retrieved successfully", quiz)
}

// CreateQuiz validates and persists a new quiz draft.
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var draft models.Quiz
	if err := c.ShouldBindJSON(&draft); err != nil {
		h.RespondWithBindingError(c, "Invalid request body", err)
		return
	}
	draft.ID = ""

	saved, outcome, err := h.authoring.Save(c.Request.Context(), draft)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	h.respondSaved(c, http.StatusCreated, "Quiz created successfully", saved, outcome)
}

// UpdateQuiz validates and persists an edited quiz.
func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	var draft models.Quiz
	if err := c.ShouldBindJSON(&draft); err != nil {
		h.RespondWithBindingError(c, "Invalid request body", err)
		return
	}
	draft.ID = c.Param("id")

	saved, outcome, err := h.authoring.Save(c.Request.Context(), draft)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	h.respondSaved(c, http.StatusOK, "Quiz updated successfully", saved, outcome)
}

// ValidateQuiz runs draft validation without persisting anything.
func (h *QuizHandler) ValidateQuiz(c *gin.Context) {
	var draft models.Quiz
	if err := c.ShouldBindJSON(&draft); err != nil {
		h.RespondWithBindingError(c, "Invalid request body", err)
		return
	}
	messages := h.authoring.Validate(draft)
	h.RespondWithSuccess(c, http.StatusOK, "Validation completed", gin.H{
		"valid":  len(messages) == 0,
		"errors": messages,
	})
}

// RefreshQuizzes re-fetches the collection from the remote store. When the
// remote is unreachable the collection served afterwards is the local copy,
// and the response says so.
func (h *QuizHandler) RefreshQuizzes(c *gin.Context) {
	if err := h.repo.Load(c.Request.Context()); err != nil {
		c.JSON(http.StatusOK, SuccessResponse{
			Message:    "Remote store unavailable, serving local copy",
			Data:       gin.H{"count": len(h.repo.All())},
			SaveStatus: string(repositories.SavedLocalOnly),
		})
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Quizzes refreshed successfully", gin.H{
		"count": len(h.repo.All()),
	})
}

// ExportQuiz streams the quiz with its answer key as an xlsx workbook.
func (h *QuizHandler) ExportQuiz(c *gin.Context) {
	quiz, ok := h.repo.GetByID(c.Param("id"))
	if !ok {
		h.RespondWithServiceError(c, services.ErrQuizNotFound)
		return
	}

	data, err := h.export.ExportQuiz(quiz)
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to export quiz", err)
		return
	}

	filename := fmt.Sprintf("quiz-%s.xlsx", quiz.ID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// respondSaved includes the persistence outcome so a local-only save is
// visible to the caller.
func (h *QuizHandler) respondSaved(c *gin.Context, statusCode int, message string, quiz models.Quiz, outcome repositories.SaveOutcome) {
	if outcome == repositories.SavedLocalOnly {
		message += " (saved locally only)"
	}
	c.JSON(statusCode, SuccessResponse{
		Message:    message,
		Data:       quiz,
		SaveStatus: string(outcome),
	})
}
