package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/quizforge/quiz-service/internal/gate"
	"github.com/quizforge/quiz-service/internal/repositories"
	"github.com/quizforge/quiz-service/internal/services"
	"github.com/quizforge/quiz-service/internal/store"
	"github.com/quizforge/quiz-service/internal/utils"
)

type HandlerManager struct {
	quizHandler   *QuizHandler
	takeHandler   *TakeHandler
	accessHandler *AccessHandler
	imageHandler  *ImageHandler
}

func NewHandlerManager(
	authoring *services.AuthoringService,
	export *services.ExportService,
	repo *repositories.QuizRepository,
	accessGate *gate.AccessGate,
	blobs store.BlobStore,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		quizHandler:   NewQuizHandler(authoring, export, repo, logger),
		takeHandler:   NewTakeHandler(repo, logger),
		accessHandler: NewAccessHandler(accessGate, logger),
		imageHandler:  NewImageHandler(blobs, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Access gate
		v1.POST("/access/verify", hm.accessHandler.VerifyCode)

		// Quiz-taking routes: open to anyone holding the quiz password
		v1.GET("/quizzes/:id/take", hm.takeHandler.TakeQuiz)
		v1.POST("/quizzes/:id/score", hm.takeHandler.ScoreQuiz)
		v1.GET("/take-all", hm.takeHandler.TakeAll)
		v1.GET("/take-all/answers", hm.takeHandler.TakeAllAnswers)

		// Authoring routes: require a valid access grant
		authoring := v1.Group("")
		authoring.Use(hm.accessHandler.RequireGrant())
		{
			authoring.GET("/quizzes", hm.quizHandler.ListQuizzes)
			authoring.POST("/quizzes", hm.quizHandler.CreateQuiz)
			authoring.POST("/quizzes/validate", hm.quizHandler.ValidateQuiz)
			authoring.POST("/quizzes/refresh", hm.quizHandler.RefreshQuizzes)
			authoring.GET("/quizzes/:id", hm.quizHandler.GetQuiz)
			authoring.PUT("/quizzes/:id", hm.quizHandler.UpdateQuiz)
			authoring.GET("/quizzes/:id/export", hm.quizHandler.ExportQuiz)

			authoring.POST("/images", hm.imageHandler.UploadImage)
			authoring.DELETE("/images", hm.imageHandler.RemoveImages)
		}
	}
}
