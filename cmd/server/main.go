package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quizforge/quiz-service/internal/cache"
	"github.com/quizforge/quiz-service/internal/config"
	"github.com/quizforge/quiz-service/internal/events"
	"github.com/quizforge/quiz-service/internal/gate"
	"github.com/quizforge/quiz-service/internal/handlers"
	"github.com/quizforge/quiz-service/internal/repositories"
	"github.com/quizforge/quiz-service/internal/services"
	"github.com/quizforge/quiz-service/internal/storage"
	"github.com/quizforge/quiz-service/internal/store"
	localstore "github.com/quizforge/quiz-service/internal/store/local"
	"github.com/quizforge/quiz-service/internal/store/postgres"
	"github.com/quizforge/quiz-service/internal/utils"
	"github.com/quizforge/quiz-service/internal/validator"
	"github.com/quizforge/quiz-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		logger = utils.NewDefaultLogger()
		gin.SetMode(gin.ReleaseMode)
	} else {
		logger = utils.NewDevelopmentLogger()
	}

	// Remote store. An unreachable backend is not fatal: the repository
	// falls back to the local store and reports saves as local-only.
	var remote store.RemoteStore
	if db, err := pkg.InitDatabase(cfg); err != nil {
		logger.LogError(err, "database unavailable, running with local fallback only")
		remote = store.UnavailableRemote{Err: err}
	} else if remote, err = postgres.NewQuizPostgreSQL(db); err != nil {
		logger.LogError(err, "database migration failed, running with local fallback only")
		remote = store.UnavailableRemote{Err: err}
	}

	var local store.LocalStore
	if local, err = localstore.NewSQLiteStore(cfg.LocalStorePath); err != nil {
		logger.LogError(err, "local fallback store unavailable")
		local = nil
	} else {
		defer local.Close()
	}

	var cacheService cache.CacheService
	if redisClient, err := pkg.NewRedisClient(cfg); err != nil {
		logger.LogError(err, "redis unavailable, running without cache")
	} else {
		cacheService = cache.NewRedisCache(redisClient, logger)
		defer redisClient.Close()
	}

	var publisher events.EventPublisher
	if kafkaPublisher, err := events.NewKafkaEventPublisher(events.PublisherConfig{
		KafkaBrokers: cfg.KafkaBrokers,
		TopicName:    cfg.EventsTopic,
		Logger:       utils.ToSlogLogger(logger),
	}); err != nil {
		logger.LogError(err, "kafka unavailable, running without events")
	} else {
		publisher = kafkaPublisher
		defer kafkaPublisher.Close()
	}

	sess, err := pkg.NewAWSSession(cfg)
	if err != nil {
		logger.LogError(err, "failed to create aws session")
		os.Exit(1)
	}
	blobs := storage.NewS3BlobStore(sess, cfg.ImageBucket, cfg.AWSRegion)

	repo := repositories.NewQuizRepository(remote, local, cacheService, publisher, logger)
	if err := repo.Load(context.Background()); err != nil {
		logger.Warn("serving local quiz collection", "count", len(repo.All()))
	}

	v := validator.New()
	authoring := services.NewAuthoringService(repo, v, logger)
	export := services.NewExportService(logger)
	accessGate := gate.NewAccessGate(cfg.AdminAccessCode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))

	hm := handlers.NewHandlerManager(authoring, export, repo, accessGate, blobs, logger)
	hm.SetupRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("quiz service listening", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.LogError(err, "server stopped")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.LogError(err, "forced shutdown")
	}
}
