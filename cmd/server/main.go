package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"pathfinder/internal/cache"
	"pathfinder/internal/calendar"
	"pathfinder/internal/config"
	"pathfinder/internal/logging"
	"pathfinder/internal/model"
	"pathfinder/internal/repository"
	"pathfinder/internal/service"
	"pathfinder/internal/store"
	"pathfinder/internal/transport/rest"
)

func main() {
	// Bootstrap logger until the configured one is available
	bootLog, _ := zap.NewDevelopment()

	configDir := os.Getenv("PATHFINDER_CONFIG_DIR")
	if configDir == "" {
		configDir = "config"
	}

	cfg, err := config.Load(configDir, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to load configuration", zap.Error(err))
	}

	log, err := logging.Init(cfg.Logging)
	if err != nil {
		bootLog.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer log.Sync()

	// Load and validate the questionnaire documents up front
	questionnaire, err := model.LoadQuestionnaire(cfg.Documents.Questionnaire)
	if err != nil {
		log.Fatal("Failed to load questionnaire", zap.Error(err))
	}
	scoring, err := model.LoadScoringConfig(cfg.Documents.Scoring)
	if err != nil {
		log.Fatal("Failed to load scoring config", zap.Error(err))
	}
	cal, err := calendar.Load(cfg.Documents.Calendar)
	if err != nil {
		log.Fatal("Failed to load academic calendar", zap.Error(err))
	}
	log.Info("Questionnaire documents loaded",
		zap.String("version", questionnaire.Version),
		zap.Int("total_questions", questionnaire.TotalQuestions),
		zap.Int("dimensions", len(scoring.Dimensions)),
	)

	ctx := context.Background()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB", zap.Error(err))
	}
	log.Info("Connected to MongoDB")

	db := mongoClient.Database(cfg.Mongo.Database)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis", zap.Error(err))
	}
	log.Info("Connected to Redis")

	// Durable retry queue
	queue, err := store.NewSubmissionQueue(cfg.Queue.Path)
	if err != nil {
		log.Fatal("Failed to open submission queue", zap.Error(err))
	}
	defer queue.Close()

	// Initialize services
	authSvc := service.NewAuthService(cfg.Auth)
	relaySvc := service.NewRelayService(cfg.Delivery, log)
	if !relaySvc.IsEnabled() {
		log.Warn("Delivery API key not set, relay runs in log-only mode")
	}
	submissionRepo := repository.NewSubmissionRepository(db)
	dedup := cache.NewDedupCache(rdb)
	submissionSvc := service.NewSubmissionService(submissionRepo, dedup, queue, relaySvc, log)

	// Background retry worker
	worker := service.NewRetryWorker(submissionSvc, time.Duration(cfg.Queue.IntervalSeconds)*time.Second, log)
	worker.Start()
	defer worker.Stop()

	// Create router with container
	container := &rest.Container{
		AuthService:       authSvc,
		SubmissionService: submissionSvc,
		Questionnaire:     questionnaire,
		Scoring:           scoring,
		Calendar:          cal,
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: rest.NewRouter(container),
	}

	go func() {
		log.Info("Server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe failed", zap.Error(err))
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
