package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"interviewai/internal/config"
	"interviewai/internal/evaluation"
	"interviewai/internal/handlers"
	"interviewai/internal/interview"
	"interviewai/internal/jobs"
	"interviewai/internal/llm"
	_ "interviewai/internal/llm/gemini"
	_ "interviewai/internal/llm/openrouter"
	"interviewai/internal/lock"
	"interviewai/internal/metrics"
	appmw "interviewai/internal/middleware"
	"interviewai/internal/models"
	"interviewai/internal/payment"
	"interviewai/internal/prompts"
	"interviewai/internal/repositories"
	questionrepo "interviewai/internal/repositories/mongo"
	"interviewai/internal/routers"
	"interviewai/internal/transcription"
	"interviewai/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// initDatabase opens the relational store and migrates the schema
func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.URL)
	default:
		dialector = postgres.Open(cfg.URL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

// initLocker returns a Redis-backed lock when REDIS_ADDR is set. Without
// Redis the free-tier lock only serializes requests within this process.
func initLocker(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) (lock.Locker, *redis.Client) {
	if cfg.Addr == "" {
		logger.Warn("REDIS_ADDR not set, interview creation lock is process-local")
		return lock.NewLocalLocker(), nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unreachable, falling back to process-local lock", zap.Error(err))
		rdb.Close()
		return lock.NewLocalLocker(), nil
	}
	return lock.NewRedisLocker(rdb, "interviewai:lock:", logger), rdb
}

func initGateway(cfg config.PaymentConfig, logger *zap.Logger) payment.Gateway {
	if cfg.KeyID == "" || cfg.KeySecret == "" {
		logger.Warn("Razorpay keys not set, payment endpoints will fail")
		return payment.Unconfigured{}
	}
	return payment.NewRazorpay(cfg.KeyID, cfg.KeySecret)
}

func newRouter(cfg *config.Config, healthHandler *handlers.HealthHandler, api routers.Handlers, authn func(http.Handler) http.Handler) *chi.Mux {
	router := chi.NewRouter()

	// cors middleware
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// no request timeout: /transcribe blocks for the whole poll budget
	router.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer, metrics.Middleware)

	routers.HealthRoutes(router, healthHandler)
	routers.APIRoutes(router, api, authn)
	return router
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.GetLogger().Fatal("Failed to load configuration", zap.Error(err))
	}

	utils.InitLogger(cfg.IsDevelopment())
	logger := utils.GetLogger()
	defer logger.Sync()

	logger.Info("Configuration loaded",
		zap.String("provider", cfg.Provider),
		zap.String("database", cfg.Database.Driver))

	ctx := context.Background()

	db, err := initDatabase(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}

	mongoClient, err := questionrepo.NewClient(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	questionBank, err := questionrepo.NewQuestionRepo(mongoClient)
	if err != nil {
		logger.Fatal("Failed to initialize question bank", zap.Error(err))
	}

	locker, rdb := initLocker(ctx, cfg.Redis, logger)

	promptManager, err := prompts.NewPromptManager()
	if err != nil {
		logger.Fatal("Failed to initialize prompt manager", zap.Error(err))
	}

	// AI provider based on configuration
	aiProvider, err := llm.NewProvider(cfg.Provider)
	if err != nil {
		logger.Fatal("Failed to initialize AI provider", zap.Error(err))
	}

	if cfg.Transcription.APIKey == "" {
		logger.Warn("ASSEMBLYAI_API_KEY not set, transcription requests will fail")
	}
	transcriber := transcription.NewClient(cfg.Transcription.APIKey, cfg.Transcription.BaseURL)
	waiter := transcription.NewWaiter(transcriber, cfg.Transcription.PollInterval, cfg.Transcription.MaxPolls, cfg.Transcription.Timeout)

	userRepo := &repositories.UserRepository{DB: db}
	transcriptionRepo := &repositories.TranscriptionRepository{DB: db}

	service := interview.NewService(
		&repositories.InterviewRepository{DB: db},
		transcriptionRepo,
		transcriber,
		waiter,
		evaluation.NewEvaluator(aiProvider, promptManager, logger),
		locker,
		interview.Options{FreeLimit: cfg.Interview.FreeLimit, LockTTL: cfg.Interview.LockTTL},
		logger,
	)

	sweeper := jobs.NewTranscriptionSweeper(transcriptionRepo, jobs.SweeperConfig{
		Schedule:   cfg.Sweeper.Schedule,
		StaleAfter: cfg.Sweeper.StaleAfter,
		Enabled:    cfg.Sweeper.Enabled,
	}, logger)
	if err := sweeper.Start(); err != nil {
		logger.Error("Failed to start transcription sweeper", zap.Error(err))
	}

	stores := map[string]handlers.Pinger{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		"mongo": mongoClient.Ping,
	}
	if rdb != nil {
		stores["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	api := routers.Handlers{
		Auth:       handlers.NewAuthHandler(userRepo, service, cfg.JWT.Secret, cfg.JWT.Expire.Duration(), logger),
		Interview:  handlers.NewInterviewHandler(service, logger),
		Transcribe: handlers.NewTranscribeHandler(service, logger),
		Question:   handlers.NewQuestionHandler(questionBank, evaluation.NewGenerator(aiProvider, promptManager, logger), logger),
		Payment:    handlers.NewPaymentHandler(initGateway(cfg.Payment, logger), cfg.Payment.KeySecret, logger),
	}
	router := newRouter(cfg,
		handlers.NewHealthHandler(aiProvider, promptManager, stores),
		api,
		appmw.Authenticate(cfg.JWT.Secret, userRepo, logger))

	serverAddr := cfg.ServerAddr()

	// write timeout covers the transcription poll budget
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.Transcription.MaxWait() + time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// starting server in a goroutine
	go func() {
		logger.Info("Interview service starting", zap.String("addr", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// wait for interrupt signal to gracefully shutdown the server
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("Interview service shutting down...")

	sweeper.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		logger.Warn("Failed to disconnect MongoDB", zap.Error(err))
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("Interview service exited")
}
