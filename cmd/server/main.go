package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/votervision/backend/internal/api"
	"github.com/votervision/backend/internal/api/handlers"
	"github.com/votervision/backend/internal/config"
	"github.com/votervision/backend/internal/database"
	"github.com/votervision/backend/internal/health"
	"github.com/votervision/backend/internal/llm"
	"github.com/votervision/backend/internal/repository"
	"github.com/votervision/backend/internal/search"
	"github.com/votervision/backend/internal/services"
	"github.com/votervision/backend/pkg/utils"
)

func main() {
	// Missing .env is fine in production where env comes from the platform.
	_ = godotenv.Load()

	logger := utils.NewLogger()
	logger.Info("Starting VoterVision backend")

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if err := os.MkdirAll(cfg.Server.UploadDir, 0o755); err != nil {
		logger.WithError(err).Fatal("Failed to create upload directory")
	}

	manager, err := database.NewManager(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database connections")
	}
	defer manager.Close()

	if err := manager.Migrate(); err != nil {
		logger.WithError(err).Fatal("Database migration failed")
	}

	repos := repository.NewRepositoryManager(manager.DB)
	store := database.NewSessionStore(manager.Redis, logger)

	llmClient := llm.NewClient(cfg.LLM.GroqAPIKey, cfg.LLM.GeminiAPIKey, logger)
	if !llmClient.Available() {
		logger.Warn("No AI provider configured, assistant responses will be degraded")
	}
	searchService := search.NewService(logger)

	contextService := services.NewContextService(repos.Candidate, searchService, logger)
	chatService := services.NewChatService(llmClient, logger)
	analysisService := services.NewAnalysisService(llmClient, searchService, repos.Candidate, logger)
	engagementService := services.NewEngagementService(repos.Candidate, repos.Engage, logger)
	analyticsService := services.NewAnalyticsService(
		repos.Candidate, repos.Manifesto, repos.QueryLog, repos.Research, searchService, logger)

	checker := health.NewChecker(manager, llmClient.Available, logger)
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	checker.Start(rootCtx)

	router := api.NewRouter(api.Handlers{
		Chat:      handlers.NewChatHandler(chatService, contextService, engagementService, store, repos.QueryLog, logger),
		Candidate: handlers.NewCandidateHandler(repos, analysisService, engagementService, logger),
		Manifesto: handlers.NewManifestoHandler(repos, analysisService, cfg.Server.UploadDir, logger),
		Lab:       handlers.NewLabHandler(chatService, analysisService, store, repos.Research, repos.QueryLog, cfg.Server.UploadDir, logger),
		Dashboard: handlers.NewDashboardHandler(analyticsService, logger),
		Health:    checker,
	}, logger)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("HTTP server failed")
		}
	}()

	<-rootCtx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Graceful shutdown failed")
	}
}
