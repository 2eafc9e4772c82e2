package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/munchora/server/config"
	"github.com/munchora/server/internal/api"
	"github.com/munchora/server/internal/database"
	"github.com/munchora/server/internal/middleware"
	"github.com/munchora/server/internal/router"
	"github.com/munchora/server/internal/service"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := database.New(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}

	authService := service.NewAuthService(cfg.JWTSecret)
	recipeService := service.NewRecipeService(db)
	completionClient := service.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIAPIURL, cfg.OpenAIModel, nil, logger)
	ledger := service.NewUsageLedger(db)
	recipeAI := service.NewRecipeAIService(db, completionClient, ledger, cfg.AIUsageWindow, cfg.AIUsageLimit, logger)

	recipeHandler := api.NewRecipeHandler(recipeService)
	llmHandler := api.NewLLMHandler(recipeAI, recipeService, logger)
	aiLimiter := middleware.NewAIRequestRateLimiter(redisClient)

	engine := router.Setup(recipeHandler, llmHandler, authService, aiLimiter)

	srv := &http.Server{
		Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
		Handler: engine,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", srv.Addr))
		errChan <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		logger.Info("received signal", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down server")
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}
