package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"agenthub/configs"
	"agenthub/internal/database"
	httpdelivery "agenthub/internal/delivery/http"
	"agenthub/internal/delivery/ops"
	"agenthub/internal/infra"
	"agenthub/internal/middleware"
	"agenthub/internal/repository"
)

func main() {
	// Load environment variables
	envErr := godotenv.Load()

	cfg := configs.Load()

	logger, err := infra.NewLogger(cfg.Server.Env, cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if envErr != nil {
		logger.Info(".env file not found, using environment variables")
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited with error", zap.Error(err))
	}
}

func run(cfg *configs.Config, logger *zap.Logger) error {
	ctx := context.Background()

	if cfg.Auth.UsingFallbackSecret {
		logger.Warn("SECURITY: JWT_SECRET is not set, tokens are verified with the built-in fallback secret; set JWT_SECRET in production")
	}

	db, err := infra.NewDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db, logger); err != nil {
		return err
	}

	// Repositories
	agentRepo := repository.NewAgentRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Database health probe
	probe := infra.NewHealthProbe(db, logger)
	if err := probe.Start(cfg.Health.ProbeSchedule); err != nil {
		return fmt.Errorf("failed to start health probe: %w", err)
	}
	defer probe.Stop()

	verifier := middleware.NewTokenVerifier(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	e := httpdelivery.NewServer(&httpdelivery.RouterConfig{
		AuthHandler:    httpdelivery.NewAuthHandler(userRepo, verifier, logger),
		AgentHandler:   httpdelivery.NewAgentHandler(agentRepo, logger),
		AuthMiddleware: verifier.AuthMiddleware,
		Logger:         logger,
	})

	api := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      e,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	opsServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.OpsPort),
		Handler:      ops.NewRouter(probe),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)
	for _, srv := range []*http.Server{api, opsServer} {
		go func(srv *http.Server) {
			logger.Info("listening", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("server on %s: %w", srv.Addr, err)
			}
		}(srv)
	}

	logger.Info("agenthub started",
		zap.String("env", cfg.Server.Env),
		zap.String("api_port", cfg.Server.Port),
		zap.String("ops_port", cfg.Server.OpsPort),
	)

	// Wait for interrupt signal or a listener failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case runErr = <-errCh:
		logger.Error("listener failed, shutting down", zap.Error(runErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := api.Shutdown(shutdownCtx); err != nil {
		logger.Error("api server forced to shutdown", zap.Error(err))
	}
	if err := opsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("ops server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited gracefully")
	return runErr
}
