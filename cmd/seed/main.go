package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"agenthub/configs"
	"agenthub/internal/database"
	"agenthub/internal/infra"
	"agenthub/internal/repository"
	"agenthub/internal/service"
)

func main() {
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

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := infra.NewDatabase(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db, logger); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}

	seeder := service.NewSeedService(
		repository.NewUserRepository(db),
		repository.NewAgentRepository(db),
		repository.NewStrategyRepository(db),
		repository.NewTradeRepository(db),
		logger,
	)

	result, err := seeder.Seed(ctx)
	if err != nil {
		logger.Fatal("seeding failed", zap.Error(err))
	}

	logger.Info("demo login",
		zap.String("email", result.User.Email),
		zap.String("password", service.DemoPassword),
	)
}
