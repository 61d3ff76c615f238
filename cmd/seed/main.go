package main

import (
	"context"
	"time"

	"interviewai/internal/config"
	questionrepo "interviewai/internal/repositories/mongo"
	"interviewai/internal/utils"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

// seeds the question bank, replacing whatever is there
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.GetLogger().Fatal("Failed to load configuration", zap.Error(err))
	}
	utils.InitLogger(cfg.IsDevelopment())
	logger := utils.GetLogger()
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := questionrepo.NewClient(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer client.Disconnect(context.Background())

	repo, err := questionrepo.NewQuestionRepo(client)
	if err != nil {
		logger.Fatal("Failed to initialize question bank", zap.Error(err))
	}

	n, err := repo.Seed(ctx, questionrepo.DefaultQuestions())
	if err != nil {
		logger.Fatal("Failed to seed questions", zap.Error(err))
	}
	logger.Info("Question bank seeded", zap.Int("count", n))
}
