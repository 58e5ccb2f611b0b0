package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/stridebot/stridebot/internal/bot"
	"github.com/stridebot/stridebot/internal/config"
	"github.com/stridebot/stridebot/internal/database"
	"github.com/stridebot/stridebot/internal/logger"
	"github.com/stridebot/stridebot/internal/scheduler"
	"github.com/stridebot/stridebot/internal/services"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting step tracker bot...")

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger.Info("Configuration loaded successfully")

	db, err := database.NewPostgresDB(cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	goalService := services.NewGoalService(db)
	entryService := services.NewEntryService(db)
	summaryService := services.NewSummaryService(goalService, entryService)
	metaService := services.NewMetaService(db)
	logger.Info("Services initialized successfully")

	if err := entryService.CleanDatabase(ctx); err != nil {
		logger.Warn("Database cleanup failed", "error", err)
	}

	discordBot, err := bot.NewBot(cfg.Discord, goalService, entryService, summaryService)
	if err != nil {
		logger.Fatal("Failed to create bot", "error", err)
	}

	sched := scheduler.New(goalService, entryService, summaryService, metaService, discordBot)
	go sched.Run(ctx)

	logger.Info("Bot is running. Press Ctrl+C to stop.")
	if err := discordBot.Start(ctx); err != nil {
		logger.Fatal("Bot stopped with error", "error", err)
	}
	logger.Info("Shutdown complete")
}
