package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/trivia-quiz/internal/app"
	"github.com/yourusername/trivia-quiz/internal/bot"
	"github.com/yourusername/trivia-quiz/internal/config"
	"github.com/yourusername/trivia-quiz/internal/service"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Telegram.Token == "" {
		log.Fatal("TELEGRAM_TOKEN environment variable is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	storage, err := app.OpenStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer storage.Close()

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Fatalf("Failed to create bot API: %v", err)
	}
	api.Debug = cfg.Telegram.Debug
	log.Printf("Authorised on account: %s", api.Self.UserName)

	b := bot.New(api,
		service.NewQuizService(storage.Questions, storage.Categories, storage.Sessions, nil, nil),
		service.NewQuestionService(storage.Questions, storage.Categories, cfg.Quiz.PageSize),
		service.NewCategoryService(storage.Categories),
	)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)

	log.Println("🤖 Bot is starting...")
	b.Run(ctx, updates)

	api.StopReceivingUpdates()
	log.Println("Bot stopped")
}
