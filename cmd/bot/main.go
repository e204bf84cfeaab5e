package main

import (
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/lib/pq"

	"github.com/applio/applio_bot/internal/antiflood"
	"github.com/applio/applio_bot/internal/bot"
	"github.com/applio/applio_bot/internal/config"
	"github.com/applio/applio_bot/internal/db"
	"github.com/applio/applio_bot/internal/logger"
	"github.com/applio/applio_bot/internal/scheduler"
	"github.com/applio/applio_bot/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger.Initialize(cfg.LogLevel, cfg.LogFormat)

	database, err := db.New(cfg)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	defer database.Close()

	if err := database.InitSchema(); err != nil {
		log.Fatalf("Error initializing schema: %v", err)
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatalf("Error creating telegram bot: %v", err)
	}

	userRepo := db.NewUserRepository(database.Conn)
	appRepo := db.NewApplicationRepository(database.Conn)
	adminRepo := db.NewAdminRepository(database.Conn, cfg.AdminID)

	cooldown := time.Duration(cfg.CooldownSeconds) * time.Second

	var sessions session.Store
	switch cfg.SessionBackend {
	case config.SessionBackendRedis:
		redisStore, err := session.NewRedisStore(cfg.RedisAddr, time.Hour)
		if err != nil {
			log.Fatalf("Error connecting to redis: %v", err)
		}
		defer redisStore.Close()
		sessions = redisStore
	default:
		memStore := session.NewMemoryStore()
		sched := scheduler.NewScheduler(memStore)
		sched.Start()
		defer sched.Stop()
		sessions = memStore
	}

	gate := antiflood.NewGate(userRepo, cooldown)

	botService := bot.New(
		botAPI,
		userRepo,
		appRepo,
		adminRepo,
		sessions,
		gate,
		cfg.MaxTextLength,
	)

	commands := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "Start the bot"},
		tgbotapi.BotCommand{Command: "apply", Description: "Submit an application"},
		tgbotapi.BotCommand{Command: "language", Description: "Change language"},
	)
	if _, err := botAPI.Request(commands); err != nil {
		logger.Warn("cannot set bot commands", "error", err)
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	logger.Info("bot started", "username", botAPI.Self.UserName, "session_backend", cfg.SessionBackend)

	botService.Run(botAPI.GetUpdatesChan(updateConfig))
}
