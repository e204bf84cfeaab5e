package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

type Config struct {
	BotToken        string
	AdminID         int64
	DBUser          string
	DBPassword      string
	DBName          string
	DBHost          string
	DBPort          string
	CooldownSeconds int
	MaxTextLength   int
	SessionBackend  string
	RedisAddr       string
	LogLevel        string
	LogFormat       string
}

func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Printf("config.Load: no .env file found - using env variables")
	}

	cfg := &Config{
		BotToken:       os.Getenv("BOT_TOKEN"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		DBHost:         os.Getenv("DB_HOST"),
		DBPort:         os.Getenv("DB_PORT"),
		SessionBackend: os.Getenv("SESSION_BACKEND"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		LogLevel:       os.Getenv("LOG_LEVEL"),
		LogFormat:      os.Getenv("LOG_FORMAT"),
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("config.Load: BOT_TOKEN is required")
	}

	adminID, err := strconv.ParseInt(os.Getenv("ADMIN_ID"), 10, 64)
	if err != nil || adminID <= 0 {
		return nil, fmt.Errorf("config.Load: ADMIN_ID must be a positive integer")
	}
	cfg.AdminID = adminID

	if cfg.DBUser == "" || cfg.DBPassword == "" || cfg.DBName == "" {
		return nil, fmt.Errorf("config.Load: DB_USER, DB_PASSWORD, DB_NAME are required")
	}

	if cfg.DBHost == "" {
		cfg.DBHost = "localhost"
	}

	if cfg.DBPort == "" {
		cfg.DBPort = "5432"
	}

	// Observed deployments disagree on a sensible window, so there is no
	// default: the operator has to pick one.
	cooldown, err := strconv.Atoi(os.Getenv("APP_COOLDOWN_SECONDS"))
	if err != nil || cooldown <= 0 {
		return nil, fmt.Errorf("config.Load: APP_COOLDOWN_SECONDS must be a positive integer")
	}
	cfg.CooldownSeconds = cooldown

	cfg.MaxTextLength = 500
	if raw := os.Getenv("MAX_TEXT_LENGTH"); raw != "" {
		maxLen, err := strconv.Atoi(raw)
		if err != nil || maxLen <= 0 {
			return nil, fmt.Errorf("config.Load: MAX_TEXT_LENGTH must be a positive integer")
		}
		cfg.MaxTextLength = maxLen
	}

	switch cfg.SessionBackend {
	case "":
		cfg.SessionBackend = SessionBackendMemory
	case SessionBackendMemory:
	case SessionBackendRedis:
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("config.Load: REDIS_ADDR is required when SESSION_BACKEND=redis")
		}
	default:
		return nil, fmt.Errorf("config.Load: unknown SESSION_BACKEND %q", cfg.SessionBackend)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	return cfg, nil
}
