package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/stridebot/stridebot/internal/logger"
)

type Config struct {
	Discord DiscordConfig
	DB      DBConfig
	Logger  LoggerConfig
}

type DiscordConfig struct {
	Token     string
	GuildID   string
	ChannelID string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type LoggerConfig struct {
	Level      logger.LogLevel
	OutputPath string
	Format     string
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return logger.LevelDebug
	case "info":
		return logger.LevelInfo
	case "warn", "warning":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	default:
		return logger.LevelInfo
	}
}

func Load() (*Config, error) {
	cfg := &Config{
		Discord: DiscordConfig{
			Token:     os.Getenv("DISCORD_TOKEN"),
			GuildID:   os.Getenv("DISCORD_GUILD_ID"),
			ChannelID: os.Getenv("DISCORD_CHANNEL_ID"),
		},
		DB: DBConfig{
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
			User:     getEnvOrDefault("DB_USER", "postgres"),
			Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrDefault("DB_NAME", "stridebot"),
		},
		Logger: LoggerConfig{
			Level:      parseLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "stdout"),
			Format:     getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}
	if cfg.Discord.Token == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN is required")
	}
	if cfg.Discord.ChannelID == "" {
		return nil, fmt.Errorf("DISCORD_CHANNEL_ID is required")
	}
	return cfg, nil
}
