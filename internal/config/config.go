package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	AppEnv        string
	DataDir       string
	OutputDir     string
	DatabasePath  string
	Port          string
	LogLevel      string
	LogFormat     string
	Workers       int
	RetentionDays int

	// VADER lexicon overrides. Both must be set together; when empty the
	// analyzer falls back to the library's bundled lookup.
	LexiconPath      string
	EmojiLexiconPath string
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		DataDir:          getEnv("DATA_DIR", "scraped_posts"),
		OutputDir:        getEnv("OUTPUT_DIR", "analysis_results"),
		DatabasePath:     getEnv("DATABASE_PATH", "housepulse.db"),
		Port:             getEnv("PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
		LexiconPath:      getEnv("VADER_LEXICON", ""),
		EmojiLexiconPath: getEnv("VADER_EMOJI_LEXICON", ""),
	}

	workers, err := getEnvInt("WORKERS", 4)
	if err != nil {
		return nil, err
	}
	cfg.Workers = workers

	retention, err := getEnvInt("RETENTION_DAYS", 90)
	if err != nil {
		return nil, err
	}
	cfg.RetentionDays = retention

	if cfg.DataDir == "" {
		return nil, fmt.Errorf("DATA_DIR is required")
	}
	if cfg.OutputDir == "" {
		return nil, fmt.Errorf("OUTPUT_DIR is required")
	}
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("WORKERS must be at least 1, got %d", cfg.Workers)
	}
	if cfg.RetentionDays < 0 {
		return nil, fmt.Errorf("RETENTION_DAYS must not be negative, got %d", cfg.RetentionDays)
	}

	// Lexicon config: both must be set together
	if cfg.LexiconPath != "" || cfg.EmojiLexiconPath != "" {
		if cfg.LexiconPath == "" {
			return nil, fmt.Errorf("VADER_LEXICON is required when VADER_EMOJI_LEXICON is set")
		}
		if cfg.EmojiLexiconPath == "" {
			return nil, fmt.Errorf("VADER_EMOJI_LEXICON is required when VADER_LEXICON is set")
		}
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
