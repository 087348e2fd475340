package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/AdamBeresnev/fc-knockout/internal/storage"
	"github.com/joho/godotenv"
)

type Config struct {
	Port            int
	DBPath          string
	MigrationsURL   string
	SessionLifetime time.Duration
	AllowedOrigins  []string
	LogLevel        slog.Level
	ArchiveDir      string
	R2              storage.R2Config
}

// Load reads the configuration from the environment, a .env file is optional
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	port, err := strconv.Atoi(firstNonEmpty(os.Getenv("PORT"), "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("PORT must be between 1 and 65535, got %d", port)
	}

	lifetime, err := time.ParseDuration(firstNonEmpty(os.Getenv("SESSION_LIFETIME"), "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_LIFETIME: %w", err)
	}
	if lifetime <= 0 {
		return nil, fmt.Errorf("SESSION_LIFETIME must be positive, got %s", lifetime)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(firstNonEmpty(os.Getenv("LOG_LEVEL"), "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	return &Config{
		Port:            port,
		DBPath:          firstNonEmpty(os.Getenv("DB_PATH"), "fc_knockout.db"),
		MigrationsURL:   firstNonEmpty(os.Getenv("MIGRATIONS_URL"), "file://migrations"),
		SessionLifetime: lifetime,
		AllowedOrigins:  splitList(firstNonEmpty(os.Getenv("ALLOWED_ORIGINS"), "*")),
		LogLevel:        level,
		ArchiveDir:      firstNonEmpty(os.Getenv("ARCHIVE_DIR"), "archive"),
		R2: storage.R2Config{
			AccountID:       os.Getenv("R2_ACCOUNT_ID"),
			AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
			BucketName:      os.Getenv("R2_BUCKET"),
			PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
		},
	}, nil
}

func firstNonEmpty(v, d string) string {
	if strings.TrimSpace(v) == "" {
		return d
	}
	return strings.TrimSpace(v)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
