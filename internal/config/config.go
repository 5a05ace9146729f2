package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	RedisURL   string

	MeiliSearchHost string
	MeiliMasterKey  string

	CloudinaryBaseFolder string

	AWSRegion   string
	EmailSender string

	JWTSecret string

	RateLimitGlobal     time.Duration
	RateLimitComentario time.Duration

	// Bulk notification dispatcher bounds.
	DispatchPerMessageTimeout time.Duration
	DispatchGlobalTimeout     time.Duration
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASS"),
		DBName:     getEnv("DB_NAME", "portal_rh"),
		RedisURL:   os.Getenv("REDIS_URL"),

		MeiliSearchHost: getEnv("MEILISEARCH_HOST", "http://localhost:7700"),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),

		CloudinaryBaseFolder: getEnv("CLOUDINARY_UPLOAD_FOLDER", "portal_rh"),

		AWSRegion:   getEnv("AWS_REGION", "us-east-1"),
		EmailSender: getEnv("EMAIL_SENDER", "rrhh@portalrh.local"),

		JWTSecret: os.Getenv("JWT_SECRET"),
	}

	// Parsing durations
	var err error
	cfg.RateLimitGlobal, err = parseDuration(getEnv("RATE_LIMIT_GLOBAL", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_GLOBAL: %w", err)
	}
	cfg.RateLimitComentario, err = parseDuration(getEnv("RATE_LIMIT_COMENTARIO", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_COMENTARIO: %w", err)
	}
	cfg.DispatchPerMessageTimeout, err = parseDuration(getEnv("DISPATCH_MESSAGE_TIMEOUT", "45s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DISPATCH_MESSAGE_TIMEOUT: %w", err)
	}
	cfg.DispatchGlobalTimeout, err = parseDuration(getEnv("DISPATCH_GLOBAL_TIMEOUT", "300s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DISPATCH_GLOBAL_TIMEOUT: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parseDuration(s string) (time.Duration, error) {
	return time.ParseDuration(s)
}
