package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Источники начального набора участников.
const (
	SeedSourceFixture  = "fixture"
	SeedSourcePostgres = "postgres"
	SeedSourceObject   = "object"
)

const defaultCourseTitle = "CSC/ECE 517 - Object Oriented Design and Development"

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	JWTSecretKey       string
	ServerPort         int
	SeedSource         string
	DatabaseURL        string
	SeedObjectKey      string
	CourseTitle        string
	CORSAllowedOrigins []string

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string
}

// R2Configured reports whether object storage credentials were provided.
func (c *Config) R2Configured() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" && c.R2BucketName != "" && c.R2PublicBaseURL != ""
}

func (c *Config) r2Partial() bool {
	return !c.R2Configured() &&
		(c.R2AccountID != "" || c.R2AccessKeyID != "" || c.R2SecretAccessKey != "" || c.R2BucketName != "" || c.R2PublicBaseURL != "")
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	_ = godotenv.Load() // отсутствие .env не ошибка

	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	portStr := getEnvOrDefault("SERVER_PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	cfg := &Config{
		JWTSecretKey:       jwtKey,
		ServerPort:         port,
		SeedSource:         strings.ToLower(getEnvOrDefault("SEED_SOURCE", SeedSourceFixture)),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		SeedObjectKey:      os.Getenv("SEED_OBJECT_KEY"),
		CourseTitle:        getEnvOrDefault("COURSE_TITLE", defaultCourseTitle),
		CORSAllowedOrigins: splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),
		R2AccountID:        os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:      os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey:  os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:       os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:    os.Getenv("R2_PUBLIC_BASE_URL"),
	}

	if cfg.r2Partial() {
		return nil, fmt.Errorf("R2 configuration is incomplete: set all of R2_ACCOUNT_ID, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY, R2_BUCKET_NAME, R2_PUBLIC_BASE_URL")
	}

	switch cfg.SeedSource {
	case SeedSourceFixture:
	case SeedSourcePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is required when SEED_SOURCE=%s", SeedSourcePostgres)
		}
	case SeedSourceObject:
		if cfg.SeedObjectKey == "" {
			return nil, fmt.Errorf("SEED_OBJECT_KEY environment variable is required when SEED_SOURCE=%s", SeedSourceObject)
		}
		if !cfg.R2Configured() {
			return nil, fmt.Errorf("R2 configuration is required when SEED_SOURCE=%s", SeedSourceObject)
		}
	default:
		return nil, fmt.Errorf("invalid SEED_SOURCE %q: expected %s, %s or %s", cfg.SeedSource, SeedSourceFixture, SeedSourcePostgres, SeedSourceObject)
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
