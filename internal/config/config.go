package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config хранит все параметры запуска приложения.
type Config struct {
	Env             string
	HTTPPort        string
	StoragePath     string
	AIBaseURL       string
	AIModel         string
	SessionSecret   string
	SessionTTL      time.Duration
	WalletURL       string
	WalletEnabled   bool
	AllowedOrigins  []string
	RateLimitLimit  int64
	RateLimitPeriod time.Duration
}

// Load читает переменные окружения и возвращает готовую конфигурацию.
func Load() (*Config, error) {
	// Загружаем .env только если он существует, иначе используем системные переменные.
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("config: .env не найден, используем переменные окружения: %v", err)
	}

	env := getEnv("APP_ENV", "development")

	cfg := &Config{
		Env:           env,
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		StoragePath:   getEnv("STORAGE_PATH", "./storage"),
		AIBaseURL:     getEnv("AI_BASE_URL", "https://bothub.chat/api/v2/openai/v1"),
		AIModel:       getEnv("AI_MODEL", "gemini-3-flash-preview"),
		WalletURL:     getEnv("WALLET_URL", "https://phantom.app/"),
		WalletEnabled: getEnvBool("WALLET_ENABLED", true),
	}

	// Секрет сессионного токена. Сессия привязывает адрес кошелька к
	// HTTP-запросам, аккаунтов и паролей здесь нет.
	sessionSecret := getEnv("SESSION_SECRET", "")
	if env == "production" {
		if len(sessionSecret) < 32 {
			return nil, fmt.Errorf("config: SESSION_SECRET обязателен и должен быть не менее 32 символов в production")
		}
	} else if sessionSecret == "" {
		sessionSecret = "chainlance-session-development-only-change-in-production"
		log.Printf("config: WARNING - используется дефолтный SESSION_SECRET, измените в production!")
	}
	cfg.SessionSecret = sessionSecret
	cfg.SessionTTL = mustParseDuration(getEnv("SESSION_TTL", "12h"))

	// CORS allowed origins
	originsStr := getEnv("CORS_ALLOWED_ORIGINS", "")
	if originsStr == "" {
		if env == "production" {
			return nil, fmt.Errorf("config: CORS_ALLOWED_ORIGINS обязателен в production")
		}
		cfg.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	} else {
		cfg.AllowedOrigins = strings.Split(originsStr, ",")
		for i, origin := range cfg.AllowedOrigins {
			cfg.AllowedOrigins[i] = strings.TrimSpace(origin)
		}
	}

	cfg.RateLimitLimit = mustParseInt64(getEnv("RATE_LIMIT_LIMIT", "10"))
	cfg.RateLimitPeriod = mustParseDuration(getEnv("RATE_LIMIT_PERIOD", "1m"))

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("config: некорректное булево значение %s=%q, используем %v", key, value, fallback)
		return fallback
	}
	return parsed
}

func mustParseDuration(raw string) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("config: некорректная длительность %q, используем 1m: %v", raw, err)
		return time.Minute
	}
	return d
}

func mustParseInt64(raw string) int64 {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Printf("config: некорректное число %q, используем 10: %v", raw, err)
		return 10
	}
	return n
}
