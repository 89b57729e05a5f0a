package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Quota    QuotaConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GoogleGemini    string
	RegenerateTopic string // course outline rebuild topic
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	OllamaBaseURL     string
	OllamaModel       string
	LLMProvider       string // "ollama" or "gemini"
	LLMModel          string // e.g. "llama3", "qwen2.5"
}

// QuotaConfig holds the static limits exposed by the limits endpoint.
// Daily limits are per calendar window; rate limits are sliding windows.
type QuotaConfig struct {
	DailyLimitFree        int
	DailyLimitPro         int
	RateLimitFreeRequests int
	RateLimitFreeWindow   int // seconds
	RateLimitProRequests  int
	RateLimitProWindow    int // seconds
	WindowSeconds         int // daily counter ttl
	MaxFileSizeMB         int
	CacheTTLSeconds       int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini:    getEnv("GOOGLE_GEMINI_API_KEY", ""),
			RegenerateTopic: getEnv("REGENERATE_COURSE_OUTLINE_TOPIC_NAME", "REGENERATE_COURSE_OUTLINE"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:          getEnv("LLM_MODEL", "gemini-2.0-flash"),
		},
		Quota: QuotaConfig{
			DailyLimitFree:        getEnvAsInt("QUOTA_DAILY_LIMIT_FREE", 10),
			DailyLimitPro:         getEnvAsInt("QUOTA_DAILY_LIMIT_PRO", 100),
			RateLimitFreeRequests: getEnvAsInt("RATE_LIMIT_FREE_REQUESTS", 5),
			RateLimitFreeWindow:   getEnvAsInt("RATE_LIMIT_FREE_WINDOW_SECONDS", 60),
			RateLimitProRequests:  getEnvAsInt("RATE_LIMIT_PRO_REQUESTS", 30),
			RateLimitProWindow:    getEnvAsInt("RATE_LIMIT_PRO_WINDOW_SECONDS", 60),
			WindowSeconds:         getEnvAsInt("QUOTA_WINDOW_SECONDS", 86400),
			MaxFileSizeMB:         getEnvAsInt("MAX_FILE_SIZE_MB", 20),
			CacheTTLSeconds:       getEnvAsInt("REFERENCE_CACHE_TTL_SECONDS", 300),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
