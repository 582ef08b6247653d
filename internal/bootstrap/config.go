package bootstrap

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ServerAddr string
	LogLevel   string

	DatabaseDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SessionBackend string
	SessionTTL     time.Duration

	VisionBaseURL string
	VisionAPIKey  string
	VisionModel   string

	SamplerBaseURL string
	MaxFrames      int

	AnswerBaseURL string
	AnswerAPIKey  string
	AnswerModel   string
}

func LoadConfig() *Config {
	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		DatabaseDSN: getEnv("DATABASE_DSN", ""),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       0,

		SessionBackend: getEnv("SESSION_BACKEND", "memory"),
		SessionTTL:     getEnvDuration("SESSION_TTL", 10*time.Minute),

		VisionBaseURL: getEnv("VISION_BASE_URL", "https://api.openai.com"),
		VisionAPIKey:  getEnv("VISION_API_KEY", ""),
		VisionModel:   getEnv("VISION_MODEL", "gpt-4o-mini"),

		SamplerBaseURL: getEnv("SAMPLER_BASE_URL", "http://localhost:8090"),
		MaxFrames:      getEnvInt("MAX_FRAMES", 5),

		AnswerBaseURL: getEnv("ANSWER_BASE_URL", "https://api.openai.com"),
		AnswerAPIKey:  getEnv("ANSWER_API_KEY", ""),
		AnswerModel:   getEnv("ANSWER_MODEL", "gpt-4o-mini"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
