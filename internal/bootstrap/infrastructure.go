package bootstrap

import (
	"github.com/eleven-am/sight-backend/internal/answer"
	"github.com/eleven-am/sight-backend/internal/frames"
	"github.com/eleven-am/sight-backend/internal/vision"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ProvideRedisClient returns nil when sessions run in memory; the
// health probes and session store wiring both treat nil as "redis
// not in play".
func ProvideRedisClient(cfg *Config) *redis.Client {
	if cfg.SessionBackend != "redis" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

func ProvideDatabase(cfg *Config) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

func ProvideLabeler(cfg *Config) vision.Labeler {
	return vision.NewClient(vision.Config{
		BaseURL: cfg.VisionBaseURL,
		APIKey:  cfg.VisionAPIKey,
		Model:   cfg.VisionModel,
	})
}

func ProvideSampler(cfg *Config) frames.Sampler {
	return frames.NewClient(frames.Config{
		BaseURL:   cfg.SamplerBaseURL,
		MaxFrames: cfg.MaxFrames,
	})
}

func ProvideGenerator(cfg *Config) answer.Generator {
	return answer.NewClient(answer.Config{
		BaseURL: cfg.AnswerBaseURL,
		APIKey:  cfg.AnswerAPIKey,
		Model:   cfg.AnswerModel,
	})
}

var InfrastructureModule = fx.Options(
	fx.Provide(
		ProvideRedisClient,
		ProvideDatabase,
		ProvideLabeler,
		ProvideSampler,
		ProvideGenerator,
	),
)
