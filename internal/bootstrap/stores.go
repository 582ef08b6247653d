package bootstrap

import (
	"github.com/eleven-am/sight-backend/internal/convo"
	"github.com/eleven-am/sight-backend/internal/record"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func ProvideSessionStore(cfg *Config, redisClient *redis.Client) convo.Store {
	if cfg.SessionBackend == "redis" && redisClient != nil {
		return convo.NewRedisStore(redisClient, cfg.SessionTTL)
	}
	return convo.NewMemoryStore(cfg.SessionTTL)
}

func ProvideRecordStore(db *gorm.DB) *record.Store {
	return record.NewStore(db)
}

func RunMigrations(recordStore *record.Store) error {
	return recordStore.Migrate()
}

var StoresModule = fx.Options(
	fx.Provide(
		ProvideSessionStore,
		ProvideRecordStore,
	),
	fx.Invoke(RunMigrations),
)
