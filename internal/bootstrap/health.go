package bootstrap

import (
	"github.com/eleven-am/sight-backend/internal/answer"
	"github.com/eleven-am/sight-backend/internal/frames"
	"github.com/eleven-am/sight-backend/internal/health"
	"github.com/eleven-am/sight-backend/internal/vision"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const version = "1.0.0"

func ProvideHealthHandler(
	db *gorm.DB,
	redisClient *redis.Client,
	labeler vision.Labeler,
	sampler frames.Sampler,
	answerer answer.Generator,
) *health.Handler {
	return health.NewHandler(db, redisClient, labeler, sampler, answerer, version)
}

func RegisterHealthRoutes(e *echo.Echo, h *health.Handler) {
	h.RegisterRoutes(e)
}

var HealthModule = fx.Options(
	fx.Provide(ProvideHealthHandler),
	fx.Invoke(RegisterHealthRoutes),
)
