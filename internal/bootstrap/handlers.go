package bootstrap

import (
	"log/slog"
	"os"

	"github.com/eleven-am/sight-backend/internal/answer"
	"github.com/eleven-am/sight-backend/internal/assist"
	"github.com/eleven-am/sight-backend/internal/convo"
	"github.com/eleven-am/sight-backend/internal/frames"
	"github.com/eleven-am/sight-backend/internal/record"
	"github.com/eleven-am/sight-backend/internal/temporal"
	"github.com/eleven-am/sight-backend/internal/vision"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/fx"

	_ "github.com/eleven-am/sight-backend/docs"
)

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ProvideLogger(cfg *Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
}

func ProvideAggregator() *temporal.Aggregator {
	return temporal.NewAggregator()
}

func ProvideAssistHandler(
	labeler vision.Labeler,
	sampler frames.Sampler,
	generator answer.Generator,
	sessions convo.Store,
	records *record.Store,
	aggregator *temporal.Aggregator,
	cfg *Config,
	logger *slog.Logger,
) *assist.Handler {
	return assist.NewHandler(
		labeler,
		sampler,
		generator,
		sessions,
		records,
		aggregator,
		cfg.MaxFrames,
		logger.With("handler", "assist"),
	)
}

type HandlerParams struct {
	fx.In

	AssistHandler *assist.Handler
}

func RegisterRoutes(e *echo.Echo, params HandlerParams) {
	api := e.Group("/v1")
	params.AssistHandler.RegisterRoutes(api)

	e.GET("/swagger/*", echoSwagger.EchoWrapHandler())
}

var HandlersModule = fx.Options(
	fx.Provide(
		ProvideLogger,
		ProvideAggregator,
		ProvideAssistHandler,
	),
	fx.Invoke(RegisterRoutes),
)
