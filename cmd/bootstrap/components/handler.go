package components

import (
	"swimbooking/internal/handler"
	"swimbooking/internal/handler/api"
	"swimbooking/internal/handler/middleware"
	"swimbooking/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewBookingHandler,
		api.NewSessionHandler,
		middleware.NewAuthMiddleware,
		func(cfg config.Config, rdb *redis.Client) *middleware.RateLimiter {
			return middleware.NewRateLimiter(cfg.RateLimit, rdb)
		},
	),
	fx.Invoke(handler.NewRouter),
)
