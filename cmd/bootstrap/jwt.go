package bootstrap

import (
	"time"

	"swimbooking/internal/pkg/config"
	"swimbooking/internal/pkg/errs"
	"swimbooking/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.Config) (*jwt.Service, error) {
	accessTokenDuration, err := time.ParseDuration(cfg.JWT.AccessTokenDuration)
	if err != nil {
		return nil, errs.Wrap(err, "invalid JWT_ACCESS_TOKEN_DURATION")
	}
	return jwt.NewService(cfg.JWT.Secret, accessTokenDuration), nil
}
