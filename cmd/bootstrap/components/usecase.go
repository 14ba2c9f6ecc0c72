package components

import (
	"swimbooking/internal/pkg/clock"
	"swimbooking/internal/pkg/jwt"
	"swimbooking/internal/usecase"
	"swimbooking/internal/usecase/commands"
	"swimbooking/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	commands.NewPolicy,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		fx.Annotate(
			func(s *jwt.Service) *jwt.Service { return s },
			fx.As(new(commands.TokenIssuer)),
		),
		commands.NewAuthCommands,
		commands.NewBookingCommands,
		commands.NewSessionCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewBookingQueries,
		queries.NewSessionQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
