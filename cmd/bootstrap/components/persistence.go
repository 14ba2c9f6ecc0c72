package components

import (
	"swimbooking/internal/infra/readstore"
	"swimbooking/internal/infra/repository"
	sqlc "swimbooking/internal/infra/sqlc/generated"
	"swimbooking/internal/infra/uow"
	"swimbooking/internal/usecase/commands"
	"swimbooking/internal/usecase/notify"
	"swimbooking/internal/usecase/queries"
	"swimbooking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewSQLQueries,
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Booking
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.BookingViewQueries)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		// Swimmer
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.SwimmerReadQueries)),
		),
		fx.Annotate(
			readstore.NewSwimmerReadStore,
			fx.As(new(queries.SwimmerReadStore)),
		),
		// Session
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.SessionReadQueries)),
		),
		fx.Annotate(
			readstore.NewSessionReadStore,
			fx.As(new(queries.SessionReadStore)),
		),
		// Floating session
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.FloatingSessionReadQueries)),
		),
		fx.Annotate(
			readstore.NewFloatingSessionReadStore,
			fx.As(new(queries.FloatingSessionReadStore)),
		),
		// User
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.UserReadQueries)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
			fx.As(new(commands.CredentialStore)),
			fx.As(new(notify.RecipientStore)),
		),
	),
)

// Aggregate repositories are built lazily inside each transaction by the
// unit of work. Only the user repository is used outside one.
var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		// UnitOfWork
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		// User
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(repository.UserWriteQueries)),
		),
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(commands.LastLoginRecorder)),
		),
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *sqlc.Queries {
	return sqlc.New()
}

func NewDBTX(pool *pgxpool.Pool) sqlc.DBTX {
	return pool
}
