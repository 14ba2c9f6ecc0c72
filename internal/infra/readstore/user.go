package readstore

import (
	"context"

	"github.com/google/uuid"

	"swimbooking/internal/domain/user"
	"swimbooking/internal/infra"
	sqlc "swimbooking/internal/infra/sqlc/generated"
	"swimbooking/internal/pkg/pgconv"
	"swimbooking/internal/usecase/queries"
)

type UserReadQueries interface {
	GetUserByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Users, error)
	GetUserByEmail(ctx context.Context, db sqlc.DBTX, email string) (sqlc.Users, error)
	ListUserRoles(ctx context.Context, db sqlc.DBTX, userID uuid.UUID) ([]string, error)
}

type UserReadStore struct {
	queries UserReadQueries
	db      sqlc.DBTX
}

func NewUserReadStore(queries UserReadQueries, db sqlc.DBTX) *UserReadStore {
	return &UserReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	row, err := r.queries.GetUserByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}

	roles, err := r.queries.ListUserRoles(ctx, r.db, row.ID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list user roles", err)
	}

	return &queries.AuthorizedUserView{
		ID:       row.ID,
		Email:    row.Email,
		FullName: row.FullName,
		Roles:    roles,
		IsActive: row.IsActive,
	}, nil
}

// FindCredentialByEmail loads the account with its password hash for login.
func (r *UserReadStore) FindCredentialByEmail(ctx context.Context, email string) (*user.User, error) {
	row, err := r.queries.GetUserByEmail(ctx, r.db, email)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}

	names, err := r.queries.ListUserRoles(ctx, r.db, row.ID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list user roles", err)
	}
	roles, err := user.NewRoles(names)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid stored role", err, infra.KindDBFailure)
	}

	addr, err := user.NewEmail(row.Email)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid stored email", err, infra.KindDBFailure)
	}

	return user.ReconstructUser(row.ID, addr, row.PasswordHash, row.FullName, roles, row.IsActive, pgconv.TimeFromPgtype(row.CreatedAt)), nil
}
