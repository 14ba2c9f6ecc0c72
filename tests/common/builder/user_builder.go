//go:build unit || e2e

package builder

import (
	"time"

	"swimbooking/internal/domain/user"
	sqlc "swimbooking/internal/infra/sqlc/generated"
	"swimbooking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type UserBuilder struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FullName     string
	Roles        []string
	IsActive     bool
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:           uuid.New(),
		Email:        "parent@example.com",
		PasswordHash: "hashed_password",
		FullName:     "Pat Parent",
		Roles:        []string{"parent"},
		IsActive:     true,
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

// Build methods
func (u *UserBuilder) BuildDomain() (*user.User, error) {
	email, err := user.NewEmail(u.Email)
	if err != nil {
		return nil, err
	}

	roles, err := user.NewRoles(u.Roles)
	if err != nil {
		return nil, err
	}

	return user.ReconstructUser(u.ID, email, u.PasswordHash, u.FullName, roles, u.IsActive, time.Now()), nil
}

func (u *UserBuilder) BuildInfra() sqlc.Users {
	now := time.Now()
	return sqlc.Users{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FullName:     u.FullName,
		LastLogin:    pgtype.Timestamptz{},
		IsActive:     u.IsActive,
		CreatedAt:    pgtype.Timestamptz{Time: now, Valid: true},
		UpdatedAt:    pgtype.Timestamptz{Time: now, Valid: true},
	}
}

func (u *UserBuilder) BuildReadModel() *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Roles:    append([]string(nil), u.Roles...),
		IsActive: u.IsActive,
	}
}

func (u *UserBuilder) BuildActor() user.Actor {
	roles, _ := user.NewRoles(u.Roles)
	return user.NewActor(u.ID, roles...)
}

// Fluent builder methods
func (u *UserBuilder) WithEmail(email string) *UserBuilder {
	u.Email = email
	return u
}

func (u *UserBuilder) WithRoles(roles ...string) *UserBuilder {
	u.Roles = roles
	return u
}

func (u *UserBuilder) AsAdmin() *UserBuilder {
	u.Roles = []string{"admin"}
	return u
}

func (u *UserBuilder) WithPasswordHash(hash string) *UserBuilder {
	u.PasswordHash = hash
	return u
}

func (u *UserBuilder) AsInactive() *UserBuilder {
	u.IsActive = false
	return u
}
