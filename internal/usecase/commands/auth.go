package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"swimbooking/internal/domain/user"
	sqlc "swimbooking/internal/infra/sqlc/generated"
	"swimbooking/internal/pkg/errs"
	"swimbooking/internal/pkg/password"
	"swimbooking/internal/usecase/shared"
)

var (
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrUserInactive         = errs.New("user inactive")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
)

type LoginResult struct {
	UserID      uuid.UUID
	Roles       []user.Role
	AccessToken string
}

type CredentialStore interface {
	FindCredentialByEmail(ctx context.Context, email string) (*user.User, error)
}

type LastLoginRecorder interface {
	UpdateLastLogin(ctx context.Context, tx sqlc.DBTX, userID uuid.UUID) error
}

type TokenIssuer interface {
	GenerateAccessToken(userID uuid.UUID, roles []user.Role) (string, error)
}

type AuthCommands interface {
	Login(ctx context.Context, email, rawPassword string) (*LoginResult, error)
}

type authCommandsImpl struct {
	uow         shared.UnitOfWork
	credentials CredentialStore
	lastLogin   LastLoginRecorder
	tokens      TokenIssuer
}

func NewAuthCommands(uow shared.UnitOfWork, credentials CredentialStore, lastLogin LastLoginRecorder, tokens TokenIssuer) AuthCommands {
	return &authCommandsImpl{
		uow:         uow,
		credentials: credentials,
		lastLogin:   lastLogin,
		tokens:      tokens,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, email, rawPassword string) (*LoginResult, error) {
	addr, err := user.NewEmail(email)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}
	pw, err := user.NewPassword(rawPassword)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	u, err := a.credentials.FindCredentialByEmail(ctx, addr.Value())
	if err != nil {
		// same answer as a wrong password so emails cannot be enumerated
		return nil, ErrInvalidCredentials
	}
	if err := password.ComparePassword(u.PasswordHash(), pw.Value()); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive() {
		return nil, ErrUserInactive
	}

	token, err := a.tokens.GenerateAccessToken(u.ID(), u.Roles())
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	err = a.uow.WithDB(ctx, func(ctx context.Context, db sqlc.DBTX) error {
		return a.lastLogin.UpdateLastLogin(ctx, db, u.ID())
	})
	if err != nil {
		// login already succeeded
		slog.Warn("failed to update last login", "user_id", u.ID(), "error", err.Error())
	}

	return &LoginResult{
		UserID:      u.ID(),
		Roles:       u.Roles(),
		AccessToken: token,
	}, nil
}
