package user

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// User is a local account. Parents, instructors and staff share one table; roles live in user_roles.
type User struct {
	id           uuid.UUID
	email        Email
	passwordHash string
	fullName     string
	roles        []Role
	isActive     bool
	createdAt    time.Time
}

func NewUser(email Email, passwordHash, fullName string, roles []Role) *User {
	return &User{
		id:           uuid.New(),
		email:        email,
		passwordHash: passwordHash,
		fullName:     fullName,
		roles:        slices.Clone(roles),
		isActive:     true,
	}
}

func ReconstructUser(id uuid.UUID, email Email, passwordHash, fullName string, roles []Role, isActive bool, createdAt time.Time) *User {
	return &User{
		id:           id,
		email:        email,
		passwordHash: passwordHash,
		fullName:     fullName,
		roles:        slices.Clone(roles),
		isActive:     isActive,
		createdAt:    createdAt,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Email() Email         { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) FullName() string     { return u.fullName }
func (u *User) Roles() []Role        { return slices.Clone(u.roles) }
func (u *User) IsActive() bool       { return u.isActive }
func (u *User) CreatedAt() time.Time { return u.createdAt }

// Actor is the authenticated caller of a command.
type Actor struct {
	UserID uuid.UUID
	Roles  []Role
}

func NewActor(userID uuid.UUID, roles ...Role) Actor {
	return Actor{UserID: userID, Roles: roles}
}

func (a Actor) HasRole(r Role) bool {
	return slices.Contains(a.Roles, r)
}

func (a Actor) IsAdmin() bool {
	return a.HasRole(RoleAdmin)
}

// CanActFor reports whether the actor may act on resources owned by parentID.
func (a Actor) CanActFor(parentID uuid.UUID) bool {
	if a.IsAdmin() {
		return true
	}
	return a.UserID != uuid.Nil && a.UserID == parentID
}

func (a Actor) RoleNames() []string {
	names := make([]string, len(a.Roles))
	for i, r := range a.Roles {
		names[i] = r.String()
	}
	return names
}
