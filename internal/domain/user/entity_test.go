//go:build unit

package user_test

import (
	"testing"

	"swimbooking/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoles(t *testing.T) {
	t.Run("accepts every known role", func(t *testing.T) {
		roles, err := user.NewRoles([]string{"parent", "instructor", "admin", "vmrc_coordinator"})
		require.NoError(t, err)
		assert.Len(t, roles, 4)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := user.NewRoles([]string{"parent", "owner"})
		require.ErrorIs(t, err, user.ErrInvalidRole)
	})
}

func TestActor_CanActFor(t *testing.T) {
	parentID := uuid.New()

	testCases := []struct {
		name   string
		actor  user.Actor
		expect bool
	}{
		{name: "owner parent", actor: user.NewActor(parentID, user.RoleParent), expect: true},
		{name: "other parent", actor: user.NewActor(uuid.New(), user.RoleParent), expect: false},
		{name: "admin acts for anyone", actor: user.NewActor(uuid.New(), user.RoleAdmin), expect: true},
		{name: "instructor is not owner", actor: user.NewActor(uuid.New(), user.RoleInstructor), expect: false},
		{name: "anonymous", actor: user.Actor{}, expect: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.actor.CanActFor(parentID))
		})
	}
}

func TestEmail(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		errIs error
	}{
		{name: "valid address", input: "parent@example.com"},
		{name: "surrounding spaces trimmed", input: "  parent@example.com "},
		{name: "empty", input: "", errIs: user.ErrInvalidEmail},
		{name: "missing at sign", input: "parent.example.com", errIs: user.ErrInvalidEmail},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			email, err := user.NewEmail(tc.input)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "parent@example.com", email.Value())
		})
	}
}
