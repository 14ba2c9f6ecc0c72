//go:build unit

package readstore

import (
	"context"
	"testing"

	"swimbooking/internal/domain/user"
	"swimbooking/internal/infra"
	sqlc "swimbooking/internal/infra/sqlc/generated"
	"swimbooking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockUserReadQueries struct {
	mock.Mock
}

func (m *MockUserReadQueries) GetUserByEmail(ctx context.Context, db sqlc.DBTX, email string) (sqlc.Users, error) {
	args := m.Called(ctx, db, email)
	return args.Get(0).(sqlc.Users), args.Error(1)
}

func (m *MockUserReadQueries) GetUserByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Users, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(sqlc.Users), args.Error(1)
}

func (m *MockUserReadQueries) ListUserRoles(ctx context.Context, db sqlc.DBTX, userID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, db, userID)
	return args.Get(0).([]string), args.Error(1)
}

func TestFindCredentialByEmail(t *testing.T) {
	testUser := builder.NewUserBuilder().WithRoles("parent", "instructor").BuildInfra()
	inactiveUser := builder.NewUserBuilder().AsInactive().BuildInfra()

	tests := []struct {
		name       string
		email      string
		mockReturn sqlc.Users
		mockError  error
		roles      []string
		wantRoles  []user.Role
		wantActive bool
		wantKind   infra.RepositoryErrorKind
	}{
		{
			name:       "success - multi role user",
			email:      testUser.Email,
			mockReturn: testUser,
			roles:      []string{"parent", "instructor"},
			wantRoles:  []user.Role{user.RoleParent, user.RoleInstructor},
			wantActive: true,
		},
		{
			name:       "success - inactive user (for validation)",
			email:      inactiveUser.Email,
			mockReturn: inactiveUser,
			roles:      []string{"parent"},
			wantRoles:  []user.Role{user.RoleParent},
			wantActive: false,
		},
		{
			name:       "user not found",
			email:      "notfound@example.com",
			mockReturn: sqlc.Users{},
			mockError:  pgx.ErrNoRows,
			wantKind:   infra.KindNotFound,
		},
		{
			name:       "database error",
			email:      testUser.Email,
			mockReturn: sqlc.Users{},
			mockError:  assert.AnError,
			wantKind:   infra.KindDBFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQueries := new(MockUserReadQueries)
			mockQueries.On("GetUserByEmail", mock.Anything, mock.Anything, tt.email).Return(tt.mockReturn, tt.mockError)
			if tt.mockError == nil {
				mockQueries.On("ListUserRoles", mock.Anything, mock.Anything, tt.mockReturn.ID).Return(tt.roles, nil)
			}

			readStore := NewUserReadStore(mockQueries, nil)

			u, err := readStore.FindCredentialByEmail(context.Background(), tt.email)

			if tt.wantKind != "" {
				assert.Error(t, err)
				assert.Nil(t, u)
				assert.True(t, infra.IsKind(err, tt.wantKind))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.email, u.Email().Value())
				assert.Equal(t, tt.mockReturn.PasswordHash, u.PasswordHash())
				assert.Equal(t, tt.wantRoles, u.Roles())
				assert.Equal(t, tt.wantActive, u.IsActive())
			}

			mockQueries.AssertExpectations(t)
		})
	}
}

func TestFindByID(t *testing.T) {
	testUser := builder.NewUserBuilder().BuildInfra()

	tests := []struct {
		name       string
		userID     uuid.UUID
		mockReturn sqlc.Users
		mockError  error
		rolesError error
		wantKind   infra.RepositoryErrorKind
	}{
		{
			name:       "success",
			userID:     testUser.ID,
			mockReturn: testUser,
		},
		{
			name:       "user not found",
			userID:     uuid.New(),
			mockReturn: sqlc.Users{},
			mockError:  pgx.ErrNoRows,
			wantKind:   infra.KindNotFound,
		},
		{
			name:       "roles lookup fails",
			userID:     testUser.ID,
			mockReturn: testUser,
			rolesError: assert.AnError,
			wantKind:   infra.KindDBFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQueries := new(MockUserReadQueries)
			mockQueries.On("GetUserByID", mock.Anything, mock.Anything, tt.userID).Return(tt.mockReturn, tt.mockError)
			if tt.mockError == nil {
				mockQueries.On("ListUserRoles", mock.Anything, mock.Anything, tt.userID).Return([]string{"parent"}, tt.rolesError)
			}

			readStore := NewUserReadStore(mockQueries, nil)

			view, err := readStore.FindByID(context.Background(), tt.userID)

			if tt.wantKind != "" {
				assert.Error(t, err)
				assert.Nil(t, view)
				assert.True(t, infra.IsKind(err, tt.wantKind))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, testUser.Email, view.Email)
				assert.Equal(t, []string{"parent"}, view.Roles)
			}

			mockQueries.AssertExpectations(t)
		})
	}
}
