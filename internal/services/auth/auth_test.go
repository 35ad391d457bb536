package auth

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/gym-management/internal/lib/password"
	"github.com/magabrotheeeer/gym-management/internal/models"
	"github.com/magabrotheeeer/gym-management/internal/storage/repository"
)

// MockUserRepository реализует интерфейс auth.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user models.User, role models.Role) (int64, error) {
	args := m.Called(ctx, user, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestRegister_Success(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetUserByUsername", mock.Anything, "newuser").Return(nil, repository.ErrNotFound)
	users.On("GetUserByEmail", mock.Anything, "new@example.com").Return(nil, repository.ErrNotFound)
	users.On("CreateUser", mock.Anything, mock.Anything, models.RoleUser).Return(int64(3), nil)

	svc := New(users, newTestLogger())

	user, err := svc.Register(context.Background(), models.RegisterRequest{
		Username: "newuser",
		Email:    "new@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3), user.ID)
	assert.Equal(t, []models.Role{models.RoleUser}, user.Roles)
	// Пароль сохраняется хэшем, не открытым текстом
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.NoError(t, password.CompareHash(user.PasswordHash, "secret123"))

	users.AssertExpectations(t)
}

func TestRegister_Duplicates(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(*MockUserRepository)
		wantErr   error
	}{
		{
			name: "занятое имя пользователя",
			setupMock: func(m *MockUserRepository) {
				m.On("GetUserByUsername", mock.Anything, "newuser").
					Return(&models.User{ID: 1, Username: "newuser"}, nil)
			},
			wantErr: repository.ErrUsernameTaken,
		},
		{
			name: "занятый email",
			setupMock: func(m *MockUserRepository) {
				m.On("GetUserByUsername", mock.Anything, "newuser").Return(nil, repository.ErrNotFound)
				m.On("GetUserByEmail", mock.Anything, "new@example.com").
					Return(&models.User{ID: 2, Email: "new@example.com"}, nil)
			},
			wantErr: repository.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			tt.setupMock(users)

			svc := New(users, newTestLogger())

			user, err := svc.Register(context.Background(), models.RegisterRequest{
				Username: "newuser",
				Email:    "new@example.com",
				Password: "secret123",
			})
			assert.Nil(t, user)
			assert.ErrorIs(t, err, tt.wantErr)

			users.AssertExpectations(t)
		})
	}
}

func TestLogin(t *testing.T) {
	hash, err := password.GetHash("correct-password")
	require.NoError(t, err)

	tests := []struct {
		name      string
		username  string
		password  string
		setupMock func(*MockUserRepository)
		wantErr   error
	}{
		{
			name:     "успешный вход",
			username: "member",
			password: "correct-password",
			setupMock: func(m *MockUserRepository) {
				m.On("GetUserByUsername", mock.Anything, "member").
					Return(&models.User{ID: 1, Username: "member", PasswordHash: hash}, nil)
			},
		},
		{
			name:     "неверный пароль",
			username: "member",
			password: "wrong-password",
			setupMock: func(m *MockUserRepository) {
				m.On("GetUserByUsername", mock.Anything, "member").
					Return(&models.User{ID: 1, Username: "member", PasswordHash: hash}, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "несуществующий пользователь",
			username: "ghost",
			password: "correct-password",
			setupMock: func(m *MockUserRepository) {
				m.On("GetUserByUsername", mock.Anything, "ghost").Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			tt.setupMock(users)

			svc := New(users, newTestLogger())

			user, err := svc.Login(context.Background(), tt.username, tt.password)
			if tt.wantErr != nil {
				assert.Nil(t, user)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.username, user.Username)

			users.AssertExpectations(t)
		})
	}
}
