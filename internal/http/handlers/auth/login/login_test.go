package login

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/gym-management/internal/models"
	"github.com/magabrotheeeer/gym-management/internal/services/auth"
	"github.com/magabrotheeeer/gym-management/internal/session"
)

// MockService реализует интерфейс login.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Login(ctx context.Context, username, password string) (*models.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockSessions реализует интерфейс login.Sessions
type MockSessions struct {
	mock.Mock
}

func (m *MockSessions) Create(ctx context.Context, data session.Data) (string, error) {
	args := m.Called(ctx, data)
	return args.String(0), args.Error(1)
}

func TestLoginHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	t.Run("успешный вход выставляет cookie", func(t *testing.T) {
		mockService := new(MockService)
		mockService.On("Login", mock.Anything, "member", "secret123").Return(&models.User{
			ID:       1,
			Username: "member",
			Roles:    []models.Role{models.RoleUser},
		}, nil)

		mockSessions := new(MockSessions)
		mockSessions.On("Create", mock.Anything, session.Data{
			UserID:   1,
			Username: "member",
			Roles:    []models.Role{models.RoleUser},
		}).Return("session-id-123", nil)

		handler := New(logger, mockService, mockSessions, 24*time.Hour)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"username":"member","password":"secret123"}`))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"username":"member"`)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, session.CookieName, cookies[0].Name)
		assert.Equal(t, "session-id-123", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)

		mockService.AssertExpectations(t)
		mockSessions.AssertExpectations(t)
	})

	t.Run("неверные учетные данные", func(t *testing.T) {
		mockService := new(MockService)
		mockService.On("Login", mock.Anything, "member", "wrong").
			Return(nil, auth.ErrInvalidCredentials)

		handler := New(logger, mockService, new(MockSessions), 24*time.Hour)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"username":"member","password":"wrong"}`))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"error":"invalid username or password"`)
		assert.Empty(t, w.Result().Cookies())

		mockService.AssertExpectations(t)
	})

	t.Run("некорректный JSON", func(t *testing.T) {
		handler := New(logger, new(MockService), new(MockSessions), 24*time.Hour)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{`))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"error":"invalid request body"`)
	})
}
