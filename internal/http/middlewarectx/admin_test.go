package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/gym-management/internal/models"
	"github.com/magabrotheeeer/gym-management/internal/session"
)

// MockRoleResolver реализует интерфейс RoleResolver
type MockRoleResolver struct {
	mock.Mock
}

func (m *MockRoleResolver) ListUserRoles(ctx context.Context, userID int64) ([]models.Role, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Role), args.Error(1)
}

func TestAdminOnly(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name           string
		sess           *session.Data
		setupMock      func(*MockRoleResolver)
		expectedStatus int
	}{
		{
			name:           "нет сессии",
			sess:           nil,
			setupMock:      func(_ *MockRoleResolver) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "обычный пользователь",
			sess: &session.Data{UserID: 1, Username: "member"},
			setupMock: func(m *MockRoleResolver) {
				m.On("ListUserRoles", mock.Anything, int64(1)).
					Return([]models.Role{models.RoleUser}, nil)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "администратор",
			sess: &session.Data{UserID: 2, Username: "boss"},
			setupMock: func(m *MockRoleResolver) {
				m.On("ListUserRoles", mock.Anything, int64(2)).
					Return([]models.Role{models.RoleUser, models.RoleAdmin}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			// Снимок ролей в сессии не учитывается: права дает только текущее
			// состояние базы
			name: "роль отозвана после входа",
			sess: &session.Data{UserID: 3, Username: "demoted", Roles: []models.Role{models.RoleAdmin}},
			setupMock: func(m *MockRoleResolver) {
				m.On("ListUserRoles", mock.Anything, int64(3)).
					Return([]models.Role{models.RoleUser}, nil)
			},
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := new(MockRoleResolver)
			tt.setupMock(resolver)

			handler := AdminOnly(resolver, logger)(next)

			req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
			if tt.sess != nil {
				req = req.WithContext(context.WithValue(req.Context(), SessionKey, tt.sess))
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			resolver.AssertExpectations(t)
		})
	}
}

func TestRequireUser(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireUser(logger)(next)

	t.Run("без сессии", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/trainers", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"error":"no active session"`)
	})

	t.Run("с сессией", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/trainers", nil)
		ctx := context.WithValue(req.Context(), SessionKey, &session.Data{UserID: 1})
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req.WithContext(ctx))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
