package subscribe

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

	"github.com/magabrotheeeer/gym-management/internal/models"
	"github.com/magabrotheeeer/gym-management/internal/services/subscription"
)

// MockService реализует интерфейс subscribe.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Subscribe(ctx context.Context, userID int64, planID *int64, membershipID int64) (*models.Subscription, error) {
	args := m.Called(ctx, userID, planID, membershipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func TestSubscribeHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	start := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)
	planID := int64(5)

	tests := []struct {
		name           string
		url            string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное оформление",
			url:  "/api/subscriptions/subscribe?userId=1&membershipId=2",
			setupMock: func(m *MockService) {
				m.On("Subscribe", mock.Anything, int64(1), (*int64)(nil), int64(2)).
					Return(&models.Subscription{
						ID:           7,
						UserID:       1,
						MembershipID: 2,
						StartDate:    start,
						EndDate:      end,
					}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"endDate":"2024-04-30T00:00:00Z"`,
		},
		{
			name: "оформление с тренировочным планом",
			url:  "/api/subscriptions/subscribe?userId=1&membershipId=2&planId=5",
			setupMock: func(m *MockService) {
				m.On("Subscribe", mock.Anything, int64(1), &planID, int64(2)).
					Return(&models.Subscription{
						ID:           8,
						UserID:       1,
						MembershipID: 2,
						PlanID:       &planID,
						StartDate:    start,
						EndDate:      end,
					}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"planId":5`,
		},
		{
			name:           "отсутствует userId",
			url:            "/api/subscriptions/subscribe?membershipId=2",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid userId"`,
		},
		{
			name:           "некорректный planId",
			url:            "/api/subscriptions/subscribe?userId=1&membershipId=2&planId=abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid planId"`,
		},
		{
			name: "тарифный план не найден",
			url:  "/api/subscriptions/subscribe?userId=1&membershipId=99",
			setupMock: func(m *MockService) {
				m.On("Subscribe", mock.Anything, int64(1), (*int64)(nil), int64(99)).
					Return(nil, subscription.ErrMembershipNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"membership not found"`,
		},
		{
			name: "подписка уже действует",
			url:  "/api/subscriptions/subscribe?userId=1&membershipId=2",
			setupMock: func(m *MockService) {
				m.On("Subscribe", mock.Anything, int64(1), (*int64)(nil), int64(2)).
					Return(nil, subscription.ErrAlreadySubscribed)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `"error":"user already has an active subscription"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, tt.url, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
