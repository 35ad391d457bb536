package subscription

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/gym-management/internal/models"
	"github.com/magabrotheeeer/gym-management/internal/storage/repository"
)

// MockRepository реализует интерфейс subscription.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) GetMembership(ctx context.Context, id int64) (*models.MembershipPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MembershipPlan), args.Error(1)
}

func (m *MockRepository) GetPlan(ctx context.Context, id int64) (*models.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Plan), args.Error(1)
}

func (m *MockRepository) HasActiveSubscription(ctx context.Context, userID int64, on time.Time) (bool, error) {
	args := m.Called(ctx, userID, on)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) CreateSubscription(ctx context.Context, sub models.Subscription) (int64, error) {
	args := m.Called(ctx, sub)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) ListSubscriptions(ctx context.Context) ([]*models.Subscription, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscription), args.Error(1)
}

func (m *MockRepository) ListSubscriptionsByUser(ctx context.Context, userID int64) ([]*models.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscription), args.Error(1)
}

// MockPublisher реализует интерфейс subscription.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) SubscriptionCreated(ctx context.Context, sub models.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func newTestService(repo Repository, events EventPublisher, now time.Time) *Service {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	svc := New(repo, events, logger)
	svc.now = func() time.Time { return now }
	return svc
}

func TestSubscribe_Success(t *testing.T) {
	now := time.Date(2024, 1, 31, 15, 30, 0, 0, time.UTC)
	today := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	repo := new(MockRepository)
	repo.On("GetUserByID", mock.Anything, int64(1)).Return(&models.User{ID: 1}, nil)
	repo.On("GetMembership", mock.Anything, int64(2)).
		Return(&models.MembershipPlan{ID: 2, DurationMonths: 3}, nil)
	repo.On("HasActiveSubscription", mock.Anything, int64(1), today).Return(false, nil)
	repo.On("CreateSubscription", mock.Anything, mock.Anything).Return(int64(7), nil)

	svc := newTestService(repo, nil, now)

	sub, err := svc.Subscribe(context.Background(), 1, nil, 2)
	require.NoError(t, err)

	assert.Equal(t, int64(7), sub.ID)
	assert.True(t, sub.StartDate.Equal(today))
	// 31 января + 3 месяца прижимается к 30 апреля
	assert.True(t, sub.EndDate.Equal(time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)))
	assert.Nil(t, sub.PlanID)

	repo.AssertExpectations(t)
}

func TestSubscribe_WithPlan(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	planID := int64(5)

	repo := new(MockRepository)
	repo.On("GetUserByID", mock.Anything, int64(1)).Return(&models.User{ID: 1}, nil)
	repo.On("GetMembership", mock.Anything, int64(2)).
		Return(&models.MembershipPlan{ID: 2, DurationMonths: 1}, nil)
	repo.On("GetPlan", mock.Anything, planID).Return(&models.Plan{ID: planID}, nil)
	repo.On("HasActiveSubscription", mock.Anything, int64(1), mock.Anything).Return(false, nil)
	repo.On("CreateSubscription", mock.Anything, mock.Anything).Return(int64(8), nil)

	svc := newTestService(repo, nil, now)

	sub, err := svc.Subscribe(context.Background(), 1, &planID, 2)
	require.NoError(t, err)
	require.NotNil(t, sub.PlanID)
	assert.Equal(t, planID, *sub.PlanID)
	assert.True(t, sub.EndDate.Equal(time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)))

	repo.AssertExpectations(t)
}

func TestSubscribe_Errors(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	planID := int64(5)

	tests := []struct {
		name      string
		planID    *int64
		setupMock func(*MockRepository)
		wantErr   error
	}{
		{
			name: "пользователь не найден",
			setupMock: func(m *MockRepository) {
				m.On("GetUserByID", mock.Anything, int64(1)).Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrUserNotFound,
		},
		{
			name: "тарифный план не найден",
			setupMock: func(m *MockRepository) {
				m.On("GetUserByID", mock.Anything, int64(1)).Return(&models.User{ID: 1}, nil)
				m.On("GetMembership", mock.Anything, int64(2)).Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrMembershipNotFound,
		},
		{
			name:   "тренировочный план не найден",
			planID: &planID,
			setupMock: func(m *MockRepository) {
				m.On("GetUserByID", mock.Anything, int64(1)).Return(&models.User{ID: 1}, nil)
				m.On("GetMembership", mock.Anything, int64(2)).
					Return(&models.MembershipPlan{ID: 2, DurationMonths: 1}, nil)
				m.On("GetPlan", mock.Anything, planID).Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrPlanNotFound,
		},
		{
			name: "подписка уже действует",
			setupMock: func(m *MockRepository) {
				m.On("GetUserByID", mock.Anything, int64(1)).Return(&models.User{ID: 1}, nil)
				m.On("GetMembership", mock.Anything, int64(2)).
					Return(&models.MembershipPlan{ID: 2, DurationMonths: 1}, nil)
				m.On("HasActiveSubscription", mock.Anything, int64(1), mock.Anything).Return(true, nil)
			},
			wantErr: ErrAlreadySubscribed,
		},
		{
			name: "тарифный план удалён между проверкой и вставкой",
			setupMock: func(m *MockRepository) {
				m.On("GetUserByID", mock.Anything, int64(1)).Return(&models.User{ID: 1}, nil)
				m.On("GetMembership", mock.Anything, int64(2)).
					Return(&models.MembershipPlan{ID: 2, DurationMonths: 1}, nil)
				m.On("HasActiveSubscription", mock.Anything, int64(1), mock.Anything).Return(false, nil)
				m.On("CreateSubscription", mock.Anything, mock.Anything).
					Return(int64(0), repository.ErrReferenceNotFound)
			},
			wantErr: ErrMembershipNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.setupMock(repo)

			svc := newTestService(repo, nil, now)

			sub, err := svc.Subscribe(context.Background(), 1, tt.planID, 2)
			assert.Nil(t, sub)
			assert.ErrorIs(t, err, tt.wantErr)

			repo.AssertExpectations(t)
		})
	}
}

func TestSubscribe_PublisherFailureIsTolerated(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

	repo := new(MockRepository)
	repo.On("GetUserByID", mock.Anything, int64(1)).Return(&models.User{ID: 1}, nil)
	repo.On("GetMembership", mock.Anything, int64(2)).
		Return(&models.MembershipPlan{ID: 2, DurationMonths: 1}, nil)
	repo.On("HasActiveSubscription", mock.Anything, int64(1), mock.Anything).Return(false, nil)
	repo.On("CreateSubscription", mock.Anything, mock.Anything).Return(int64(9), nil)

	events := new(MockPublisher)
	events.On("SubscriptionCreated", mock.Anything, mock.Anything).
		Return(errors.New("broker unavailable"))

	svc := newTestService(repo, events, now)

	sub, err := svc.Subscribe(context.Background(), 1, nil, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(9), sub.ID)

	events.AssertExpectations(t)
}
