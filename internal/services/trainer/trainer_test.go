package trainer

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/gym-management/internal/models"
	"github.com/magabrotheeeer/gym-management/internal/storage/repository"
)

// MockRepository реализует интерфейс trainer.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateTrainer(ctx context.Context, t models.Trainer) (int64, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) GetTrainer(ctx context.Context, id int64) (*models.Trainer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trainer), args.Error(1)
}

func (m *MockRepository) ListTrainers(ctx context.Context) ([]*models.Trainer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Trainer), args.Error(1)
}

func (m *MockRepository) UpdateTrainer(ctx context.Context, t models.Trainer) (int64, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) DeleteTrainer(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func strPtr(s string) *string { return &s }

func TestUpdate_PartialPatch(t *testing.T) {
	existing := &models.Trainer{
		ID:             1,
		Name:           "Ivan Petrov",
		Specialization: "crossfit",
		Email:          "ivan@example.com",
		Experience:     7,
	}

	repo := new(MockRepository)
	repo.On("GetTrainer", mock.Anything, int64(1)).Return(existing, nil)
	repo.On("UpdateTrainer", mock.Anything, mock.MatchedBy(func(tr models.Trainer) bool {
		// Присланные поля перезаписаны, включая пустую строку; остальные сохранены
		return tr.Specialization == "powerlifting" &&
			tr.Email == "" &&
			tr.Name == "Ivan Petrov" &&
			tr.Experience == 7
	})).Return(int64(1), nil)

	svc := New(repo, newTestLogger())

	got, err := svc.Update(context.Background(), 1, models.TrainerPatch{
		Specialization: strPtr("powerlifting"),
		Email:          strPtr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "powerlifting", got.Specialization)
	assert.Equal(t, "", got.Email)
	assert.Equal(t, "Ivan Petrov", got.Name)

	repo.AssertExpectations(t)
}

func TestUpdate_NotFound(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetTrainer", mock.Anything, int64(99)).Return(nil, repository.ErrNotFound)

	svc := New(repo, newTestLogger())

	got, err := svc.Update(context.Background(), 99, models.TrainerPatch{Name: strPtr("X")})
	assert.Nil(t, got)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	repo.AssertExpectations(t)
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name      string
		id        int64
		setupMock func(*MockRepository)
		wantErr   error
	}{
		{
			name: "успешное удаление",
			id:   1,
			setupMock: func(m *MockRepository) {
				m.On("DeleteTrainer", mock.Anything, int64(1)).Return(int64(1), nil)
			},
		},
		{
			name: "несуществующий тренер",
			id:   99,
			setupMock: func(m *MockRepository) {
				m.On("DeleteTrainer", mock.Anything, int64(99)).Return(int64(0), nil)
			},
			wantErr: repository.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.setupMock(repo)

			svc := New(repo, newTestLogger())

			err := svc.Delete(context.Background(), tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			repo.AssertExpectations(t)
		})
	}
}
