// Package trainer содержит бизнес-логику управления тренерами.
package trainer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/gym-management/internal/models"
	"github.com/magabrotheeeer/gym-management/internal/storage/repository"
)

// Repository определяет методы для работы с тренерами в хранилище.
type Repository interface {
	CreateTrainer(ctx context.Context, t models.Trainer) (int64, error)
	GetTrainer(ctx context.Context, id int64) (*models.Trainer, error)
	ListTrainers(ctx context.Context) ([]*models.Trainer, error)
	UpdateTrainer(ctx context.Context, t models.Trainer) (int64, error)
	DeleteTrainer(ctx context.Context, id int64) (int64, error)
}

// Service реализует операции над тренерами поверх хранилища.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create сохраняет нового тренера и возвращает его с присвоенным ID.
func (s *Service) Create(ctx context.Context, req models.CreateTrainerRequest) (*models.Trainer, error) {
	const op = "trainer.Create"

	t := models.Trainer{
		Name:           req.Name,
		Specialization: req.Specialization,
		Email:          req.Email,
		Phone:          req.Phone,
		Description:    req.Description,
		Experience:     req.Experience,
		Photo:          req.Photo,
	}
	id, err := s.repo.CreateTrainer(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	t.ID = id

	s.log.Info("created trainer", slog.Int64("id", id), slog.String("name", t.Name))
	return &t, nil
}

// Get возвращает тренера по ID.
func (s *Service) Get(ctx context.Context, id int64) (*models.Trainer, error) {
	return s.repo.GetTrainer(ctx, id)
}

// List возвращает всех тренеров.
func (s *Service) List(ctx context.Context) ([]*models.Trainer, error) {
	return s.repo.ListTrainers(ctx)
}

// Update накладывает патч на существующего тренера и сохраняет результат.
// Отсутствующий тренер — repository.ErrNotFound.
func (s *Service) Update(ctx context.Context, id int64, patch models.TrainerPatch) (*models.Trainer, error) {
	const op = "trainer.Update"

	existing, err := s.repo.GetTrainer(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	patch.Apply(existing)

	if _, err = s.repo.UpdateTrainer(ctx, *existing); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("updated trainer", slog.Int64("id", id))
	return existing, nil
}

// Delete удаляет тренера по ID. Отсутствующий ID — repository.ErrNotFound,
// а не молчаливый no-op.
func (s *Service) Delete(ctx context.Context, id int64) error {
	const op = "trainer.Delete"

	count, err := s.repo.DeleteTrainer(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	s.log.Info("deleted trainer", slog.Int64("id", id))
	return nil
}
