// Package plan содержит бизнес-логику управления тренировочными планами.
package plan

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/gym-management/internal/models"
	"github.com/magabrotheeeer/gym-management/internal/storage/repository"
)

// Repository определяет методы для работы с тренировочными планами в хранилище.
type Repository interface {
	CreatePlan(ctx context.Context, p models.Plan) (int64, error)
	GetPlan(ctx context.Context, id int64) (*models.Plan, error)
	ListPlans(ctx context.Context) ([]*models.Plan, error)
	UpdatePlan(ctx context.Context, p models.Plan) (int64, error)
	DeletePlan(ctx context.Context, id int64) (int64, error)
}

// Service реализует операции над тренировочными планами поверх хранилища.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create сохраняет новый тренировочный план и возвращает его с присвоенным ID.
func (s *Service) Create(ctx context.Context, req models.CreatePlanRequest) (*models.Plan, error) {
	const op = "plan.Create"

	p := models.Plan{
		Name:           req.Name,
		Price:          req.Price,
		DurationMonths: req.DurationMonths,
		Description:    req.Description,
		Duration:       req.Duration,
		Difficulty:     req.Difficulty,
		TrainerID:      req.TrainerID,
	}
	id, err := s.repo.CreatePlan(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	p.ID = id

	s.log.Info("created plan", slog.Int64("id", id), slog.String("name", p.Name))
	return &p, nil
}

// List возвращает все тренировочные планы.
func (s *Service) List(ctx context.Context) ([]*models.Plan, error) {
	return s.repo.ListPlans(ctx)
}

// Update проверяет существование плана, накладывает патч и сохраняет результат.
func (s *Service) Update(ctx context.Context, id int64, patch models.PlanPatch) (*models.Plan, error) {
	const op = "plan.Update"

	existing, err := s.repo.GetPlan(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	patch.Apply(existing)

	if _, err = s.repo.UpdatePlan(ctx, *existing); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("updated plan", slog.Int64("id", id))
	return existing, nil
}

// Delete удаляет тренировочный план по ID. Отсутствующий ID — repository.ErrNotFound.
func (s *Service) Delete(ctx context.Context, id int64) error {
	const op = "plan.Delete"

	count, err := s.repo.DeletePlan(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	s.log.Info("deleted plan", slog.Int64("id", id))
	return nil
}
