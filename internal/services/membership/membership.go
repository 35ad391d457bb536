// Package membership содержит бизнес-логику управления тарифными планами абонементов.
package membership

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/gym-management/internal/models"
	"github.com/magabrotheeeer/gym-management/internal/storage/repository"
)

// Repository определяет методы для работы с тарифными планами в хранилище.
type Repository interface {
	CreateMembership(ctx context.Context, m models.MembershipPlan) (int64, error)
	GetMembership(ctx context.Context, id int64) (*models.MembershipPlan, error)
	ListMemberships(ctx context.Context) ([]*models.MembershipPlan, error)
	UpdateMembership(ctx context.Context, m models.MembershipPlan) (int64, error)
	DeleteMembership(ctx context.Context, id int64) (int64, error)
}

// Service реализует операции над тарифными планами поверх хранилища.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create сохраняет новый тарифный план и возвращает его с присвоенным ID.
func (s *Service) Create(ctx context.Context, req models.CreateMembershipRequest) (*models.MembershipPlan, error) {
	const op = "membership.Create"

	m := models.MembershipPlan{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		DurationMonths: req.DurationMonths,
	}
	id, err := s.repo.CreateMembership(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	m.ID = id

	s.log.Info("created membership plan", slog.Int64("id", id), slog.String("name", m.Name))
	return &m, nil
}

// Get возвращает тарифный план по ID.
func (s *Service) Get(ctx context.Context, id int64) (*models.MembershipPlan, error) {
	return s.repo.GetMembership(ctx, id)
}

// List возвращает все тарифные планы.
func (s *Service) List(ctx context.Context) ([]*models.MembershipPlan, error) {
	return s.repo.ListMemberships(ctx)
}

// Update проверяет существование тарифного плана, накладывает патч и сохраняет результат.
func (s *Service) Update(ctx context.Context, id int64, patch models.MembershipPatch) (*models.MembershipPlan, error) {
	const op = "membership.Update"

	existing, err := s.repo.GetMembership(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	patch.Apply(existing)

	if _, err = s.repo.UpdateMembership(ctx, *existing); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("updated membership plan", slog.Int64("id", id))
	return existing, nil
}

// Delete удаляет тарифный план по ID. Отсутствующий ID — repository.ErrNotFound.
func (s *Service) Delete(ctx context.Context, id int64) error {
	const op = "membership.Delete"

	count, err := s.repo.DeleteMembership(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	s.log.Info("deleted membership plan", slog.Int64("id", id))
	return nil
}
