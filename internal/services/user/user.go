// Package user содержит административные операции над пользователями.
package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/gym-management/internal/models"
	"github.com/magabrotheeeer/gym-management/internal/storage/repository"
)

// Repository определяет методы для работы с пользователями в хранилище.
type Repository interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
	DeleteUser(ctx context.Context, id int64) (int64, error)
}

// Service реализует административные операции над пользователями.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// List возвращает всех пользователей.
func (s *Service) List(ctx context.Context) ([]*models.User, error) {
	return s.repo.ListUsers(ctx)
}

// Delete удаляет пользователя по ID. Отсутствующий ID — repository.ErrNotFound.
func (s *Service) Delete(ctx context.Context, id int64) error {
	const op = "user.Delete"

	count, err := s.repo.DeleteUser(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	s.log.Info("deleted user", slog.Int64("id", id))
	return nil
}
