// Package auth содержит бизнес-логику регистрации и входа пользователей.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/gym-management/internal/lib/password"
	"github.com/magabrotheeeer/gym-management/internal/models"
	"github.com/magabrotheeeer/gym-management/internal/storage/repository"
)

// ErrInvalidCredentials — неверная пара username/пароль. Намеренно не
// различает отсутствующего пользователя и неверный пароль.
var ErrInvalidCredentials = errors.New("invalid username or password")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя с ролью и возвращает его ID.
	CreateUser(ctx context.Context, user models.User, role models.Role) (int64, error)
	// GetUserByUsername возвращает пользователя по имени или ErrNotFound.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// GetUserByEmail возвращает пользователя по email или ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Service отвечает за регистрацию, вход и данные текущего пользователя.
type Service struct {
	users UserRepository
	log   *slog.Logger
}

// New создает новый Service.
func New(users UserRepository, log *slog.Logger) *Service {
	return &Service{users: users, log: log}
}

// Register создает нового пользователя с хэшированием пароля и ролью USER.
// Дубликат username — repository.ErrUsernameTaken, email — repository.ErrEmailTaken.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	const op = "auth.Register"

	if _, err := s.users.GetUserByUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("%s: %w", op, repository.ErrUsernameTaken)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := s.users.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("%s: %w", op, repository.ErrEmailTaken)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashed,
		Phone:        req.Phone,
		Roles:        []models.Role{models.RoleUser},
	}
	// Уникальные индексы страхуют от гонки двух одновременных регистраций:
	// CreateUser вернёт тот же ErrUsernameTaken/ErrEmailTaken.
	id, err := s.users.CreateUser(ctx, user, models.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user.ID = id

	s.log.Info("registered new user", slog.Int64("id", id), slog.String("username", user.Username))
	return &user, nil
}

// Login проверяет пароль пользователя и возвращает его данные.
// Любая причина отказа — ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, rawPassword string) (*models.User, error) {
	const op = "auth.Login"

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, ErrInvalidCredentials
	}

	s.log.Info("user logged in", slog.String("username", username))
	return user, nil
}

// CurrentUser возвращает актуальные данные пользователя сессии:
// email, телефон и роли перечитываются из базы, а не берутся из снимка.
func (s *Service) CurrentUser(ctx context.Context, username string) (*models.User, error) {
	const op = "auth.CurrentUser"

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}
