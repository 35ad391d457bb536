package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/gym-management/internal/models"
)

// CreateUser сохраняет нового пользователя с ролью role и возвращает его ID.
// Пользователь и связка с ролью вставляются в одной транзакции.
func (s *Storage) CreateUser(ctx context.Context, user models.User, role models.Role) (int64, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var newID int64
	query := `INSERT INTO users (username, email, password_hash, phone)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	if err = tx.QueryRowContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.Phone).Scan(&newID); err != nil {
		if isUniqueViolation(err) {
			if strings.Contains(err.Error(), "email") {
				return 0, fmt.Errorf("%s: %w", op, ErrEmailTaken)
			}
			return 0, fmt.Errorf("%s: %w", op, ErrUsernameTaken)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var roleID int64
	query = `INSERT INTO roles (name) VALUES ($1)
			 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			 RETURNING id`
	if err = tx.QueryRowContext(ctx, query, string(role)).Scan(&roleID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query = `INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)`
	if _, err = tx.ExecContext(ctx, query, newID, roleID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// EnsureRole создаёт роль, если её ещё нет, и возвращает её ID.
func (s *Storage) EnsureRole(ctx context.Context, role models.Role) (int64, error) {
	const op = "storage.EnsureRole"

	var id int64
	query := `INSERT INTO roles (name) VALUES ($1)
			  ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			  RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query, string(role)).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// GetUserByID возвращает пользователя по ID вместе с набором ролей.
func (s *Storage) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	const op = "storage.GetUserByID"
	return s.getUser(ctx, op, `WHERE u.id = $1`, id)
}

// GetUserByUsername возвращает пользователя по username вместе с набором ролей.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	return s.getUser(ctx, op, `WHERE u.username = $1`, username)
}

// GetUserByEmail возвращает пользователя по email вместе с набором ролей.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	return s.getUser(ctx, op, `WHERE u.email = $1`, email)
}

func (s *Storage) getUser(ctx context.Context, op, where string, arg any) (*models.User, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.id, u.username, u.email, u.password_hash, u.phone,
			      COALESCE(array_to_string(array_agg(r.name) FILTER (WHERE r.name IS NOT NULL), ','), '')
			  FROM users u
			  LEFT JOIN user_roles ur ON ur.user_id = u.id
			  LEFT JOIN roles r ON r.id = ur.role_id ` +
		where + `
			  GROUP BY u.id`

	u := &models.User{}
	var roles string
	row := s.DB.QueryRowContext(ctx, query, arg)
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Phone, &roles); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	u.Roles = parseRoles(roles)
	return u, nil
}

// ListUsers возвращает всех пользователей с их ролями.
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.id, u.username, u.email, u.password_hash, u.phone,
			      COALESCE(array_to_string(array_agg(r.name) FILTER (WHERE r.name IS NOT NULL), ','), '')
			  FROM users u
			  LEFT JOIN user_roles ur ON ur.user_id = u.id
			  LEFT JOIN roles r ON r.id = ur.role_id
			  GROUP BY u.id
			  ORDER BY u.id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		var u models.User
		var roles string
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Phone, &roles); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		u.Roles = parseRoles(roles)
		result = append(result, &u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListUserRoles возвращает актуальный набор ролей пользователя.
// Используется проверкой прав на каждый запрос, чтобы не доверять
// снимку ролей в сессии.
func (s *Storage) ListUserRoles(ctx context.Context, userID int64) ([]models.Role, error) {
	const op = "storage.ListUserRoles"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT r.name
			  FROM roles r
			  JOIN user_roles ur ON ur.role_id = r.id
			  WHERE ur.user_id = $1
			  ORDER BY r.name`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Role
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		role, err := models.ParseRole(name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, role)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// DeleteUser удаляет пользователя по ID и возвращает количество удалённых строк.
// Связки user_roles удаляются каскадно.
func (s *Storage) DeleteUser(ctx context.Context, id int64) (int64, error) {
	const op = "storage.DeleteUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// parseRoles разбирает строку вида "ADMIN,USER" из array_to_string.
// Неизвестные значения пропускаются: закрытое множество ролей
// гарантируется на записи.
func parseRoles(joined string) []models.Role {
	if joined == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	result := make([]models.Role, 0, len(parts))
	for _, p := range parts {
		if role, err := models.ParseRole(p); err == nil {
			result = append(result, role)
		}
	}
	return result
}
