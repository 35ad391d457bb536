package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/gym-management/internal/models"
)

// CreateMembership вставляет новый тарифный план абонемента и возвращает его ID.
func (s *Storage) CreateMembership(ctx context.Context, m models.MembershipPlan) (int64, error) {
	const op = "storage.CreateMembership"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO membership_plans (name, description, price, duration_months)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		m.Name, m.Description, m.Price, m.DurationMonths).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetMembership возвращает тарифный план по ID.
func (s *Storage) GetMembership(ctx context.Context, id int64) (*models.MembershipPlan, error) {
	const op = "storage.GetMembership"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, description, price, duration_months
			  FROM membership_plans WHERE id = $1`
	var m models.MembershipPlan
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.DurationMonths); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &m, nil
}

// ListMemberships возвращает все тарифные планы.
func (s *Storage) ListMemberships(ctx context.Context) ([]*models.MembershipPlan, error) {
	const op = "storage.ListMemberships"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, description, price, duration_months
			  FROM membership_plans
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.MembershipPlan
	for rows.Next() {
		var m models.MembershipPlan
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.DurationMonths); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateMembership перезаписывает тарифный план целиком и возвращает
// количество изменённых строк.
func (s *Storage) UpdateMembership(ctx context.Context, m models.MembershipPlan) (int64, error) {
	const op = "storage.UpdateMembership"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE membership_plans
			  SET name = $1, description = $2, price = $3, duration_months = $4
			  WHERE id = $5`
	result, err := s.DB.ExecContext(ctx, query,
		m.Name, m.Description, m.Price, m.DurationMonths, m.ID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// DeleteMembership удаляет тарифный план по ID и возвращает количество удалённых строк.
func (s *Storage) DeleteMembership(ctx context.Context, id int64) (int64, error) {
	const op = "storage.DeleteMembership"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM membership_plans WHERE id = $1`, id)
	if err != nil {
		// На тарифный план ссылаются оформленные подписки.
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, ErrInUse)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}
