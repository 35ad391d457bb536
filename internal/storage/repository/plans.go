package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/gym-management/internal/models"
)

// CreatePlan вставляет новый тренировочный план и возвращает его ID.
func (s *Storage) CreatePlan(ctx context.Context, p models.Plan) (int64, error) {
	const op = "storage.CreatePlan"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO plans (name, price, duration_months, description, duration, difficulty, trainer_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		p.Name, p.Price, p.DurationMonths, p.Description, p.Duration, p.Difficulty, p.TrainerID).Scan(&newID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, ErrReferenceNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetPlan возвращает тренировочный план по ID.
func (s *Storage) GetPlan(ctx context.Context, id int64) (*models.Plan, error) {
	const op = "storage.GetPlan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, price, duration_months, description, duration, difficulty, trainer_id
			  FROM plans WHERE id = $1`
	var p models.Plan
	var trainerID sql.NullInt64
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.DurationMonths,
		&p.Description, &p.Duration, &p.Difficulty, &trainerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if trainerID.Valid {
		p.TrainerID = &trainerID.Int64
	}
	return &p, nil
}

// ListPlans возвращает все тренировочные планы.
func (s *Storage) ListPlans(ctx context.Context) ([]*models.Plan, error) {
	const op = "storage.ListPlans"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, price, duration_months, description, duration, difficulty, trainer_id
			  FROM plans
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Plan
	for rows.Next() {
		var p models.Plan
		var trainerID sql.NullInt64
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.DurationMonths,
			&p.Description, &p.Duration, &p.Difficulty, &trainerID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if trainerID.Valid {
			p.TrainerID = &trainerID.Int64
		}
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdatePlan перезаписывает тренировочный план целиком и возвращает
// количество изменённых строк.
func (s *Storage) UpdatePlan(ctx context.Context, p models.Plan) (int64, error) {
	const op = "storage.UpdatePlan"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE plans
			  SET name = $1, price = $2, duration_months = $3, description = $4,
			      duration = $5, difficulty = $6, trainer_id = $7
			  WHERE id = $8`
	result, err := s.DB.ExecContext(ctx, query,
		p.Name, p.Price, p.DurationMonths, p.Description, p.Duration, p.Difficulty, p.TrainerID, p.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, ErrReferenceNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// DeletePlan удаляет тренировочный план по ID и возвращает количество удалённых строк.
func (s *Storage) DeletePlan(ctx context.Context, id int64) (int64, error) {
	const op = "storage.DeletePlan"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM plans WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}
