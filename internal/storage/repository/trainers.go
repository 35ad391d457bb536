package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/gym-management/internal/models"
)

// CreateTrainer вставляет нового тренера и возвращает его ID.
func (s *Storage) CreateTrainer(ctx context.Context, t models.Trainer) (int64, error) {
	const op = "storage.CreateTrainer"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO trainers (name, specialization, email, phone, description, experience, photo)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		t.Name, t.Specialization, t.Email, t.Phone, t.Description, t.Experience, t.Photo).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetTrainer возвращает тренера по ID.
func (s *Storage) GetTrainer(ctx context.Context, id int64) (*models.Trainer, error) {
	const op = "storage.GetTrainer"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, specialization, email, phone, description, experience, photo
			  FROM trainers WHERE id = $1`
	var t models.Trainer
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&t.ID, &t.Name, &t.Specialization, &t.Email, &t.Phone,
		&t.Description, &t.Experience, &t.Photo); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &t, nil
}

// ListTrainers возвращает всех тренеров.
func (s *Storage) ListTrainers(ctx context.Context) ([]*models.Trainer, error) {
	const op = "storage.ListTrainers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, specialization, email, phone, description, experience, photo
			  FROM trainers
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Trainer
	for rows.Next() {
		var t models.Trainer
		if err := rows.Scan(&t.ID, &t.Name, &t.Specialization, &t.Email, &t.Phone,
			&t.Description, &t.Experience, &t.Photo); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateTrainer перезаписывает данные тренера целиком и возвращает
// количество изменённых строк. Слияние частичного обновления выполняет сервис.
func (s *Storage) UpdateTrainer(ctx context.Context, t models.Trainer) (int64, error) {
	const op = "storage.UpdateTrainer"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE trainers
			  SET name = $1, specialization = $2, email = $3, phone = $4,
			      description = $5, experience = $6, photo = $7
			  WHERE id = $8`
	result, err := s.DB.ExecContext(ctx, query,
		t.Name, t.Specialization, t.Email, t.Phone, t.Description, t.Experience, t.Photo, t.ID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// DeleteTrainer удаляет тренера по ID и возвращает количество удалённых строк.
func (s *Storage) DeleteTrainer(ctx context.Context, id int64) (int64, error) {
	const op = "storage.DeleteTrainer"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM trainers WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}
