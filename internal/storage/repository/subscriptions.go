package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/magabrotheeeer/gym-management/internal/models"
)

// CreateSubscription вставляет новую подписку и возвращает её ID.
// Нарушение внешнего ключа означает, что пользователь, тарифный план или
// тренировочный план были удалены после проверки сервисом — такие ошибки
// транслируются в ErrReferenceNotFound.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) (int64, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (user_id, membership_id, plan_id, start_date, end_date)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		sub.UserID, sub.MembershipID, sub.PlanID, sub.StartDate, sub.EndDate).Scan(&newID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, ErrReferenceNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListSubscriptions возвращает все подписки в порядке вставки.
func (s *Storage) ListSubscriptions(ctx context.Context) ([]*models.Subscription, error) {
	const op = "storage.ListSubscriptions"
	return s.listSubscriptions(ctx, op, ``)
}

// ListSubscriptionsByUser возвращает подписки пользователя в порядке вставки.
func (s *Storage) ListSubscriptionsByUser(ctx context.Context, userID int64) ([]*models.Subscription, error) {
	const op = "storage.ListSubscriptionsByUser"
	return s.listSubscriptions(ctx, op, `WHERE user_id = $1`, userID)
}

func (s *Storage) listSubscriptions(ctx context.Context, op, where string, args ...any) ([]*models.Subscription, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, membership_id, plan_id, start_date, end_date
			  FROM subscriptions ` + where + `
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Subscription
	for rows.Next() {
		var sub models.Subscription
		var planID sql.NullInt64
		if err := rows.Scan(&sub.ID, &sub.UserID, &sub.MembershipID, &planID,
			&sub.StartDate, &sub.EndDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if planID.Valid {
			sub.PlanID = &planID.Int64
		}
		result = append(result, &sub)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// HasActiveSubscription сообщает, есть ли у пользователя подписка,
// дата окончания которой ещё не прошла на дату on.
func (s *Storage) HasActiveSubscription(ctx context.Context, userID int64, on time.Time) (bool, error) {
	const op = "storage.HasActiveSubscription"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS(
			      SELECT 1 FROM subscriptions
			      WHERE user_id = $1 AND end_date >= $2
			  )`
	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, userID, on).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}
