// Package subscription содержит бизнес-логику оформления подписок:
// связывание пользователя с тарифным планом абонемента и, опционально,
// тренировочным планом, с расчётом дат начала и окончания.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/gym-management/internal/lib/month"
	"github.com/magabrotheeeer/gym-management/internal/lib/sl"
	"github.com/magabrotheeeer/gym-management/internal/models"
	"github.com/magabrotheeeer/gym-management/internal/storage/repository"
)

// Ошибки оформления подписки. Каждая привязана к конкретной проверке,
// чтобы обработчик мог вернуть точное сообщение.
var (
	// ErrUserNotFound — пользователь с таким ID не существует.
	ErrUserNotFound = errors.New("user not found")
	// ErrMembershipNotFound — тарифный план абонемента не существует.
	ErrMembershipNotFound = errors.New("membership not found")
	// ErrPlanNotFound — тренировочный план не существует.
	ErrPlanNotFound = errors.New("plan not found")
	// ErrAlreadySubscribed — у пользователя уже есть действующая подписка.
	ErrAlreadySubscribed = errors.New("user already has an active subscription")
)

// Repository определяет методы хранилища, необходимые для оформления подписок.
type Repository interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetMembership(ctx context.Context, id int64) (*models.MembershipPlan, error)
	GetPlan(ctx context.Context, id int64) (*models.Plan, error)
	HasActiveSubscription(ctx context.Context, userID int64, on time.Time) (bool, error)
	CreateSubscription(ctx context.Context, sub models.Subscription) (int64, error)
	ListSubscriptions(ctx context.Context) ([]*models.Subscription, error)
	ListSubscriptionsByUser(ctx context.Context, userID int64) ([]*models.Subscription, error)
}

// EventPublisher публикует событие об оформленной подписке.
type EventPublisher interface {
	SubscriptionCreated(ctx context.Context, sub models.Subscription) error
}

// Service реализует оформление и просмотр подписок.
type Service struct {
	repo   Repository
	events EventPublisher
	log    *slog.Logger
	now    func() time.Time
}

// New создает новый Service. events может быть nil — тогда события не публикуются.
func New(repo Repository, events EventPublisher, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		events: events,
		log:    log,
		now:    time.Now,
	}
}

// Subscribe оформляет подписку пользователя на тарифный план абонемента
// и, опционально, тренировочный план.
//
// Дата начала — сегодняшняя, дата окончания — начало плюс срок тарифного
// плана в календарных месяцах с прижатием к концу месяца. Пользователь
// с действующей подпиской получает ErrAlreadySubscribed. Удаление любой
// из проверенных записей между чтением и вставкой ловится внешними
// ключами и также возвращается как отсутствие записи.
func (s *Service) Subscribe(ctx context.Context, userID int64, planID *int64, membershipID int64) (*models.Subscription, error) {
	const op = "subscription.Subscribe"

	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	membership, err := s.repo.GetMembership(ctx, membershipID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrMembershipNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if planID != nil {
		if _, err := s.repo.GetPlan(ctx, *planID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%s: %w", op, ErrPlanNotFound)
			}
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	today := s.today()

	active, err := s.repo.HasActiveSubscription(ctx, userID, today)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if active {
		return nil, fmt.Errorf("%s: %w", op, ErrAlreadySubscribed)
	}

	sub := models.Subscription{
		UserID:       userID,
		MembershipID: membershipID,
		PlanID:       planID,
		StartDate:    today,
		EndDate:      month.AddMonths(today, membership.DurationMonths),
	}
	id, err := s.repo.CreateSubscription(ctx, sub)
	if err != nil {
		if errors.Is(err, repository.ErrReferenceNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrMembershipNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sub.ID = id

	s.log.Info("created subscription",
		slog.Int64("id", id),
		slog.Int64("user_id", userID),
		slog.Int64("membership_id", membershipID))

	if s.events != nil {
		if err := s.events.SubscriptionCreated(ctx, sub); err != nil {
			s.log.Warn("failed to publish subscription event", sl.Err(err))
		}
	}

	return &sub, nil
}

// ListAll возвращает все подписки.
func (s *Service) ListAll(ctx context.Context) ([]*models.Subscription, error) {
	return s.repo.ListSubscriptions(ctx)
}

// ListByUser возвращает подписки пользователя.
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]*models.Subscription, error) {
	return s.repo.ListSubscriptionsByUser(ctx, userID)
}

// today возвращает текущую дату в UTC с обнулённым временем.
func (s *Service) today() time.Time {
	n := s.now().UTC()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}
