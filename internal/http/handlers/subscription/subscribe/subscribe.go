// Package subscribe реализует HTTP-обработчик оформления подписки.
//
// Параметры передаются строкой запроса: userId и membershipId обязательны,
// planId опционален. Дата начала — сегодняшняя, дата окончания считается
// прибавлением срока тарифного плана в календарных месяцах.
package subscribe

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-management/internal/http/response"
	"github.com/magabrotheeeer/gym-management/internal/lib/sl"
	"github.com/magabrotheeeer/gym-management/internal/models"
	"github.com/magabrotheeeer/gym-management/internal/services/subscription"
)

// Handler управляет HTTP-запросами оформления подписок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики оформления подписки.
type Service interface {
	Subscribe(ctx context.Context, userID int64, planID *int64, membershipID int64) (*models.Subscription, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Оформить подписку
// @Description Подписывает пользователя на тарифный план абонемента и, опционально, тренировочный план.
// @Tags Subscriptions
// @Produce  json
// @Param userId query int true "ID пользователя"
// @Param membershipId query int true "ID тарифного плана"
// @Param planId query int false "ID тренировочного плана"
// @Success 201 {object} models.Subscription "Подписка оформлена"
// @Failure 400 {object} response.ErrorResponse "Некорректные параметры"
// @Failure 401 {object} response.ErrorResponse "Нет активной сессии"
// @Failure 404 {object} response.ErrorResponse "Пользователь, тарифный или тренировочный план не найдены"
// @Failure 409 {object} response.ErrorResponse "У пользователя уже есть действующая подписка"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/subscriptions/subscribe [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.subscribe"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, err := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	if err != nil {
		log.Error("invalid userId", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid userId"))
		return
	}
	membershipID, err := strconv.ParseInt(r.URL.Query().Get("membershipId"), 10, 64)
	if err != nil {
		log.Error("invalid membershipId", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid membershipId"))
		return
	}
	var planID *int64
	if raw := r.URL.Query().Get("planId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			log.Error("invalid planId", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid planId"))
			return
		}
		planID = &id
	}

	sub, err := h.service.Subscribe(r.Context(), userID, planID, membershipID)
	switch {
	case errors.Is(err, subscription.ErrUserNotFound):
		log.Info("user not found", slog.Int64("user_id", userID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("user not found"))
		return
	case errors.Is(err, subscription.ErrMembershipNotFound):
		log.Info("membership not found", slog.Int64("membership_id", membershipID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("membership not found"))
		return
	case errors.Is(err, subscription.ErrPlanNotFound):
		log.Info("plan not found", slog.Any("plan_id", planID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("plan not found"))
		return
	case errors.Is(err, subscription.ErrAlreadySubscribed):
		log.Info("user already subscribed", slog.Int64("user_id", userID))
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error("user already has an active subscription"))
		return
	case err != nil:
		log.Error("failed to subscribe", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}

	log.Info("success to subscribe", slog.Int64("id", sub.ID), slog.Int64("user_id", userID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, sub)
}
