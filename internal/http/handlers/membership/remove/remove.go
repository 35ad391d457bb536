// Package remove реализует HTTP-обработчик удаления тарифного плана абонемента.
// Доступен только администратору.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-management/internal/http/response"
	"github.com/magabrotheeeer/gym-management/internal/lib/sl"
	"github.com/magabrotheeeer/gym-management/internal/storage/repository"
)

// Handler управляет HTTP-запросами удаления тарифных планов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления тарифного плана.
type Service interface {
	Delete(ctx context.Context, id int64) error
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить тарифный план
// @Description Удаляет тарифный план по ID. Только для администратора.
// @Tags Memberships
// @Produce  json
// @Param id path int true "ID тарифного плана"
// @Success 200 {object} response.MessageResponse "Тарифный план удалён"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Нет активной сессии"
// @Failure 403 {object} response.ErrorResponse "Требуются права администратора"
// @Failure 404 {object} response.ErrorResponse "Тарифный план не найден"
// @Failure 409 {object} response.ErrorResponse "На тарифный план ссылаются подписки"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/memberships/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.membership.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("invalid id format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Info("membership not found", slog.Int64("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("membership not found"))
			return
		}
		if errors.Is(err, repository.ErrInUse) {
			log.Info("membership referenced by subscriptions", slog.Int64("id", id))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("membership is referenced by existing subscriptions"))
			return
		}
		log.Error("failed to delete membership", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}

	log.Info("success to delete membership", slog.Int64("id", id))
	render.JSON(w, r, response.Message("membership deleted"))
}
