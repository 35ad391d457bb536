// Package current реализует HTTP-обработчик данных текущего пользователя.
// Email, телефон и роли перечитываются из базы, а не берутся из сессии.
package current

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-management/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gym-management/internal/http/response"
	"github.com/magabrotheeeer/gym-management/internal/lib/sl"
	"github.com/magabrotheeeer/gym-management/internal/models"
	"github.com/magabrotheeeer/gym-management/internal/storage/repository"
)

// Handler управляет HTTP-запросами данных текущего пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики текущего пользователя.
type Service interface {
	CurrentUser(ctx context.Context, username string) (*models.User, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Текущий пользователь
// @Description Возвращает актуальные данные пользователя активной сессии.
// @Tags Auth
// @Produce  json
// @Success 200 {object} models.User "Данные пользователя"
// @Failure 401 {object} response.ErrorResponse "Нет активной сессии"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/auth/session [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.current"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	data := middlewarectx.SessionFromContext(r.Context())
	if data == nil {
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("no active session"))
		return
	}

	user, err := h.service.CurrentUser(r.Context(), data.Username)
	if err != nil {
		// Пользователь сессии мог быть удалён администратором.
		if errors.Is(err, repository.ErrNotFound) {
			log.Info("session user no longer exists", slog.String("username", data.Username))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("no active session"))
			return
		}
		log.Error("failed to load current user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}

	render.JSON(w, r, user)
}
