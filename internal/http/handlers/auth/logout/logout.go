// Package logout реализует HTTP-обработчик выхода из системы:
// серверная сессия удаляется из Redis, cookie сбрасывается.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-management/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gym-management/internal/http/response"
	"github.com/magabrotheeeer/gym-management/internal/lib/sl"
	"github.com/magabrotheeeer/gym-management/internal/session"
)

// Handler управляет HTTP-запросами выхода.
type Handler struct {
	log      *slog.Logger
	sessions Sessions
}

// Sessions описывает интерфейс хранилища сессий.
type Sessions interface {
	Delete(ctx context.Context, id string) error
}

// New создает новый Handler.
func New(log *slog.Logger, sessions Sessions) *Handler {
	return &Handler{log: log, sessions: sessions}
}

// ServeHTTP godoc
// @Summary Выйти из системы
// @Description Удаляет серверную сессию, если она есть, и сбрасывает cookie. Выход без сессии ошибкой не считается.
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.MessageResponse "Сессия завершена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/auth/logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if id := middlewarectx.SessionIDFromContext(r.Context()); id != "" {
		if err := h.sessions.Delete(r.Context(), id); err != nil {
			log.Error("failed to delete session", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal server error"))
			return
		}
	}
	session.ClearCookie(w)

	log.Info("user logged out")
	render.JSON(w, r, response.Message("logged out"))
}
