package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-management/internal/http/response"
	"github.com/magabrotheeeer/gym-management/internal/lib/sl"
	"github.com/magabrotheeeer/gym-management/internal/session"
)

// SessionReader описывает чтение сессии из хранилища.
type SessionReader interface {
	Get(ctx context.Context, id string) (*session.Data, error)
}

// SessionMiddleware возвращает middleware, который по cookie запроса
// загружает сессию и кладёт её данные в контекст. Отсутствие cookie или
// истёкшая сессия не прерывают запрос: решение об отказе принимают
// RequireUser и AdminOnly.
func SessionMiddleware(store SessionReader, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := session.FromRequest(r)
			if id == "" {
				next.ServeHTTP(w, r)
				return
			}

			data, err := store.Get(r.Context(), id)
			if err != nil {
				if !errors.Is(err, session.ErrNotFound) {
					log.Error("failed to load session", sl.Err(err))
					w.WriteHeader(http.StatusInternalServerError)
					render.JSON(w, r, response.Error("internal server error"))
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), SessionKey, data)
			ctx = context.WithValue(ctx, SessionIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser возвращает middleware, пропускающий только запросы
// с действующей сессией.
func RequireUser(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if SessionFromContext(r.Context()) == nil {
				log.Info("request without active session rejected")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("no active session"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
