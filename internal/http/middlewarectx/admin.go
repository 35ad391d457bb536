package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-management/internal/http/response"
	"github.com/magabrotheeeer/gym-management/internal/lib/sl"
	"github.com/magabrotheeeer/gym-management/internal/models"
)

// RoleResolver возвращает актуальный набор ролей пользователя.
type RoleResolver interface {
	ListUserRoles(ctx context.Context, userID int64) ([]models.Role, error)
}

// AdminOnly возвращает middleware, пропускающий только администраторов.
//
// Роли перечитываются из хранилища на каждый запрос: снимок в сессии мог
// устареть, если роли пользователя поменяли после входа. Принадлежность
// проверяется строгим сравнением с RoleAdmin, а не поиском подстроки.
func AdminOnly(resolver RoleResolver, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := SessionFromContext(r.Context())
			if sess == nil {
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("no active session"))
				return
			}

			roles, err := resolver.ListUserRoles(r.Context(), sess.UserID)
			if err != nil {
				log.Error("failed to resolve user roles", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal server error"))
				return
			}

			if !models.ContainsRole(roles, models.RoleAdmin) {
				log.Info("admin access denied",
					slog.String("username", sess.Username),
					slog.Int64("user_id", sess.UserID))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("admin access required"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
