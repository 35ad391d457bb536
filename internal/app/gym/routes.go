package gym

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/gym-management/internal/http/handlers/auth/current"
	"github.com/magabrotheeeer/gym-management/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/gym-management/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/gym-management/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/gym-management/internal/http/handlers/health"
	membershipcreate "github.com/magabrotheeeer/gym-management/internal/http/handlers/membership/create"
	membershiplist "github.com/magabrotheeeer/gym-management/internal/http/handlers/membership/list"
	membershipread "github.com/magabrotheeeer/gym-management/internal/http/handlers/membership/read"
	membershipremove "github.com/magabrotheeeer/gym-management/internal/http/handlers/membership/remove"
	membershipupdate "github.com/magabrotheeeer/gym-management/internal/http/handlers/membership/update"
	plancreate "github.com/magabrotheeeer/gym-management/internal/http/handlers/plan/create"
	planlist "github.com/magabrotheeeer/gym-management/internal/http/handlers/plan/list"
	planremove "github.com/magabrotheeeer/gym-management/internal/http/handlers/plan/remove"
	planupdate "github.com/magabrotheeeer/gym-management/internal/http/handlers/plan/update"
	sublist "github.com/magabrotheeeer/gym-management/internal/http/handlers/subscription/list"
	"github.com/magabrotheeeer/gym-management/internal/http/handlers/subscription/listbyuser"
	"github.com/magabrotheeeer/gym-management/internal/http/handlers/subscription/subscribe"
	trainercreate "github.com/magabrotheeeer/gym-management/internal/http/handlers/trainer/create"
	trainerlist "github.com/magabrotheeeer/gym-management/internal/http/handlers/trainer/list"
	trainerread "github.com/magabrotheeeer/gym-management/internal/http/handlers/trainer/read"
	trainerremove "github.com/magabrotheeeer/gym-management/internal/http/handlers/trainer/remove"
	trainerupdate "github.com/magabrotheeeer/gym-management/internal/http/handlers/trainer/update"
	userlist "github.com/magabrotheeeer/gym-management/internal/http/handlers/user/list"
	userremove "github.com/magabrotheeeer/gym-management/internal/http/handlers/user/remove"
	"github.com/magabrotheeeer/gym-management/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/gym-management/internal/services/auth"
	membershipservice "github.com/magabrotheeeer/gym-management/internal/services/membership"
	planservice "github.com/magabrotheeeer/gym-management/internal/services/plan"
	subscriptionservice "github.com/magabrotheeeer/gym-management/internal/services/subscription"
	trainerservice "github.com/magabrotheeeer/gym-management/internal/services/trainer"
	userservice "github.com/magabrotheeeer/gym-management/internal/services/user"
	"github.com/magabrotheeeer/gym-management/internal/session"
)

// Services — зависимости маршрутов приложения.
type Services struct {
	Auth         *authservice.Service
	User         *userservice.Service
	Trainer      *trainerservice.Service
	Plan         *planservice.Service
	Membership   *membershipservice.Service
	Subscription *subscriptionservice.Service
	Sessions     *session.Store
	Roles        middlewarectx.RoleResolver
	SessionTTL   time.Duration
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.MetricsMiddleware,
		middlewarectx.SessionMiddleware(s.Sessions, logger),
	)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/auth/login", login.New(logger, s.Auth, s.Sessions, s.SessionTTL).ServeHTTP)
		r.Post("/auth/logout", logout.New(logger, s.Sessions).ServeHTTP)

		// Группа с обязательной сессией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RequireUser(logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/auth/session", current.New(logger, s.Auth).ServeHTTP)

			r.Get("/trainers", trainerlist.New(logger, s.Trainer).ServeHTTP)
			r.Get("/trainers/{id}", trainerread.New(logger, s.Trainer).ServeHTTP)
			r.Get("/plans", planlist.New(logger, s.Plan).ServeHTTP)
			r.Get("/memberships", membershiplist.New(logger, s.Membership).ServeHTTP)
			r.Get("/memberships/{id}", membershipread.New(logger, s.Membership).ServeHTTP)

			r.Post("/subscriptions/subscribe", subscribe.New(logger, s.Subscription).ServeHTTP)
			r.Get("/subscriptions/user/{userId}", listbyuser.New(logger, s.Subscription).ServeHTTP)

			// Административные конечные точки
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminOnly(s.Roles, logger))

				r.Get("/users", userlist.New(logger, s.User).ServeHTTP)
				r.Delete("/users/{id}", userremove.New(logger, s.User).ServeHTTP)

				r.Post("/trainers", trainercreate.New(logger, s.Trainer).ServeHTTP)
				r.Put("/trainers/{id}", trainerupdate.New(logger, s.Trainer).ServeHTTP)
				r.Delete("/trainers/{id}", trainerremove.New(logger, s.Trainer).ServeHTTP)

				r.Post("/plans", plancreate.New(logger, s.Plan).ServeHTTP)
				r.Put("/plans/{id}", planupdate.New(logger, s.Plan).ServeHTTP)
				r.Delete("/plans/{id}", planremove.New(logger, s.Plan).ServeHTTP)

				r.Post("/memberships", membershipcreate.New(logger, s.Membership).ServeHTTP)
				r.Put("/memberships/{id}", membershipupdate.New(logger, s.Membership).ServeHTTP)
				r.Delete("/memberships/{id}", membershipremove.New(logger, s.Membership).ServeHTTP)

				r.Get("/subscriptions", sublist.New(logger, s.Subscription).ServeHTTP)
			})
		})
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
