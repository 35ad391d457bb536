// Package gym собирает приложение: хранилище, миграции, сессии, шину
// событий, сервисы и HTTP-сервер.
package gym

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/gym-management/internal/config"
	"github.com/magabrotheeeer/gym-management/internal/lib/password"
	"github.com/magabrotheeeer/gym-management/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/gym-management/internal/lib/sl"
	"github.com/magabrotheeeer/gym-management/internal/metrics"
	"github.com/magabrotheeeer/gym-management/internal/migrations"
	"github.com/magabrotheeeer/gym-management/internal/models"
	"github.com/magabrotheeeer/gym-management/internal/notifier"
	authservice "github.com/magabrotheeeer/gym-management/internal/services/auth"
	membershipservice "github.com/magabrotheeeer/gym-management/internal/services/membership"
	planservice "github.com/magabrotheeeer/gym-management/internal/services/plan"
	subscriptionservice "github.com/magabrotheeeer/gym-management/internal/services/subscription"
	trainerservice "github.com/magabrotheeeer/gym-management/internal/services/trainer"
	userservice "github.com/magabrotheeeer/gym-management/internal/services/user"
	"github.com/magabrotheeeer/gym-management/internal/session"
	"github.com/magabrotheeeer/gym-management/internal/storage/repository"
)

// App — собранное приложение с открытыми на старте соединениями.
type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *repository.Storage
	sessions *session.Store
}

// New инициализирует зависимости приложения: подключается к Postgres,
// применяет миграции, поднимает хранилище сессий в Redis, опционально
// подключается к RabbitMQ, создает стартовые роли и администратора
// и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	sessions, err := session.New(ctx, cfg.RedisConnection, cfg.SessionTTL)
	if err != nil {
		return nil, err
	}

	// Пустой URL — событийная шина выключена, подписки оформляются без публикации.
	var events subscriptionservice.EventPublisher
	if cfg.RabbitURL != "" {
		conn, err := rabbitmq.Connect(cfg.RabbitURL, cfg.RabbitRetries, cfg.RabbitRetryDelay)
		if err != nil {
			return nil, err
		}
		ch, err := rabbitmq.SetupChannel(conn)
		if err != nil {
			return nil, err
		}
		events = notifier.New(ch)
		logger.Info("connected to rabbitmq", slog.String("url", cfg.RabbitURL))
	}

	if err = seed(ctx, db, cfg.AdminSeed, logger); err != nil {
		return nil, err
	}

	metrics.Register()

	authService := authservice.New(db, logger)
	userService := userservice.New(db, logger)
	trainerService := trainerservice.New(db, logger)
	planService := planservice.New(db, logger)
	membershipService := membershipservice.New(db, logger)
	subscriptionService := subscriptionservice.New(db, events, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &Services{
		Auth:         authService,
		User:         userService,
		Trainer:      trainerService,
		Plan:         planService,
		Membership:   membershipService,
		Subscription: subscriptionService,
		Sessions:     sessions,
		Roles:        db,
		SessionTTL:   cfg.SessionTTL,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		db:       db,
		sessions: sessions,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до его остановки или отмены ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if cerr := a.sessions.Close(); cerr != nil {
			a.logger.Error("failed to close session store", sl.Err(cerr))
		}
		if cerr := a.db.Close(); cerr != nil {
			a.logger.Error("failed to close storage", sl.Err(cerr))
		}
		return err
	}
}

// seed создает справочник ролей и, если задан в конфиге, пользователя-администратора.
// Повторный запуск на заполненной базе ничего не меняет.
func seed(ctx context.Context, db *repository.Storage, cfg config.AdminSeed, logger *slog.Logger) error {
	const op = "gym.seed"

	for _, role := range models.AllRoles {
		if _, err := db.EnsureRole(ctx, role); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if cfg.AdminUsername == "" {
		return nil
	}
	if _, err := db.GetUserByUsername(ctx, cfg.AdminUsername); err == nil {
		return nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}

	hash, err := password.GetHash(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	admin := models.User{
		Username:     cfg.AdminUsername,
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		Roles:        []models.Role{models.RoleAdmin},
	}
	if _, err = db.CreateUser(ctx, admin, models.RoleAdmin); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("seeded admin user", slog.String("username", cfg.AdminUsername))
	return nil
}
