// Package session реализует серверное хранилище сессий в Redis.
//
// Сессия создаётся при входе, удаляется при выходе, истекает по TTL.
// Клиенту выдаётся только непрозрачный идентификатор в cookie; сами данные
// (id пользователя, имя, снимок ролей) живут на сервере.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/gym-management/internal/config"
	"github.com/magabrotheeeer/gym-management/internal/models"
)

// ErrNotFound — сессия отсутствует или истекла.
var ErrNotFound = errors.New("session not found")

// Data — полезная нагрузка сессии. Снимок ролей хранится для справки;
// проверка прав заново читает роли из базы на каждый запрос.
type Data struct {
	UserID   int64         `json:"user_id"`
	Username string        `json:"username"`
	Roles    []models.Role `json:"roles"`
}

// Store хранит сессии в Redis с заданным временем жизни.
type Store struct {
	db  *redis.Client
	ttl time.Duration
}

// New подключается к Redis и возвращает готовое хранилище сессий.
func New(ctx context.Context, cfg config.RedisConnection, ttl time.Duration) (*Store, error) {
	const op = "session.New"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Store{db: db, ttl: ttl}, nil
}

// Create сохраняет данные сессии и возвращает её непрозрачный идентификатор.
func (s *Store) Create(ctx context.Context, data Data) (string, error) {
	const op = "session.Create"

	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	id := uuid.NewString()
	if err = s.db.Set(ctx, key(id), payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// Get возвращает данные сессии по идентификатору.
// Отсутствующая или истёкшая сессия — ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*Data, error) {
	const op = "session.Get"

	val, err := s.db.Get(ctx, key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var data Data
	if err = json.Unmarshal([]byte(val), &data); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &data, nil
}

// Delete удаляет сессию. Удаление несуществующей сессии ошибкой не считается.
func (s *Store) Delete(ctx context.Context, id string) error {
	const op = "session.Delete"

	if err := s.db.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает соединение с Redis.
func (s *Store) Close() error {
	return s.db.Close()
}

func key(id string) string {
	return "session:" + id
}
