// Package repository реализует хранилище данных на основе PostgreSQL
// для пользователей, тренеров, тренировочных планов, тарифных планов
// абонементов и подписок.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Ошибки уровня хранилища. Сервисы проверяют их через errors.Is
// и транслируют в HTTP-статусы на границе обработчиков.
var (
	// ErrNotFound — запрошенная запись отсутствует.
	ErrNotFound = errors.New("record not found")
	// ErrUsernameTaken — пользователь с таким username уже существует.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrEmailTaken — пользователь с таким email уже существует.
	ErrEmailTaken = errors.New("email already taken")
	// ErrReferenceNotFound — запись ссылается на несуществующую строку.
	// Возвращается при нарушении внешнего ключа, например когда тарифный
	// план удалили между проверкой и вставкой подписки.
	ErrReferenceNotFound = errors.New("referenced record not found")
	// ErrInUse — запись нельзя удалить, пока на неё ссылаются подписки.
	ErrInUse = errors.New("record is referenced by existing subscriptions")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{DB: db}, nil
}

// Close закрывает пул соединений.
func (s *Storage) Close() error {
	return s.DB.Close()
}

// pgErrCode возвращает код SQLSTATE, если err пришла от PostgreSQL.
func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgErrCode(err) == pgerrcode.UniqueViolation
}

func isForeignKeyViolation(err error) bool {
	return pgErrCode(err) == pgerrcode.ForeignKeyViolation
}
