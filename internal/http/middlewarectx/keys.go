// Package middlewarectx содержит HTTP middleware: загрузку сессии из cookie,
// проверку аутентификации и прав администратора, ограничение частоты запросов
// и сбор метрик.
package middlewarectx

import (
	"context"

	"github.com/magabrotheeeer/gym-management/internal/session"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// SessionKey — ключ с данными сессии в контексте запроса.
	SessionKey Key = "session"
	// SessionIDKey — ключ с идентификатором сессии.
	SessionIDKey Key = "session_id"
)

// SessionFromContext возвращает данные сессии запроса, nil — если их нет.
func SessionFromContext(ctx context.Context) *session.Data {
	data, _ := ctx.Value(SessionKey).(*session.Data)
	return data
}

// SessionIDFromContext возвращает идентификатор сессии запроса.
func SessionIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(SessionIDKey).(string)
	return id
}
