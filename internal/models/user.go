// Package models содержит доменные структуры зала: пользователей, тренеров,
// тренировочные планы, абонементы и подписки, а также структуры для приёма
// данных из JSON-запросов.
package models

// User представляет зарегистрированного пользователя системы.
// Хэш пароля наружу не сериализуется.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"` // Имя пользователя (уникальное)
	Email        string `json:"email"`    // Электронная почта (уникальная)
	PasswordHash string `json:"-"`
	Phone        string `json:"phone"`
	Roles        []Role `json:"roles"`
}

// PrimaryRole возвращает отображаемую роль пользователя:
// ADMIN, если роль ADMIN присутствует в наборе, иначе USER.
func (u *User) PrimaryRole() Role {
	if ContainsRole(u.Roles, RoleAdmin) {
		return RoleAdmin
	}
	return RoleUser
}

// RegisterRequest — данные регистрации нового пользователя.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"`
}

// LoginRequest — данные входа.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
