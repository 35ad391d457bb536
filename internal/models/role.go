package models

import "fmt"

// Role — роль пользователя из закрытого множества.
// Проверка прав выполняется строгим сравнением значений,
// произвольные строки ролями не являются.
type Role string

const (
	// RoleAdmin — администратор, имеет доступ ко всем операциям управления.
	RoleAdmin Role = "ADMIN"
	// RoleTrainer — тренер зала.
	RoleTrainer Role = "TRAINER"
	// RoleUser — обычный клиент, роль по умолчанию при регистрации.
	RoleUser Role = "USER"
)

// AllRoles — полный набор ролей, создаваемый при старте приложения.
var AllRoles = []Role{RoleAdmin, RoleTrainer, RoleUser}

// ParseRole преобразует строку в Role, отклоняя значения вне закрытого множества.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleTrainer, RoleUser:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role: %q", s)
}

// ContainsRole сообщает, входит ли want в набор roles.
func ContainsRole(roles []Role, want Role) bool {
	for _, r := range roles {
		if r == want {
			return true
		}
	}
	return false
}
