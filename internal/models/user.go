// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и служебные флаги.
// Структура используется в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// Роли пользователей системы.
const (
	RoleAdmin     = "admin"     // Полный доступ: список отправлений и смена статусов
	RoleRequester = "requester" // Ограниченный доступ: свои операции
)

// User представляет учётную запись пользователя системы.
type User struct {
	UID               string    // Уникальный идентификатор пользователя
	Email             string    // Электронная почта (уникальная, в нижнем регистре)
	PasswordHash      string    // Хэш пароля пользователя
	Role              string    // Роль пользователя, admin или requester
	IsAuthorized      bool      // Разрешён ли пользователю вход
	IsPasswordChanged bool      // Сменил ли пользователь первоначальный пароль
	CreatedAt         time.Time // Дата создания учётной записи
}
