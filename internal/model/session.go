package model

import "github.com/golang-jwt/jwt/v5"

type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// SessionClaims содержимое токена входа и сессионного токена
type SessionClaims struct {
	ID         string `json:"id" validate:"required,max=64"`
	Role       Role   `json:"role" validate:"required,oneof=teacher student"`
	TelegramID int64  `json:"telegramId" validate:"required,gt=0"`
	jwt.RegisteredClaims
}

// IsTeacher проверяет роль учителя
func (c *SessionClaims) IsTeacher() bool {
	return c.Role == RoleTeacher
}
