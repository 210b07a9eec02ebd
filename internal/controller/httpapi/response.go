package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Freeeeeet/tutor_dashboard/internal/service"
)

// Envelope общий формат JSON ответов
type Envelope struct {
	Data  interface{} `json:"data,omitempty"`
	Error *APIError   `json:"error,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

var (
	errUnauthorized     = &APIError{Code: "UNAUTHORIZED", Message: "Необходимо войти через Telegram", Status: http.StatusUnauthorized}
	errInvalidToken     = &APIError{Code: "INVALID_TOKEN", Message: "Токен недействителен или истёк", Status: http.StatusUnauthorized}
	errTokenUsed        = &APIError{Code: "TOKEN_USED", Message: "Ссылка для входа уже использована", Status: http.StatusUnauthorized}
	errForbidden        = &APIError{Code: "FORBIDDEN", Message: "Дашборд доступен только для преподавателей", Status: http.StatusForbidden}
	errNotFound         = &APIError{Code: "NOT_FOUND", Message: "Преподаватель не найден", Status: http.StatusNotFound}
	errBadRequest       = &APIError{Code: "BAD_REQUEST", Message: "Некорректный запрос", Status: http.StatusBadRequest}
	errInternal         = &APIError{Code: "INTERNAL", Message: "Внутренняя ошибка сервера", Status: http.StatusInternalServerError}
	errRouteNotFound    = &APIError{Code: "NOT_FOUND", Message: "Маршрут не найден", Status: http.StatusNotFound}
	errMethodNotAllowed = &APIError{Code: "METHOD_NOT_ALLOWED", Message: "Метод не поддерживается", Status: http.StatusMethodNotAllowed}
)

// fromError сопоставляет ошибки сервисов с HTTP ответом
func fromError(err error) *APIError {
	switch {
	case errors.Is(err, service.ErrTeacherNotFound), errors.Is(err, service.ErrInvalidTeacherID):
		return errNotFound
	case errors.Is(err, service.ErrForbidden):
		return errForbidden
	case errors.Is(err, service.ErrTokenAlreadyUsed):
		return errTokenUsed
	case errors.Is(err, service.ErrInvalidToken):
		return errInvalidToken
	default:
		return errInternal
	}
}

func respondJSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, Envelope{Data: data})
}

func respondError(c *gin.Context, apiErr *APIError) {
	c.Header("Cache-Control", "no-store")
	c.AbortWithStatusJSON(apiErr.Status, Envelope{Error: apiErr})
}
