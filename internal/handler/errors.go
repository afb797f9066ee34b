package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/trivia-quiz/internal/pkg/errors"
)

// ErrorResponse: тело ответа с ошибкой
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// errorStatus сопоставляет ошибку сервиса с HTTP статусом.
// ErrUnprocessable проверяется раньше ErrNotFound: удаление отсутствующего вопроса несёт обе ошибки.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrUnprocessable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// statusMessage возвращает текст ошибки для статуса
func statusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad request"
	case http.StatusNotFound:
		return "resource not found"
	case http.StatusMethodNotAllowed:
		return "method not allowed"
	case http.StatusUnprocessableEntity:
		return "unprocessable"
	case http.StatusTooManyRequests:
		return "too many requests"
	default:
		return "internal server error"
	}
}

// abortWithStatus прерывает запрос с телом ошибки
func abortWithStatus(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Success: false,
		Error:   status,
		Message: statusMessage(status),
		Detail:  detail,
	})
}

// respondError обрабатывает ошибки от сервисов и отправляет соответствующий HTTP ответ
func respondError(c *gin.Context, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("ERROR: Internal server error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		abortWithStatus(c, status, "")
		return
	}
	abortWithStatus(c, status, err.Error())
}

// NoRoute отвечает 404 на неизвестный путь
func NoRoute(c *gin.Context) {
	abortWithStatus(c, http.StatusNotFound, "")
}

// NoMethod отвечает 405, если путь существует, но метод не поддерживается
func NoMethod(c *gin.Context) {
	abortWithStatus(c, http.StatusMethodNotAllowed, "")
}
