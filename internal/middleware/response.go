package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// abortJSON прерывает запрос телом ошибки в общем формате API
func abortJSON(c *gin.Context, status int, message, detail string, extra gin.H) {
	body := gin.H{
		"success": false,
		"error":   status,
		"message": message,
	}
	if detail != "" {
		body["detail"] = detail
	}
	for k, v := range extra {
		body[k] = v
	}
	c.AbortWithStatusJSON(status, body)
}

func abortBadRequest(c *gin.Context, detail string) {
	abortJSON(c, http.StatusBadRequest, "bad request", detail, nil)
}
