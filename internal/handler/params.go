package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/trivia-quiz/internal/pkg/errors"
)

// parsePage читает ?page=, по умолчанию 1; нечисловое значение: ErrInvalidArgument.
// Значения <= 0 отклоняет сервис.
func parsePage(c *gin.Context) (int, error) {
	pageStr := c.DefaultQuery("page", "1")
	page, err := strconv.Atoi(pageStr)
	if err != nil {
		return 0, fmt.Errorf("%w: page %q is not a number", apperrors.ErrInvalidArgument, pageStr)
	}
	return page, nil
}

// bindJSON декодирует тело запроса; ошибка разбора отдаётся как ErrValidation
func bindJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", apperrors.ErrValidation, err)
	}
	return nil
}
