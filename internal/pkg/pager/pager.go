// Package pager режет упорядоченные выборки на страницы фиксированного размера.
package pager

import (
	"fmt"

	apperrors "github.com/yourusername/trivia-quiz/internal/pkg/errors"
)

// DefaultPageSize: размер страницы вопросов
const DefaultPageSize = 10

// Paginate возвращает страницу page (нумерация с 1) размером pageSize.
// Страница за пределами выборки возвращается пустой, это не ошибка.
// Для page <= 0 или pageSize <= 0 возвращается ErrInvalidArgument.
func Paginate[T any](items []T, page, pageSize int) ([]T, error) {
	if page <= 0 {
		return nil, fmt.Errorf("%w: page must be >= 1, got %d", apperrors.ErrInvalidArgument, page)
	}
	if pageSize <= 0 {
		return nil, fmt.Errorf("%w: page size must be >= 1, got %d", apperrors.ErrInvalidArgument, pageSize)
	}

	// (page-1)*pageSize может переполниться, поэтому сначала сравниваем через деление
	if page-1 > len(items)/pageSize {
		return []T{}, nil
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}, nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	// Ограничиваем capacity, чтобы append у вызывающего не перетёр исходный слайс
	return items[start:end:end], nil
}

// TotalPages возвращает количество страниц для n элементов
func TotalPages(n, pageSize int) int {
	if n <= 0 || pageSize <= 0 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}
