package repository

import (
	"github.com/yourusername/trivia-quiz/internal/domain/entity"
)

// CategoryRepository определяет методы для чтения категорий.
// Категории только читаются: создание и удаление не поддерживаются.
type CategoryRepository interface {
	ListAll() ([]entity.Category, error)
	GetByID(id uint) (*entity.Category, error)
}
