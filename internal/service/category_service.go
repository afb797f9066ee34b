package service

import (
	"fmt"

	"github.com/yourusername/trivia-quiz/internal/domain/entity"
	"github.com/yourusername/trivia-quiz/internal/domain/repository"
	apperrors "github.com/yourusername/trivia-quiz/internal/pkg/errors"
)

// CategoryService предоставляет методы для чтения категорий
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService создает новый сервис категорий
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// List возвращает отображение ID → название; ErrNotFound, если категорий нет
func (s *CategoryService) List() (entity.CategoryMap, error) {
	categories, err := s.Map()
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("no categories: %w", apperrors.ErrNotFound)
	}
	return categories, nil
}

// Map возвращает отображение категорий, пустое отображение не ошибка
func (s *CategoryService) Map() (entity.CategoryMap, error) {
	categories, err := s.categoryRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return entity.NewCategoryMap(categories), nil
}

// Get возвращает категорию по ID
func (s *CategoryService) Get(id uint) (*entity.Category, error) {
	return s.categoryRepo.GetByID(id)
}
