package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/yourusername/trivia-quiz/internal/domain/entity"
	apperrors "github.com/yourusername/trivia-quiz/internal/pkg/errors"
)

// CategoryRepo: хранилище категорий в памяти, реализует repository.CategoryRepository
type CategoryRepo struct {
	mu         sync.RWMutex
	categories map[uint]entity.Category
}

// NewCategoryRepo создает хранилище с заданными категориями
func NewCategoryRepo(categories ...entity.Category) *CategoryRepo {
	m := make(map[uint]entity.Category, len(categories))
	for _, c := range categories {
		m[c.ID] = c
	}
	return &CategoryRepo{categories: m}
}

// NewDefaultCategoryRepo создает хранилище со стандартным набором категорий
func NewDefaultCategoryRepo() *CategoryRepo {
	return NewCategoryRepo(entity.DefaultCategories()...)
}

// ListAll возвращает категории по возрастанию ID
func (r *CategoryRepo) ListAll() ([]entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]entity.Category, 0, len(r.categories))
	for _, c := range r.categories {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// GetByID возвращает категорию по ID
func (r *CategoryRepo) GetByID(id uint) (*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, fmt.Errorf("category #%d: %w", id, apperrors.ErrNotFound)
	}
	return &c, nil
}
