// Package cached содержит декораторы репозиториев с кешированием через CacheRepository.
package cached

import (
	"errors"
	"log"
	"time"

	"github.com/yourusername/trivia-quiz/internal/domain/entity"
	"github.com/yourusername/trivia-quiz/internal/domain/repository"
	apperrors "github.com/yourusername/trivia-quiz/internal/pkg/errors"
)

const categoriesKey = "categories:all"

// CategoryRepo кеширует список категорий. Категории только читаются,
// поэтому кеш инвалидируется лишь по TTL.
type CategoryRepo struct {
	next  repository.CategoryRepository
	cache repository.CacheRepository
	ttl   time.Duration
}

// NewCategoryRepo оборачивает next кешем
func NewCategoryRepo(next repository.CategoryRepository, cache repository.CacheRepository, ttl time.Duration) *CategoryRepo {
	return &CategoryRepo{next: next, cache: cache, ttl: ttl}
}

// ListAll возвращает категории из кеша или из next.
// Ошибки кеша не роняют запрос: читаем напрямую и логируем.
func (r *CategoryRepo) ListAll() ([]entity.Category, error) {
	var categories []entity.Category
	err := r.cache.GetJSON(categoriesKey, &categories)
	if err == nil {
		return categories, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		log.Printf("[CachedCategoryRepo] WARNING: ошибка чтения кеша: %v", err)
	}

	categories, err = r.next.ListAll()
	if err != nil {
		return nil, err
	}
	// Пустой список не кешируем: он сигнализирует о незасеянной базе
	if len(categories) > 0 {
		if err := r.cache.SetJSON(categoriesKey, categories, r.ttl); err != nil {
			log.Printf("[CachedCategoryRepo] WARNING: не удалось записать кеш: %v", err)
		}
	}
	return categories, nil
}

// GetByID ищет категорию в закешированном списке
func (r *CategoryRepo) GetByID(id uint) (*entity.Category, error) {
	categories, err := r.ListAll()
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].ID == id {
			return &categories[i], nil
		}
	}
	return r.next.GetByID(id)
}
