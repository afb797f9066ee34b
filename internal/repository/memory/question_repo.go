package memory

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/yourusername/trivia-quiz/internal/domain/entity"
	apperrors "github.com/yourusername/trivia-quiz/internal/pkg/errors"
)

// QuestionRepo: потокобезопасное хранилище вопросов в памяти,
// реализует repository.QuestionRepository
type QuestionRepo struct {
	mu        sync.RWMutex
	questions map[uint]entity.Question
	nextID    uint
}

// NewQuestionRepo создает пустое хранилище вопросов
func NewQuestionRepo() *QuestionRepo {
	return &QuestionRepo{
		questions: make(map[uint]entity.Question),
		nextID:    1,
	}
}

// sorted возвращает копию вопросов, отфильтрованную match, в порядке создания.
// Вызывается под mu.RLock.
func (r *QuestionRepo) sorted(match func(q *entity.Question) bool) []entity.Question {
	result := make([]entity.Question, 0, len(r.questions))
	for _, q := range r.questions {
		if match == nil || match(&q) {
			result = append(result, q)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// ListAll возвращает все вопросы в порядке создания
func (r *QuestionRepo) ListAll() ([]entity.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(nil), nil
}

// GetByID возвращает вопрос по ID
func (r *QuestionRepo) GetByID(id uint) (*entity.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q, ok := r.questions[id]
	if !ok {
		return nil, fmt.Errorf("question #%d: %w", id, apperrors.ErrNotFound)
	}
	return &q, nil
}

// FindByCategory возвращает вопросы категории; пустой список, если таких нет
func (r *QuestionRepo) FindByCategory(categoryID uint) ([]entity.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(func(q *entity.Question) bool { return q.CategoryID == categoryID }), nil
}

// Search ищет подстроку в тексте вопроса без учёта регистра
func (r *QuestionRepo) Search(term string) ([]entity.Question, error) {
	needle := strings.ToLower(term)
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(func(q *entity.Question) bool {
		return strings.Contains(strings.ToLower(q.Question), needle)
	}), nil
}

// Create сохраняет вопрос и присваивает ему ID
func (r *QuestionRepo) Create(question *entity.Question) error {
	if err := question.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	question.ID = r.nextID
	question.CreatedAt = now
	question.UpdatedAt = now
	r.nextID++
	r.questions[question.ID] = *question
	return nil
}

// Delete удаляет вопрос навсегда
func (r *QuestionRepo) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.questions[id]; !ok {
		return fmt.Errorf("question #%d: %w", id, apperrors.ErrNotFound)
	}
	delete(r.questions, id)
	return nil
}

// Count возвращает количество вопросов
func (r *QuestionRepo) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.questions)), nil
}
