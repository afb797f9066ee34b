package repository

import (
	"github.com/yourusername/trivia-quiz/internal/domain/entity"
)

// QuestionRepository определяет методы для работы с вопросами.
// Все списки возвращаются в порядке создания (по возрастанию ID).
type QuestionRepository interface {
	ListAll() ([]entity.Question, error)
	GetByID(id uint) (*entity.Question, error)
	FindByCategory(categoryID uint) ([]entity.Question, error)
	// Search ищет подстроку в тексте вопроса без учёта регистра
	Search(term string) ([]entity.Question, error)
	Create(question *entity.Question) error
	// Delete удаляет вопрос навсегда; ErrNotFound, если вопроса нет
	Delete(id uint) error
	Count() (int64, error)
}
