package repository

import (
	"github.com/yourusername/trivia-quiz/internal/domain/entity"
)

// SessionRepository хранит серверные сессии викторины
type SessionRepository interface {
	Create(session *entity.QuizSession) error
	// Get возвращает сессию или ErrNotFound, если она не существует или истекла
	Get(id string) (*entity.QuizSession, error)
	// AppendAsked добавляет ID заданного вопроса в сессию и продлевает её жизнь.
	// Возвращает false, если вопрос уже был в сессии.
	AppendAsked(id string, questionID uint) (bool, error)
	Delete(id string) error
}
