package entity

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/yourusername/trivia-quiz/internal/pkg/errors"
)

// Question представляет вопрос викторины
type Question struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Question   string    `gorm:"type:text;not null" json:"question"`
	Answer     string    `gorm:"type:text;not null" json:"answer"`
	CategoryID uint      `gorm:"column:category_id;not null;index" json:"category"`
	Difficulty int       `gorm:"not null;default:1" json:"difficulty"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// Validate проверяет инварианты вопроса перед сохранением.
// Текст вопроса и ответ не могут быть пустыми (пробелы не считаются содержимым).
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("%w: question text must not be empty", apperrors.ErrValidation)
	}
	if strings.TrimSpace(q.Answer) == "" {
		return fmt.Errorf("%w: answer must not be empty", apperrors.ErrValidation)
	}
	return nil
}

// FormattedQuestion: внешнее представление вопроса, все поля без скрытого состояния
type FormattedQuestion struct {
	ID         uint   `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   uint   `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// Format возвращает внешнее представление вопроса
func (q *Question) Format() FormattedQuestion {
	return FormattedQuestion{
		ID:         q.ID,
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   q.CategoryID,
		Difficulty: q.Difficulty,
	}
}

// FormatQuestions форматирует список вопросов с сохранением порядка
func FormatQuestions(questions []Question) []FormattedQuestion {
	formatted := make([]FormattedQuestion, len(questions))
	for i := range questions {
		formatted[i] = questions[i].Format()
	}
	return formatted
}
