package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/yourusername/trivia-quiz/internal/domain/entity"
	apperrors "github.com/yourusername/trivia-quiz/internal/pkg/errors"
)

// FlexInt принимает число как JSON-число или как строку ("3").
// Веб-форма отправляет значения select-полей строками.
type FlexInt int

// UnmarshalJSON реализует json.Unmarshaler
func (n *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*n = 0
			return nil
		}
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%w: %q is not a number", apperrors.ErrValidation, raw)
	}
	*n = FlexInt(v)
	return nil
}

// QuestionsRequest: тело POST /questions: поиск при непустом searchTerm, иначе создание
type QuestionsRequest struct {
	SearchTerm string  `json:"searchTerm"`
	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
	Category   FlexInt `json:"category"`
	Difficulty FlexInt `json:"difficulty"`
}

// IsSearch сообщает, что запрос является поиском
func (r *QuestionsRequest) IsSearch() bool {
	return r.SearchTerm != ""
}

// CategoryID возвращает ID категории; отрицательное значение: ошибка валидации
func (r *QuestionsRequest) CategoryID() (uint, error) {
	if r.Category < 0 {
		return 0, fmt.Errorf("%w: category must not be negative", apperrors.ErrValidation)
	}
	return uint(r.Category), nil
}

// SearchRequest: тело POST /questions/search
type SearchRequest struct {
	SearchTerm string `json:"searchTerm"`
}

// QuizRequest: тело POST /quizzes.
// Отсутствующий quiz_category означает все категории.
type QuizRequest struct {
	PreviousQuestions []uint                `json:"previous_questions"`
	QuizCategory      entity.CategoryFilter `json:"quiz_category"`
}

// StartSessionRequest: тело POST /quizzes/sessions
type StartSessionRequest struct {
	QuizCategory entity.CategoryFilter `json:"quiz_category"`
}
