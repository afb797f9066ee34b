package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/yourusername/trivia-quiz/internal/pkg/errors"
)

// AllCategoriesToken: строковое обозначение фильтра "все категории"
const AllCategoriesToken = "all"

// CategoryFilter задаёт пул вопросов викторины: все категории или одну конкретную.
// Нулевое значение означает "все категории".
type CategoryFilter struct {
	CategoryID uint
}

// AllCategories возвращает фильтр "все категории"
func AllCategories() CategoryFilter {
	return CategoryFilter{}
}

// ForCategory возвращает фильтр по конкретной категории
func ForCategory(id uint) CategoryFilter {
	return CategoryFilter{CategoryID: id}
}

// IsAll сообщает, что фильтр охватывает все категории
func (f CategoryFilter) IsAll() bool {
	return f.CategoryID == 0
}

// String возвращает "all" или ID категории
func (f CategoryFilter) String() string {
	if f.IsAll() {
		return AllCategoriesToken
	}
	return strconv.FormatUint(uint64(f.CategoryID), 10)
}

// ParseCategoryFilter разбирает "all", "0" или положительный ID категории
func ParseCategoryFilter(s string) (CategoryFilter, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, AllCategoriesToken) {
		return AllCategories(), nil
	}
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return CategoryFilter{}, fmt.Errorf("%w: invalid category filter %q", apperrors.ErrInvalidArgument, s)
	}
	return ForCategory(uint(id)), nil
}

// UnmarshalJSON принимает как объект фронтенда {"type": "...", "id": ...},
// так и голое значение: число, строку с числом или "all".
func (f *CategoryFilter) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var obj struct {
			ID json.RawMessage `json:"id"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		data = obj.ID
	}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = AllCategories()
		return nil
	}

	var raw string
	if data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	} else {
		raw = string(data)
	}

	parsed, err := ParseCategoryFilter(raw)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// MarshalJSON сериализует фильтр в том же виде, что присылает фронтенд
func (f CategoryFilter) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID uint `json:"id"`
	}{ID: f.CategoryID})
}

// QuizSession: серверная сессия викторины: фильтр и уже заданные вопросы.
// Множество AskedIDs только растёт в пределах сессии.
type QuizSession struct {
	ID        string         `json:"id"`
	Category  CategoryFilter `json:"quiz_category"`
	AskedIDs  []uint         `json:"previous_questions"`
	CreatedAt time.Time      `json:"created_at"`
}

// HasAsked проверяет, задавался ли уже вопрос в этой сессии
func (s *QuizSession) HasAsked(questionID uint) bool {
	for _, id := range s.AskedIDs {
		if id == questionID {
			return true
		}
	}
	return false
}
