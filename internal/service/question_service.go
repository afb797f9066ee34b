package service

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/trivia-quiz/internal/domain/entity"
	"github.com/yourusername/trivia-quiz/internal/domain/repository"
	apperrors "github.com/yourusername/trivia-quiz/internal/pkg/errors"
	"github.com/yourusername/trivia-quiz/internal/pkg/pager"
)

// QuestionService предоставляет методы для работы с вопросами
type QuestionService struct {
	questionRepo repository.QuestionRepository
	categoryRepo repository.CategoryRepository
	pageSize     int
}

// NewQuestionService создает новый сервис вопросов; pageSize <= 0 заменяется на pager.DefaultPageSize
func NewQuestionService(
	questionRepo repository.QuestionRepository,
	categoryRepo repository.CategoryRepository,
	pageSize int,
) *QuestionService {
	if pageSize <= 0 {
		pageSize = pager.DefaultPageSize
	}
	return &QuestionService{
		questionRepo: questionRepo,
		categoryRepo: categoryRepo,
		pageSize:     pageSize,
	}
}

// QuestionPage: страница вопросов вместе с категориями
type QuestionPage struct {
	Questions  []entity.FormattedQuestion
	Total      int
	Categories entity.CategoryMap
}

// DeleteResult: результат удаления вопроса
type DeleteResult struct {
	Deleted   uint
	Questions []entity.FormattedQuestion
	Total     int
}

// CreateQuestionInput: данные нового вопроса
type CreateQuestionInput struct {
	Question   string
	Answer     string
	CategoryID uint
	Difficulty int
}

// CreateResult: результат создания вопроса
type CreateResult struct {
	Created   uint
	Questions []entity.FormattedQuestion
	Total     int
}

// SearchResult: результат поиска
type SearchResult struct {
	Questions []entity.FormattedQuestion
	Total     int
}

// CategoryQuestions: вопросы одной категории
type CategoryQuestions struct {
	CurrentCategory uint
	Questions       []entity.FormattedQuestion
	Total           int
}

// PageSize возвращает размер страницы
func (s *QuestionService) PageSize() int {
	return s.pageSize
}

// validatePage проверяет номер страницы до любых побочных эффектов
func (s *QuestionService) validatePage(page int) error {
	if page <= 0 {
		return fmt.Errorf("%w: page must be >= 1, got %d", apperrors.ErrInvalidArgument, page)
	}
	return nil
}

// page форматирует и режет выборку
func (s *QuestionService) page(questions []entity.Question, page int) ([]entity.FormattedQuestion, error) {
	return pager.Paginate(entity.FormatQuestions(questions), page, s.pageSize)
}

// List возвращает страницу всех вопросов; ErrNotFound, если страница пуста
func (s *QuestionService) List(page int) (*QuestionPage, error) {
	if err := s.validatePage(page); err != nil {
		return nil, err
	}
	questions, err := s.questionRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	current, err := s.page(questions, page)
	if err != nil {
		return nil, err
	}
	if len(current) == 0 {
		return nil, fmt.Errorf("page %d of %d questions is empty: %w", page, len(questions), apperrors.ErrNotFound)
	}

	categories, err := s.categoryRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return &QuestionPage{
		Questions:  current,
		Total:      len(questions),
		Categories: entity.NewCategoryMap(categories),
	}, nil
}

// Delete удаляет вопрос и возвращает страницу page оставшихся.
// Отсутствующий вопрос даёт ошибку, которая одновременно ErrUnprocessable и ErrNotFound.
func (s *QuestionService) Delete(id uint, page int) (*DeleteResult, error) {
	if err := s.validatePage(page); err != nil {
		return nil, err
	}
	if err := s.questionRepo.Delete(id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: cannot delete question #%d: %w", apperrors.ErrUnprocessable, id, err)
		}
		return nil, fmt.Errorf("failed to delete question #%d: %w", id, err)
	}
	log.Printf("[QuestionService] Вопрос #%d удалён", id)

	questions, err := s.questionRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	current, err := s.page(questions, page)
	if err != nil {
		return nil, err
	}

	return &DeleteResult{Deleted: id, Questions: current, Total: len(questions)}, nil
}

// Create валидирует и сохраняет новый вопрос.
// Ссылка на несуществующую категорию отклоняется с ErrValidation.
func (s *QuestionService) Create(in CreateQuestionInput, page int) (*CreateResult, error) {
	if err := s.validatePage(page); err != nil {
		return nil, err
	}

	question := &entity.Question{
		Question:   strings.TrimSpace(in.Question),
		Answer:     strings.TrimSpace(in.Answer),
		CategoryID: in.CategoryID,
		Difficulty: in.Difficulty,
	}
	if err := question.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.categoryRepo.GetByID(in.CategoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %d does not exist", apperrors.ErrValidation, in.CategoryID)
		}
		return nil, fmt.Errorf("failed to check category %d: %w", in.CategoryID, err)
	}

	if err := s.questionRepo.Create(question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	log.Printf("[QuestionService] Создан вопрос #%d в категории %d", question.ID, question.CategoryID)

	questions, err := s.questionRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	current, err := s.page(questions, page)
	if err != nil {
		return nil, err
	}

	return &CreateResult{Created: question.ID, Questions: current, Total: len(questions)}, nil
}

// Search ищет вопросы по подстроке без учёта регистра; ErrNotFound, если совпадений нет.
// Термин не обрезается, пустая подстрока совпадает с любым вопросом.
func (s *QuestionService) Search(term string, page int) (*SearchResult, error) {
	if err := s.validatePage(page); err != nil {
		return nil, err
	}

	matches, err := s.questionRepo.Search(term)
	if err != nil {
		return nil, fmt.Errorf("failed to search questions: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no questions match %q: %w", term, apperrors.ErrNotFound)
	}

	current, err := s.page(matches, page)
	if err != nil {
		return nil, err
	}
	return &SearchResult{Questions: current, Total: len(matches)}, nil
}

// ByCategory возвращает вопросы категории; ErrNotFound, если категории нет.
// Существующая категория без вопросов: не ошибка.
func (s *QuestionService) ByCategory(categoryID uint, page int) (*CategoryQuestions, error) {
	if err := s.validatePage(page); err != nil {
		return nil, err
	}
	if _, err := s.categoryRepo.GetByID(categoryID); err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.FindByCategory(categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions of category %d: %w", categoryID, err)
	}
	current, err := s.page(questions, page)
	if err != nil {
		return nil, err
	}

	return &CategoryQuestions{
		CurrentCategory: categoryID,
		Questions:       current,
		Total:           len(questions),
	}, nil
}

// Export возвращает все вопросы и категории для выгрузки
func (s *QuestionService) Export() ([]entity.Question, entity.CategoryMap, error) {
	questions, err := s.questionRepo.ListAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list questions: %w", err)
	}
	categories, err := s.categoryRepo.ListAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return questions, entity.NewCategoryMap(categories), nil
}

// Get возвращает вопрос по ID
func (s *QuestionService) Get(id uint) (*entity.FormattedQuestion, error) {
	question, err := s.questionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	formatted := question.Format()
	return &formatted, nil
}
