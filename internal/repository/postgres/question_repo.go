package postgres

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yourusername/trivia-quiz/internal/domain/entity"
	apperrors "github.com/yourusername/trivia-quiz/internal/pkg/errors"
)

// likeEscaper экранирует спецсимволы LIKE, чтобы искать подстроку буквально
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// QuestionRepo реализует repository.QuestionRepository поверх GORM.
// Запросы не зависят от диалекта: используется и с Postgres, и с SQLite.
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// ListAll возвращает все вопросы в порядке создания
func (r *QuestionRepo) ListAll() ([]entity.Question, error) {
	var questions []entity.Question
	if err := r.db.Order("id").Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return questions, nil
}

// GetByID возвращает вопрос по ID
func (r *QuestionRepo) GetByID(id uint) (*entity.Question, error) {
	var question entity.Question
	err := r.db.First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("question #%d: %w", id, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &question, nil
}

// FindByCategory возвращает вопросы категории
func (r *QuestionRepo) FindByCategory(categoryID uint) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.Where("category_id = ?", categoryID).Order("id").Find(&questions).Error
	if err != nil {
		return nil, fmt.Errorf("find questions by category %d: %w", categoryID, err)
	}
	return questions, nil
}

// Search ищет подстроку в тексте вопроса без учёта регистра.
// LOWER(...) LIKE вместо ILIKE, чтобы запрос работал и в SQLite;
// для SQLite база открывается через database.SQLiteDialector с Unicode-версией LOWER.
func (r *QuestionRepo) Search(term string) ([]entity.Question, error) {
	var questions []entity.Question
	pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
	err := r.db.Where(`LOWER(question) LIKE ? ESCAPE '\'`, pattern).Order("id").Find(&questions).Error
	if err != nil {
		return nil, fmt.Errorf("search questions: %w", err)
	}
	return questions, nil
}

// Create создает новый вопрос
func (r *QuestionRepo) Create(question *entity.Question) error {
	if err := question.Validate(); err != nil {
		return err
	}
	err := r.db.Create(question).Error
	switch {
	case err == nil:
		return nil
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: category %d does not exist", apperrors.ErrValidation, question.CategoryID)
	case isNotNullViolation(err):
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	default:
		return fmt.Errorf("create question: %w", err)
	}
}

// Delete удаляет вопрос; RowsAffected == 0 означает, что вопроса уже нет
func (r *QuestionRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Question{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete question #%d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("question #%d: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

// Count возвращает количество вопросов
func (r *QuestionRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entity.Question{}).Count(&count).Error
	return count, err
}
