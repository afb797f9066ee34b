package dto

import (
	"github.com/yourusername/trivia-quiz/internal/domain/entity"
	"github.com/yourusername/trivia-quiz/internal/service"
)

// CategoriesResponse: ответ GET /categories
type CategoriesResponse struct {
	Success         bool               `json:"success"`
	Categories      entity.CategoryMap `json:"categories"`
	TotalCategories int                `json:"total_categories"`
}

// QuestionsResponse: ответ GET /questions
type QuestionsResponse struct {
	Success        bool                       `json:"success"`
	Questions      []entity.FormattedQuestion `json:"questions"`
	TotalQuestions int                        `json:"total_questions"`
	Categories     entity.CategoryMap         `json:"categories"`
}

// DeleteResponse: ответ DELETE /questions/:id
type DeleteResponse struct {
	Success          bool                       `json:"success"`
	Deleted          uint                       `json:"deleted"`
	CurrentQuestions []entity.FormattedQuestion `json:"current_questions"`
	TotalQuestions   int                        `json:"total_questions"`
}

// CreateResponse: ответ на создание вопроса
type CreateResponse struct {
	Success        bool                       `json:"success"`
	Created        uint                       `json:"created"`
	Questions      []entity.FormattedQuestion `json:"questions"`
	TotalQuestions int                        `json:"total_questions"`
}

// SearchResponse: ответ на поиск
type SearchResponse struct {
	Success        bool                       `json:"success"`
	Questions      []entity.FormattedQuestion `json:"questions"`
	TotalQuestions int                        `json:"total_questions"`
}

// CategoryQuestionsResponse: ответ GET /categories/:id/questions
type CategoryQuestionsResponse struct {
	Success         bool                       `json:"success"`
	CurrentCategory uint                       `json:"current_category"`
	Questions       []entity.FormattedQuestion `json:"questions"`
	TotalQuestions  int                        `json:"total_questions"`
}

// QuizQuestionResponse: следующий вопрос викторины; question отсутствует, если вопросы закончились
type QuizQuestionResponse struct {
	Success   bool                      `json:"success"`
	Question  *entity.FormattedQuestion `json:"question,omitempty"`
	SessionID string                    `json:"session_id,omitempty"`
}

// SessionResponse: ответ на создание сессии викторины
type SessionResponse struct {
	Success bool                `json:"success"`
	Session *entity.QuizSession `json:"session"`
}

// NewQuestionsResponse создает DTO для страницы вопросов
func NewQuestionsResponse(page *service.QuestionPage) *QuestionsResponse {
	return &QuestionsResponse{
		Success:        true,
		Questions:      page.Questions,
		TotalQuestions: page.Total,
		Categories:     page.Categories,
	}
}

// NewDeleteResponse создает DTO для результата удаления
func NewDeleteResponse(result *service.DeleteResult) *DeleteResponse {
	return &DeleteResponse{
		Success:          true,
		Deleted:          result.Deleted,
		CurrentQuestions: result.Questions,
		TotalQuestions:   result.Total,
	}
}

// NewCreateResponse создает DTO для результата создания
func NewCreateResponse(result *service.CreateResult) *CreateResponse {
	return &CreateResponse{
		Success:        true,
		Created:        result.Created,
		Questions:      result.Questions,
		TotalQuestions: result.Total,
	}
}

// NewSearchResponse создает DTO для результата поиска
func NewSearchResponse(result *service.SearchResult) *SearchResponse {
	return &SearchResponse{
		Success:        true,
		Questions:      result.Questions,
		TotalQuestions: result.Total,
	}
}

// NewCategoryQuestionsResponse создает DTO для вопросов категории
func NewCategoryQuestionsResponse(result *service.CategoryQuestions) *CategoryQuestionsResponse {
	return &CategoryQuestionsResponse{
		Success:         true,
		CurrentCategory: result.CurrentCategory,
		Questions:       result.Questions,
		TotalQuestions:  result.Total,
	}
}
