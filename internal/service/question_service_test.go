package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/trivia-quiz/internal/domain/entity"
	apperrors "github.com/yourusername/trivia-quiz/internal/pkg/errors"
	"github.com/yourusername/trivia-quiz/internal/repository/memory"
)

func newTestQuestionService(questionRepo *MockQuestionRepository, categoryRepo *MockCategoryRepository) *QuestionService {
	return NewQuestionService(questionRepo, categoryRepo, 10)
}

func TestQuestionService_List_Success(t *testing.T) {
	// Arrange
	questionRepo := new(MockQuestionRepository)
	categoryRepo := new(MockCategoryRepository)
	questionRepo.On("ListAll").Return(makeQuestions(25, 1), nil)
	categoryRepo.On("ListAll").Return(entity.DefaultCategories(), nil)

	svc := newTestQuestionService(questionRepo, categoryRepo)

	// Act
	page, err := svc.List(3)

	// Assert
	require.NoError(t, err)
	assert.Len(t, page.Questions, 5, "На третьей странице из 25 вопросов должно быть 5")
	assert.Equal(t, uint(21), page.Questions[0].ID)
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, "Science", page.Categories[1])
}

func TestQuestionService_List_BeyondLastPage(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	categoryRepo := new(MockCategoryRepository)
	questionRepo.On("ListAll").Return(makeQuestions(5, 1), nil)

	svc := newTestQuestionService(questionRepo, categoryRepo)

	_, err := svc.List(1000)

	assert.ErrorIs(t, err, apperrors.ErrNotFound, "Пустая страница должна давать ErrNotFound")
	categoryRepo.AssertNotCalled(t, "ListAll")
}

func TestQuestionService_List_InvalidPage(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	svc := newTestQuestionService(questionRepo, new(MockCategoryRepository))

	_, err := svc.List(0)

	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	questionRepo.AssertNotCalled(t, "ListAll")
}

func TestQuestionService_List_RepoError(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	dbErr := errors.New("db down")
	questionRepo.On("ListAll").Return(nil, dbErr)

	svc := newTestQuestionService(questionRepo, new(MockCategoryRepository))

	_, err := svc.List(1)

	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
}

func TestQuestionService_Delete_Success(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	questionRepo.On("Delete", uint(7)).Return(nil)
	questionRepo.On("ListAll").Return(makeQuestions(4, 1), nil)

	svc := newTestQuestionService(questionRepo, new(MockCategoryRepository))

	result, err := svc.Delete(7, 1)

	require.NoError(t, err)
	assert.Equal(t, uint(7), result.Deleted)
	assert.Equal(t, 4, result.Total)
	assert.Len(t, result.Questions, 4)
	questionRepo.AssertExpectations(t)
}

func TestQuestionService_Delete_Missing(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	questionRepo.On("Delete", uint(7)).Return(apperrors.ErrNotFound)

	svc := newTestQuestionService(questionRepo, new(MockCategoryRepository))

	_, err := svc.Delete(7, 1)

	assert.ErrorIs(t, err, apperrors.ErrUnprocessable, "Удаление отсутствующего вопроса: unprocessable")
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "и одновременно not found")
	questionRepo.AssertNotCalled(t, "ListAll")
}

func TestQuestionService_Delete_InvalidPageDoesNotDelete(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	svc := newTestQuestionService(questionRepo, new(MockCategoryRepository))

	_, err := svc.Delete(7, -1)

	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	questionRepo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestQuestionService_Create_Success(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	categoryRepo := new(MockCategoryRepository)
	categoryRepo.On("GetByID", uint(1)).Return(&entity.Category{ID: 1, Type: "Science"}, nil)
	questionRepo.On("Create", mock.MatchedBy(func(q *entity.Question) bool {
		return q.Question == "what is your name" && q.Answer == "mohammed" && q.CategoryID == 1 && q.Difficulty == 5
	})).Run(func(args mock.Arguments) {
		args.Get(0).(*entity.Question).ID = 26
	}).Return(nil)
	questionRepo.On("ListAll").Return(makeQuestions(26, 1), nil)

	svc := newTestQuestionService(questionRepo, categoryRepo)

	result, err := svc.Create(CreateQuestionInput{
		Question:   "  what is your name ",
		Answer:     "mohammed",
		CategoryID: 1,
		Difficulty: 5,
	}, 1)

	require.NoError(t, err)
	assert.Equal(t, uint(26), result.Created)
	assert.Equal(t, 26, result.Total)
	assert.Len(t, result.Questions, 10, "Возвращается первая страница")
	questionRepo.AssertExpectations(t)
}

func TestQuestionService_Create_EmptyFields(t *testing.T) {
	testCases := []struct {
		name  string
		input CreateQuestionInput
	}{
		{"пустой вопрос", CreateQuestionInput{Question: "", Answer: "a", CategoryID: 1}},
		{"пустой ответ", CreateQuestionInput{Question: "q", Answer: "", CategoryID: 1}},
		{"пробелы", CreateQuestionInput{Question: "  ", Answer: "  ", CategoryID: 1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			questionRepo := new(MockQuestionRepository)
			categoryRepo := new(MockCategoryRepository)
			svc := newTestQuestionService(questionRepo, categoryRepo)

			_, err := svc.Create(tc.input, 1)

			assert.ErrorIs(t, err, apperrors.ErrValidation)
			questionRepo.AssertNotCalled(t, "Create", mock.Anything)
		})
	}
}

func TestQuestionService_Create_UnknownCategory(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	categoryRepo := new(MockCategoryRepository)
	categoryRepo.On("GetByID", uint(99)).Return(nil, apperrors.ErrNotFound)

	svc := newTestQuestionService(questionRepo, categoryRepo)

	_, err := svc.Create(CreateQuestionInput{Question: "q", Answer: "a", CategoryID: 99}, 1)

	assert.ErrorIs(t, err, apperrors.ErrValidation, "Ссылка на несуществующую категорию должна отклоняться")
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
	questionRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestQuestionService_Search(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	questionRepo.On("Search", "movie").Return(makeQuestions(12, 5), nil)
	questionRepo.On("Search", "zzz").Return([]entity.Question{}, nil)
	questionRepo.On("Search", " movie ").Return([]entity.Question{}, nil)

	svc := newTestQuestionService(questionRepo, new(MockCategoryRepository))

	result, err := svc.Search("movie", 2)
	require.NoError(t, err)
	assert.Equal(t, 12, result.Total)
	assert.Len(t, result.Questions, 2)

	_, err = svc.Search("zzz", 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "Ноль совпадений: ErrNotFound")

	_, err = svc.Search(" movie ", 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "Пробелы вокруг термина входят в подстроку")
	questionRepo.AssertCalled(t, "Search", " movie ")
}

func TestQuestionService_Search_EmptyTermMatchesAll(t *testing.T) {
	questionRepo := memory.NewQuestionRepo()
	for i := 0; i < 3; i++ {
		require.NoError(t, questionRepo.Create(&entity.Question{Question: "q", Answer: "a", CategoryID: 1}))
	}
	svc := NewQuestionService(questionRepo, memory.NewDefaultCategoryRepo(), 10)

	result, err := svc.Search("", 1)

	require.NoError(t, err)
	assert.Equal(t, 3, result.Total, "Пустая подстрока совпадает с любым вопросом")
}

func TestQuestionService_ByCategory(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	categoryRepo := new(MockCategoryRepository)
	categoryRepo.On("GetByID", uint(3)).Return(&entity.Category{ID: 3, Type: "Geography"}, nil)
	categoryRepo.On("GetByID", uint(99)).Return(nil, apperrors.ErrNotFound)
	questionRepo.On("FindByCategory", uint(3)).Return([]entity.Question{}, nil)

	svc := newTestQuestionService(questionRepo, categoryRepo)

	result, err := svc.ByCategory(3, 1)
	require.NoError(t, err, "Категория без вопросов: не ошибка")
	assert.Equal(t, uint(3), result.CurrentCategory)
	assert.Zero(t, result.Total)
	assert.Empty(t, result.Questions)

	_, err = svc.ByCategory(99, 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	questionRepo.AssertNotCalled(t, "FindByCategory", uint(99))
}

// TestQuestionService_WithMemoryStore проверяет сценарии целиком на in-memory хранилище
func TestQuestionService_WithMemoryStore(t *testing.T) {
	svc := NewQuestionService(memory.NewQuestionRepo(), memory.NewDefaultCategoryRepo(), 0)
	assert.Equal(t, 10, svc.PageSize(), "Размер страницы по умолчанию: 10")

	created, err := svc.Create(CreateQuestionInput{Question: "Which movie?", Answer: "Wings", CategoryID: 5, Difficulty: 3}, 1)
	require.NoError(t, err)

	_, err = svc.Create(CreateQuestionInput{Question: "", Answer: "x", CategoryID: 5}, 1)
	require.ErrorIs(t, err, apperrors.ErrValidation)

	page, err := svc.List(1)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total, "Невалидное создание не должно менять хранилище")

	lower, err := svc.Search("movie", 1)
	require.NoError(t, err)
	upper, err := svc.Search("MOVIE", 1)
	require.NoError(t, err)
	assert.Equal(t, lower, upper)

	deleted, err := svc.Delete(created.Created, 1)
	require.NoError(t, err)
	assert.Zero(t, deleted.Total)
	assert.Empty(t, deleted.Questions)

	_, err = svc.Delete(created.Created, 1)
	assert.ErrorIs(t, err, apperrors.ErrUnprocessable, "Повторное удаление не должно проходить")

	_, err = svc.List(1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.ByCategory(99, 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestQuestionService_Get(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	questionRepo.On("GetByID", uint(3)).Return(&entity.Question{ID: 3, Question: "Q?", Answer: "A", CategoryID: 2}, nil)
	questionRepo.On("GetByID", uint(4)).Return(nil, apperrors.ErrNotFound)
	svc := NewQuestionService(questionRepo, new(MockCategoryRepository), 10)

	question, err := svc.Get(3)
	require.NoError(t, err)
	assert.Equal(t, "A", question.Answer)
	assert.Equal(t, uint(2), question.Category)

	_, err = svc.Get(4)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
