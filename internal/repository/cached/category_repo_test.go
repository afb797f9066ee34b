package cached

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/trivia-quiz/internal/domain/entity"
	apperrors "github.com/yourusername/trivia-quiz/internal/pkg/errors"
)

type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Set(key string, value interface{}, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}

func (m *MockCacheRepository) Get(key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheRepository) Delete(key string) error {
	return m.Called(key).Error(0)
}

func (m *MockCacheRepository) SetJSON(key string, value interface{}, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}

func (m *MockCacheRepository) GetJSON(key string, dest interface{}) error {
	return m.Called(key, dest).Error(0)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) ListAll() ([]entity.Category, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByID(id uint) (*entity.Category, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func TestCategoryRepo_MissThenStore(t *testing.T) {
	// Arrange
	cache := new(MockCacheRepository)
	next := new(MockCategoryRepository)
	categories := entity.DefaultCategories()

	cache.On("GetJSON", categoriesKey, mock.Anything).Return(apperrors.ErrNotFound).Once()
	next.On("ListAll").Return(categories, nil).Once()
	cache.On("SetJSON", categoriesKey, categories, time.Minute).Return(nil).Once()

	repo := NewCategoryRepo(next, cache, time.Minute)

	// Act
	got, err := repo.ListAll()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, categories, got)
	cache.AssertExpectations(t)
	next.AssertExpectations(t)
}

func TestCategoryRepo_Hit(t *testing.T) {
	cache := new(MockCacheRepository)
	next := new(MockCategoryRepository)

	cache.On("GetJSON", categoriesKey, mock.Anything).Run(func(args mock.Arguments) {
		dest := args.Get(1).(*[]entity.Category)
		*dest = []entity.Category{{ID: 1, Type: "Science"}}
	}).Return(nil)

	repo := NewCategoryRepo(next, cache, time.Minute)

	got, err := repo.ListAll()
	require.NoError(t, err)
	assert.Len(t, got, 1)

	c, err := repo.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Science", c.Type)

	next.AssertNotCalled(t, "ListAll")
}

func TestCategoryRepo_CacheErrorFallsBack(t *testing.T) {
	cache := new(MockCacheRepository)
	next := new(MockCategoryRepository)

	cache.On("GetJSON", categoriesKey, mock.Anything).Return(errors.New("redis down"))
	cache.On("SetJSON", categoriesKey, mock.Anything, time.Minute).Return(errors.New("redis down"))
	next.On("ListAll").Return([]entity.Category{{ID: 2, Type: "Art"}}, nil)

	repo := NewCategoryRepo(next, cache, time.Minute)

	got, err := repo.ListAll()

	require.NoError(t, err, "Ошибка Redis не должна ронять запрос")
	assert.Equal(t, "Art", got[0].Type)
}

func TestCategoryRepo_EmptyNotCached(t *testing.T) {
	cache := new(MockCacheRepository)
	next := new(MockCategoryRepository)

	cache.On("GetJSON", categoriesKey, mock.Anything).Return(apperrors.ErrNotFound)
	next.On("ListAll").Return([]entity.Category{}, nil)

	repo := NewCategoryRepo(next, cache, time.Minute)

	got, err := repo.ListAll()

	require.NoError(t, err)
	assert.Empty(t, got)
	cache.AssertNotCalled(t, "SetJSON", mock.Anything, mock.Anything, mock.Anything)
}

func TestCategoryRepo_GetByIDMissing(t *testing.T) {
	cache := new(MockCacheRepository)
	next := new(MockCategoryRepository)

	cache.On("GetJSON", categoriesKey, mock.Anything).Return(apperrors.ErrNotFound)
	cache.On("SetJSON", categoriesKey, mock.Anything, time.Minute).Return(nil)
	next.On("ListAll").Return(entity.DefaultCategories(), nil)
	next.On("GetByID", uint(99)).Return(nil, apperrors.ErrNotFound)

	repo := NewCategoryRepo(next, cache, time.Minute)

	_, err := repo.GetByID(99)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
