package redis

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/trivia-quiz/internal/domain/entity"
	apperrors "github.com/yourusername/trivia-quiz/internal/pkg/errors"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, redis.UniversalClient) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{mr.Addr()}})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestNewCacheRepo_NilClient(t *testing.T) {
	_, err := NewCacheRepo(nil, "")
	assert.Error(t, err)
}

func TestCacheRepo_JSONRoundTrip(t *testing.T) {
	mr, client := setupRedis(t)
	repo, err := NewCacheRepo(client, "trivia:")
	require.NoError(t, err)

	require.NoError(t, repo.SetJSON("categories", entity.CategoryMap{1: "Science"}, time.Minute))

	var got entity.CategoryMap
	require.NoError(t, repo.GetJSON("categories", &got))
	assert.Equal(t, "Science", got[1])
	assert.True(t, mr.Exists("trivia:categories"), "Ключ должен храниться с префиксом")

	mr.FastForward(2 * time.Minute)
	err = repo.GetJSON("categories", &got)
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "После истечения TTL должен быть ErrNotFound")
}

func TestCacheRepo_GetMissing(t *testing.T) {
	_, client := setupRedis(t)
	repo, err := NewCacheRepo(client, "")
	require.NoError(t, err)

	_, err = repo.Get("missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, repo.Set("k", "v", 0))
	v, err := repo.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	require.NoError(t, repo.Delete("k"))
	_, err = repo.Get("k")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSessionRepo_Lifecycle(t *testing.T) {
	_, client := setupRedis(t)
	repo, err := NewSessionRepo(client, time.Hour)
	require.NoError(t, err)

	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(&entity.QuizSession{ID: "abc", Category: entity.ForCategory(3), CreatedAt: created}))

	added, err := repo.AppendAsked("abc", 12)
	require.NoError(t, err)
	assert.True(t, added)
	added, err = repo.AppendAsked("abc", 10)
	require.NoError(t, err)
	assert.True(t, added)
	added, err = repo.AppendAsked("abc", 12)
	require.NoError(t, err)
	assert.False(t, added, "Повторный ID не должен считаться добавленным")

	got, err := repo.Get("abc")
	require.NoError(t, err)
	assert.Equal(t, entity.ForCategory(3), got.Category)
	assert.Equal(t, []uint{10, 12}, got.AskedIDs, "Множество без повторов, отсортированное")
	assert.True(t, created.Equal(got.CreatedAt))

	require.NoError(t, repo.Delete("abc"))
	_, err = repo.Get("abc")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSessionRepo_AllCategoriesAndInitialAsked(t *testing.T) {
	_, client := setupRedis(t)
	repo, err := NewSessionRepo(client, 0)
	require.NoError(t, err)

	require.NoError(t, repo.Create(&entity.QuizSession{ID: "s", Category: entity.AllCategories(), AskedIDs: []uint{1, 2}}))

	got, err := repo.Get("s")
	require.NoError(t, err)
	assert.True(t, got.Category.IsAll())
	assert.Equal(t, []uint{1, 2}, got.AskedIDs)
}

func TestSessionRepo_Expiry(t *testing.T) {
	mr, client := setupRedis(t)
	repo, err := NewSessionRepo(client, time.Minute)
	require.NoError(t, err)

	require.NoError(t, repo.Create(&entity.QuizSession{ID: "s"}))
	mr.FastForward(50 * time.Second)
	_, err = repo.AppendAsked("s", 1)
	require.NoError(t, err)
	mr.FastForward(50 * time.Second)

	_, err = repo.Get("s")
	require.NoError(t, err, "AppendAsked должен продлевать TTL")

	mr.FastForward(2 * time.Minute)
	_, err = repo.Get("s")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = repo.AppendAsked("s", 2)
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "В истекшую сессию нельзя добавлять вопросы")
}
