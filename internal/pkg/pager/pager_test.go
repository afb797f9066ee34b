package pager

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/yourusername/trivia-quiz/internal/pkg/errors"
)

func seq(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func TestPaginate_Sizes(t *testing.T) {
	testCases := []struct {
		name     string
		n        int
		page     int
		expected int
	}{
		{"первая полная страница", 25, 1, 10},
		{"вторая полная страница", 25, 2, 10},
		{"последняя неполная", 25, 3, 5},
		{"за пределами", 25, 4, 0},
		{"пустая выборка", 0, 1, 0},
		{"ровно одна страница", 10, 1, 10},
		{"после ровной страницы", 10, 2, 0},
		{"далеко за пределами", 3, 1000, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// min(page_size, max(0, N - (page-1)*page_size))
			page, err := Paginate(seq(tc.n), tc.page, DefaultPageSize)
			require.NoError(t, err)
			assert.Len(t, page, tc.expected)
			assert.NotNil(t, page, "Пустая страница должна быть пустым слайсом, а не nil")
		})
	}
}

func TestPaginate_KeepsOrder(t *testing.T) {
	page, err := Paginate(seq(25), 2, DefaultPageSize)

	require.NoError(t, err)
	assert.Equal(t, []int{10, 11, 12, 13, 14, 15, 16, 17, 18, 19}, page)
}

func TestPaginate_InvalidPage(t *testing.T) {
	for _, p := range []int{0, -1, math.MinInt} {
		_, err := Paginate(seq(5), p, DefaultPageSize)
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument, "page=%d должен быть отклонён", p)
	}

	_, err := Paginate(seq(5), 1, 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument, "Нулевой размер страницы должен быть отклонён")
}

func TestPaginate_HugePageDoesNotOverflow(t *testing.T) {
	page, err := Paginate(seq(5), math.MaxInt, DefaultPageSize)

	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestPaginate_AppendDoesNotClobberSource(t *testing.T) {
	items := seq(15)

	page, err := Paginate(items, 1, DefaultPageSize)
	require.NoError(t, err)
	_ = append(page, 999)

	assert.Equal(t, 10, items[10], "append к странице не должен менять исходный слайс")
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 3, TotalPages(21, 10))
}
