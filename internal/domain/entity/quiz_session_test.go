package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/yourusername/trivia-quiz/internal/pkg/errors"
)

func TestCategoryFilter_UnmarshalJSON(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    CategoryFilter
		wantErr bool
	}{
		{"объект с числом", `{"type":"Science","id":1}`, ForCategory(1), false},
		{"объект со строкой", `{"type":"Art","id":"2"}`, ForCategory(2), false},
		{"объект all", `{"type":"click","id":0}`, AllCategories(), false},
		{"объект со строкой 0", `{"type":"click","id":"0"}`, AllCategories(), false},
		{"голое число", `5`, ForCategory(5), false},
		{"строка all", `"all"`, AllCategories(), false},
		{"null", `null`, AllCategories(), false},
		{"объект без id", `{"type":"click"}`, AllCategories(), false},
		{"мусор", `"abc"`, CategoryFilter{}, true},
		{"отрицательное", `-1`, CategoryFilter{}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var f CategoryFilter
			err := json.Unmarshal([]byte(tc.input), &f)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, f)
		})
	}
}

func TestCategoryFilter_String(t *testing.T) {
	assert.Equal(t, "all", AllCategories().String())
	assert.Equal(t, "4", ForCategory(4).String())

	parsed, err := ParseCategoryFilter(ForCategory(4).String())
	require.NoError(t, err)
	assert.Equal(t, ForCategory(4), parsed)
}

func TestQuizSession_HasAsked(t *testing.T) {
	s := &QuizSession{AskedIDs: []uint{10, 11}}

	assert.True(t, s.HasAsked(10))
	assert.False(t, s.HasAsked(12))
}
