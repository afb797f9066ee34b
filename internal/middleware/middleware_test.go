package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/trivia-quiz/internal/pkg/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestExtractUintParam(t *testing.T) {
	router := gin.New()
	router.GET("/questions/:id", ExtractUintParam("id", "questionID"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.MustGet("questionID").(uint)})
	})

	t.Run("валидный ID", func(t *testing.T) {
		w := perform(router, http.MethodGet, "/questions/42")

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":42}`, w.Body.String())
	})

	for _, id := range []string{"abc", "-1", "99999999999"} {
		t.Run("невалидный ID "+id, func(t *testing.T) {
			w := perform(router, http.MethodGet, "/questions/"+id)

			require.Equal(t, http.StatusBadRequest, w.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
			assert.Equal(t, float64(400), body["error"])
			assert.Equal(t, "bad request", body["message"])
		})
	}
}

func TestRateLimiter_Limit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	limiter := NewRateLimiter(client)
	router := gin.New()
	router.POST("/quizzes", limiter.Limit(RateLimitConfig{MaxRequests: 2, Window: time.Minute, KeyPrefix: "rl:test"}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// Act: два запроса укладываются в лимит
	for i := 0; i < 2; i++ {
		w := perform(router, http.MethodPost, "/quizzes")
		require.Equal(t, http.StatusOK, w.Code, "Запрос %d должен пройти", i+1)
	}
	w := perform(router, http.MethodPost, "/quizzes")

	// Assert: третий отклонён
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// После окна счётчик сбрасывается
	mr.FastForward(time.Minute + time.Second)
	w = perform(router, http.MethodPost, "/quizzes")
	assert.Equal(t, http.StatusOK, w.Code, "После истечения окна запрос должен пройти")
}

func TestRateLimiter_FailOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	router := gin.New()
	router.POST("/quizzes", NewRateLimiter(client).Limit(DefaultWriteRateLimitConfig()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := perform(router, http.MethodPost, "/quizzes")

	assert.Equal(t, http.StatusOK, w.Code, "Недоступный Redis не должен блокировать запросы")
}

func TestMetrics(t *testing.T) {
	m := metrics.NewMetrics(prometheus.NewRegistry(), "test")
	router := gin.New()
	router.Use(Metrics(m))
	router.GET("/questions/:id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	perform(router, http.MethodGet, "/questions/1")
	perform(router, http.MethodGet, "/questions/2")
	perform(router, http.MethodGet, "/nowhere")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestCounter.WithLabelValues("GET", "/questions/:id", "200")),
		"Запросы группируются по шаблону маршрута")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestCounter.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.RequestsInFlight))
}
