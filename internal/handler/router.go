package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/trivia-quiz/internal/middleware"
)

// Routes собирает обработчики для регистрации маршрутов
type Routes struct {
	Categories *CategoryHandler
	Questions  *QuestionHandler
	Quiz       *QuizHandler
	Health     *HealthHandler

	// WriteMiddleware применяется к изменяющим маршрутам (например, rate limiter)
	WriteMiddleware []gin.HandlerFunc
	// Metrics отдаётся на GET /metrics, если задан
	Metrics http.Handler
}

// RegisterRoutes регистрирует маршруты API под /api и те же маршруты без префикса
func RegisterRoutes(router *gin.Engine, r Routes) {
	router.HandleMethodNotAllowed = true
	router.NoRoute(NoRoute)
	router.NoMethod(NoMethod)

	if r.Health != nil {
		router.GET("/healthz", r.Health.Health)
	}
	if r.Metrics != nil {
		router.GET("/metrics", gin.WrapH(r.Metrics))
	}

	registerAPI(router.Group("/api"), r)
	registerAPI(&router.RouterGroup, r)
}

func registerAPI(api *gin.RouterGroup, r Routes) {
	write := func(handlers ...gin.HandlerFunc) []gin.HandlerFunc {
		chain := make([]gin.HandlerFunc, 0, len(r.WriteMiddleware)+len(handlers))
		chain = append(chain, r.WriteMiddleware...)
		return append(chain, handlers...)
	}

	// Категории
	api.GET("/categories", r.Categories.GetCategories)
	api.GET("/categories/:id/questions",
		middleware.ExtractUintParam("id", "categoryID"),
		r.Questions.GetQuestionsByCategory)

	// Вопросы
	questions := api.Group("/questions")
	{
		questions.GET("", r.Questions.GetQuestions)
		questions.GET("/export", r.Questions.ExportQuestions)
		questions.POST("", write(r.Questions.CreateOrSearchQuestions)...)
		questions.POST("/search", r.Questions.SearchQuestions)
		questions.DELETE("/:id", write(middleware.ExtractUintParam("id", "questionID"), r.Questions.DeleteQuestion)...)
	}

	// Викторина
	quizzes := api.Group("/quizzes")
	{
		quizzes.POST("", write(r.Quiz.NextQuestion)...)
		quizzes.POST("/sessions", write(r.Quiz.StartSession)...)
		quizzes.POST("/sessions/:id/next", write(r.Quiz.NextInSession)...)
		quizzes.DELETE("/sessions/:id", r.Quiz.EndSession)
	}
}
