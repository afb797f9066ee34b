package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/trivia-quiz/internal/handler/dto"
	"github.com/yourusername/trivia-quiz/internal/service"
)

// QuizHandler обрабатывает запросы викторины
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler создает новый обработчик викторин
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// NextQuestion возвращает случайный вопрос, которого нет в previous_questions
// POST /api/quizzes
func (h *QuizHandler) NextQuestion(c *gin.Context) {
	var req dto.QuizRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	result, err := h.quizService.NextQuestion(req.QuizCategory, req.PreviousQuestions)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.QuizQuestionResponse{Success: true, Question: result.Question})
}

// StartSession создаёт серверную сессию викторины
// POST /api/quizzes/sessions
func (h *QuizHandler) StartSession(c *gin.Context) {
	var req dto.StartSessionRequest
	// Пустое тело означает викторину по всем категориям
	if c.Request.ContentLength != 0 {
		if err := bindJSON(c, &req); err != nil {
			respondError(c, err)
			return
		}
	}

	session, err := h.quizService.StartSession(req.QuizCategory)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.SessionResponse{Success: true, Session: session})
}

// NextInSession выдаёт следующий вопрос сессии
// POST /api/quizzes/sessions/:id/next
func (h *QuizHandler) NextInSession(c *gin.Context) {
	sessionID := c.Param("id")

	result, err := h.quizService.NextInSession(sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.QuizQuestionResponse{Success: true, Question: result.Question, SessionID: sessionID})
}

// EndSession завершает сессию викторины
// DELETE /api/quizzes/sessions/:id
func (h *QuizHandler) EndSession(c *gin.Context) {
	if err := h.quizService.EndSession(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
