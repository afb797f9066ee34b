package handler

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/trivia-quiz/internal/domain/entity"
	"github.com/yourusername/trivia-quiz/internal/handler/dto"
	"github.com/yourusername/trivia-quiz/internal/service"
)

// QuestionHandler обрабатывает запросы, связанные с вопросами
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler создает новый обработчик вопросов
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// GetQuestions возвращает страницу вопросов вместе с категориями
// GET /api/questions?page=N
func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	page, err := parsePage(c)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.questionService.List(page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuestionsResponse(result))
}

// DeleteQuestion удаляет вопрос
// DELETE /api/questions/:id?page=N
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint)

	page, err := parsePage(c)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.questionService.Delete(questionID, page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDeleteResponse(result))
}

// CreateOrSearchQuestions ищет вопросы при непустом searchTerm, иначе создаёт новый
// POST /api/questions
func (h *QuestionHandler) CreateOrSearchQuestions(c *gin.Context) {
	var req dto.QuestionsRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	page, err := parsePage(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if req.IsSearch() {
		h.search(c, req.SearchTerm, page)
		return
	}

	categoryID, err := req.CategoryID()
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.questionService.Create(service.CreateQuestionInput{
		Question:   req.Question,
		Answer:     req.Answer,
		CategoryID: categoryID,
		Difficulty: int(req.Difficulty),
	}, page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCreateResponse(result))
}

// SearchQuestions ищет вопросы по подстроке
// POST /api/questions/search
func (h *QuestionHandler) SearchQuestions(c *gin.Context) {
	var req dto.SearchRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	page, err := parsePage(c)
	if err != nil {
		respondError(c, err)
		return
	}

	h.search(c, req.SearchTerm, page)
}

func (h *QuestionHandler) search(c *gin.Context, term string, page int) {
	result, err := h.questionService.Search(term, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSearchResponse(result))
}

// GetQuestionsByCategory возвращает вопросы категории
// GET /api/categories/:id/questions?page=N
func (h *QuestionHandler) GetQuestionsByCategory(c *gin.Context) {
	categoryID := c.MustGet("categoryID").(uint)

	page, err := parsePage(c)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.questionService.ByCategory(categoryID, page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCategoryQuestionsResponse(result))
}

// ExportQuestions экспортирует все вопросы в CSV или Excel формате
// GET /api/questions/export?format=csv|xlsx
func (h *QuestionHandler) ExportQuestions(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")

	questions, categories, err := h.questionService.Export()
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("questions_%s", time.Now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, questions, categories, filename)
	default:
		h.exportCSV(c, questions, categories, filename)
	}
}

var exportHeaders = []string{"ID", "Вопрос", "Ответ", "Категория", "Сложность"}

// exportCSV экспортирует вопросы в CSV с экранированием спецсимволов
func (h *QuestionHandler) exportCSV(c *gin.Context, questions []entity.Question, categories entity.CategoryMap, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))
	c.Status(http.StatusOK)

	if err := writeCSV(c.Writer, questions, categories); err != nil {
		log.Printf("[QuestionHandler] Ошибка записи CSV: %v", err)
	}
}

// writeCSV пишет BOM, заголовки и строки вопросов; возвращает первую ошибку записи
func writeCSV(w io.Writer, questions []entity.Question, categories entity.CategoryMap) error {
	// BOM для корректного отображения UTF-8 в Excel
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeaders); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}
	for _, q := range questions {
		err := writer.Write([]string{
			strconv.FormatUint(uint64(q.ID), 10),
			sanitizeForExcel(q.Question),
			sanitizeForExcel(q.Answer),
			categoryName(categories, q.CategoryID),
			strconv.Itoa(q.Difficulty),
		})
		if err != nil {
			return fmt.Errorf("write question #%d: %w", q.ID, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// exportXLSX экспортирует вопросы в Excel с использованием StreamWriter
func (h *QuestionHandler) exportXLSX(c *gin.Context, questions []entity.Question, categories entity.CategoryMap, filename string) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Вопросы"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[QuestionHandler] Ошибка создания StreamWriter: %v", err)
		respondError(c, err)
		return
	}

	headers := make([]interface{}, len(exportHeaders))
	for i, name := range exportHeaders {
		headers[i] = name
	}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[QuestionHandler] Ошибка записи заголовков: %v", err)
	}

	for i, q := range questions {
		rowNum := i + 2
		row := []interface{}{q.ID, sanitizeForExcel(q.Question), sanitizeForExcel(q.Answer), categoryName(categories, q.CategoryID), q.Difficulty}
		if err := sw.SetRow(fmt.Sprintf("A%d", rowNum), row); err != nil {
			log.Printf("[QuestionHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[QuestionHandler] Ошибка при Flush: %v", err)
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[QuestionHandler] Ошибка записи Excel в response: %v", err)
	}
}

func categoryName(categories entity.CategoryMap, id uint) string {
	if name, ok := categories[id]; ok {
		return name
	}
	return strconv.FormatUint(uint64(id), 10)
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
