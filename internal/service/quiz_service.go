package service

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/trivia-quiz/internal/domain/entity"
	"github.com/yourusername/trivia-quiz/internal/domain/repository"
	"github.com/yourusername/trivia-quiz/internal/pkg/metrics"
	"github.com/yourusername/trivia-quiz/internal/service/quizengine"
)

// QuizService выдаёт вопросы викторины без повторов.
// Поддерживает два режима: клиент сам передаёт уже заданные вопросы
// (NextQuestion) или сервер хранит их в сессии (StartSession/NextInSession).
type QuizService struct {
	questionRepo repository.QuestionRepository
	categoryRepo repository.CategoryRepository
	sessionRepo  repository.SessionRepository
	engine       *quizengine.Engine
	metrics      *metrics.Metrics
}

// NewQuizService создает новый сервис викторин; m может быть nil
func NewQuizService(
	questionRepo repository.QuestionRepository,
	categoryRepo repository.CategoryRepository,
	sessionRepo repository.SessionRepository,
	engine *quizengine.Engine,
	m *metrics.Metrics,
) *QuizService {
	if engine == nil {
		engine = quizengine.New()
	}
	return &QuizService{
		questionRepo: questionRepo,
		categoryRepo: categoryRepo,
		sessionRepo:  sessionRepo,
		engine:       engine,
		metrics:      m,
	}
}

// NextQuestionResult: следующий вопрос или nil, если викторина исчерпана
type NextQuestionResult struct {
	Question *entity.FormattedQuestion
}

// Exhausted сообщает, что незаданных вопросов не осталось
func (r *NextQuestionResult) Exhausted() bool {
	return r.Question == nil
}

// pool возвращает кандидатов для фильтра.
// Неизвестная категория даёт ErrNotFound до вычисления кандидатов.
func (s *QuizService) pool(filter entity.CategoryFilter) ([]entity.Question, error) {
	if filter.IsAll() {
		questions, err := s.questionRepo.ListAll()
		if err != nil {
			return nil, fmt.Errorf("failed to list questions: %w", err)
		}
		return questions, nil
	}

	if _, err := s.categoryRepo.GetByID(filter.CategoryID); err != nil {
		return nil, err
	}
	questions, err := s.questionRepo.FindByCategory(filter.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions of category %d: %w", filter.CategoryID, err)
	}
	return questions, nil
}

// NextQuestion выбирает следующий вопрос, которого нет в askedIDs
func (s *QuizService) NextQuestion(filter entity.CategoryFilter, askedIDs []uint) (*NextQuestionResult, error) {
	pool, err := s.pool(filter)
	if err != nil {
		return nil, err
	}

	question, exhausted := s.engine.Next(pool, askedIDs)
	s.metrics.ObserveQuizDraw(filter.String(), exhausted)
	if exhausted {
		return &NextQuestionResult{}, nil
	}

	formatted := question.Format()
	return &NextQuestionResult{Question: &formatted}, nil
}

// StartSession создаёт серверную сессию для фильтра; категория проверяется сразу
func (s *QuizService) StartSession(filter entity.CategoryFilter) (*entity.QuizSession, error) {
	if !filter.IsAll() {
		if _, err := s.categoryRepo.GetByID(filter.CategoryID); err != nil {
			return nil, err
		}
	}

	session := &entity.QuizSession{
		ID:        uuid.NewString(),
		Category:  filter,
		AskedIDs:  []uint{},
		CreatedAt: time.Now().UTC(),
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, fmt.Errorf("failed to create quiz session: %w", err)
	}
	s.metrics.ObserveSessionStarted()
	log.Printf("[QuizService] Сессия %s создана (категория: %s)", session.ID, filter)
	return session, nil
}

// NextInSession выбирает вопрос по множеству, сохранённому в сессии, и добавляет его туда.
// Несуществующая или истекшая сессия даёт ErrNotFound.
// Если выбранный вопрос уже записал параллельный запрос, выбор повторяется
// по обновлённой сессии; множество заданных вопросов при этом только растёт.
func (s *QuizService) NextInSession(sessionID string) (*NextQuestionResult, error) {
	for {
		session, err := s.sessionRepo.Get(sessionID)
		if err != nil {
			return nil, err
		}

		pool, err := s.pool(session.Category)
		if err != nil {
			return nil, err
		}
		question, exhausted := s.engine.Next(pool, session.AskedIDs)
		if exhausted {
			s.metrics.ObserveQuizDraw(session.Category.String(), true)
			return &NextQuestionResult{}, nil
		}

		added, err := s.sessionRepo.AppendAsked(sessionID, question.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to record question #%d in session %s: %w", question.ID, sessionID, err)
		}
		if !added {
			log.Printf("[QuizService] Вопрос #%d уже выдан в сессии %s, выбираем заново", question.ID, sessionID)
			continue
		}

		s.metrics.ObserveQuizDraw(session.Category.String(), false)
		formatted := question.Format()
		return &NextQuestionResult{Question: &formatted}, nil
	}
}

// GetSession возвращает сессию по ID
func (s *QuizService) GetSession(sessionID string) (*entity.QuizSession, error) {
	return s.sessionRepo.Get(sessionID)
}

// EndSession удаляет сессию
func (s *QuizService) EndSession(sessionID string) error {
	if err := s.sessionRepo.Delete(sessionID); err != nil {
		return fmt.Errorf("failed to delete quiz session %s: %w", sessionID, err)
	}
	return nil
}
