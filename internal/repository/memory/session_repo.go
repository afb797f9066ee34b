package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/yourusername/trivia-quiz/internal/domain/entity"
	apperrors "github.com/yourusername/trivia-quiz/internal/pkg/errors"
)

type sessionEntry struct {
	session   entity.QuizSession
	expiresAt time.Time
}

// SessionRepo хранит сессии викторины в памяти процесса, реализует repository.SessionRepository.
// Подходит для одного инстанса; для нескольких инстансов используется redis.SessionRepo.
type SessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionRepo создает хранилище сессий; ttl <= 0 означает бессрочное хранение
func NewSessionRepo(ttl time.Duration) *SessionRepo {
	return &SessionRepo{
		sessions: make(map[string]*sessionEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (r *SessionRepo) deadline() time.Time {
	if r.ttl <= 0 {
		return time.Time{}
	}
	return r.now().Add(r.ttl)
}

// lookup возвращает живую запись; истекшие записи удаляются. Вызывается под mu.
func (r *SessionRepo) lookup(id string) (*sessionEntry, error) {
	e, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("quiz session %s: %w", id, apperrors.ErrNotFound)
	}
	if !e.expiresAt.IsZero() && !r.now().Before(e.expiresAt) {
		delete(r.sessions, id)
		return nil, fmt.Errorf("quiz session %s expired: %w", id, apperrors.ErrNotFound)
	}
	return e, nil
}

// Create сохраняет новую сессию
func (r *SessionRepo) Create(session *entity.QuizSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *session
	stored.AskedIDs = append([]uint(nil), session.AskedIDs...)
	r.sessions[session.ID] = &sessionEntry{session: stored, expiresAt: r.deadline()}
	return nil
}

// Get возвращает копию сессии
func (r *SessionRepo) Get(id string) (*entity.QuizSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	s := e.session
	s.AskedIDs = append([]uint(nil), e.session.AskedIDs...)
	return &s, nil
}

// AppendAsked добавляет ID вопроса в сессию и продлевает её
func (r *SessionRepo) AppendAsked(id string, questionID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.lookup(id)
	if err != nil {
		return false, err
	}
	e.expiresAt = r.deadline()
	if e.session.HasAsked(questionID) {
		return false, nil
	}
	e.session.AskedIDs = append(e.session.AskedIDs, questionID)
	return true, nil
}

// Delete удаляет сессию; удаление несуществующей сессии не ошибка
func (r *SessionRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}
