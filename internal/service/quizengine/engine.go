// Package quizengine выбирает следующий вопрос викторины без повторов.
//
// Движок не хранит состояние сессии: множество уже заданных вопросов
// передаётся при каждом вызове. Выбор идёт по разности множеств
// pool - asked с равномерным случайным выбором из остатка, поэтому
// время работы ограничено размером пула при любом соотношении заданных
// и оставшихся вопросов.
package quizengine

import (
	"math/rand/v2"
	"sync"

	"github.com/yourusername/trivia-quiz/internal/domain/entity"
)

// Engine выбирает следующий незаданный вопрос
type Engine struct {
	mu   sync.Mutex
	intn func(n int) int
}

// Option настраивает Engine
type Option func(*Engine)

// WithRand задаёт источник случайности (для детерминированных тестов).
// *rand.Rand не потокобезопасен, поэтому доступ к нему сериализуется.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		e.intn = func(n int) int {
			e.mu.Lock()
			defer e.mu.Unlock()
			return r.IntN(n)
		}
	}
}

// New создаёт движок; по умолчанию используется глобальный генератор math/rand/v2
func New(opts ...Option) *Engine {
	e := &Engine{intn: rand.IntN}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Candidates возвращает вопросы пула, которых нет в asked, в исходном порядке.
// Повторы в asked и ID вне пула игнорируются.
func Candidates(pool []entity.Question, asked []uint) []entity.Question {
	if len(asked) == 0 {
		return pool
	}
	seen := make(map[uint]struct{}, len(asked))
	for _, id := range asked {
		seen[id] = struct{}{}
	}

	candidates := make([]entity.Question, 0, len(pool))
	for _, q := range pool {
		if _, ok := seen[q.ID]; !ok {
			candidates = append(candidates, q)
		}
	}
	return candidates
}

// Next возвращает случайный вопрос из pool - asked.
// Если незаданных вопросов нет, возвращает (nil, true): сессия исчерпана.
// Повторный вызов после исчерпания снова возвращает (nil, true).
func (e *Engine) Next(pool []entity.Question, asked []uint) (*entity.Question, bool) {
	candidates := Candidates(pool, asked)
	if len(candidates) == 0 {
		return nil, true
	}

	picked := candidates[e.intn(len(candidates))]
	return &picked, false
}
