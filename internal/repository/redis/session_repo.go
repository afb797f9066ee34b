package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/yourusername/trivia-quiz/internal/domain/entity"
	apperrors "github.com/yourusername/trivia-quiz/internal/pkg/errors"
)

const (
	fieldCategory  = "category"
	fieldCreatedAt = "created_at"
)

// SessionRepo хранит сессии викторины в Redis, реализует repository.SessionRepository.
// Сессия: хеш quiz:session:<id> (фильтр, время создания) и множество
// quiz:session:<id>:asked с ID заданных вопросов. TTL обоих ключей
// продлевается при каждом AppendAsked.
type SessionRepo struct {
	client redis.UniversalClient
	ctx    context.Context
	ttl    time.Duration
}

// NewSessionRepo создает репозиторий сессий
func NewSessionRepo(client redis.UniversalClient, ttl time.Duration) (*SessionRepo, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil for SessionRepo")
	}
	return &SessionRepo{client: client, ctx: context.Background(), ttl: ttl}, nil
}

func sessionKey(id string) string { return "quiz:session:" + id }
func askedKey(id string) string   { return "quiz:session:" + id + ":asked" }

// Create сохраняет новую сессию
func (r *SessionRepo) Create(session *entity.QuizSession) error {
	hashKey, setKey := sessionKey(session.ID), askedKey(session.ID)

	_, err := r.client.TxPipelined(r.ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(r.ctx, hashKey,
			fieldCategory, session.Category.String(),
			fieldCreatedAt, session.CreatedAt.UTC().Format(time.RFC3339Nano),
		)
		if len(session.AskedIDs) > 0 {
			members := make([]interface{}, len(session.AskedIDs))
			for i, id := range session.AskedIDs {
				members[i] = id
			}
			pipe.SAdd(r.ctx, setKey, members...)
		}
		if r.ttl > 0 {
			pipe.Expire(r.ctx, hashKey, r.ttl)
			pipe.Expire(r.ctx, setKey, r.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("create quiz session %s: %w", session.ID, err)
	}
	return nil
}

// Get читает сессию; отсутствие хеша означает несуществующую или истекшую сессию
func (r *SessionRepo) Get(id string) (*entity.QuizSession, error) {
	fields, err := r.client.HGetAll(r.ctx, sessionKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("get quiz session %s: %w", id, err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("quiz session %s: %w", id, apperrors.ErrNotFound)
	}

	filter, err := entity.ParseCategoryFilter(fields[fieldCategory])
	if err != nil {
		return nil, fmt.Errorf("quiz session %s has corrupt category: %w", id, err)
	}
	createdAt, _ := time.Parse(time.RFC3339Nano, fields[fieldCreatedAt])

	members, err := r.client.SMembers(r.ctx, askedKey(id)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("get asked questions of session %s: %w", id, err)
	}
	asked := make([]uint, 0, len(members))
	for _, m := range members {
		v, err := strconv.ParseUint(m, 10, 32)
		if err != nil {
			continue
		}
		asked = append(asked, uint(v))
	}
	// SMEMBERS не гарантирует порядок
	sort.Slice(asked, func(i, j int) bool { return asked[i] < asked[j] })

	return &entity.QuizSession{
		ID:        id,
		Category:  filter,
		AskedIDs:  asked,
		CreatedAt: createdAt,
	}, nil
}

// AppendAsked добавляет ID вопроса и продлевает TTL сессии
func (r *SessionRepo) AppendAsked(id string, questionID uint) (bool, error) {
	hashKey, setKey := sessionKey(id), askedKey(id)

	exists, err := r.client.Exists(r.ctx, hashKey).Result()
	if err != nil {
		return false, fmt.Errorf("check quiz session %s: %w", id, err)
	}
	if exists == 0 {
		return false, fmt.Errorf("quiz session %s: %w", id, apperrors.ErrNotFound)
	}

	// SADD вернёт 0, если ID уже добавил параллельный запрос
	var added *redis.IntCmd
	_, err = r.client.TxPipelined(r.ctx, func(pipe redis.Pipeliner) error {
		added = pipe.SAdd(r.ctx, setKey, questionID)
		if r.ttl > 0 {
			pipe.Expire(r.ctx, hashKey, r.ttl)
			pipe.Expire(r.ctx, setKey, r.ttl)
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("append question %d to session %s: %w", questionID, id, err)
	}
	return added.Val() == 1, nil
}

// Delete удаляет сессию
func (r *SessionRepo) Delete(id string) error {
	return r.client.Del(r.ctx, sessionKey(id), askedKey(id)).Err()
}
