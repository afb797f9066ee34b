package app

import (
	"context"
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/yourusername/trivia-quiz/internal/config"
	"github.com/yourusername/trivia-quiz/internal/domain/repository"
	"github.com/yourusername/trivia-quiz/internal/handler"
	"github.com/yourusername/trivia-quiz/internal/repository/cached"
	"github.com/yourusername/trivia-quiz/internal/repository/memory"
	pgRepo "github.com/yourusername/trivia-quiz/internal/repository/postgres"
	redisRepo "github.com/yourusername/trivia-quiz/internal/repository/redis"
	"github.com/yourusername/trivia-quiz/pkg/database"
)

// Storage собирает репозитории, выбранные конфигурацией
type Storage struct {
	Questions  repository.QuestionRepository
	Categories repository.CategoryRepository
	Sessions   repository.SessionRepository

	// Redis равен nil, если Redis выключен
	Redis redis.UniversalClient

	db *gorm.DB
}

// OpenStorage открывает базу данных и Redis согласно cfg.
// Postgres мигрируется golang-migrate, SQLite: AutoMigrate с посевом категорий.
func OpenStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	s := &Storage{}

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString(), cfg.Database.LogLevel)
		if err != nil {
			return nil, err
		}
		if err := database.MigrateDB(db, cfg.Database.MigrationsPath); err != nil {
			return nil, err
		}
		s.db = db
	case config.DriverSQLite:
		db, err := database.NewSQLiteDB(cfg.Database.SQLitePath, cfg.Database.LogLevel)
		if err != nil {
			return nil, err
		}
		s.db = db
	case config.DriverMemory:
		log.Println("[Storage] Используется in-memory хранилище, данные не сохраняются между перезапусками")
		s.Questions = memory.NewQuestionRepo()
		s.Categories = memory.NewDefaultCategoryRepo()
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	if s.db != nil {
		s.Questions = pgRepo.NewQuestionRepo(s.db)
		s.Categories = pgRepo.NewCategoryRepo(s.db)
	}

	if !cfg.Redis.Enabled {
		s.Sessions = memory.NewSessionRepo(cfg.Quiz.SessionTTL)
		return s, nil
	}

	client, err := database.NewUniversalRedisClient(ctx, cfg.Redis)
	if err != nil {
		s.Close()
		return nil, err
	}
	log.Println("Successfully connected to Redis")
	s.Redis = client

	cacheRepo, err := redisRepo.NewCacheRepo(client, "trivia:")
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to initialize CacheRepo: %w", err)
	}
	s.Categories = cached.NewCategoryRepo(s.Categories, cacheRepo, cfg.Quiz.CategoryCacheTTL)

	sessions, err := redisRepo.NewSessionRepo(client, cfg.Quiz.SessionTTL)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to initialize SessionRepo: %w", err)
	}
	s.Sessions = sessions
	return s, nil
}

// HealthChecks возвращает проверки доступности открытых зависимостей
func (s *Storage) HealthChecks() map[string]handler.HealthCheck {
	checks := map[string]handler.HealthCheck{}
	if s.db != nil {
		checks["database"] = func(ctx context.Context) error {
			sqlDB, err := database.GetSQLDB(s.db)
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}
	if s.Redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return s.Redis.Ping(ctx).Err()
		}
	}
	return checks
}

// Close закрывает соединения
func (s *Storage) Close() {
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			log.Printf("[Storage] Ошибка закрытия Redis: %v", err)
		}
	}
	if s.db != nil {
		if sqlDB, err := database.GetSQLDB(s.db); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Printf("[Storage] Ошибка закрытия базы данных: %v", err)
			}
		}
	}
}
