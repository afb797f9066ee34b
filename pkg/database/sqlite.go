package database

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/yourusername/trivia-quiz/internal/domain/entity"
)

// SQLiteDriverName: драйвер database/sql с Unicode-версией LOWER.
// Встроенная LOWER в SQLite меняет регистр только у ASCII.
const SQLiteDriverName = "sqlite3_unicode"

func init() {
	sql.Register(SQLiteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("lower", strings.ToLower, true)
		},
	})
}

// SQLiteDialector возвращает диалектор GORM поверх SQLiteDriverName
func SQLiteDialector(dsn string) gorm.Dialector {
	return sqlite.New(sqlite.Config{DriverName: SQLiteDriverName, DSN: dsn})
}

// NewSQLiteDB открывает базу SQLite по пути path (":memory:" для базы в памяти).
// Схема создаётся через AutoMigrate, категории по умолчанию досеиваются.
func NewSQLiteDB(path string, logLevel string) (*gorm.DB, error) {
	db, err := gorm.Open(SQLiteDialector(path+"?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(ParseLogLevel(logLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	// SQLite не поддерживает параллельную запись; для ":memory:" одно соединение означает одну базу
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&entity.Category{}, &entity.Question{}); err != nil {
		return nil, fmt.Errorf("failed to migrate sqlite schema: %w", err)
	}
	if err := SeedCategories(db); err != nil {
		return nil, err
	}
	return db, nil
}

// SeedCategories добавляет категории по умолчанию, существующие не трогает
func SeedCategories(db *gorm.DB) error {
	categories := entity.DefaultCategories()
	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&categories)
	if result.Error != nil {
		return fmt.Errorf("failed to seed categories: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		log.Printf("[Database] Добавлено категорий по умолчанию: %d", result.RowsAffected)
	}
	return nil
}
