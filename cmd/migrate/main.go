package main

import (
	"database/sql"
	"errors"
	"flag"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"

	"github.com/yourusername/trivia-quiz/internal/config"
)

func main() {
	command := flag.String("cmd", "up", "команда: up, down, force, version")
	version := flag.Int("version", -1, "версия для force")
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "путь к файлу конфигурации")
	flag.Parse()

	if *configPath == "" {
		*configPath = "config/config.yaml"
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Database.Driver != config.DriverPostgres {
		log.Fatalf("Миграции применяются только к postgres, текущий драйвер: %s", cfg.Database.Driver)
	}

	db, err := sql.Open("postgres", cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Не удалось подключиться к базе данных: %v", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatal(err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+cfg.Database.MigrationsPath, "postgres", driver)
	if err != nil {
		log.Fatal(err)
	}

	switch *command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	case "force":
		if *version < 0 {
			log.Fatal("force требует -version N")
		}
		// Снимает dirty-состояние после неудачной миграции
		err = m.Force(*version)
	case "version":
		v, dirty, verr := m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			log.Println("Миграции ещё не применялись")
			return
		}
		if verr != nil {
			log.Fatalf("Не удалось получить версию: %v", verr)
		}
		log.Printf("Текущая версия: %d (dirty: %t)", v, dirty)
		return
	default:
		log.Fatalf("Неизвестная команда %q", *command)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Println("Изменений нет, база данных актуальна.")
		return
	}
	if err != nil {
		log.Fatalf("Команда %s завершилась ошибкой: %v", *command, err)
	}
	log.Printf("Команда %s выполнена успешно.", *command)
}
