package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yourusername/trivia-quiz/internal/app"
	"github.com/yourusername/trivia-quiz/internal/config"
	"github.com/yourusername/trivia-quiz/internal/handler"
	"github.com/yourusername/trivia-quiz/internal/middleware"
	"github.com/yourusername/trivia-quiz/internal/pkg/metrics"
	"github.com/yourusername/trivia-quiz/internal/service"
	"github.com/yourusername/trivia-quiz/internal/service/quizengine"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}
	gin.SetMode(cfg.Server.GinMode)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storage, err := app.OpenStorage(ctx, cfg)
	if err != nil {
		log.Printf("Failed to open storage: %v", err)
		os.Exit(1)
	}
	defer storage.Close()

	// Метрики в собственном реестре
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(registry, "trivia")

	// Инициализируем сервисы
	categoryService := service.NewCategoryService(storage.Categories)
	questionService := service.NewQuestionService(storage.Questions, storage.Categories, cfg.Quiz.PageSize)
	quizService := service.NewQuizService(storage.Questions, storage.Categories, storage.Sessions, quizengine.New(), appMetrics)

	// Rate limiting требует Redis
	var writeMiddleware []gin.HandlerFunc
	if cfg.RateLimit.Enabled && storage.Redis != nil {
		limiter := middleware.NewRateLimiter(storage.Redis)
		limitCfg := middleware.DefaultWriteRateLimitConfig()
		limitCfg.MaxRequests = cfg.RateLimit.MaxRequests
		limitCfg.Window = cfg.RateLimit.Window
		writeMiddleware = append(writeMiddleware, limiter.Limit(limitCfg))
		log.Printf("Rate limiting включен: %d запросов за %s", limitCfg.MaxRequests, limitCfg.Window)
	}

	router := gin.Default()
	isProduction := gin.Mode() == gin.ReleaseMode
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	router.Use(cors.New(corsConfig(cfg.Server.AllowedOrigins)))
	router.Use(middleware.Metrics(appMetrics))

	handler.RegisterRoutes(router, handler.Routes{
		Categories:      handler.NewCategoryHandler(categoryService),
		Questions:       handler.NewQuestionHandler(questionService),
		Quiz:            handler.NewQuizHandler(quizService),
		Health:          handler.NewHealthHandler(storage.HealthChecks()),
		WriteMiddleware: writeMiddleware,
		Metrics:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
			cancel()
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited properly")
}

// corsConfig разрешает перечисленные источники; "*" или пустой список разрешают любой источник без credentials
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", "X-RateLimit-Remaining"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
