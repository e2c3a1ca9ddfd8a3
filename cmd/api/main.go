package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/controle-gastos/gastos-backend/internal/config"
	"github.com/controle-gastos/gastos-backend/internal/handler"
	"github.com/controle-gastos/gastos-backend/internal/middleware"
	"github.com/controle-gastos/gastos-backend/internal/repository/postgres"
	"github.com/controle-gastos/gastos-backend/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const version = "1.0.0"

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Connect to database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	// Wait for the database with bounded attempts, then fail fast
	if err := waitForDB(pool, cfg.DBWaitAttempts, cfg.DBWaitDelay); err != nil {
		log.Fatal().Err(err).Msg("Database not available")
	}
	log.Info().Msg("Connected to database")

	// Apply schema migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}
	log.Info().Msg("Migrations applied")

	// Initialize repositories
	categoryRepo := postgres.NewCategoryRepository(pool)
	entryRepo := postgres.NewEntryRepository(pool)
	budgetRepo := postgres.NewBudgetRepository(pool)

	// Initialize services
	categoryService := service.NewCategoryService(categoryRepo)
	entryService := service.NewEntryService(entryRepo, categoryRepo)
	budgetService := service.NewBudgetService(budgetRepo, categoryRepo)
	reportService := service.NewReportService(entryRepo, budgetRepo)

	// Initialize handlers
	categoryHandler := handler.NewCategoryHandler(categoryService)
	entryHandler := handler.NewEntryHandler(entryService)
	budgetHandler := handler.NewBudgetHandler(budgetService)
	reportHandler := handler.NewReportHandler(reportService)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		MaxAge:       86400,
	}))

	// Security headers middleware
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Per-client rate limiting
	rateLimiter := middleware.NewRateLimiter()
	defer rateLimiter.Stop()
	e.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"message": "Sistema de Controle de Gastos funcionando!",
		})
	})

	// API directory endpoint
	e.GET("/api", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"app":     "Sistema de Controle de Gastos",
			"version": version,
			"endpoints": map[string]string{
				"gastos":     "/api/gastos",
				"categorias": "/api/categorias",
				"relatorios": "/api/relatorios",
				"orcamentos": "/api/orcamentos",
				"health":     "/health",
			},
		})
	})

	// Register API routes
	handler.RegisterRoutes(e, categoryHandler, entryHandler, reportHandler, budgetHandler)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// waitForDB pings the database until it answers, up to attempts tries
// spaced by delay
func waitForDB(pool *pgxpool.Pool, attempts int, delay time.Duration) error {
	var err error
	for i := 1; i <= attempts; i++ {
		if err = pool.Ping(context.Background()); err == nil {
			return nil
		}
		log.Warn().Err(err).Int("attempt", i).Int("max_attempts", attempts).Msg("Waiting for database")
		time.Sleep(delay)
	}
	return err
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
