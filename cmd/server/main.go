package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ledgerview/internal/config"
	"ledgerview/internal/handlers"
	"ledgerview/internal/ledger"
	appmiddleware "ledgerview/internal/middleware"
	"ledgerview/internal/services"
	"ledgerview/internal/upstream"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// .env is optional; deployments configure through the environment
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := config.Load()

	setupLogger(cfg)

	db, err := ledger.Initialize(cfg)
	if err != nil {
		slog.Error("failed to initialize upload ledger", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	backend := upstream.New(cfg.Upstream)
	metrics := services.NewPrometheusMetrics()

	overviewService := services.NewOverviewService(backend, cfg.Dashboard.BaseCurrency, metrics)
	performanceService := services.NewPerformanceService(backend, metrics)
	activityService := services.NewActivityService(backend)
	ingestService := services.NewIngestService(
		backend,
		ledger.NewUploadRepository(db.DB),
		cfg.Dashboard.BaseCurrency,
		cfg.Dashboard.PreviewRows,
		metrics,
	)

	e := newServer(cfg, db, overviewService, performanceService, activityService, ingestService, backend)

	go func() {
		address := cfg.Server.Host + ":" + cfg.Server.Port
		slog.Info("starting ledgerview gateway",
			"address", address,
			"environment", cfg.Server.Environment,
			"upstream", cfg.Upstream.BaseURL)
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			slog.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}
}

func newServer(
	cfg *config.Config,
	db *ledger.DB,
	overviewService services.OverviewServiceInterface,
	performanceService services.PerformanceServiceInterface,
	activityService services.ActivityServiceInterface,
	ingestService services.IngestServiceInterface,
	backend upstream.API,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = appmiddleware.CustomHTTPErrorHandler
	e.Validator = handlers.NewValidator()

	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(appmiddleware.RequestID())
	e.Use(appmiddleware.PanicRecovery())
	e.Use(appmiddleware.SecurityHeaders())
	e.Use(appmiddleware.RateLimiterWithConfig(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	dashboardHandler := handlers.NewDashboardHandler(overviewService, performanceService, activityService)
	transactionHandler := handlers.NewTransactionHandler(activityService, ingestService)
	uploadHandler := handlers.NewUploadHandler(ingestService, cfg.Dashboard.MaxUploadBytes)
	authHandler := handlers.NewAuthHandler(backend)
	healthHandler := handlers.NewHealthCheckHandler(db.DB)

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/register", authHandler.Register)

	// Everything else forwards the caller's bearer token to the backend
	protected := api.Group("", appmiddleware.RequireBearer())
	protected.GET("/dashboard", dashboardHandler.GetDashboard)
	protected.GET("/investments/performance", dashboardHandler.GetInvestmentPerformance)
	protected.GET("/loyalty/summary", dashboardHandler.GetLoyaltySummary)

	protected.GET("/accounts/:accountId/transactions", transactionHandler.ListTransactions)
	protected.POST("/accounts/:accountId/transactions", transactionHandler.CreateTransaction)
	protected.GET("/accounts/:accountId/spending", transactionHandler.GetMonthlySpending)

	protected.POST("/accounts/:accountId/uploads", uploadHandler.PreviewUpload)
	protected.GET("/uploads", uploadHandler.ListBatches)
	protected.GET("/uploads/:batchId", uploadHandler.GetBatch)
	protected.POST("/uploads/:batchId/submit", uploadHandler.SubmitBatch)

	return e
}

func setupLogger(cfg *config.Config) {
	level := slog.LevelInfo
	if cfg.IsDevelopment() {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	slog.SetDefault(slog.New(handler))
}
