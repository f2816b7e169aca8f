package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mentorportal/mentor-portal-api/config"
	"github.com/mentorportal/mentor-portal-api/internal/cache"
	"github.com/mentorportal/mentor-portal-api/internal/handlers"
	"github.com/mentorportal/mentor-portal-api/internal/middleware"
	"github.com/mentorportal/mentor-portal-api/internal/repository"
	"github.com/mentorportal/mentor-portal-api/internal/services"
	"github.com/mentorportal/mentor-portal-api/pkg/airtable"
	"github.com/mentorportal/mentor-portal-api/pkg/logger"
	"github.com/mentorportal/mentor-portal-api/pkg/mailer"
	"github.com/mentorportal/mentor-portal-api/pkg/metrics"
	"github.com/mentorportal/mentor-portal-api/pkg/profiling"
	"github.com/mentorportal/mentor-portal-api/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Mentor Portal API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceVersion,
		cfg.Server.AppEnv,
		cfg.Observability.ExporterEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Continuous profiling (optional)
	if cfg.Profiling.Enabled {
		stopProfiler, err := profiling.InitProfiler(profiling.Config{
			Enabled:               cfg.Profiling.Enabled,
			Endpoint:              cfg.Profiling.Endpoint,
			AppName:               cfg.Profiling.AppName,
			SampleTypes:           cfg.Profiling.SampleTypes,
			UploadIntervalSeconds: cfg.Profiling.UploadIntervalSeconds,
		}, cfg.Observability.ServiceName, cfg.Observability.ServiceVersion, cfg.Server.AppEnv)
		if err != nil {
			logger.Error("Failed to initialize profiler", zap.Error(err))
		} else {
			defer stopProfiler()
		}
	}

	// Start infrastructure metrics collection
	metrics.RecordInfrastructureMetrics()

	// Airtable client
	airtableClient, err := airtable.NewClient(
		cfg.Airtable.APIKey,
		cfg.Airtable.BaseID,
		airtable.TableNames{
			Mentors:   cfg.Airtable.MentorsTable,
			Students:  cfg.Airtable.StudentsTable,
			Deadlines: cfg.Airtable.DeadlinesTable,
		},
	)
	if err != nil {
		logger.Fatal("Failed to initialize Airtable client", zap.Error(err))
	}

	// One shared lookup cache so a refresh clears everything at once
	lookupCache := cache.NewLookupCache(cfg.Cache.LookupTTLSeconds)

	// Repositories
	directoryRepo := repository.NewDirectoryRepository(airtableClient, lookupCache)
	deadlineRepo := repository.NewDeadlineRepository(airtableClient, lookupCache)

	// Mailer: without an API key the login URL is logged instead of mailed
	var sender mailer.Sender = mailer.New(cfg.Email.ResendAPIKey, cfg.Email.FromAddress)

	// Services
	authService := services.NewAuthService(directoryRepo, cfg, sender)
	dashboardService := services.NewDashboardService(directoryRepo, deadlineRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	healthHandler := handlers.NewHealthHandler(func() bool {
		return airtableClient.BreakerState() == "open"
	})

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true, // Required for session cookies
		MaxAge:           12 * time.Hour,
	}))

	// Rate limiters: login endpoints get a tight budget so magic-link mail
	// cannot be farmed
	generalRateLimiter := middleware.NewRateLimiter(50, 100)
	authRateLimiter := middleware.NewRateLimiter(0.0333, 3) // 2 req/min, burst of 3

	tokenManager := authService.GetTokenManager()
	sessionRequired := middleware.SessionMiddleware(tokenManager, cfg.Session.CookieDomain, cfg.Session.CookieSecure)

	// Operational endpoints
	api := router.Group("/api")
	api.GET("/healthcheck", generalRateLimiter.Middleware(), healthHandler.Healthcheck)
	api.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	// Magic-link callback lives outside /api: it is the URL mentors click in
	// their mail client
	router.GET("/auth/callback", authRateLimiter.Middleware(), authHandler.Callback)

	// Authentication routes (public)
	auth := router.Group("/api/v1/auth")
	auth.POST("/request-login", authRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(4*1024), authHandler.RequestLogin)
	auth.POST("/verify", authRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(4*1024), authHandler.VerifyLogin)
	auth.POST("/preview", authRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(4*1024), authHandler.PreviewLogin)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/session", sessionRequired, authHandler.GetSession)

	// Dashboard routes (protected)
	v1 := router.Group("/api/v1")
	v1.Use(generalRateLimiter.Middleware(), sessionRequired)
	v1.GET("/students", dashboardHandler.GetStudents)
	v1.GET("/students/:name/deadlines", dashboardHandler.GetStudentDeadlines)
	v1.GET("/students/:name/submissions", dashboardHandler.GetStudentSubmissions)
	v1.POST("/refresh", dashboardHandler.Refresh)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
