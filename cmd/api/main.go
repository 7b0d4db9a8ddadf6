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
	"github.com/sfsergim/CivicReport/internal/config"
	"github.com/sfsergim/CivicReport/internal/handlers"
	"github.com/sfsergim/CivicReport/internal/logging"
	"github.com/sfsergim/CivicReport/internal/middleware"
	"github.com/sfsergim/CivicReport/internal/objectstore"
	"github.com/sfsergim/CivicReport/internal/observability"
	"github.com/sfsergim/CivicReport/internal/repository"
	"github.com/sfsergim/CivicReport/internal/services"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/sfsergim/CivicReport/docs"
)

// @title           CivicReport API
// @version         1.0
// @description     Citizen incident reporting: phone OTP login, photo uploads to object storage, a public feed of approved reports and an admin moderation queue.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @tag.name auth
// @tag.description Phone and one-time code login

// @tag.name reports
// @tag.description Report submission and the public feed

// @tag.name admin
// @tag.description Moderation review and export

// @tag.name health
// @tag.description Health check operations

func main() {
	// Initialize logger first
	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logging.Logger.Sync()

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}
	cfg := config.AppConfig

	// Initialize observability
	observability.InitTracer("civicreport-api")
	defer observability.ShutdownTracer()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize storage
	if cfg.StorageBackend == repository.BackendMongo {
		if err := config.InitMongoDB(); err != nil {
			logging.Logger.Fatal("failed to initialize MongoDB", zap.Error(err))
		}
		defer config.DisconnectMongoDB()
		config.StartIndexMaintenance(ctx)
	} else {
		logging.Logger.Warn("using in-memory storage; data is lost on restart")
	}

	repo, err := repository.FromConfig(cfg, logging.Logger)
	if err != nil {
		logging.Logger.Fatal("failed to open repository", zap.Error(err))
	}

	config.InitRedis()
	if config.Redis != nil {
		defer config.Redis.Close()
	}

	presigner, err := objectstore.NewS3Presigner(ctx, objectstore.Options{
		ServiceURL:    cfg.S3ServiceURL,
		Region:        cfg.S3Region,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		Bucket:        cfg.S3Bucket,
		PublicURLBase: cfg.S3PublicURLBase,
	})
	if err != nil {
		logging.Logger.Fatal("failed to initialize object store", zap.Error(err))
	}

	if cfg.SeedDevUsers {
		if _, err := services.SeedDevUsers(ctx, repo, logging.Logger); err != nil {
			logging.Logger.Error("failed to seed development users", zap.Error(err))
		}
	}

	// Services
	tokens := services.NewTokenService(cfg.JWTKey, cfg.JWTIssuer, cfg.JWTAudience, cfg.TokenTTL)
	limiter := services.NewOtpRateLimiter(config.Redis, cfg.OtpRateLimit, cfg.OtpRateWindow, logging.Logger)
	authService := services.NewAuthService(repo, tokens, limiter, services.AuthConfig{
		OtpSecret: cfg.OtpSecret,
		OtpTTL:    cfg.OtpTTL,
		ExposeOtp: !cfg.IsProduction(),
	}, logging.Logger)
	reportService := services.NewReportService(repo, presigner, logging.Logger)
	uploadService := services.NewUploadService(presigner, cfg.UploadURLTTL, logging.Logger)

	// The memory store is private to this process, so nobody else could
	// moderate its reports.
	if cfg.StorageBackend == repository.BackendMemory {
		worker := services.NewModerationWorker(repo, services.ModerationConfig{
			Interval:  cfg.ModerationInterval,
			BatchSize: cfg.ModerationBatchSize,
		}, logging.Logger)
		go worker.Run(ctx)
	}

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router with middleware
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestTiming(),
		middleware.RequestLogger(),
		middleware.RequestTracker(),
		middleware.AuditMiddleware(),
		cors.Default(),
	)

	// Metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handlers.RegisterRoutes(router, handlers.Routes{
		Auth:    handlers.NewAuthHandlers(logging.Logger, authService),
		Reports: handlers.NewReportHandlers(logging.Logger, reportService, uploadService),
		Admin:   handlers.NewAdminHandlers(logging.Logger, reportService),
		Health:  handlers.NewHealthHandlers(logging.Logger, repo, config.Redis),
		Tokens:  tokens,
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Create server with timeouts. The CSV export streams, so writes get
	// more room than reads.
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logging.Logger.Info("starting server",
			zap.Int("port", cfg.Port),
			zap.String("environment", cfg.Environment),
			zap.String("storage", cfg.StorageBackend),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Error("failed to start server", zap.Error(err))
			stop()
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()

	// Graceful shutdown
	logging.Logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Logger.Error("server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}

	logging.Logger.Info("server exited gracefully")
}
