package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"phantoms-store/config"
	"phantoms-store/helper"
	"phantoms-store/logger"
	"phantoms-store/middleware"
	"phantoms-store/repositories"
	"phantoms-store/routes"
	"phantoms-store/seeder"
	"phantoms-store/services"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.LoadConfig()
	logger.Initialize(cfg.Env)
	defer logger.Sync()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.Auth.UsesDefaultSecret() {
		logger.Log.Warn("JWT_SECRET is not set, using the development default")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := config.InitDB(cfg.Database)
	if err != nil {
		logger.Log.Fatal("database init failed", zap.Error(err))
	}
	if err := seeder.SeedSuperAdmin(ctx, db, cfg.Auth.SuperAdminEmail, cfg.Auth.SuperAdminPassword); err != nil {
		logger.Log.Fatal("seed super admin failed", zap.Error(err))
	}
	if err := seeder.SyncProductSequences(ctx, db); err != nil {
		logger.Log.Fatal("sync product sequences failed", zap.Error(err))
	}

	redisClient, err := config.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		logger.Log.Warn("redis unavailable, product cache disabled", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	var presigner *s3.PresignClient
	if cfg.Storage.Enabled() {
		awsCfg, err := config.LoadAWSConfig(ctx, cfg.Storage.Region)
		if err != nil {
			logger.Log.Warn("aws config unavailable, uploads disabled", zap.Error(err))
		} else {
			presigner = s3.NewPresignClient(s3.NewFromConfig(awsCfg))
		}
	}

	var notifier services.Notifier = services.NoopNotifier{}
	if cfg.SMTP.Enabled() {
		notifier = services.NewEmailNotifier(services.EmailNotifierConfig{
			Host:        cfg.SMTP.Host,
			Port:        cfg.SMTP.Port,
			User:        cfg.SMTP.User,
			Password:    cfg.SMTP.Password,
			SenderName:  cfg.SMTP.SenderName,
			NotifyEmail: cfg.SMTP.NotifyEmail,
		})
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	productRepo := repositories.NewProductRepository(db)
	youtubeRepo := repositories.NewYoutubeResourceRepository(db)
	contactRepo := repositories.NewContactMessageRepository(db)

	// Initialize services
	h := helper.NewHTTPHelper()
	productCache := services.NewProductCache(redisClient)
	authService := services.NewAuthService(userRepo, sessionRepo, services.AuthOptions{
		JWTSecret:       cfg.Auth.JWTSecret,
		SessionTTL:      cfg.Auth.SessionTTL,
		SuperAdminEmail: cfg.Auth.SuperAdminEmail,
	})
	productService := services.NewProductService(productRepo, productCache)
	contactService := services.NewContactService(contactRepo, notifier)

	services.StartSessionCleanup(ctx, sessionRepo, time.Hour)

	router := routes.SetupRouter(routes.Dependencies{
		Helper:         h,
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimiter:    middleware.NewRateLimiter(ctx, rate.Limit(float64(cfg.RateLimitPerMinute)/60), cfg.RateLimitBurst, 10*time.Minute),
		AuthService:    authService,
		UserService:    services.NewUserService(userRepo, productCache),
		ProductService: productService,
		ImportService:  services.NewImportService(productService, h.Validate),
		YoutubeService: services.NewYoutubeResourceService(youtubeRepo),
		ContactService: contactService,
		PaymentService: services.NewPaymentService(productRepo),
		ChatService: services.NewChatService(services.ChatOptions{
			APIKey:  cfg.Groq.APIKey,
			Model:   cfg.Groq.Model,
			BaseURL: cfg.Groq.BaseURL,
			Timeout: cfg.Groq.Timeout,
		}),
		UploadService: services.NewUploadService(presigner, services.UploadOptions{
			Bucket:        cfg.Storage.Bucket,
			PublicBaseURL: cfg.Storage.PublicBaseURL,
			Expiry:        cfg.Storage.PresignExpiry,
		}),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Log.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("graceful shutdown failed", zap.Error(err))
	}
	contactService.Wait()

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
