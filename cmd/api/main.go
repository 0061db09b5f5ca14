package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/resumehub/notify-api/internal/config"
	"github.com/resumehub/notify-api/internal/email"
	"github.com/resumehub/notify-api/internal/handler"
	applicationHandler "github.com/resumehub/notify-api/internal/handler/application"
	authHandler "github.com/resumehub/notify-api/internal/handler/auth"
	newsletterHandler "github.com/resumehub/notify-api/internal/handler/newsletter"
	notificationHandler "github.com/resumehub/notify-api/internal/handler/notification"
	settingsHandler "github.com/resumehub/notify-api/internal/handler/settings"
	"github.com/resumehub/notify-api/internal/middleware"
	"github.com/resumehub/notify-api/internal/repository/postgres"
	"github.com/resumehub/notify-api/internal/router"
	applicationService "github.com/resumehub/notify-api/internal/service/application"
	authService "github.com/resumehub/notify-api/internal/service/auth"
	newsletterService "github.com/resumehub/notify-api/internal/service/newsletter"
	notificationService "github.com/resumehub/notify-api/internal/service/notification"
	settingsService "github.com/resumehub/notify-api/internal/service/settings"
	pkgauth "github.com/resumehub/notify-api/pkg/auth"
	"github.com/resumehub/notify-api/pkg/logger"
	"github.com/resumehub/notify-api/pkg/messaging"
	redisbroker "github.com/resumehub/notify-api/pkg/messaging/redis"
	"github.com/resumehub/notify-api/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(&logger.Config{
		Level:      logger.InfoLevel,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
	})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	profileRepo := postgres.NewProfileRepository(db)
	settingsRepo := postgres.NewSettingsRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)
	jobRepo := postgres.NewJobRepository(db)
	activityRepo := postgres.NewActivityRepository(db)
	newsletterRepo := postgres.NewNewsletterRepository(db)

	// Email transport
	smtpCfg, err := email.LoadSMTPConfig()
	var sender email.Sender
	if err != nil {
		appLogger.Warn("SMTP not configured, emails will be recorded in memory only")
		sender = email.NewRecorder()
	} else {
		sender = email.NewSMTPSender(smtpCfg)
	}

	// Event broker
	var broker messaging.Broker
	if cfg.Redis.Enabled {
		broker, err = redisbroker.NewRedisBroker(redisbroker.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   3,
			RetryBackoff: 100 * time.Millisecond,
			PoolSize:     10,
			MinIdleConns: 2,
		}, appLogger.Zerolog())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
	} else {
		broker = messaging.NewNopBroker()
	}
	defer broker.Close()

	// Notification core
	composer := notificationService.NewComposer()
	selector := notificationService.NewSelector(profileRepo, settingsRepo)
	dispatcher := notificationService.NewDispatcher(sender, appLogger.Zerolog())
	notificationSvc := notificationService.NewService(
		applicationRepo, jobRepo, selector, composer, dispatcher, sender, appLogger.Zerolog())

	// Services
	jwtManager := pkgauth.NewJWTManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	authSvc := authService.NewService(profileRepo, security.NewBcryptVerifier(), jwtManager)
	applicationSvc := applicationService.NewService(
		applicationRepo, activityRepo, notificationSvc, broker, appLogger.Zerolog())
	newsletterSvc := newsletterService.NewService(
		newsletterRepo, settingsRepo, selector, composer, dispatcher, sender, broker,
		cfg.Server.BaseURL, appLogger.Zerolog())
	settingsSvc := settingsService.NewService(settingsRepo, selector)

	// Handlers
	authMiddleware := middleware.NewAuthMiddleware(authSvc)
	h := handler.NewHandler(db)

	r := router.NewRouter(
		authMiddleware,
		h,
		authHandler.NewHandler(authSvc),
		notificationHandler.NewHandler(notificationSvc),
		newsletterHandler.NewHandler(newsletterSvc),
		applicationHandler.NewHandler(applicationSvc),
		settingsHandler.NewHandler(settingsSvc),
		router.Config{
			RateLimitRPS:   cfg.RateLimit.RequestsPerSecond,
			RateLimitBurst: cfg.RateLimit.Burst,
			CORSConfig:     corsConfig(cfg),
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		appLogger.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error(err, "forced shutdown")
	}
}

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.Security.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.Security.AllowedOrigins
	}
	return corsCfg
}
