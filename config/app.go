package config

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"campus-chat/config/common"
	"campus-chat/config/logger"
	"campus-chat/handler"
	"campus-chat/jobs"
	"campus-chat/middleware"
	"campus-chat/realtime"
	"campus-chat/repository"
	"campus-chat/routes"
	"campus-chat/security"
	"campus-chat/usecase"
	"campus-chat/util"
)

const uploadURLPrefix = "/uploads"

type AppConfig struct {
	*fiber.App
	*validator.Validate
	*logrus.Logger
	Log    *logger.AppLogger
	Config *common.Config
	Store  repository.Store
	Redis  *redis.Client
	Hub    *realtime.Hub
	*security.JWT
}

func RunServer() {
	newConfig := common.NewViper()
	log := NewLogger(newConfig)
	_, logDir := newConfig.GetLogConfig()
	appLogger := logger.NewLogger(logDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := NewStore(ctx, newConfig, appLogger)
	if err != nil {
		log.WithError(err).Fatalf("Failed to open store: %v", err)
	}
	redisClient := NewRedis(ctx, newConfig, log)

	aC := &AppConfig{
		App:      NewFiber(newConfig, log),
		Validate: util.NewValidator(),
		Logger:   log,
		Log:      appLogger,
		Config:   newConfig,
		Store:    store,
		Redis:    redisClient,
		Hub:      realtime.NewHub(appLogger),
		JWT:      security.NewJWT(newConfig),
	}
	if err := App(ctx, aC); err != nil {
		log.WithError(err).Fatalf("Failed to wire application: %v", err)
	}

	go func() {
		<-ctx.Done()
		if err := aC.App.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("Failed to shut down server")
		}
	}()

	_, port := newConfig.GetAppConfig()
	if err := aC.App.Listen(":" + port); err != nil {
		log.WithError(err).Errorf("Failed to start server: %v", err)
	}

	aC.Hub.Close()
	if err := store.Close(); err != nil {
		log.WithError(err).Error("Failed to close store")
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
}

// App wires repositories, usecases, handlers and routes onto aC.App and
// starts the expiry sweeper, which stops with ctx.
func App(ctx context.Context, aC *AppConfig) error {
	var revoker security.TokenRevoker = security.NewMemoryTokenRevoker()
	var limiter *security.FixedWindowLimiter
	if aC.Redis != nil {
		revoker = security.NewRedisTokenRevoker(aC.Redis, "campus-chat:revoked")
		limit, window := aC.Config.GetLoginRateLimit()
		newLimiter, err := security.NewFixedWindowLimiter(aC.Redis, "campus-chat:login", limit, window)
		if err != nil {
			aC.Logger.WithError(err).Warn("Login throttling disabled")
		} else {
			limiter = newLimiter
		}
	}

	superUser, superPassword := aC.Config.GetSuperAdmin()
	authOptions := usecase.AuthOptions{
		EmailDomain:        aC.Config.GetEmailDomain(),
		SuperAdminUsername: superUser,
		SuperAdminPassword: superPassword,
	}

	newAuthUsecase := usecase.NewAuthUsecase(aC.Store, aC.Store, aC.Validate, aC.Logger, aC.JWT, revoker, usecase.NewDefaultChallengeSelector(), authOptions)
	newUserUsecase := usecase.NewUserUsecase(aC.Store, aC.Store, aC.Validate, aC.Log)
	newAdminUsecase := usecase.NewAdminUsecase(aC.Store, aC.Validate, aC.Logger, aC.Hub)
	newMessageUsecase := usecase.NewMessageUsecase(aC.Store, aC.Validate, aC.Logger, aC.Hub)

	if err := newAdminUsecase.EnsureSettings(ctx); err != nil {
		return err
	}

	uploadDir, maxUpload := aC.Config.GetUploadConfig()
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return err
	}

	newAuthHandler := handler.NewAuthHandler(newAuthUsecase, aC.Logger, aC.Config.GetSessionCookieName())
	newUserHandler := handler.NewUserHandler(newUserUsecase, aC.Logger, handler.UploadConfig{
		Dir:       uploadDir,
		URLPrefix: uploadURLPrefix,
		MaxBytes:  maxUpload,
	})
	newAdminHandler := handler.NewAdminHandler(newAdminUsecase, newMessageUsecase, aC.Logger)
	wsHandler := handler.NewWebSocketHandler(newMessageUsecase, aC.Hub, aC.Log)

	route := routes.ConfigRoute{
		App:          aC.App,
		Middleware:   middleware.NewMiddleware(aC.Config, revoker, limiter, aC.Logger),
		AuthHandler:  newAuthHandler,
		UserHandler:  newUserHandler,
		AdminHandler: newAdminHandler,
		UploadDir:    uploadDir,
		UploadPrefix: uploadURLPrefix,
	}
	route.GetRoute()
	route.GetWebSocketRoute(wsHandler)

	interval, timeout := aC.Config.GetExpirySweepConfig()
	jobs.StartExpirySweeper(ctx, jobs.ExpirySweeperConfig{Interval: interval, Timeout: timeout}, newMessageUsecase, aC.Logger)
	return nil
}
