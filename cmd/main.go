package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/voluntree/backend/config"
	"github.com/voluntree/backend/internal/handler"
	"github.com/voluntree/backend/internal/repository"
	"github.com/voluntree/backend/internal/router"
	"github.com/voluntree/backend/internal/service"
	"github.com/voluntree/backend/pkg/database"
	"github.com/voluntree/backend/pkg/logger"
	"github.com/voluntree/backend/pkg/redis"
	"github.com/voluntree/backend/pkg/storage"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	if err := logger.InitLogger(cfg.App.Environment); err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.GetLogger()
	log.Info("starting application",
		zap.String("name", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
		zap.String("port", cfg.App.Port),
	)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error("failed to close database", zap.Error(err))
		}
	}()

	if err := database.Migrate(db); err != nil {
		log.Fatal("database migration failed", zap.Error(err))
	}

	cache, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatal("redis connection failed", zap.Error(err))
	}
	defer cache.Close()

	blobs, err := storage.NewS3Store(context.Background(), cfg)
	if err != nil {
		log.Fatal("object storage setup failed", zap.Error(err))
	}

	tokens, err := service.NewTokenService(cfg.JWT)
	if err != nil {
		log.Fatal("token service setup failed", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	authSvc := service.NewAuthService(userRepo, tokens, blobs, cfg.Auth.RevokeSessionsOnPasswordChange)
	userSvc := service.NewUserService(userRepo, blobs, cache)
	followSvc := service.NewFollowService(userRepo, followRepo, cache)
	profileSvc := service.NewProfileService(profileRepo, followRepo, cache, cfg.Redis.ProfileTTL)

	engine := router.New(
		cfg,
		tokens,
		userRepo,
		handler.NewAuthHandler(authSvc, cfg),
		handler.NewUserHandler(userSvc, cfg),
		handler.NewFollowHandler(followSvc),
		handler.NewProfileHandler(profileSvc),
		handler.NewHealthHandler(db, cache),
	).Setup()

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("http server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}

	log.Info("server stopped")
}
