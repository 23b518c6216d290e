package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"blog_nest/internal/api"
	"blog_nest/internal/api/middleware"
	"blog_nest/internal/app/service"
	"blog_nest/internal/common/security"
	"blog_nest/internal/domain/repository"
	"blog_nest/internal/platform/cache"
	"blog_nest/internal/platform/config"
	"blog_nest/internal/platform/database"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Could not create logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg.DBConnStr)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}
	logger.Info("database connected")

	rdb, err := cache.Connect(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Fatal("redis connection failed", zap.Error(err))
	}
	defer rdb.Close()
	logger.Info("redis connected")

	userRepo := repository.NewPgUserRepository(db)
	blogRepo := repository.NewPgBlogRepository(db)
	commentRepo := repository.NewPgCommentRepository(db)

	// Signing keys are loaded once and injected; nothing reads them globally.
	tokens := security.NewTokenManager(
		cfg.AccessTokenSecret, cfg.RefreshTokenSecret,
		cfg.AccessTokenTTL, cfg.RefreshTokenTTL,
	)
	cookies := security.NewRefreshCookie(cfg.RefreshTokenTTL)

	authService := service.NewAuthService(userRepo, tokens)
	blogService := service.NewBlogService(blogRepo, commentRepo)
	commentService := service.NewCommentService(commentRepo, blogRepo, userRepo)
	userService := service.NewUserService(userRepo)

	loginLimiter := middleware.NewLoginLimiter(rdb, cfg.LoginRateLimit, cfg.LoginRateWindow, logger)

	router := api.NewRouter(
		logger, cfg, tokens, cookies,
		authService, blogService, commentService, userService,
		loginLimiter,
	)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", zap.String("port", cfg.APIPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-stop

	logger.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped gracefully")
}
