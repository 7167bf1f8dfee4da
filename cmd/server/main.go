package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/asanbekov/account-api/config"
	"github.com/asanbekov/account-api/internal/email"
	"github.com/asanbekov/account-api/internal/health"
	"github.com/asanbekov/account-api/internal/infrastructure/mongodb"
	"github.com/asanbekov/account-api/internal/janitor"
	ctxlog "github.com/asanbekov/account-api/internal/log"
	"github.com/asanbekov/account-api/internal/metrics"
	"github.com/asanbekov/account-api/internal/token"
	httptransport "github.com/asanbekov/account-api/internal/transport/http"
	"github.com/asanbekov/account-api/internal/transport/http/handler"
	"github.com/asanbekov/account-api/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	db, err := mongodb.NewDB(ctx, cfg.MongoURI)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer db.Close(context.Background())

	userRepo := mongodb.NewUserRepository(db)
	emailSender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.SenderEmail, logger)
	tokens := token.NewManager([]byte(cfg.JWTSecret))
	cookies := handler.NewSessionCookie(cfg.Production(), tokens.TTL())

	authUsecase := usecase.NewAuthUsecase(userRepo, emailSender, tokens, logger)
	authHandler := handler.NewAuthHandler(authUsecase, cookies, logger)

	userUsecase := usecase.NewUserUsecase(userRepo)
	userHandler := handler.NewUserHandler(userUsecase, logger)

	metrics.Register()
	checker := health.NewChecker(db, logger, prometheus.DefaultRegisterer)

	otpJanitor := janitor.New(userRepo, logger)
	if err := otpJanitor.Start(cfg.OtpCleanupSchedule); err != nil {
		stop()
		log.Fatalf("janitor: %v", err)
	}
	defer otpJanitor.Stop()

	srv := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, authHandler, userHandler, tokens, cfg.CORSOrigins),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
