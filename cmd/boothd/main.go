package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"booth-status-backend/config"
	"booth-status-backend/internal/api"
	"booth-status-backend/internal/booths"
	"booth-status-backend/internal/db"
	"booth-status-backend/internal/health"
	"booth-status-backend/internal/logger"
	"booth-status-backend/internal/notify"
	"booth-status-backend/internal/store"
	"booth-status-backend/internal/sweep"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}

	zlog := logger.New(cfg.LogLevel)
	defer zlog.Sync()
	zlog.Infow("configuration loaded", "path", configPath)

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		zlog.Fatalw("failed to initialize database", "error", err)
	}
	zlog.Info("database initialized")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)

	// Alert channels are optional; an unset token or key pair disables
	// the channel and the fleet runs silent on that path.
	var channels []notify.Notifier

	if cfg.Telegram.Token != "" {
		telegram, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID)
		if err != nil {
			zlog.Fatalw("failed to initialize telegram channel", "error", err)
		}
		channels = append(channels, telegram)
		zlog.Info("telegram alert channel enabled")
	}

	var webpushOptions *webpush.Options
	if cfg.Push.PublicKey != "" && cfg.Push.PrivateKey != "" {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
		push := notify.NewPush(cfg.WorkerPool.Size, gormDB, webpushOptions, zlog)
		push.Start(ctx)
		channels = append(channels, push)
		zlog.Infow("web push alert channel enabled", "workers", cfg.WorkerPool.Size)
	}

	notifier := notify.NewSuppressor(notify.NewFanout(zlog, channels...), cfg.Alerting.Suppression)

	healthSvc := health.NewService(appStore, notifier, zlog)
	boothsSvc := booths.NewService(appStore, cfg.Alerting.ListStaleThreshold, zlog)

	coordinator := sweep.NewCoordinator(cfg.Alerting, appStore, notifier, zlog)
	go coordinator.Run(ctx)

	handler := api.NewHandler(appStore, healthSvc, boothsSvc, webpushOptions)
	router := api.NewRouter(handler, &cfg.Server)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		zlog.Infow("HTTP server starting", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatalw("HTTP server ListenAndServe", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	zlog.Info("shutdown signal received, stopping services")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Fatalw("HTTP server Shutdown", "error", err)
	}

	zlog.Info("server gracefully stopped")
}
