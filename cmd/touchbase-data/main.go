package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"touchbase-data/internal/config"
	"touchbase-data/internal/database"
	httpapi "touchbase-data/internal/http"
	"touchbase-data/internal/logger"
	"touchbase-data/internal/mqtt"
	"touchbase-data/internal/repository"
	"touchbase-data/internal/service"
	"touchbase-data/internal/store"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "touchbase-data")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	clock := service.NewRealClock()

	// Redis：进度缓存 + 通知事件流（不可用时直接禁用，核心功能不依赖）
	var (
		redisClient *redis.Client
		cache       *service.ProgressCache
		events      service.EventPublisher
	)
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cache = service.NewProgressCache(store.NewRedisKV(redisClient), cfg.ProgressCacheTTL, log)
		events = store.NewStreamPublisher(redisClient, cfg.NotificationStream)
	}

	// DB 未就绪时回落到内存 repo（本地联调不因无 DB 失败）
	var (
		db               *sql.DB
		contactsRepo     repository.ContactsRepository
		interactionsRepo repository.InteractionsRepository
		settingsRepo     repository.SettingsRepository
	)
	if cfg.DBEnabled {
		if d, err := database.NewPostgresDB(&cfg.Database); err == nil {
			db = d
			log.Info("DB enabled for touchbase-data")
		} else {
			log.Warn("DB enabled but connection failed, falling back to memory repositories", zap.Error(err))
		}
	}
	if db != nil {
		contactsRepo = repository.NewPostgresContactsRepository(db)
		interactionsRepo = repository.NewPostgresInteractionsRepository(db)
		settingsRepo = repository.NewPostgresSettingsRepository(db)
	} else {
		memContacts := repository.NewMemoryContactsRepo()
		contactsRepo = memContacts
		interactionsRepo = repository.NewMemoryInteractionsRepo(memContacts)
		settingsRepo = repository.NewMemorySettingsRepo()
	}

	notifier := service.NewNotifierClient(cfg.Notifier.BaseURL, cfg.Notifier.Timeout, log)

	dueService := service.NewDueService(contactsRepo, log)
	goalService := service.NewGoalService(dueService, interactionsRepo, settingsRepo, cache, log)
	interactionService := service.NewInteractionService(contactsRepo, interactionsRepo, settingsRepo, cache, clock, log)
	settingsService := service.NewSettingsService(settingsRepo, log)
	notificationService := service.NewNotificationService(goalService, settingsRepo, notifier, events, clock, log)

	router := httpapi.NewRouter(log)
	router.RegisterContactRoutes(
		httpapi.NewInteractionHandler(interactionService, cfg.DefaultUserID, log),
		httpapi.NewDueContactsHandler(dueService, clock, cfg.DefaultUserID, log),
	)
	router.RegisterReminderRoutes(httpapi.NewGoalHandler(goalService, clock, cfg.DefaultUserID, log))
	router.RegisterSettingsRoutes(httpapi.NewSettingsHandler(settingsService, cfg.DefaultUserID, log))
	router.RegisterNotificationRoutes(httpapi.NewNotificationHandler(notificationService, settingsService, cfg.DefaultUserID, log))

	// MQTT 触发（可选）：外部调度器在早/晚发触发消息
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		if c, err := mqtt.NewClient(&cfg.MQTT, log); err == nil {
			mqttClient = c
			broker := mqtt.NewReminderTriggerBroker(notificationService, cfg.DefaultUserID, log)
			if err := mqttClient.Subscribe(cfg.MQTT.Topic, 1, broker.HandleMessage); err != nil {
				log.Warn("MQTT subscribe failed, reminder trigger disabled", zap.Error(err))
			} else {
				log.Info("MQTT reminder trigger enabled", zap.String("topic", cfg.MQTT.Topic))
			}
		} else {
			log.Warn("MQTT enabled but connection failed, reminder trigger disabled", zap.Error(err))
		}
	}

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("HTTP server error", zap.Error(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	if mqttClient != nil {
		mqttClient.Disconnect()
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	_ = database.Close(db)
}
