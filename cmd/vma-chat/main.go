package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/JuniorQuintas/VMA-Chat/internal/api"
	"github.com/JuniorQuintas/VMA-Chat/internal/auth"
	"github.com/JuniorQuintas/VMA-Chat/internal/config"
	"github.com/JuniorQuintas/VMA-Chat/internal/events"
	"github.com/JuniorQuintas/VMA-Chat/internal/logger"
	"github.com/JuniorQuintas/VMA-Chat/internal/presence"
	"github.com/JuniorQuintas/VMA-Chat/internal/repository"
	"github.com/JuniorQuintas/VMA-Chat/internal/service"
	"github.com/JuniorQuintas/VMA-Chat/internal/storage"
	"github.com/JuniorQuintas/VMA-Chat/internal/ws"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	_ = godotenv.Load()

	cfgPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	zl, err := logger.New(logger.Config{Development: cfg.App.Env != "production"})
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	mc, err := repository.NewMongoClient(cfg.Mongo.URI)
	if err != nil {
		zl.Fatalw("mongo init", "err", err)
	}
	defer func() { _ = mc.Disconnect(context.Background()) }()
	db := mc.Database(cfg.Mongo.Database)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	blobs, err := storage.NewS3Store(context.Background(), cfg.S3.Region, cfg.S3.Bucket, cfg.S3.Endpoint, cfg.S3.PublicRead, cfg.PresignTTL)
	if err != nil {
		zl.Fatalw("s3 init", "err", err)
	}

	var exporter *events.Exporter
	if cfg.Kafka.Enabled() {
		exporter = events.NewExporter(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer func() { _ = exporter.Close() }()
	}

	notifier := events.NewRedisNotifier(rdb, cfg.Redis.Prefix, zl)
	mirror := presence.NewStore(rdb, cfg.Redis.Prefix, cfg.PresenceTTL)
	sessions := auth.NewRedisSessionStore(rdb, cfg.Redis.Prefix, cfg.TokenTTL)
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.TokenTTL)
	hasher := auth.NewPasswordHasher()

	users := repository.NewMongoUserRepo(db)
	chats := repository.NewMongoChatRepo(db)
	messages := repository.NewMongoMessageRepo(db)
	rooms := repository.NewMongoRoomRepo(db)

	sessionSvc := service.NewSessionService(users, hasher, tokens, sessions, mirror, notifier, zl)
	chatSvc := service.NewChatService(chats, messages, notifier, exporter, zl)
	roomSvc := service.NewRoomService(rooms, notifier)
	dirSvc := service.NewDirectoryService(users)

	hub := ws.NewHub()
	realtime := ws.NewServer(hub, chatSvc, roomSvc, dirSvc, zl)

	feedCtx, stopFeed := context.WithCancel(context.Background())
	defer stopFeed()
	go func() {
		if err := notifier.Listen(feedCtx, hub.Notify); err != nil && feedCtx.Err() == nil {
			zl.Errorw("change feed", "err", err)
		}
	}()

	app := api.NewServer(tokens, sessionSvc, chatSvc, roomSvc, dirSvc, blobs, realtime, cfg.TokenTTL, zl)

	go func() {
		if err := app.Listen(":" + cfg.App.PortString()); err != nil {
			zl.Fatalw("server listen", "err", err)
		}
	}()
	zl.Infow("vma-chat started", "port", cfg.App.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)
	stopFeed()
	zl.Info("vma-chat stopped")
}
