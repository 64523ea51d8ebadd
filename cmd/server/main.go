package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/designhouse/printdesk/internal/cache"
	"github.com/designhouse/printdesk/internal/calendar"
	"github.com/designhouse/printdesk/internal/config"
	"github.com/designhouse/printdesk/internal/db"
	"github.com/designhouse/printdesk/internal/grpcserver"
	"github.com/designhouse/printdesk/internal/kafka"
	"github.com/designhouse/printdesk/internal/logger"
	"github.com/designhouse/printdesk/internal/repository/postgresql"
	"github.com/designhouse/printdesk/internal/secretkey"
	"github.com/designhouse/printdesk/internal/server"
	"github.com/designhouse/printdesk/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Config error:", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("printdesk stopped with error", zap.Error(err))
	}
	log.Info("printdesk gracefully stopped")
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	database, err := db.NewDb(ctx, cfg.DB.DSN())
	if err != nil {
		return err
	}
	defer database.Close()

	cal, err := calendar.New(cfg.Calendar)
	if err != nil {
		return err
	}

	sequence, closeSequence, err := newSequence(ctx, cfg, database)
	if err != nil {
		return err
	}
	defer closeSequence()

	loc := cfg.Location()
	keys := secretkey.NewGenerator(cal, sequence, loc, cfg.MaxKeyAttempts, log.Named("secretkey"))
	categoryCache := cache.NewCategoryCache(log.Named("cache"))
	outboxRepo := postgresql.NewOutboxTaskRepo()

	stg := storage.NewStorage(database, storage.Repositories{
		Orders:          postgresql.NewOrderRepo(database),
		Receptions:      postgresql.NewReceptionRepo(database),
		Categories:      postgresql.NewCategoryRepo(database),
		AttributeTypes:  postgresql.NewAttributeTypeRepo(database),
		AttributeValues: postgresql.NewAttributeValueRepo(database),
		Users:           postgresql.NewUserRepo(database),
		History:         postgresql.NewHistoryRepo(database),
		Outbox:          outboxRepo,
	}, keys, categoryCache, storage.Config{
		EventsTopic: cfg.EventsTopic,
		AuditTopic:  cfg.AuditTopic,
		Location:    loc,
		Calendar:    cal,
	}, log.Named("storage"))

	if err := stg.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return err
	}
	if err := categoryCache.Warm(ctx, stg); err != nil {
		log.Warn("category cache warm-up failed", zap.Error(err))
	}

	publisher := kafka.NewPublisher(database, outboxRepo, kafka.NewProducer(cfg.KafkaBrokers, log.Named("producer")), kafka.PublisherConfig{
		PollInterval: cfg.PublisherPollInterval,
		BatchSize:    cfg.PublisherBatchSize,
		MaxAttempts:  cfg.PublisherMaxAttempts,
	}, log.Named("publisher"))

	audit := server.NewAuditManager(stg, server.AuditConfig{}, log.Named("audit"))
	srv := server.New(stg, stg, database, audit, server.Config{
		Port:      cfg.HTTPPort,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
	}, log.Named("http"))

	health := grpcserver.NewServer(database, 5*time.Second, log.Named("grpc"))
	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		return fmt.Errorf("failed to listen on gRPC port: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})
	g.Go(func() error {
		return health.Serve(lis)
	})
	g.Go(func() error {
		health.Watch(gctx)
		return nil
	})
	g.Go(func() error {
		publisher.Run(gctx)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		health.Stop()
		publisher.Shutdown()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// newSequence picks where secret key numbers are reserved.
func newSequence(ctx context.Context, cfg *config.Config, database *db.Database) (secretkey.Sequence, func(), error) {
	if cfg.KeySequence != "redis" {
		return postgresql.NewKeySequence(database), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return secretkey.NewRedisSequence(client, ""), func() { _ = client.Close() }, nil
}
