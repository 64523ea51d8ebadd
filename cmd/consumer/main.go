package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/designhouse/printdesk/internal/config"
	"github.com/designhouse/printdesk/internal/logger"
)

const groupID = "printdesk-log-consumer-group"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Config error:", err)
		os.Exit(1)
	}
	if len(cfg.KafkaBrokers) == 0 {
		fmt.Fprintln(os.Stderr, "Config error: KAFKA_BROKERS is empty")
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("starting kafka consumer", zap.Strings("brokers", cfg.KafkaBrokers))

	g, gctx := errgroup.WithContext(ctx)
	for _, topic := range []string{cfg.EventsTopic, cfg.AuditTopic} {
		topic := topic
		g.Go(func() error {
			return consume(gctx, cfg.KafkaBrokers, topic, log.With(zap.String("topic", topic)))
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal("consumer stopped with error", zap.Error(err))
	}
	log.Info("consumer stopped")
}

// consume prints every message of topic until ctx is cancelled. Read errors
// are retried after a pause.
func consume(ctx context.Context, brokers []string, topic string, log *zap.Logger) error {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		GroupID:        groupID,
		Topic:          topic,
		MinBytes:       10e3,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		MaxWait:        3 * time.Second,
	})
	defer func() {
		if err := r.Close(); err != nil {
			log.Error("failed to close kafka reader", zap.Error(err))
		}
	}()

	log.Info("consumer subscribed")
	for {
		m, err := r.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			log.Warn("failed to read message", zap.Error(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(5 * time.Second):
			}
			continue
		}

		log.Info("message received",
			zap.Time("timestamp", m.Time),
			zap.Int("partition", m.Partition),
			zap.Int64("offset", m.Offset),
			zap.ByteString("key", m.Key),
			zap.ByteString("value", m.Value),
		)
	}
}
