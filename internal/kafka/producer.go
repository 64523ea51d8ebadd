//go:generate mockgen -source ./producer.go -destination=./mocks/producer.go -package=mock_kafka
package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Producer interface {
	SendMessage(ctx context.Context, topic string, key []byte, value []byte) error
	Close() error
}

// BrokerProducer writes to a Kafka cluster. The topic is chosen per message.
type BrokerProducer struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewBrokerProducer(brokers []string, logger *zap.Logger) *BrokerProducer {
	logger.Info("initialized kafka producer", zap.Strings("brokers", brokers))
	return &BrokerProducer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			BatchTimeout:           50 * time.Millisecond,
			AllowAutoTopicCreation: true,
		},
		logger: logger,
	}
}

func (p *BrokerProducer) SendMessage(ctx context.Context, topic string, key []byte, value []byte) error {
	err := p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   key,
		Value: value,
		Time:  time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to write message to %s: %w", topic, err)
	}
	return nil
}

func (p *BrokerProducer) Close() error {
	p.logger.Info("closing kafka producer")
	return p.writer.Close()
}

// LogProducer only logs messages. It is used when no brokers are configured.
type LogProducer struct {
	logger *zap.Logger
}

func NewLogProducer(logger *zap.Logger) *LogProducer {
	logger.Warn("no kafka brokers configured, outbox messages will only be logged")
	return &LogProducer{logger: logger}
}

func (p *LogProducer) SendMessage(ctx context.Context, topic string, key []byte, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.logger.Info("outbox message",
		zap.String("topic", topic),
		zap.ByteString("key", key),
		zap.ByteString("value", value))
	return nil
}

func (p *LogProducer) Close() error {
	return nil
}

// NewProducer picks the broker producer when brokers are set.
func NewProducer(brokers []string, logger *zap.Logger) Producer {
	if len(brokers) == 0 {
		return NewLogProducer(logger)
	}
	return NewBrokerProducer(brokers, logger)
}
