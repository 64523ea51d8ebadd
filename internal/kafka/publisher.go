package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/designhouse/printdesk/internal/db"
	"github.com/designhouse/printdesk/internal/metrics"
	"github.com/designhouse/printdesk/internal/repository"
	"github.com/designhouse/printdesk/internal/storage"
)

var errShutdown = errors.New("publisher shutdown during batch processing")

type PublisherConfig struct {
	PollInterval time.Duration
	BatchSize    int
	MaxAttempts  int
}

// Publisher relays outbox tasks to the broker.
type Publisher struct {
	db             db.DB
	repo           storage.OutboxTaskRepository
	producer       Producer
	config         PublisherConfig
	logger         *zap.Logger
	wg             sync.WaitGroup
	shutdownSignal chan struct{}
	stopOnce       sync.Once

	timeNow func() time.Time
}

func NewPublisher(db db.DB, repo storage.OutboxTaskRepository, producer Producer, config PublisherConfig, logger *zap.Logger) *Publisher {
	if config.PollInterval <= 0 {
		config.PollInterval = 2 * time.Second
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 50
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 5
	}
	return &Publisher{
		db:             db,
		repo:           repo,
		producer:       producer,
		config:         config,
		logger:         logger,
		shutdownSignal: make(chan struct{}),
		timeNow:        time.Now,
	}
}

func (p *Publisher) Run(ctx context.Context) {
	p.logger.Info("starting outbox publisher",
		zap.Duration("poll_interval", p.config.PollInterval),
		zap.Int("batch_size", p.config.BatchSize))
	p.wg.Add(1)
	defer p.wg.Done()

	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := p.processBatch(ctx); err != nil {
				metrics.OperationErrorsTotal.WithLabelValues("outbox_publish").Inc()
				p.logger.Error("outbox publisher failed to process batch", zap.Error(err))
			}
		case <-p.shutdownSignal:
			p.logger.Info("outbox publisher received shutdown signal")
			return
		case <-ctx.Done():
			p.logger.Info("outbox publisher context cancelled")
			return
		}
	}
}

// Shutdown stops Run, waits for the current batch and closes the producer.
func (p *Publisher) Shutdown() {
	p.stopOnce.Do(func() {
		p.logger.Info("initiating outbox publisher shutdown")
		close(p.shutdownSignal)

		done := make(chan struct{})
		go func() {
			p.wg.Wait()
			close(done)
		}()
		select {
		case <-done:
			p.logger.Info("outbox publisher shutdown complete")
		case <-time.After(30 * time.Second):
			p.logger.Warn("outbox publisher shutdown timed out")
		}

		if err := p.producer.Close(); err != nil {
			p.logger.Error("failed to close kafka producer", zap.Error(err))
		}
	})
}

func (p *Publisher) processBatch(ctx context.Context) error {
	tasks, err := p.claimBatch(ctx)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		return nil
	}

	p.logger.Debug("outbox publisher fetched tasks", zap.Int("count", len(tasks)))

	for _, task := range tasks {
		select {
		case <-p.shutdownSignal:
			p.logger.Warn("shutdown during batch, task left in PROCESSING", zap.Stringer("task_id", task.ID))
			return errShutdown
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := p.processSingleTask(ctx, task); err != nil {
			p.logger.Error("failed to process outbox task", zap.Stringer("task_id", task.ID), zap.Error(err))
		}
	}
	return nil
}

// claimBatch locks a batch of due tasks and marks them PROCESSING.
func (p *Publisher) claimBatch(ctx context.Context) ([]*repository.OutboxTask, error) {
	tx, err := p.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction for fetching tasks: %w", err)
	}

	tasks, err := p.markProcessing(ctx, tx)
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			p.logger.Warn("rollback failed", zap.Error(rbErr))
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction after marking tasks as PROCESSING: %w", err)
	}
	return tasks, nil
}

func (p *Publisher) markProcessing(ctx context.Context, tx db.Tx) ([]*repository.OutboxTask, error) {
	tasks, err := p.repo.GetProcessableTasksTx(ctx, tx, p.config.BatchSize, p.config.MaxAttempts)
	if err != nil {
		return nil, fmt.Errorf("failed to get processable tasks: %w", err)
	}
	for _, task := range tasks {
		err := p.repo.UpdateTaskStatusTx(ctx, tx, task.ID, repository.TaskStatusProcessing, task.Attempts, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to mark task %s as PROCESSING: %w", task.ID, err)
		}
	}
	return tasks, nil
}

func (p *Publisher) processSingleTask(ctx context.Context, task *repository.OutboxTask) error {
	err := p.producer.SendMessage(ctx, task.Topic, []byte(task.ID.String()), task.Payload)
	if err != nil {
		metrics.OutboxTasksPublishedTotal.WithLabelValues("failed").Inc()
		attempts := task.Attempts + 1
		errMsg := err.Error()
		if attempts >= p.config.MaxAttempts {
			p.logger.Error("outbox task reached max attempts",
				zap.Stringer("task_id", task.ID), zap.Int("attempts", attempts))
		}

		updateErr := p.repo.UpdateTaskStatus(ctx, p.db, task.ID, repository.TaskStatusFailed, attempts, &errMsg, nil)
		if updateErr != nil {
			return fmt.Errorf("failed to update task status after send failure: %w (send error: %v)", updateErr, err)
		}
		return err
	}

	metrics.OutboxTasksPublishedTotal.WithLabelValues("done").Inc()
	now := p.timeNow().UTC()
	if err := p.repo.UpdateTaskStatus(ctx, p.db, task.ID, repository.TaskStatusDone, task.Attempts, nil, &now); err != nil {
		return fmt.Errorf("failed to update task status after successful send: %w", err)
	}
	return nil
}
