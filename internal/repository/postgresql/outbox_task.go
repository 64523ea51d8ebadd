package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/designhouse/printdesk/internal/db"
	"github.com/designhouse/printdesk/internal/repository"
	"github.com/designhouse/printdesk/internal/storage"
)

type OutboxTaskRepo struct {
	timeNow func() time.Time
}

func NewOutboxTaskRepo() storage.OutboxTaskRepository {
	return &OutboxTaskRepo{timeNow: time.Now}
}

func (r *OutboxTaskRepo) CreateTx(ctx context.Context, tx db.Tx, task *repository.OutboxTask) error {
	query := `
        INSERT INTO outbox_tasks (id, status, payload, topic, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	now := r.timeNow().UTC()
	_, err := tx.Exec(ctx, query,
		task.ID,
		repository.TaskStatusCreated,
		task.Payload,
		task.Topic,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert outbox task: %w", err)
	}
	return nil
}

// GetProcessableTasksTx locks up to limit pending or retryable tasks.
func (r *OutboxTaskRepo) GetProcessableTasksTx(ctx context.Context, tx db.Tx, limit, maxAttempts int) ([]*repository.OutboxTask, error) {
	query := `
        SELECT id, status, payload, topic, attempts, last_error, created_at, updated_at, completed_at
        FROM outbox_tasks
        WHERE status = $1 OR (status = $2 AND attempts < $3)
        ORDER BY updated_at ASC
        LIMIT $4
        FOR UPDATE SKIP LOCKED
    `
	var tasks []*repository.OutboxTask
	err := tx.Select(ctx, &tasks, query, repository.TaskStatusCreated, repository.TaskStatusFailed, maxAttempts, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get processable outbox tasks: %w", err)
	}
	return tasks, nil
}

const updateTaskStatusQuery = `
        UPDATE outbox_tasks
        SET
            status = $2,
            attempts = $3,
            last_error = $4,
            completed_at = $5,
            updated_at = $6
        WHERE id = $1
    `

func (r *OutboxTaskRepo) UpdateTaskStatusTx(ctx context.Context, tx db.Tx, id uuid.UUID, status repository.TaskStatus, attempts int, lastError *string, completedAt *time.Time) error {
	tag, err := tx.Exec(ctx, updateTaskStatusQuery, id, status, attempts, lastError, completedAt, r.timeNow().UTC())
	if err != nil {
		return fmt.Errorf("failed to update outbox task status for id %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

func (r *OutboxTaskRepo) UpdateTaskStatus(ctx context.Context, db db.DB, id uuid.UUID, status repository.TaskStatus, attempts int, lastError *string, completedAt *time.Time) error {
	tag, err := db.Exec(ctx, updateTaskStatusQuery, id, status, attempts, lastError, completedAt, r.timeNow().UTC())
	if err != nil {
		return fmt.Errorf("failed to update outbox task status for id %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}
