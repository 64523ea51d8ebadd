package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	mock_db "github.com/designhouse/printdesk/internal/db/mocks"
	mock_kafka "github.com/designhouse/printdesk/internal/kafka/mocks"
	"github.com/designhouse/printdesk/internal/repository"
	mock_storage "github.com/designhouse/printdesk/internal/storage/mocks"
)

type publisherFixture struct {
	db        *mock_db.MockDB
	tx        *mock_db.MockTx
	repo      *mock_storage.MockOutboxTaskRepository
	producer  *mock_kafka.MockProducer
	publisher *Publisher
}

var fixedTime = time.Date(2025, 4, 9, 12, 0, 0, 0, time.UTC)

func newPublisherFixture(t *testing.T) *publisherFixture {
	ctrl := gomock.NewController(t)
	f := &publisherFixture{
		db:       mock_db.NewMockDB(ctrl),
		tx:       mock_db.NewMockTx(ctrl),
		repo:     mock_storage.NewMockOutboxTaskRepository(ctrl),
		producer: mock_kafka.NewMockProducer(ctrl),
	}
	f.publisher = NewPublisher(f.db, f.repo, f.producer, PublisherConfig{
		PollInterval: 10 * time.Millisecond,
		BatchSize:    10,
		MaxAttempts:  3,
	}, zap.NewNop())
	f.publisher.timeNow = func() time.Time { return fixedTime }
	return f
}

func task(topic string, attempts int) *repository.OutboxTask {
	return &repository.OutboxTask{
		ID:       uuid.New(),
		Status:   repository.TaskStatusCreated,
		Topic:    topic,
		Payload:  json.RawMessage(`{"type":"order.created"}`),
		Attempts: attempts,
	}
}

func TestPublisher_ProcessBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("sent tasks are marked done", func(t *testing.T) {
		f := newPublisherFixture(t)
		first, second := task("order_events", 0), task("audit_logs", 1)

		f.db.EXPECT().BeginTx(ctx).Return(f.tx, nil)
		f.repo.EXPECT().GetProcessableTasksTx(ctx, f.tx, 10, 3).Return([]*repository.OutboxTask{first, second}, nil)
		f.repo.EXPECT().UpdateTaskStatusTx(ctx, f.tx, first.ID, repository.TaskStatusProcessing, 0, nil, nil).Return(nil)
		f.repo.EXPECT().UpdateTaskStatusTx(ctx, f.tx, second.ID, repository.TaskStatusProcessing, 1, nil, nil).Return(nil)
		f.tx.EXPECT().Commit(ctx).Return(nil)

		f.producer.EXPECT().SendMessage(ctx, "order_events", []byte(first.ID.String()), []byte(first.Payload)).Return(nil)
		f.producer.EXPECT().SendMessage(ctx, "audit_logs", []byte(second.ID.String()), []byte(second.Payload)).Return(nil)

		done := fixedTime
		f.repo.EXPECT().UpdateTaskStatus(ctx, f.db, first.ID, repository.TaskStatusDone, 0, nil, &done).Return(nil)
		f.repo.EXPECT().UpdateTaskStatus(ctx, f.db, second.ID, repository.TaskStatusDone, 1, nil, &done).Return(nil)

		require.NoError(t, f.publisher.processBatch(ctx))
	})

	t.Run("send failure increments attempts", func(t *testing.T) {
		f := newPublisherFixture(t)
		tk := task("order_events", 2)

		f.db.EXPECT().BeginTx(ctx).Return(f.tx, nil)
		f.repo.EXPECT().GetProcessableTasksTx(ctx, f.tx, 10, 3).Return([]*repository.OutboxTask{tk}, nil)
		f.repo.EXPECT().UpdateTaskStatusTx(ctx, f.tx, tk.ID, repository.TaskStatusProcessing, 2, nil, nil).Return(nil)
		f.tx.EXPECT().Commit(ctx).Return(nil)

		f.producer.EXPECT().SendMessage(ctx, "order_events", gomock.Any(), gomock.Any()).Return(errors.New("broker down"))
		f.repo.EXPECT().UpdateTaskStatus(ctx, f.db, tk.ID, repository.TaskStatusFailed, 3, gomock.Any(), nil).DoAndReturn(
			func(_ context.Context, _ any, _ uuid.UUID, _ repository.TaskStatus, _ int, lastError *string, _ *time.Time) error {
				require.NotNil(t, lastError)
				assert.Contains(t, *lastError, "broker down")
				return nil
			})

		require.NoError(t, f.publisher.processBatch(ctx))
	})

	t.Run("empty batch", func(t *testing.T) {
		f := newPublisherFixture(t)

		f.db.EXPECT().BeginTx(ctx).Return(f.tx, nil)
		f.repo.EXPECT().GetProcessableTasksTx(ctx, f.tx, 10, 3).Return(nil, nil)
		f.tx.EXPECT().Commit(ctx).Return(nil)

		require.NoError(t, f.publisher.processBatch(ctx))
	})

	t.Run("marking failure rolls back", func(t *testing.T) {
		f := newPublisherFixture(t)
		tk := task("order_events", 0)

		f.db.EXPECT().BeginTx(ctx).Return(f.tx, nil)
		f.repo.EXPECT().GetProcessableTasksTx(ctx, f.tx, 10, 3).Return([]*repository.OutboxTask{tk}, nil)
		f.repo.EXPECT().UpdateTaskStatusTx(ctx, f.tx, tk.ID, repository.TaskStatusProcessing, 0, nil, nil).Return(errors.New("lock timeout"))
		f.tx.EXPECT().Rollback(ctx).Return(nil)

		err := f.publisher.processBatch(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "PROCESSING")
	})
}

func TestPublisher_Shutdown(t *testing.T) {
	f := newPublisherFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f.db.EXPECT().BeginTx(gomock.Any()).Return(f.tx, nil).AnyTimes()
	f.repo.EXPECT().GetProcessableTasksTx(gomock.Any(), f.tx, 10, 3).Return(nil, nil).AnyTimes()
	f.tx.EXPECT().Commit(gomock.Any()).Return(nil).AnyTimes()
	f.producer.EXPECT().Close().Return(nil).Times(1)

	stopped := make(chan struct{})
	go func() {
		f.publisher.Run(ctx)
		close(stopped)
	}()

	time.Sleep(30 * time.Millisecond)
	f.publisher.Shutdown()
	f.publisher.Shutdown()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("publisher did not stop")
	}
}

func TestLogProducer(t *testing.T) {
	p := NewProducer(nil, zap.NewNop())
	require.IsType(t, &LogProducer{}, p)

	assert.NoError(t, p.SendMessage(context.Background(), "order_events", []byte("k"), []byte("{}")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.SendMessage(ctx, "order_events", nil, nil), context.Canceled)
	assert.NoError(t, p.Close())
}
