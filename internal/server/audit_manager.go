package server

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/designhouse/printdesk/internal/metrics"
	"github.com/designhouse/printdesk/internal/repository"
)

// AuditSink persists a batch of audit entries.
type AuditSink interface {
	SaveAuditLogs(ctx context.Context, entries []repository.AuditLogPayload) error
}

type AuditConfig struct {
	Workers      int
	BatchSize    int
	FlushTimeout time.Duration
	SaveTimeout  time.Duration
}

// AuditManager batches audit entries and hands them to a pool of workers
// that write them to the sink.
type AuditManager struct {
	sink   AuditSink
	config AuditConfig
	logger *zap.Logger

	inputChan  chan repository.AuditLogPayload
	batchChan  chan []repository.AuditLogPayload
	shutdownCh chan struct{}
	startOnce  sync.Once
	stopOnce   sync.Once

	// inputMu guards inputClosed. senders counts LogEntry calls that passed
	// the check and may still write to inputChan.
	inputMu     sync.Mutex
	inputClosed bool
	senders     sync.WaitGroup

	wg           sync.WaitGroup
	pendingMu    sync.Mutex
	pendingCount int
}

func NewAuditManager(sink AuditSink, config AuditConfig, logger *zap.Logger) *AuditManager {
	if config.Workers <= 0 {
		config.Workers = 2
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 20
	}
	if config.FlushTimeout <= 0 {
		config.FlushTimeout = 500 * time.Millisecond
	}
	if config.SaveTimeout <= 0 {
		config.SaveTimeout = 5 * time.Second
	}
	return &AuditManager{
		sink:       sink,
		config:     config,
		logger:     logger,
		inputChan:  make(chan repository.AuditLogPayload, config.Workers*config.BatchSize*2),
		batchChan:  make(chan []repository.AuditLogPayload, config.Workers*2),
		shutdownCh: make(chan struct{}),
	}
}

func (m *AuditManager) Start(ctx context.Context) {
	m.startOnce.Do(func() {
		m.logger.Info("starting audit manager", zap.Int("workers", m.config.Workers))
		m.wg.Add(1)
		go m.runAggregator(ctx)

		for i := 0; i < m.config.Workers; i++ {
			m.wg.Add(1)
			go m.runWorker(ctx, i)
		}

		go m.monitorShutdown(ctx)
	})
}

// Shutdown flushes what was collected and waits for the workers until ctx
// expires.
func (m *AuditManager) Shutdown(ctx context.Context) {
	m.stopOnce.Do(func() {
		m.logger.Info("initiating audit manager shutdown")
		close(m.shutdownCh)

		done := make(chan struct{})
		go func() {
			m.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			m.logger.Info("audit manager shutdown completed")
		case <-ctx.Done():
			m.logger.Warn("audit manager shutdown interrupted", zap.Int("pending", m.Pending()))
		}
	})
}

func (m *AuditManager) monitorShutdown(ctx context.Context) {
	select {
	case <-ctx.Done():
		m.Shutdown(context.Background())
	case <-m.shutdownCh:
	}
}

func (m *AuditManager) LogEntry(ctx context.Context, entry repository.AuditLogPayload) {
	m.updatePendingCount(1)

	m.inputMu.Lock()
	if m.inputClosed {
		m.inputMu.Unlock()
		m.emergencyLog(entry)
		return
	}
	m.senders.Add(1)
	m.inputMu.Unlock()
	defer m.senders.Done()

	select {
	case m.inputChan <- entry:
	case <-ctx.Done():
		m.emergencyLog(entry)
	}
}

// closeInput stops accepting entries and collects everything already sent,
// including entries from senders that were blocked on a full channel.
func (m *AuditManager) closeInput(batch []repository.AuditLogPayload) []repository.AuditLogPayload {
	m.inputMu.Lock()
	m.inputClosed = true
	m.inputMu.Unlock()

	sendersDone := make(chan struct{})
	go func() {
		m.senders.Wait()
		close(sendersDone)
	}()

	for {
		select {
		case entry := <-m.inputChan:
			batch = append(batch, entry)
		case <-sendersDone:
			for {
				select {
				case entry := <-m.inputChan:
					batch = append(batch, entry)
				default:
					return batch
				}
			}
		}
	}
}

// Pending is the number of entries accepted but not yet written.
func (m *AuditManager) Pending() int {
	m.pendingMu.Lock()
	defer m.pendingMu.Unlock()
	return m.pendingCount
}

func (m *AuditManager) runAggregator(ctx context.Context) {
	defer m.wg.Done()

	var (
		batch    []repository.AuditLogPayload
		timer    *time.Timer
		timeoutC <-chan time.Time
	)

	stopTimer := func() {
		if timer != nil {
			timer.Stop()
		}
		timeoutC = nil
	}

	defer func() {
		stopTimer()
		batch = m.closeInput(batch)
		if len(batch) > 0 {
			m.dispatchBatch(batch)
		}
		close(m.batchChan)
	}()

	for {
		select {
		case entry := <-m.inputChan:
			batch = append(batch, entry)
			if len(batch) >= m.config.BatchSize {
				stopTimer()
				m.dispatchBatch(batch)
				batch = nil
			} else if len(batch) == 1 {
				timer = time.NewTimer(m.config.FlushTimeout)
				timeoutC = timer.C
			}

		case <-timeoutC:
			timeoutC = nil
			m.dispatchBatch(batch)
			batch = nil

		case <-ctx.Done():
			return

		case <-m.shutdownCh:
			return
		}
	}
}

func (m *AuditManager) dispatchBatch(batch []repository.AuditLogPayload) {
	batchCopy := make([]repository.AuditLogPayload, len(batch))
	copy(batchCopy, batch)

	select {
	case m.batchChan <- batchCopy:
	default:
		m.saveBatch(-1, batchCopy)
	}
}

func (m *AuditManager) runWorker(ctx context.Context, id int) {
	defer m.wg.Done()
	m.logger.Debug("audit worker started", zap.Int("worker", id))

	for batch := range m.batchChan {
		m.saveBatch(id, batch)
	}
	m.logger.Debug("audit worker exiting", zap.Int("worker", id))
}

// saveBatch writes batch to the sink. The context is detached from the
// request so batches are still stored during shutdown.
func (m *AuditManager) saveBatch(workerID int, batch []repository.AuditLogPayload) {
	ctx, cancel := context.WithTimeout(context.Background(), m.config.SaveTimeout)
	defer cancel()

	if err := m.sink.SaveAuditLogs(ctx, batch); err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("audit_save").Inc()
		m.logger.Error("failed to save audit batch",
			zap.Int("worker", workerID),
			zap.Int("size", len(batch)),
			zap.Error(err))
		for _, entry := range batch {
			m.emergencyLog(entry)
		}
		return
	}
	m.updatePendingCount(-len(batch))
}

// emergencyLog writes an entry that could not reach the sink to the log.
func (m *AuditManager) emergencyLog(entry repository.AuditLogPayload) {
	m.logger.Warn("audit entry not persisted",
		zap.Time("timestamp", entry.Timestamp),
		zap.String("handler", entry.Handler),
		zap.String("method", entry.Method),
		zap.String("path", entry.Path),
		zap.Int("status_code", entry.StatusCode),
		zap.Int64("user_id", entry.UserID),
		zap.String("entity_type", entry.EntityType),
		zap.String("entity_id", entry.EntityID))
	m.updatePendingCount(-1)
}

func (m *AuditManager) updatePendingCount(delta int) {
	m.pendingMu.Lock()
	defer m.pendingMu.Unlock()
	m.pendingCount += delta
}
