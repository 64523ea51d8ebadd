package storage

import (
	"context"

	"github.com/designhouse/printdesk/internal/db"
	"github.com/designhouse/printdesk/internal/repository"
)

// SaveAuditLogs queues a batch of audit entries for publishing.
func (s *Storage) SaveAuditLogs(ctx context.Context, entries []repository.AuditLogPayload) error {
	if len(entries) == 0 {
		return nil
	}
	return s.inTx(ctx, func(tx db.Tx) error {
		for _, e := range entries {
			if err := s.publishTx(ctx, tx, s.cfg.AuditTopic, e); err != nil {
				return err
			}
		}
		return nil
	})
}
