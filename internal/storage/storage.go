//go:generate mockgen -source ./storage.go -destination=./mocks/storage.go -package=mock_storage -exclude_interfaces=CategoryCache
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/designhouse/printdesk/internal/access"
	"github.com/designhouse/printdesk/internal/calendar"
	"github.com/designhouse/printdesk/internal/db"
	"github.com/designhouse/printdesk/internal/repository"
	"github.com/designhouse/printdesk/internal/secretkey"
)

type Repositories struct {
	Orders          OrderRepository
	Receptions      ReceptionRepository
	Categories      CategoryRepository
	AttributeTypes  AttributeTypeRepository
	AttributeValues AttributeValueRepository
	Users           UserRepository
	History         HistoryRepository
	Outbox          OutboxTaskRepository
}

type KeyGenerator interface {
	Generate(ctx context.Context, claim secretkey.ClaimFunc) (string, error)
}

type CategoryCache interface {
	Get(categoryID int64) (*CategoryAttributes, bool)
	Set(categoryID int64, attrs *CategoryAttributes)
	Invalidate(categoryID int64)
	Clear()
}

type Config struct {
	EventsTopic string
	AuditTopic  string
	Location    *time.Location
	Calendar    calendar.Calendar
}

type Storage struct {
	db     db.DB
	repos  Repositories
	keys   KeyGenerator
	cache  CategoryCache
	cfg    Config
	logger *zap.Logger

	timeNow func() time.Time
}

func NewStorage(db db.DB, repos Repositories, keys KeyGenerator, cache CategoryCache, cfg Config, logger *zap.Logger) *Storage {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Calendar == nil {
		cfg.Calendar = calendar.Gregorian{}
	}
	return &Storage{
		db:      db,
		repos:   repos,
		keys:    keys,
		cache:   cache,
		cfg:     cfg,
		logger:  logger,
		timeNow: time.Now,
	}
}

func (s *Storage) now() time.Time {
	return s.timeNow().In(s.cfg.Location)
}

func (s *Storage) params(scope Scope) access.Params {
	return access.Params{
		Today:      s.now(),
		Status:     scope.Status,
		CategoryID: scope.CategoryID,
	}
}

// inTx runs fn in a transaction, committing only when fn succeeds.
func (s *Storage) inTx(ctx context.Context, fn func(tx db.Tx) error) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			s.logger.Warn("rollback failed", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Storage) publishTx(ctx context.Context, tx db.Tx, topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	task := &repository.OutboxTask{Topic: topic, Payload: body}
	if err := s.repos.Outbox.CreateTx(ctx, tx, task); err != nil {
		return fmt.Errorf("failed to enqueue event: %w", err)
	}
	return nil
}

func (s *Storage) orderEventTx(ctx context.Context, tx db.Tx, typ repository.EventType, p access.Principal, o *repository.Order, oldStatus string) error {
	ev := repository.OrderEvent{
		Type:       typ,
		OrderID:    o.ID,
		SecretKey:  o.SecretKey,
		OldStatus:  oldStatus,
		NewStatus:  o.Status,
		ActorID:    p.UserID,
		OccurredAt: s.timeNow().UTC(),
	}
	return s.publishTx(ctx, tx, s.cfg.EventsTopic, ev)
}

func orderRecord(o *repository.Order) access.Record {
	return access.Record{
		DesignerID: o.DesignerID,
		Status:     o.Status,
		CategoryID: o.CategoryID,
		CreatedAt:  o.CreatedAt,
	}
}

func receptionRecord(r *repository.ReceptionOrder) access.Record {
	return access.Record{
		DesignerID: r.DesignerID,
		Status:     r.OrderStatus,
		CategoryID: r.OrderCategoryID,
		CreatedAt:  r.OrderCreatedAt,
	}
}

func toOrder(o *repository.Order) Order {
	out := Order{
		ID:           o.ID,
		OrderName:    o.OrderName,
		CustomerName: o.CustomerName,
		Description:  o.Description,
		CategoryID:   o.CategoryID,
		SecretKey:    o.SecretKey,
		Attributes:   o.Attributes,
		Status:       o.Status,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
	if o.DesignerID != nil {
		d := &DesignerDetails{ID: *o.DesignerID}
		if o.DesignerEmail != nil {
			d.Email = *o.DesignerEmail
		}
		d.FullName = fullName(o.DesignerFirstName, o.DesignerLastName)
		if d.FullName == "" {
			d.FullName = d.Email
		}
		out.DesignerDetails = d
	}
	return out
}

func fullName(first, last *string) string {
	var f, l string
	if first != nil {
		f = *first
	}
	if last != nil {
		l = *last
	}
	switch {
	case f == "":
		return l
	case l == "":
		return f
	}
	return f + " " + l
}

func (s *Storage) toReception(r *repository.ReceptionOrder) Reception {
	out := Reception{
		ID: r.ID,
		OrderInfo: OrderInfo{
			ID:        r.OrderID,
			SecretKey: r.OrderSecretKey,
			OrderName: r.OrderName,
		},
		ReceptionNameID: r.ReceptionNameID,
		Price:           r.Price,
		ReceivePrice:    r.ReceivePrice,
		ReminderPrice:   r.ReminderPrice,
		IsChecked:       r.IsChecked,
		CreatedAt:       r.CreatedAt,
	}
	if r.DeliveryDate != nil {
		d := calendar.Format(s.cfg.Calendar, *r.DeliveryDate)
		out.DeliveryDate = &d
	}
	return out
}

func pageBounds(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size
}
