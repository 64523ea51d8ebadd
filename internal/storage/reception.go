package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/designhouse/printdesk/internal/access"
	"github.com/designhouse/printdesk/internal/calendar"
	"github.com/designhouse/printdesk/internal/db"
	"github.com/designhouse/printdesk/internal/metrics"
	"github.com/designhouse/printdesk/internal/repository"
)

const (
	msgReceptionForbidden = "Admin or Reception role required to modify reception details."
	msgPaymentComplete    = "Price is completed receive"
	msgPaymentPending     = "Price is not fully received yet"
)

// CreateReception attaches pricing and delivery details to an order.
func (s *Storage) CreateReception(ctx context.Context, p access.Principal, in ReceptionInput) (*Reception, error) {
	if !access.CanManageReception(p) {
		return nil, forbidden(msgReceptionForbidden)
	}

	v := &ValidationError{}
	if in.OrderID <= 0 {
		v.Add("order", "This field is required.")
	}
	validatePrices(v, in.Price, in.ReceivePrice)
	delivery := s.parseDeliveryDate(v, in.DeliveryDate)
	if err := v.err(); err != nil {
		return nil, err
	}

	if _, err := s.repos.Orders.GetByID(ctx, in.OrderID); err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, newValidationError("order", invalidPK(in.OrderID))
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	receptionist := p.UserID
	rec := &repository.ReceptionOrder{
		OrderID:         in.OrderID,
		ReceptionNameID: &receptionist,
		Price:           in.Price,
		ReceivePrice:    in.ReceivePrice,
		ReminderPrice:   reminder(in.Price, in.ReceivePrice),
		DeliveryDate:    delivery,
		IsChecked:       in.IsChecked,
		CreatedAt:       s.timeNow().UTC(),
	}

	err := s.inTx(ctx, func(tx db.Tx) error {
		_, err := s.repos.Receptions.GetByOrderIDTx(ctx, tx, in.OrderID)
		switch {
		case err == nil:
			return receptionExists(in.OrderID)
		case !errors.Is(err, repository.ErrObjectNotFound):
			return fmt.Errorf("failed to check reception details: %w", err)
		}

		if err := s.repos.Receptions.CreateTx(ctx, tx, rec); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return receptionExists(in.OrderID)
			}
			return fmt.Errorf("failed to add reception details: %w", err)
		}
		return s.receptionEventTx(ctx, tx, repository.EventReceptionCreated, p, rec)
	})
	if err != nil {
		return nil, err
	}

	return s.loadReception(ctx, rec.ID)
}

// ListReceptions returns reception records visible to p.
func (s *Storage) ListReceptions(ctx context.Context, p access.Principal, q ReceptionQuery) (*Page[Reception], error) {
	page, size := pageBounds(q.Page, q.PageSize)
	result := &Page[Reception]{Page: page, PageSize: size, Results: []Reception{}}

	criteria := access.Partition(p, access.ViewReceptionRecords, access.Params{Today: s.now()})
	if criteria.Deny {
		return result, nil
	}

	filter := repository.ReceptionFilter{
		OrderID:   q.OrderID,
		IsChecked: q.IsChecked,
		Limit:     size,
		Offset:    (page - 1) * size,
	}
	count, err := s.repos.Receptions.Count(ctx, criteria, filter)
	if err != nil {
		return nil, err
	}
	rows, err := s.repos.Receptions.List(ctx, criteria, filter)
	if err != nil {
		return nil, err
	}

	result.Count = count
	for _, r := range rows {
		result.Results = append(result.Results, s.toReception(r))
	}
	return result, nil
}

func (s *Storage) GetReception(ctx context.Context, p access.Principal, id int64) (*Reception, error) {
	r, err := s.repos.Receptions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get reception details: %w", err)
	}
	if !access.Visible(p, access.ViewReceptionRecords, access.Params{Today: s.now()}, receptionRecord(r)) {
		return nil, ErrNotFound
	}
	out := s.toReception(r)
	return &out, nil
}

func (s *Storage) UpdateReception(ctx context.Context, p access.Principal, id int64, patch ReceptionPatch) (*Reception, error) {
	err := s.inTx(ctx, func(tx db.Tx) error {
		rec, err := s.lockReception(ctx, tx, p, id)
		if err != nil {
			return err
		}

		v := &ValidationError{}
		if patch.Price != nil {
			rec.Price = *patch.Price
		}
		if patch.ReceivePrice != nil {
			rec.ReceivePrice = *patch.ReceivePrice
		}
		if patch.IsChecked != nil {
			rec.IsChecked = *patch.IsChecked
		}
		if patch.DeliveryDate != nil {
			rec.DeliveryDate = s.parseDeliveryDate(v, patch.DeliveryDate)
		}
		validatePrices(v, rec.Price, rec.ReceivePrice)
		if err := v.err(); err != nil {
			return err
		}

		if patch.OrderID != nil && *patch.OrderID != rec.OrderID {
			if err := s.moveReceptionTx(ctx, tx, rec, *patch.OrderID); err != nil {
				return err
			}
		}

		rec.ReminderPrice = reminder(rec.Price, rec.ReceivePrice)
		if err := s.repos.Receptions.UpdateTx(ctx, tx, rec); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return receptionExists(rec.OrderID)
			}
			return fmt.Errorf("failed to update reception details: %w", err)
		}
		return s.receptionEventTx(ctx, tx, repository.EventReceptionUpdated, p, rec)
	})
	if err != nil {
		return nil, err
	}
	return s.loadReception(ctx, id)
}

func (s *Storage) DeleteReception(ctx context.Context, p access.Principal, id int64) error {
	return s.inTx(ctx, func(tx db.Tx) error {
		if _, err := s.lockReception(ctx, tx, p, id); err != nil {
			return err
		}
		if err := s.repos.Receptions.DeleteTx(ctx, tx, id); err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to delete reception details: %w", err)
		}
		return nil
	})
}

// CompletePayment moves the outstanding amount of an order into received.
func (s *Storage) CompletePayment(ctx context.Context, p access.Principal, orderID int64) (*PaymentResult, error) {
	if !access.CanManageReception(p) {
		return nil, forbidden(msgReceptionForbidden)
	}

	var result PaymentResult
	err := s.inTx(ctx, func(tx db.Tx) error {
		rec, err := s.repos.Receptions.GetByOrderIDTx(ctx, tx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to get reception details: %w", err)
		}

		rec.ReceivePrice = rec.ReceivePrice.Add(rec.ReminderPrice)
		rec.ReminderPrice = reminder(rec.Price, rec.ReceivePrice)
		if err := s.repos.Receptions.UpdateTx(ctx, tx, rec); err != nil {
			return fmt.Errorf("failed to update reception details: %w", err)
		}

		result = PaymentResult{
			OrderID:       rec.OrderID,
			ReminderPrice: rec.ReminderPrice,
			ReceivePrice:  rec.ReceivePrice,
			Completed:     rec.ReceivePrice.Equal(rec.Price),
		}
		return s.receptionEventTx(ctx, tx, repository.EventPaymentCompleted, p, rec)
	})
	if err != nil {
		return nil, err
	}

	result.Message = msgPaymentPending
	if result.Completed {
		result.Message = msgPaymentComplete
		metrics.PaymentsCompletedTotal.Inc()
	}
	s.logger.Info("payment completed",
		zap.Int64("order_id", orderID),
		zap.String("receive_price", result.ReceivePrice.String()),
		zap.Bool("completed", result.Completed))
	return &result, nil
}

func (s *Storage) lockReception(ctx context.Context, tx db.Tx, p access.Principal, id int64) (*repository.ReceptionOrder, error) {
	rec, err := s.repos.Receptions.GetByIDTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get reception details: %w", err)
	}
	if !access.Visible(p, access.ViewReceptionRecords, access.Params{Today: s.now()}, receptionRecord(rec)) {
		return nil, ErrNotFound
	}
	if !access.CanManageReception(p) {
		return nil, forbidden(msgReceptionForbidden)
	}
	return rec, nil
}

func (s *Storage) moveReceptionTx(ctx context.Context, tx db.Tx, rec *repository.ReceptionOrder, orderID int64) error {
	if _, err := s.repos.Orders.GetByIDTx(ctx, tx, orderID); err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return newValidationError("order", invalidPK(orderID))
		}
		return fmt.Errorf("failed to get order: %w", err)
	}
	if _, err := s.repos.Receptions.GetByOrderIDTx(ctx, tx, orderID); err == nil {
		return receptionExists(orderID)
	} else if !errors.Is(err, repository.ErrObjectNotFound) {
		return fmt.Errorf("failed to check reception details: %w", err)
	}
	rec.OrderID = orderID
	return nil
}

func (s *Storage) receptionEventTx(ctx context.Context, tx db.Tx, typ repository.EventType, p access.Principal, rec *repository.ReceptionOrder) error {
	ev := repository.OrderEvent{
		Type:       typ,
		OrderID:    rec.OrderID,
		SecretKey:  rec.OrderSecretKey,
		ActorID:    p.UserID,
		OccurredAt: s.timeNow().UTC(),
	}
	return s.publishTx(ctx, tx, s.cfg.EventsTopic, ev)
}

// parseDeliveryDate reads a workshop calendar date. Empty input clears it.
func (s *Storage) parseDeliveryDate(v *ValidationError, raw *string) *time.Time {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil
	}
	t, err := calendar.Parse(s.cfg.Calendar, *raw, s.cfg.Location)
	if err != nil {
		v.Add("delivery_date", "Invalid date format. Use YYYY-MM-DD or YYYY/MM/DD.")
		return nil
	}
	return &t
}

func (s *Storage) loadReception(ctx context.Context, id int64) (*Reception, error) {
	r, err := s.repos.Receptions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get reception details: %w", err)
	}
	out := s.toReception(r)
	return &out, nil
}

func reminder(price, received decimal.Decimal) decimal.Decimal {
	return price.Sub(received)
}

func receptionExists(orderID int64) error {
	return newValidationError("order", fmt.Sprintf("Reception details already exist for Order ID %d.", orderID))
}
