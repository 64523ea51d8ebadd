package storage

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/designhouse/printdesk/internal/access"
	"github.com/designhouse/printdesk/internal/db"
	"github.com/designhouse/printdesk/internal/metrics"
	"github.com/designhouse/printdesk/internal/repository"
	"github.com/designhouse/printdesk/internal/secretkey"
)

// CreateOrder stores a new order with a freshly issued secret key.
func (s *Storage) CreateOrder(ctx context.Context, p access.Principal, view access.View, in OrderInput) (*Order, error) {
	if !access.CanCreateOrder(p, view) {
		return nil, forbidden("You do not have permission to create orders here.")
	}

	v := &ValidationError{}
	requireText(v, "order_name", in.OrderName)
	requireText(v, "customer_name", in.CustomerName)
	requireText(v, "status", in.Status)
	attrs := normalizeAttributes(v, in.Attributes)
	if in.CategoryID <= 0 {
		v.Add("category", "This field is required.")
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	var designerID *int64
	switch {
	case access.AssignsDesigner(p):
		id := p.UserID
		designerID = &id
	case p.Admin() && in.DesignerID != nil:
		if err := s.checkDesigner(ctx, *in.DesignerID); err != nil {
			return nil, err
		}
		designerID = in.DesignerID
	}

	now := s.timeNow().UTC()
	order := &repository.Order{
		OrderName:    in.OrderName,
		CustomerName: in.CustomerName,
		DesignerID:   designerID,
		Description:  in.Description,
		CategoryID:   in.CategoryID,
		Status:       in.Status,
		Attributes:   attrs,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := s.inTx(ctx, func(tx db.Tx) error {
		key, err := s.keys.Generate(ctx, func(ctx context.Context, key string) (bool, error) {
			order.SecretKey = key
			return s.repos.Orders.CreateTx(ctx, tx, order)
		})
		if err != nil {
			if errors.Is(err, secretkey.ErrExhausted) {
				return ErrKeyExhausted
			}
			if errors.Is(err, repository.ErrReferenced) {
				return newValidationError("category", invalidPK(in.CategoryID))
			}
			return fmt.Errorf("failed to add order: %w", err)
		}
		order.SecretKey = key

		if err := s.repos.History.CreateTx(ctx, tx, &repository.HistoryEntry{
			OrderID:   order.ID,
			Status:    order.Status,
			ChangedBy: &p.UserID,
			ChangedAt: now,
		}); err != nil {
			return fmt.Errorf("failed to add order history entry: %w", err)
		}

		return s.orderEventTx(ctx, tx, repository.EventOrderCreated, p, order, "")
	})
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("create_order").Inc()
		return nil, err
	}

	metrics.OrdersCreatedTotal.Inc()
	s.logger.Info("order created",
		zap.Int64("order_id", order.ID),
		zap.String("secret_key", order.SecretKey),
		zap.Int64("actor_id", p.UserID))

	return s.loadOrder(ctx, order.ID)
}

// ListOrders returns the page of orders p can see through scope.
func (s *Storage) ListOrders(ctx context.Context, p access.Principal, scope Scope, q OrderQuery) (*Page[Order], error) {
	page, size := pageBounds(q.Page, q.PageSize)
	result := &Page[Order]{Page: page, PageSize: size, Results: []Order{}}

	criteria := access.Partition(p, scope.View, s.params(scope))
	if criteria.Deny {
		return result, nil
	}

	filter := repository.OrderFilter{
		Search:     q.Search,
		Status:     q.Status,
		DesignerID: q.DesignerID,
		Limit:      size,
		Offset:     (page - 1) * size,
	}

	count, err := s.repos.Orders.Count(ctx, criteria, filter)
	if err != nil {
		return nil, err
	}
	rows, err := s.repos.Orders.List(ctx, criteria, filter)
	if err != nil {
		return nil, err
	}

	result.Count = count
	for _, o := range rows {
		result.Results = append(result.Results, toOrder(o))
	}
	return result, nil
}

func (s *Storage) GetOrder(ctx context.Context, p access.Principal, scope Scope, id int64) (*Order, error) {
	o, err := s.repos.Orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if !access.Visible(p, scope.View, s.params(scope), orderRecord(o)) {
		return nil, ErrNotFound
	}
	out := toOrder(o)
	return &out, nil
}

// UpdateOrder applies patch to an order visible and writable through scope.
func (s *Storage) UpdateOrder(ctx context.Context, p access.Principal, scope Scope, id int64, patch OrderPatch) (*Order, error) {
	params := s.params(scope)

	err := s.inTx(ctx, func(tx db.Tx) error {
		o, err := s.lockVisibleOrder(ctx, tx, p, scope.View, params, id)
		if err != nil {
			return err
		}

		oldStatus := o.Status
		if err := s.applyOrderPatch(ctx, p, o, patch); err != nil {
			return err
		}
		o.UpdatedAt = s.timeNow().UTC()

		if err := s.repos.Orders.UpdateTx(ctx, tx, o); err != nil {
			if errors.Is(err, repository.ErrReferenced) {
				return newValidationError("category", invalidPK(o.CategoryID))
			}
			return fmt.Errorf("failed to update order: %w", err)
		}

		if o.Status != oldStatus {
			if err := s.recordStatusTx(ctx, tx, p, o, oldStatus); err != nil {
				return err
			}
		}
		return s.orderEventTx(ctx, tx, repository.EventOrderUpdated, p, o, oldStatus)
	})
	if err != nil {
		return nil, err
	}
	return s.loadOrder(ctx, id)
}

func (s *Storage) DeleteOrder(ctx context.Context, p access.Principal, scope Scope, id int64) error {
	params := s.params(scope)

	return s.inTx(ctx, func(tx db.Tx) error {
		o, err := s.lockVisibleOrder(ctx, tx, p, scope.View, params, id)
		if err != nil {
			return err
		}
		if err := s.repos.Orders.DeleteTx(ctx, tx, id); err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to delete order: %w", err)
		}
		return s.orderEventTx(ctx, tx, repository.EventOrderDeleted, p, o, o.Status)
	})
}

// UpdateOrderStatus sets the status of any existing order.
func (s *Storage) UpdateOrderStatus(ctx context.Context, p access.Principal, orderID int64, status string) (*Order, error) {
	if !p.Admin() && !p.Role.Known() {
		return nil, forbidden("You do not have permission to change order status.")
	}

	v := &ValidationError{}
	if orderID <= 0 {
		v.Add("order_id", "This field is required.")
	}
	requireText(v, "status", status)
	if err := v.err(); err != nil {
		return nil, err
	}

	err := s.inTx(ctx, func(tx db.Tx) error {
		o, err := s.repos.Orders.GetByIDTx(ctx, tx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return newValidationError("order_id", "Order with this ID does not exist.")
			}
			return fmt.Errorf("failed to get order: %w", err)
		}

		oldStatus := o.Status
		o.Status = status
		o.UpdatedAt = s.timeNow().UTC()
		if err := s.repos.Orders.UpdateTx(ctx, tx, o); err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}
		return s.recordStatusTx(ctx, tx, p, o, oldStatus)
	})
	if err != nil {
		return nil, err
	}
	return s.loadOrder(ctx, orderID)
}

// OrderHistory lists status changes of an order p can open in detail.
func (s *Storage) OrderHistory(ctx context.Context, p access.Principal, id int64) ([]HistoryEntry, error) {
	o, err := s.repos.Orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	params := access.Params{Today: s.now(), Status: o.Status}
	if !access.Visible(p, access.ViewStatusDetail, params, orderRecord(o)) {
		return nil, ErrNotFound
	}

	entries, err := s.repos.History.GetByOrderID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order history: %w", err)
	}

	out := make([]HistoryEntry, len(entries))
	for i, e := range entries {
		out[i] = HistoryEntry{Status: e.Status, ChangedBy: e.ChangedBy, ChangedAt: e.ChangedAt}
	}
	return out, nil
}

func (s *Storage) lockVisibleOrder(ctx context.Context, tx db.Tx, p access.Principal, view access.View, params access.Params, id int64) (*repository.Order, error) {
	o, err := s.repos.Orders.GetByIDTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	r := orderRecord(o)
	if !access.Visible(p, view, params, r) {
		return nil, ErrNotFound
	}
	if !access.CanWrite(p, view, params, r) {
		return nil, forbidden("You do not have permission to modify this order.")
	}
	return o, nil
}

func (s *Storage) applyOrderPatch(ctx context.Context, p access.Principal, o *repository.Order, patch OrderPatch) error {
	v := &ValidationError{}
	if patch.OrderName != nil {
		requireText(v, "order_name", *patch.OrderName)
		o.OrderName = *patch.OrderName
	}
	if patch.CustomerName != nil {
		requireText(v, "customer_name", *patch.CustomerName)
		o.CustomerName = *patch.CustomerName
	}
	if patch.Description != nil {
		o.Description = *patch.Description
	}
	if patch.Status != nil {
		requireText(v, "status", *patch.Status)
		o.Status = *patch.Status
	}
	if patch.Attributes != nil {
		o.Attributes = normalizeAttributes(v, patch.Attributes)
	}
	if patch.CategoryID != nil && *patch.CategoryID != o.CategoryID {
		if *patch.CategoryID <= 0 {
			v.Add("category", "This field is required.")
		}
		o.CategoryID = *patch.CategoryID
	}
	if err := v.err(); err != nil {
		return err
	}

	if patch.CategoryID != nil {
		if err := s.checkCategory(ctx, o.CategoryID); err != nil {
			return err
		}
	}
	if patch.DesignerID != nil && p.Admin() {
		if err := s.checkDesigner(ctx, *patch.DesignerID); err != nil {
			return err
		}
		o.DesignerID = patch.DesignerID
	}
	return nil
}

func (s *Storage) recordStatusTx(ctx context.Context, tx db.Tx, p access.Principal, o *repository.Order, oldStatus string) error {
	if err := s.repos.History.CreateTx(ctx, tx, &repository.HistoryEntry{
		OrderID:   o.ID,
		Status:    o.Status,
		ChangedBy: &p.UserID,
		ChangedAt: o.UpdatedAt,
	}); err != nil {
		return fmt.Errorf("failed to add order history entry: %w", err)
	}
	metrics.OrderStatusChangesTotal.Inc()
	return s.orderEventTx(ctx, tx, repository.EventOrderStatusChanged, p, o, oldStatus)
}

func (s *Storage) checkCategory(ctx context.Context, id int64) error {
	if _, err := s.repos.Categories.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return newValidationError("category", invalidPK(id))
		}
		return fmt.Errorf("failed to get category: %w", err)
	}
	return nil
}

func (s *Storage) checkDesigner(ctx context.Context, id int64) error {
	u, err := s.repos.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return newValidationError("designer", invalidPK(id))
		}
		return fmt.Errorf("failed to get designer: %w", err)
	}
	role := access.Role(u.Role)
	if role != access.RoleDesigner && role != access.RoleSuperDesigner {
		return newValidationError("designer", "User is not a designer.")
	}
	return nil
}

func (s *Storage) loadOrder(ctx context.Context, id int64) (*Order, error) {
	o, err := s.repos.Orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	out := toOrder(o)
	return &out, nil
}
