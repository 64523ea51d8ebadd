package postgresql

import (
	"context"
	"fmt"

	"github.com/designhouse/printdesk/internal/access"
	"github.com/designhouse/printdesk/internal/db"
	"github.com/designhouse/printdesk/internal/repository"
	"github.com/designhouse/printdesk/internal/storage"
)

const orderColumns = `
        o.id, o.order_name, o.customer_name, o.designer_id, o.description, o.secret_key,
        o.category_id, o.status, o.attributes, o.created_at, o.updated_at,
        u.email AS designer_email, u.first_name AS designer_first_name,
        u.last_name AS designer_last_name`

const orderFrom = `
    FROM orders o
    LEFT JOIN users u ON u.id = o.designer_id`

type OrderRepo struct {
	db db.DB
}

func NewOrderRepo(db db.DB) storage.OrderRepository {
	return &OrderRepo{db: db}
}

func (r *OrderRepo) CreateTx(ctx context.Context, tx db.Tx, order *repository.Order) (bool, error) {
	var id int64
	err := tx.Get(ctx, &id, `
        INSERT INTO orders (
            order_name, customer_name, designer_id, description, secret_key,
            category_id, status, attributes, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        ON CONFLICT (secret_key) DO NOTHING
        RETURNING id
    `, order.OrderName, order.CustomerName, order.DesignerID, order.Description, order.SecretKey,
		order.CategoryID, order.Status, order.Attributes, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, mapWriteError(err)
	}
	order.ID = id
	return true, nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id int64) (*repository.Order, error) {
	var order repository.Order
	err := r.db.Get(ctx, &order, "SELECT"+orderColumns+orderFrom+" WHERE o.id = $1", id)
	if err != nil {
		if isNoRows(err) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepo) GetByIDTx(ctx context.Context, tx db.Tx, id int64) (*repository.Order, error) {
	var order repository.Order
	err := tx.Get(ctx, &order, "SELECT"+orderColumns+orderFrom+" WHERE o.id = $1 FOR UPDATE OF o", id)
	if err != nil {
		if isNoRows(err) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepo) UpdateTx(ctx context.Context, tx db.Tx, order *repository.Order) error {
	tag, err := tx.Exec(ctx, `
        UPDATE orders
        SET
            order_name = $1,
            customer_name = $2,
            designer_id = $3,
            description = $4,
            category_id = $5,
            status = $6,
            attributes = $7,
            updated_at = $8
        WHERE id = $9
    `, order.OrderName, order.CustomerName, order.DesignerID, order.Description, order.CategoryID,
		order.Status, order.Attributes, order.UpdatedAt, order.ID)
	if err != nil {
		return mapWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

func (r *OrderRepo) DeleteTx(ctx context.Context, tx db.Tx, id int64) error {
	tag, err := tx.Exec(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return mapWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

func (r *OrderRepo) List(ctx context.Context, c access.Criteria, f repository.OrderFilter) ([]*repository.Order, error) {
	var w where
	w.applyCriteria(c)
	w.applyOrderFilter(f)

	query := "SELECT" + orderColumns + orderFrom + w.String() +
		" ORDER BY o.created_at DESC, o.id DESC" + w.limit(f.Limit, f.Offset)

	var orders []*repository.Order
	if err := r.db.Select(ctx, &orders, query, w.args...); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (r *OrderRepo) Count(ctx context.Context, c access.Criteria, f repository.OrderFilter) (int, error) {
	var w where
	w.applyCriteria(c)
	w.applyOrderFilter(f)

	var count int
	if err := r.db.Get(ctx, &count, "SELECT count(*) FROM orders o"+w.String(), w.args...); err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}
