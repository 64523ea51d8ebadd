package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/designhouse/printdesk/internal/access"
	"github.com/designhouse/printdesk/internal/db"
	"github.com/designhouse/printdesk/internal/repository"
	"github.com/designhouse/printdesk/internal/storage"
)

const receptionSelect = `
    SELECT
        r.id, r.order_id, r.reception_name_id, r.price, r.receive_price, r.reminder_price,
        r.delivery_date, r.is_checked, r.created_at,
        o.secret_key AS order_secret_key, o.order_name, o.designer_id, o.status AS order_status, o.category_id AS order_category_id,
        o.created_at AS order_created_at
    FROM reception_orders r
    JOIN orders o ON o.id = r.order_id`

type ReceptionRepo struct {
	db db.DB
}

func NewReceptionRepo(db db.DB) storage.ReceptionRepository {
	return &ReceptionRepo{db: db}
}

func (r *ReceptionRepo) CreateTx(ctx context.Context, tx db.Tx, rec *repository.ReceptionOrder) error {
	var created struct {
		ID        int64     `db:"id"`
		CreatedAt time.Time `db:"created_at"`
	}
	err := tx.Get(ctx, &created, `
        INSERT INTO reception_orders (
            order_id, reception_name_id, price, receive_price, reminder_price,
            delivery_date, is_checked, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at
    `, rec.OrderID, rec.ReceptionNameID, rec.Price, rec.ReceivePrice, rec.ReminderPrice,
		rec.DeliveryDate, rec.IsChecked, rec.CreatedAt)
	if err != nil {
		return mapWriteError(err)
	}
	rec.ID = created.ID
	rec.CreatedAt = created.CreatedAt
	return nil
}

func (r *ReceptionRepo) GetByID(ctx context.Context, id int64) (*repository.ReceptionOrder, error) {
	var rec repository.ReceptionOrder
	if err := r.db.Get(ctx, &rec, receptionSelect+" WHERE r.id = $1", id); err != nil {
		if isNoRows(err) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *ReceptionRepo) GetByIDTx(ctx context.Context, tx db.Tx, id int64) (*repository.ReceptionOrder, error) {
	var rec repository.ReceptionOrder
	if err := tx.Get(ctx, &rec, receptionSelect+" WHERE r.id = $1 FOR UPDATE OF r", id); err != nil {
		if isNoRows(err) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *ReceptionRepo) GetByOrderIDTx(ctx context.Context, tx db.Tx, orderID int64) (*repository.ReceptionOrder, error) {
	var rec repository.ReceptionOrder
	if err := tx.Get(ctx, &rec, receptionSelect+" WHERE r.order_id = $1 FOR UPDATE OF r", orderID); err != nil {
		if isNoRows(err) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *ReceptionRepo) UpdateTx(ctx context.Context, tx db.Tx, rec *repository.ReceptionOrder) error {
	tag, err := tx.Exec(ctx, `
        UPDATE reception_orders
        SET
            order_id = $1,
            reception_name_id = $2,
            price = $3,
            receive_price = $4,
            reminder_price = $5,
            delivery_date = $6,
            is_checked = $7
        WHERE id = $8
    `, rec.OrderID, rec.ReceptionNameID, rec.Price, rec.ReceivePrice, rec.ReminderPrice,
		rec.DeliveryDate, rec.IsChecked, rec.ID)
	if err != nil {
		return mapWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

func (r *ReceptionRepo) DeleteTx(ctx context.Context, tx db.Tx, id int64) error {
	tag, err := tx.Exec(ctx, "DELETE FROM reception_orders WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

func (r *ReceptionRepo) List(ctx context.Context, c access.Criteria, f repository.ReceptionFilter) ([]*repository.ReceptionOrder, error) {
	var w where
	w.applyCriteria(c)
	w.applyReceptionFilter(f)

	query := receptionSelect + w.String() + " ORDER BY r.created_at DESC, r.id DESC" + w.limit(f.Limit, f.Offset)

	var recs []*repository.ReceptionOrder
	if err := r.db.Select(ctx, &recs, query, w.args...); err != nil {
		return nil, fmt.Errorf("failed to list reception orders: %w", err)
	}
	return recs, nil
}

func (r *ReceptionRepo) Count(ctx context.Context, c access.Criteria, f repository.ReceptionFilter) (int, error) {
	var w where
	w.applyCriteria(c)
	w.applyReceptionFilter(f)

	var count int
	err := r.db.Get(ctx, &count,
		"SELECT count(*) FROM reception_orders r JOIN orders o ON o.id = r.order_id"+w.String(), w.args...)
	if err != nil {
		return 0, fmt.Errorf("failed to count reception orders: %w", err)
	}
	return count, nil
}
