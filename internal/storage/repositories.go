//go:generate mockgen -source ./repositories.go -destination=./mocks/repositories.go -package=mock_storage
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/designhouse/printdesk/internal/access"
	"github.com/designhouse/printdesk/internal/db"
	"github.com/designhouse/printdesk/internal/repository"
)

type OrderRepository interface {
	// CreateTx inserts order unless its secret key is taken and reports
	// whether the row was written.
	CreateTx(ctx context.Context, tx db.Tx, order *repository.Order) (bool, error)
	GetByID(ctx context.Context, id int64) (*repository.Order, error)
	GetByIDTx(ctx context.Context, tx db.Tx, id int64) (*repository.Order, error)
	UpdateTx(ctx context.Context, tx db.Tx, order *repository.Order) error
	DeleteTx(ctx context.Context, tx db.Tx, id int64) error
	List(ctx context.Context, c access.Criteria, f repository.OrderFilter) ([]*repository.Order, error)
	Count(ctx context.Context, c access.Criteria, f repository.OrderFilter) (int, error)
}

type ReceptionRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, r *repository.ReceptionOrder) error
	GetByID(ctx context.Context, id int64) (*repository.ReceptionOrder, error)
	GetByIDTx(ctx context.Context, tx db.Tx, id int64) (*repository.ReceptionOrder, error)
	GetByOrderIDTx(ctx context.Context, tx db.Tx, orderID int64) (*repository.ReceptionOrder, error)
	UpdateTx(ctx context.Context, tx db.Tx, r *repository.ReceptionOrder) error
	DeleteTx(ctx context.Context, tx db.Tx, id int64) error
	List(ctx context.Context, c access.Criteria, f repository.ReceptionFilter) ([]*repository.ReceptionOrder, error)
	Count(ctx context.Context, c access.Criteria, f repository.ReceptionFilter) (int, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, c *repository.Category) error
	GetByID(ctx context.Context, id int64) (*repository.Category, error)
	List(ctx context.Context, categoryList *string) ([]*repository.Category, error)
	Update(ctx context.Context, c *repository.Category) error
	Delete(ctx context.Context, id int64) error
}

type AttributeTypeRepository interface {
	Create(ctx context.Context, a *repository.AttributeType) error
	GetByID(ctx context.Context, id int64) (*repository.AttributeType, error)
	List(ctx context.Context, categoryID *int64) ([]*repository.AttributeType, error)
	Update(ctx context.Context, a *repository.AttributeType) error
	Delete(ctx context.Context, id int64) error
}

type AttributeValueRepository interface {
	Create(ctx context.Context, v *repository.AttributeValue) error
	GetByID(ctx context.Context, id int64) (*repository.AttributeValue, error)
	List(ctx context.Context, attributeID *int64) ([]*repository.AttributeValue, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]*repository.AttributeValue, error)
	Update(ctx context.Context, v *repository.AttributeValue) error
	Delete(ctx context.Context, id int64) error
}

type UserRepository interface {
	Create(ctx context.Context, u *repository.User) error
	GetByID(ctx context.Context, id int64) (*repository.User, error)
	GetByUsername(ctx context.Context, username string) (*repository.User, error)
	List(ctx context.Context) ([]*repository.User, error)
}

type HistoryRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, entry *repository.HistoryEntry) error
	GetByOrderID(ctx context.Context, orderID int64) ([]*repository.HistoryEntry, error)
}

type OutboxTaskRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, task *repository.OutboxTask) error
	GetProcessableTasksTx(ctx context.Context, tx db.Tx, limit, maxAttempts int) ([]*repository.OutboxTask, error)
	UpdateTaskStatusTx(ctx context.Context, tx db.Tx, id uuid.UUID, status repository.TaskStatus, attempts int, lastError *string, completedAt *time.Time) error
	UpdateTaskStatus(ctx context.Context, db db.DB, id uuid.UUID, status repository.TaskStatus, attempts int, lastError *string, completedAt *time.Time) error
}
