package repository

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrObjectNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate")
	// ErrReferenced is returned when a row cannot be removed or pointed at
	// because of a foreign key.
	ErrReferenced = errors.New("referenced")
)

type User struct {
	ID        int64     `db:"id"`
	Username  string    `db:"username"`
	Password  string    `db:"password"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	Email     string    `db:"email"`
	Role      int16     `db:"role"`
	IsAdmin   bool      `db:"is_admin"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
}

type Category struct {
	ID           int64           `db:"id"`
	Name         string          `db:"name"`
	Stages       json.RawMessage `db:"stages"`
	CategoryList *string         `db:"category_list"`
}

type AttributeType struct {
	ID         int64  `db:"id"`
	Name       string `db:"name"`
	CategoryID int64  `db:"category_id"`
	Type       string `db:"type"`
}

type AttributeValue struct {
	ID             int64  `db:"id"`
	AttributeID    int64  `db:"attribute_id"`
	AttributeValue string `db:"attribute_value"`
}

// Order is a row of orders joined with its designer's public details.
type Order struct {
	ID           int64           `db:"id"`
	OrderName    string          `db:"order_name"`
	CustomerName string          `db:"customer_name"`
	DesignerID   *int64          `db:"designer_id"`
	Description  string          `db:"description"`
	SecretKey    string          `db:"secret_key"`
	CategoryID   int64           `db:"category_id"`
	Status       string          `db:"status"`
	Attributes   json.RawMessage `db:"attributes"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`

	DesignerEmail     *string `db:"designer_email"`
	DesignerFirstName *string `db:"designer_first_name"`
	DesignerLastName  *string `db:"designer_last_name"`
}

type ReceptionOrder struct {
	ID              int64           `db:"id"`
	OrderID         int64           `db:"order_id"`
	ReceptionNameID *int64          `db:"reception_name_id"`
	Price           decimal.Decimal `db:"price"`
	ReceivePrice    decimal.Decimal `db:"receive_price"`
	ReminderPrice   decimal.Decimal `db:"reminder_price"`
	DeliveryDate    *time.Time      `db:"delivery_date"`
	IsChecked       bool            `db:"is_checked"`
	CreatedAt       time.Time       `db:"created_at"`

	// Joined from orders.
	OrderSecretKey  string    `db:"order_secret_key"`
	OrderName       string    `db:"order_name"`
	DesignerID      *int64    `db:"designer_id"`
	OrderStatus     string    `db:"order_status"`
	OrderCategoryID int64     `db:"order_category_id"`
	OrderCreatedAt  time.Time `db:"order_created_at"`
}

type HistoryEntry struct {
	ID        int64     `db:"id"`
	OrderID   int64     `db:"order_id"`
	Status    string    `db:"status"`
	ChangedBy *int64    `db:"changed_by"`
	ChangedAt time.Time `db:"changed_at"`
}

// OrderFilter narrows a listing beyond the role partition.
type OrderFilter struct {
	Search     string
	Status     string
	DesignerID *int64
	Limit      int
	Offset     int
}

type ReceptionFilter struct {
	OrderID   *int64
	IsChecked *bool
	Limit     int
	Offset    int
}
