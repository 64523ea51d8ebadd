package storage

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/designhouse/printdesk/internal/access"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	// MaxPage keeps (page-1)*MaxPageSize far from int overflow. Pages past it
	// are served as MaxPage, which is empty for any realistic table.
	MaxPage = 1_000_000
)

type DesignerDetails struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

type Order struct {
	ID              int64            `json:"id"`
	OrderName       string           `json:"order_name"`
	CustomerName    string           `json:"customer_name"`
	DesignerDetails *DesignerDetails `json:"designer_details"`
	Description     string           `json:"description"`
	CategoryID      int64            `json:"category"`
	SecretKey       string           `json:"secret_key"`
	Attributes      json.RawMessage  `json:"attributes"`
	Status          string           `json:"status"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

type OrderInfo struct {
	ID        int64  `json:"id"`
	SecretKey string `json:"secret_key"`
	OrderName string `json:"order_name"`
}

type Reception struct {
	ID              int64           `json:"id"`
	OrderInfo       OrderInfo       `json:"order_info"`
	ReceptionNameID *int64          `json:"reception_name"`
	Price           decimal.Decimal `json:"price"`
	ReceivePrice    decimal.Decimal `json:"receive_price"`
	ReminderPrice   decimal.Decimal `json:"reminder_price"`
	// DeliveryDate is rendered in the workshop calendar.
	DeliveryDate *string   `json:"delivery_date"`
	IsChecked    bool      `json:"is_checked"`
	CreatedAt    time.Time `json:"created_at"`
}

type PaymentResult struct {
	OrderID       int64           `json:"order_id"`
	ReminderPrice decimal.Decimal `json:"reminder_price"`
	ReceivePrice  decimal.Decimal `json:"receive_price"`
	Completed     bool            `json:"completed"`
	Message       string          `json:"message"`
}

type Category struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Stages       []string `json:"stages"`
	CategoryList *string  `json:"category_list"`
}

type AttributeType struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	CategoryID int64  `json:"category"`
	Type       string `json:"attribute_type"`
}

type AttributeValue struct {
	ID             int64  `json:"id"`
	AttributeID    int64  `json:"attribute"`
	AttributeValue string `json:"attribute_value"`
}

// CategoryAttributes is a category with its attribute types and their values.
type CategoryAttributes struct {
	Category   Category              `json:"category"`
	Attributes []AttributeWithValues `json:"attributes"`
}

type AttributeWithValues struct {
	AttributeType
	Values []AttributeValue `json:"values"`
}

type User struct {
	ID        int64       `json:"id"`
	Username  string      `json:"username"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Email     string      `json:"email"`
	Role      access.Role `json:"role"`
	RoleName  string      `json:"role_name"`
	IsAdmin   bool        `json:"is_admin"`
	IsActive  bool        `json:"is_active"`
	CreatedAt time.Time   `json:"created_at"`
}

type HistoryEntry struct {
	Status    string    `json:"status"`
	ChangedBy *int64    `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
}

type Page[T any] struct {
	Count    int `json:"count"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Results  []T `json:"results"`
}

// Scope selects the listing surface and its path parameters.
type Scope struct {
	View       access.View
	Status     string
	CategoryID int64
}

type OrderQuery struct {
	Page       int
	PageSize   int
	Search     string
	Status     string
	DesignerID *int64
}

type ReceptionQuery struct {
	Page      int
	PageSize  int
	OrderID   *int64
	IsChecked *bool
}

type OrderInput struct {
	OrderName    string
	CustomerName string
	Description  string
	CategoryID   int64
	Status       string
	Attributes   json.RawMessage
	// DesignerID is honored for admins only; designers always own what they create.
	DesignerID *int64
}

// Patch turns a full input into a patch that replaces every field.
func (in OrderInput) Patch() OrderPatch {
	attrs := in.Attributes
	if attrs == nil {
		attrs = json.RawMessage(`{}`)
	}
	return OrderPatch{
		OrderName:    &in.OrderName,
		CustomerName: &in.CustomerName,
		Description:  &in.Description,
		CategoryID:   &in.CategoryID,
		Status:       &in.Status,
		Attributes:   attrs,
		DesignerID:   in.DesignerID,
	}
}

// OrderPatch changes the non-nil fields of an order.
type OrderPatch struct {
	OrderName    *string
	CustomerName *string
	Description  *string
	CategoryID   *int64
	Status       *string
	Attributes   json.RawMessage
	DesignerID   *int64
}

type ReceptionInput struct {
	OrderID      int64
	Price        decimal.Decimal
	ReceivePrice decimal.Decimal
	DeliveryDate *string
	IsChecked    bool
}

func (in ReceptionInput) Patch() ReceptionPatch {
	return ReceptionPatch{
		OrderID:      &in.OrderID,
		Price:        &in.Price,
		ReceivePrice: &in.ReceivePrice,
		DeliveryDate: in.DeliveryDate,
		IsChecked:    &in.IsChecked,
	}
}

// ReceptionPatch changes the non-nil fields of a reception record. An empty
// DeliveryDate clears the date.
type ReceptionPatch struct {
	OrderID      *int64
	Price        *decimal.Decimal
	ReceivePrice *decimal.Decimal
	DeliveryDate *string
	IsChecked    *bool
}

type CategoryInput struct {
	Name         string
	Stages       []string
	CategoryList *string
}

type AttributeTypeInput struct {
	Name       string
	CategoryID int64
	Type       string
}

type AttributeValueInput struct {
	AttributeID    int64
	AttributeValue string
}

type UserInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
	Role      access.Role
	IsAdmin   bool
}
