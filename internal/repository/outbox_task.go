package repository

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskStatusCreated    TaskStatus = "CREATED"
	TaskStatusProcessing TaskStatus = "PROCESSING"
	TaskStatusFailed     TaskStatus = "FAILED"
	TaskStatusDone       TaskStatus = "DONE"
)

type OutboxTask struct {
	ID          uuid.UUID       `db:"id"`
	Status      TaskStatus      `db:"status"`
	Payload     json.RawMessage `db:"payload"`
	Topic       string          `db:"topic"`
	Attempts    int             `db:"attempts"`
	LastError   *string         `db:"last_error"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
	CompletedAt *time.Time      `db:"completed_at"`
}

// AuditLogPayload is one audited API call.
type AuditLogPayload struct {
	Timestamp  time.Time `json:"timestamp"`
	UserID     int64     `json:"user_id,omitempty"`
	Username   string    `json:"username,omitempty"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	Handler    string    `json:"handler"`
	StatusCode int       `json:"status_code"`
	Request    string    `json:"request,omitempty"`
	Response   string    `json:"response,omitempty"`
	Action     string    `json:"action"`
	EntityID   string    `json:"entity_id,omitempty"`
	EntityType string    `json:"entity_type"`
}

type EventType string

const (
	EventOrderCreated       EventType = "order.created"
	EventOrderUpdated       EventType = "order.updated"
	EventOrderStatusChanged EventType = "order.status_changed"
	EventOrderDeleted       EventType = "order.deleted"
	EventReceptionCreated   EventType = "reception.created"
	EventReceptionUpdated   EventType = "reception.updated"
	EventPaymentCompleted   EventType = "reception.payment_completed"
)

// OrderEvent is the payload published for order and reception changes.
type OrderEvent struct {
	Type       EventType `json:"type"`
	OrderID    int64     `json:"order_id"`
	SecretKey  string    `json:"secret_key,omitempty"`
	OldStatus  string    `json:"old_status,omitempty"`
	NewStatus  string    `json:"new_status,omitempty"`
	ActorID    int64     `json:"actor_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
