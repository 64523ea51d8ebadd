//go:generate mockgen -source ./server.go -destination=./mocks/server.go -package=mock_server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/designhouse/printdesk/internal/access"
	"github.com/designhouse/printdesk/internal/storage"
)

type Storage interface {
	CreateOrder(ctx context.Context, p access.Principal, view access.View, in storage.OrderInput) (*storage.Order, error)
	ListOrders(ctx context.Context, p access.Principal, scope storage.Scope, q storage.OrderQuery) (*storage.Page[storage.Order], error)
	GetOrder(ctx context.Context, p access.Principal, scope storage.Scope, id int64) (*storage.Order, error)
	UpdateOrder(ctx context.Context, p access.Principal, scope storage.Scope, id int64, patch storage.OrderPatch) (*storage.Order, error)
	DeleteOrder(ctx context.Context, p access.Principal, scope storage.Scope, id int64) error
	UpdateOrderStatus(ctx context.Context, p access.Principal, orderID int64, status string) (*storage.Order, error)
	OrderHistory(ctx context.Context, p access.Principal, id int64) ([]storage.HistoryEntry, error)

	CreateReception(ctx context.Context, p access.Principal, in storage.ReceptionInput) (*storage.Reception, error)
	ListReceptions(ctx context.Context, p access.Principal, q storage.ReceptionQuery) (*storage.Page[storage.Reception], error)
	GetReception(ctx context.Context, p access.Principal, id int64) (*storage.Reception, error)
	UpdateReception(ctx context.Context, p access.Principal, id int64, patch storage.ReceptionPatch) (*storage.Reception, error)
	DeleteReception(ctx context.Context, p access.Principal, id int64) error
	CompletePayment(ctx context.Context, p access.Principal, orderID int64) (*storage.PaymentResult, error)

	ListCategories(ctx context.Context, categoryList *string) ([]storage.Category, error)
	GetCategory(ctx context.Context, id int64) (*storage.Category, error)
	CreateCategory(ctx context.Context, p access.Principal, in storage.CategoryInput) (*storage.Category, error)
	UpdateCategory(ctx context.Context, p access.Principal, id int64, in storage.CategoryInput) (*storage.Category, error)
	DeleteCategory(ctx context.Context, p access.Principal, id int64) error
	CategoryAttributes(ctx context.Context, categoryID int64) (*storage.CategoryAttributes, error)

	ListAttributeTypes(ctx context.Context, categoryID *int64) ([]storage.AttributeType, error)
	GetAttributeType(ctx context.Context, id int64) (*storage.AttributeType, error)
	CreateAttributeType(ctx context.Context, p access.Principal, in storage.AttributeTypeInput) (*storage.AttributeType, error)
	UpdateAttributeType(ctx context.Context, p access.Principal, id int64, in storage.AttributeTypeInput) (*storage.AttributeType, error)
	DeleteAttributeType(ctx context.Context, p access.Principal, id int64) error

	ListAttributeValues(ctx context.Context, attributeID *int64) ([]storage.AttributeValue, error)
	GetAttributeValue(ctx context.Context, id int64) (*storage.AttributeValue, error)
	CreateAttributeValue(ctx context.Context, p access.Principal, in storage.AttributeValueInput) (*storage.AttributeValue, error)
	UpdateAttributeValue(ctx context.Context, p access.Principal, id int64, in storage.AttributeValueInput) (*storage.AttributeValue, error)
	DeleteAttributeValue(ctx context.Context, p access.Principal, id int64) error
}

type UserService interface {
	Authenticate(ctx context.Context, username, password string) (access.Principal, error)
	Principal(ctx context.Context, userID int64) (access.Principal, error)
	CreateUser(ctx context.Context, p access.Principal, in storage.UserInput) (*storage.User, error)
	ListUsers(ctx context.Context, p access.Principal) ([]storage.User, error)
	GetUser(ctx context.Context, p access.Principal, id int64) (*storage.User, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Config struct {
	Port      string
	JWTSecret string
	TokenTTL  time.Duration
}

type Server struct {
	storage      Storage
	users        UserService
	pinger       Pinger
	config       Config
	logger       *zap.Logger
	server       *http.Server
	AuditManager *AuditManager

	timeNow func() time.Time
}

func New(storage Storage, users UserService, pinger Pinger, audit *AuditManager, config Config, logger *zap.Logger) *Server {
	if config.TokenTTL <= 0 {
		config.TokenTTL = 12 * time.Hour
	}
	return &Server{
		storage:      storage,
		users:        users,
		pinger:       pinger,
		config:       config,
		logger:       logger,
		AuditManager: audit,
		timeNow:      time.Now,
	}
}

// Run serves HTTP until Shutdown is called. The audit manager outlives ctx
// so requests still in flight during shutdown are recorded.
func (s *Server) Run(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         ":" + s.config.Port,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	s.AuditManager.Start(context.WithoutCancel(ctx))

	s.logger.Info("http server starting", zap.String("port", s.config.Port))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve http: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")

	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shut down http server: %w", err)
		}
	}
	s.logger.Info("http server shutdown completed")

	s.AuditManager.Shutdown(ctx)
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.pinger.Ping(ctx); err != nil {
			s.logger.Warn("health check failed", zap.Error(err))
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
