package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/designhouse/printdesk/internal/access"
	"github.com/designhouse/printdesk/internal/storage"
)

type orderRequest struct {
	OrderName    string          `json:"order_name" validate:"required,max=255"`
	CustomerName string          `json:"customer_name" validate:"required,max=255"`
	Description  string          `json:"description"`
	Category     int64           `json:"category" validate:"required,gt=0"`
	Status       string          `json:"status" validate:"required,max=255"`
	Attributes   json.RawMessage `json:"attributes"`
	Designer     *int64          `json:"designer"`
}

func (req orderRequest) input() storage.OrderInput {
	return storage.OrderInput{
		OrderName:    req.OrderName,
		CustomerName: req.CustomerName,
		Description:  req.Description,
		CategoryID:   req.Category,
		Status:       req.Status,
		Attributes:   req.Attributes,
		DesignerID:   req.Designer,
	}
}

type orderPatchRequest struct {
	OrderName    *string         `json:"order_name" validate:"omitempty,max=255"`
	CustomerName *string         `json:"customer_name" validate:"omitempty,max=255"`
	Description  *string         `json:"description"`
	Category     *int64          `json:"category" validate:"omitempty,gt=0"`
	Status       *string         `json:"status" validate:"omitempty,max=255"`
	Attributes   json.RawMessage `json:"attributes"`
	Designer     *int64          `json:"designer"`
}

func (req orderPatchRequest) patch() storage.OrderPatch {
	return storage.OrderPatch{
		OrderName:    req.OrderName,
		CustomerName: req.CustomerName,
		Description:  req.Description,
		CategoryID:   req.Category,
		Status:       req.Status,
		Attributes:   req.Attributes,
		DesignerID:   req.Designer,
	}
}

type statusUpdateRequest struct {
	OrderID int64  `json:"order_id" validate:"required,gt=0"`
	Status  string `json:"status" validate:"required,max=255"`
}

type statusUpdateResponse struct {
	Message string         `json:"message"`
	Order   *storage.Order `json:"order"`
}

// scope builds the listing scope of view from the route variables.
func scope(r *http.Request, view access.View) storage.Scope {
	sc := storage.Scope{View: view, Status: mux.Vars(r)["status"]}
	if id, ok := pathID(r, "category_id"); ok {
		sc.CategoryID = id
	}
	return sc
}

func (s *Server) handleListOrders(view access.View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := newQueryParams(r)
		query := storage.OrderQuery{
			Page:       q.Int("page"),
			PageSize:   q.Int("page_size"),
			Search:     q.String("search"),
			Status:     q.String("status"),
			DesignerID: q.Int64("designer_id"),
		}
		if !q.Valid(w) {
			return
		}

		page, err := s.storage.ListOrders(r.Context(), caller(r), scope(r, view), query)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, page)
	}
}

func (s *Server) handleCreateOrder(view access.View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req orderRequest
		if !bind(w, r, &req) {
			return
		}

		order, err := s.storage.CreateOrder(r.Context(), caller(r), view, req.input())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		respondJSON(w, http.StatusCreated, order)
	}
}

func (s *Server) handleGetOrder(view access.View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			handleNotFound(w, r)
			return
		}

		order, err := s.storage.GetOrder(r.Context(), caller(r), scope(r, view), id)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, order)
	}
}

// handleUpdateOrder serves PUT with a full body and PATCH with a partial one.
func (s *Server) handleUpdateOrder(view access.View, partial bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			handleNotFound(w, r)
			return
		}

		var patch storage.OrderPatch
		if partial {
			var req orderPatchRequest
			if !bind(w, r, &req) {
				return
			}
			patch = req.patch()
		} else {
			var req orderRequest
			if !bind(w, r, &req) {
				return
			}
			patch = req.input().Patch()
		}

		order, err := s.storage.UpdateOrder(r.Context(), caller(r), scope(r, view), id, patch)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, order)
	}
}

func (s *Server) handleDeleteOrder(view access.View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			handleNotFound(w, r)
			return
		}

		if err := s.storage.DeleteOrder(r.Context(), caller(r), scope(r, view), id); err != nil {
			s.writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req statusUpdateRequest
	if !bind(w, r, &req) {
		return
	}

	order, err := s.storage.UpdateOrderStatus(r.Context(), caller(r), req.OrderID, req.Status)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, statusUpdateResponse{
		Message: "Order status updated successfully",
		Order:   order,
	})
}

func (s *Server) handleOrderHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		handleNotFound(w, r)
		return
	}

	history, err := s.storage.OrderHistory(r.Context(), caller(r), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, history)
}
