package server

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/designhouse/printdesk/internal/storage"
)

// receptionRequest accepts the order reference as "order" or, on the pricing
// desk routes, as "order_id".
type receptionRequest struct {
	Order        int64            `json:"order"`
	OrderID      int64            `json:"order_id"`
	Price        *decimal.Decimal `json:"price" validate:"required"`
	ReceivePrice decimal.Decimal  `json:"receive_price"`
	DeliveryDate *string          `json:"delivery_date"`
	IsChecked    bool             `json:"is_checked"`
}

func (req receptionRequest) input() storage.ReceptionInput {
	in := storage.ReceptionInput{
		OrderID:      req.Order,
		ReceivePrice: req.ReceivePrice,
		DeliveryDate: req.DeliveryDate,
		IsChecked:    req.IsChecked,
	}
	if in.OrderID == 0 {
		in.OrderID = req.OrderID
	}
	if req.Price != nil {
		in.Price = *req.Price
	}
	return in
}

type receptionPatchRequest struct {
	Order        *int64           `json:"order"`
	OrderID      *int64           `json:"order_id"`
	Price        *decimal.Decimal `json:"price"`
	ReceivePrice *decimal.Decimal `json:"receive_price"`
	DeliveryDate *string          `json:"delivery_date"`
	IsChecked    *bool            `json:"is_checked"`
}

func (req receptionPatchRequest) patch() storage.ReceptionPatch {
	orderID := req.Order
	if orderID == nil {
		orderID = req.OrderID
	}
	return storage.ReceptionPatch{
		OrderID:      orderID,
		Price:        req.Price,
		ReceivePrice: req.ReceivePrice,
		DeliveryDate: req.DeliveryDate,
		IsChecked:    req.IsChecked,
	}
}

func (s *Server) handleListReceptions(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	query := storage.ReceptionQuery{
		Page:      q.Int("page"),
		PageSize:  q.Int("page_size"),
		OrderID:   q.Int64("order"),
		IsChecked: q.Bool("is_checked"),
	}
	if !q.Valid(w) {
		return
	}

	page, err := s.storage.ListReceptions(r.Context(), caller(r), query)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (s *Server) handleCreateReception(w http.ResponseWriter, r *http.Request) {
	var req receptionRequest
	if !bind(w, r, &req) {
		return
	}

	rec, err := s.storage.CreateReception(r.Context(), caller(r), req.input())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleGetReception(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		handleNotFound(w, r)
		return
	}

	rec, err := s.storage.GetReception(r.Context(), caller(r), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (s *Server) handleUpdateReception(partial bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			handleNotFound(w, r)
			return
		}

		var patch storage.ReceptionPatch
		if partial {
			var req receptionPatchRequest
			if !bind(w, r, &req) {
				return
			}
			patch = req.patch()
		} else {
			var req receptionRequest
			if !bind(w, r, &req) {
				return
			}
			patch = req.input().Patch()
		}

		rec, err := s.storage.UpdateReception(r.Context(), caller(r), id, patch)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, rec)
	}
}

func (s *Server) handleDeleteReception(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		handleNotFound(w, r)
		return
	}

	if err := s.storage.DeleteReception(r.Context(), caller(r), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCompletePayment(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(r, "order_id")
	if !ok {
		handleNotFound(w, r)
		return
	}

	res, err := s.storage.CompletePayment(r.Context(), caller(r), orderID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}
