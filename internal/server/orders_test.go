package server

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/designhouse/printdesk/internal/access"
	"github.com/designhouse/printdesk/internal/storage"
)

func sampleOrder(id int64) *storage.Order {
	return &storage.Order{
		ID:           id,
		OrderName:    "Business cards",
		CustomerName: "Nima",
		CategoryID:   2,
		SecretKey:    "0015040",
		Attributes:   json.RawMessage(`{"Paper":"Matte"}`),
		Status:       "Designer",
		CreatedAt:    fixedNow,
		UpdatedAt:    fixedNow,
	}
}

func TestHandleCreateOrder(t *testing.T) {
	validBody := map[string]any{
		"order_name":    "Business cards",
		"customer_name": "Nima",
		"category":      2,
		"status":        "Designer",
		"attributes":    map[string]string{"Paper": "Matte"},
	}

	t.Run("designer creates an order", func(t *testing.T) {
		f := newTestServer(t)
		f.storage.EXPECT().CreateOrder(gomock.Any(), designer, access.ViewOrders, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ access.Principal, _ access.View, in storage.OrderInput) (*storage.Order, error) {
				assert.Equal(t, "Business cards", in.OrderName)
				assert.Equal(t, int64(2), in.CategoryID)
				assert.JSONEq(t, `{"Paper":"Matte"}`, string(in.Attributes))
				assert.Nil(t, in.DesignerID)
				return sampleOrder(7), nil
			})

		rr := f.do(t, http.MethodPost, "/api/orders/", validBody, &designer)

		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		var got storage.Order
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, int64(7), got.ID)
		assert.Equal(t, "0015040", got.SecretKey)
	})

	t.Run("reception creates from the today list", func(t *testing.T) {
		f := newTestServer(t)
		f.storage.EXPECT().CreateOrder(gomock.Any(), reception, access.ViewReceptionToday, gomock.Any()).Return(sampleOrder(8), nil)

		rr := f.do(t, http.MethodPost, "/api/orders/reception_list/today", validBody, &reception)

		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		f := newTestServer(t)

		rr := f.do(t, http.MethodPost, "/api/orders", map[string]any{"description": "rush"}, &designer)

		fields := fieldErrors(t, rr)
		assert.Equal(t, []string{"This field is required."}, fields["order_name"])
		assert.Equal(t, []string{"This field is required."}, fields["customer_name"])
		assert.Equal(t, []string{"This field is required."}, fields["category"])
		assert.Equal(t, []string{"This field is required."}, fields["status"])
	})

	t.Run("no unique key left", func(t *testing.T) {
		f := newTestServer(t)
		f.storage.EXPECT().CreateOrder(gomock.Any(), designer, access.ViewOrders, gomock.Any()).Return(nil, storage.ErrKeyExhausted)

		rr := f.do(t, http.MethodPost, "/api/orders", validBody, &designer)

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.Contains(t, rr.Body.String(), "secret_key_exhausted")
	})

	t.Run("role may not create", func(t *testing.T) {
		f := newTestServer(t)
		f.storage.EXPECT().CreateOrder(gomock.Any(), reception, access.ViewOrders, gomock.Any()).
			Return(nil, &storage.ForbiddenError{Reason: "You do not have permission to create orders here."})

		rr := f.do(t, http.MethodPost, "/api/orders", validBody, &reception)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.JSONEq(t, `{"error":"You do not have permission to create orders here."}`, rr.Body.String())
	})
}

func TestHandleListOrders(t *testing.T) {
	tests := []struct {
		name          string
		target        string
		principal     access.Principal
		expectedScope storage.Scope
		expectedQuery storage.OrderQuery
	}{
		{
			name:          "orders before today with filters",
			target:        "/api/orders?page=2&page_size=5&search=card&status=Print&designer_id=5",
			principal:     admin,
			expectedScope: storage.Scope{View: access.ViewOrders},
			expectedQuery: storage.OrderQuery{Page: 2, PageSize: 5, Search: "card", Status: "Print", DesignerID: int64Ptr(5)},
		},
		{
			name:          "today",
			target:        "/api/orders/today/",
			principal:     designer,
			expectedScope: storage.Scope{View: access.ViewOrdersToday},
		},
		{
			name:          "by status",
			target:        "/api/orders/status/Print",
			principal:     designer,
			expectedScope: storage.Scope{View: access.ViewOrdersByStatus, Status: "Print"},
		},
		{
			name:          "by category",
			target:        "/api/orders/category/3",
			principal:     designer,
			expectedScope: storage.Scope{View: access.ViewOrdersByCategory, CategoryID: 3},
		},
		{
			name:          "status board",
			target:        "/api/orders/status_list/Printer",
			principal:     designer,
			expectedScope: storage.Scope{View: access.ViewStatusBoard, Status: "Printer"},
		},
		{
			name:          "reception backlog",
			target:        "/api/group/orders/reception_list",
			principal:     reception,
			expectedScope: storage.Scope{View: access.ViewReceptionBacklog},
		},
		{
			name:          "reception queue",
			target:        "/api/group/orders/status_supper/",
			principal:     reception,
			expectedScope: storage.Scope{View: access.ViewReceptionQueue},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newTestServer(t)
			f.storage.EXPECT().ListOrders(gomock.Any(), tc.principal, tc.expectedScope, tc.expectedQuery).
				Return(&storage.Page[storage.Order]{Count: 1, Page: 1, PageSize: 10, Results: []storage.Order{*sampleOrder(7)}}, nil)

			p := tc.principal
			rr := f.do(t, http.MethodGet, tc.target, nil, &p)

			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
			var page storage.Page[storage.Order]
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
			assert.Equal(t, 1, page.Count)
			require.Len(t, page.Results, 1)
			assert.Equal(t, int64(7), page.Results[0].ID)
		})
	}

	t.Run("bad page number", func(t *testing.T) {
		f := newTestServer(t)

		rr := f.do(t, http.MethodGet, "/api/orders?page=two", nil, &designer)

		assert.Equal(t, map[string][]string{"page": {"A valid integer is required."}}, fieldErrors(t, rr))
	})
}

func TestHandleGetOrder(t *testing.T) {
	t.Run("status detail", func(t *testing.T) {
		f := newTestServer(t)
		f.storage.EXPECT().GetOrder(gomock.Any(), reception, storage.Scope{View: access.ViewStatusDetail, Status: "Reception"}, int64(7)).
			Return(sampleOrder(7), nil)

		rr := f.do(t, http.MethodGet, "/api/orders/status/Reception/7/", nil, &reception)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"secret_key":"0015040"`)
	})

	t.Run("not visible", func(t *testing.T) {
		f := newTestServer(t)
		f.storage.EXPECT().GetOrder(gomock.Any(), designer, storage.Scope{View: access.ViewOrders}, int64(7)).
			Return(nil, storage.ErrNotFound)

		rr := f.do(t, http.MethodGet, "/api/orders/7", nil, &designer)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.JSONEq(t, `{"error":"Not found."}`, rr.Body.String())
	})
}

func TestHandleUpdateOrder(t *testing.T) {
	t.Run("patch changes only the sent fields", func(t *testing.T) {
		f := newTestServer(t)
		f.storage.EXPECT().UpdateOrder(gomock.Any(), designer, storage.Scope{View: access.ViewOrdersToday}, int64(7),
			storage.OrderPatch{Status: strPtr("Print")}).Return(sampleOrder(7), nil)

		rr := f.do(t, http.MethodPatch, "/api/orders/today/7", map[string]any{"status": "Print"}, &designer)

		assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	})

	t.Run("put replaces every field", func(t *testing.T) {
		f := newTestServer(t)
		f.storage.EXPECT().UpdateOrder(gomock.Any(), admin, storage.Scope{View: access.ViewOrders}, int64(7), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ access.Principal, _ storage.Scope, _ int64, patch storage.OrderPatch) (*storage.Order, error) {
				require.NotNil(t, patch.OrderName)
				assert.Equal(t, "Flyers", *patch.OrderName)
				require.NotNil(t, patch.Description)
				assert.Equal(t, "", *patch.Description)
				assert.JSONEq(t, `{}`, string(patch.Attributes))
				require.NotNil(t, patch.DesignerID)
				assert.Equal(t, int64(5), *patch.DesignerID)
				return sampleOrder(7), nil
			})

		rr := f.do(t, http.MethodPut, "/api/orders/7", map[string]any{
			"order_name":    "Flyers",
			"customer_name": "Nima",
			"category":      2,
			"status":        "Print",
			"designer":      5,
		}, &admin)

		assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	})

	t.Run("status board write by another role", func(t *testing.T) {
		f := newTestServer(t)
		f.storage.EXPECT().UpdateOrder(gomock.Any(), reception, storage.Scope{View: access.ViewStatusBoard, Status: "Printer"}, int64(7), gomock.Any()).
			Return(nil, &storage.ForbiddenError{Reason: "You do not have permission to perform this action."})

		rr := f.do(t, http.MethodPatch, "/api/orders/status_list/Printer/7", map[string]any{"status": "Done"}, &reception)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("patch with an over-long name", func(t *testing.T) {
		f := newTestServer(t)
		long := make([]byte, 256)
		for i := range long {
			long[i] = 'a'
		}

		rr := f.do(t, http.MethodPatch, "/api/orders/7", map[string]any{"order_name": string(long)}, &designer)

		assert.Equal(t, []string{"Ensure this field has no more than 255 characters."}, fieldErrors(t, rr)["order_name"])
	})
}

func TestHandleDeleteOrder(t *testing.T) {
	f := newTestServer(t)
	f.storage.EXPECT().DeleteOrder(gomock.Any(), reception, storage.Scope{View: access.ViewReceptionQueue}, int64(7)).Return(nil)

	rr := f.do(t, http.MethodDelete, "/api/group/orders/status_supper/7", nil, &reception)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
}

func TestHandleUpdateOrderStatus(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    map[string]any
		setupMocks     func(f *testServer)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "status changed",
			requestBody: map[string]any{"order_id": 7, "status": "Print"},
			setupMocks: func(f *testServer) {
				updated := sampleOrder(7)
				updated.Status = "Print"
				f.storage.EXPECT().UpdateOrderStatus(gomock.Any(), designer, int64(7), "Print").Return(updated, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing order id",
			requestBody:    map[string]any{"status": "Print"},
			setupMocks:     func(*testServer) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"errors":{"order_id":["This field is required."]}}`,
		},
		{
			name:        "unknown order",
			requestBody: map[string]any{"order_id": 70, "status": "Print"},
			setupMocks: func(f *testServer) {
				f.storage.EXPECT().UpdateOrderStatus(gomock.Any(), designer, int64(70), "Print").
					Return(nil, &storage.ValidationError{Fields: map[string][]string{"order_id": {"Order with this ID does not exist."}}})
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"errors":{"order_id":["Order with this ID does not exist."]}}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newTestServer(t)
			tc.setupMocks(f)

			rr := f.do(t, http.MethodPost, "/api/orders/update-status/", tc.requestBody, &designer)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
				return
			}
			var resp statusUpdateResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, "Order status updated successfully", resp.Message)
			assert.Equal(t, "Print", resp.Order.Status)
		})
	}
}

func TestHandleOrderHistory(t *testing.T) {
	f := newTestServer(t)
	f.storage.EXPECT().OrderHistory(gomock.Any(), designer, int64(7)).Return([]storage.HistoryEntry{
		{Status: "Designer", ChangedBy: int64Ptr(5), ChangedAt: fixedNow},
		{Status: "Print", ChangedBy: int64Ptr(5), ChangedAt: fixedNow.Add(time.Hour)},
	}, nil)

	rr := f.do(t, http.MethodGet, "/api/orders/7/history", nil, &designer)

	require.Equal(t, http.StatusOK, rr.Code)
	var history []storage.HistoryEntry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &history))
	require.Len(t, history, 2)
	assert.Equal(t, "Print", history[1].Status)
}
