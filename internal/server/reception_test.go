package server

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/designhouse/printdesk/internal/access"
	"github.com/designhouse/printdesk/internal/storage"
)

func sampleReception(id int64) *storage.Reception {
	delivery := "2025-04-20"
	return &storage.Reception{
		ID:              id,
		OrderInfo:       storage.OrderInfo{ID: 3, SecretKey: "0015040", OrderName: "Business cards"},
		ReceptionNameID: int64Ptr(reception.UserID),
		Price:           decimal.NewFromInt(100),
		ReceivePrice:    decimal.NewFromInt(40),
		ReminderPrice:   decimal.NewFromInt(60),
		DeliveryDate:    &delivery,
		CreatedAt:       fixedNow,
	}
}

func TestHandleCreateReception(t *testing.T) {
	t.Run("pricing desk sends order_id", func(t *testing.T) {
		f := newTestServer(t)
		f.storage.EXPECT().CreateReception(gomock.Any(), reception, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ access.Principal, in storage.ReceptionInput) (*storage.Reception, error) {
				assert.Equal(t, int64(3), in.OrderID)
				assert.True(t, decimal.NewFromInt(100).Equal(in.Price))
				assert.True(t, decimal.NewFromInt(40).Equal(in.ReceivePrice))
				require.NotNil(t, in.DeliveryDate)
				assert.Equal(t, "2025/04/20", *in.DeliveryDate)
				return sampleReception(11), nil
			})

		rr := f.do(t, http.MethodPost, "/api/order-by-price/", `{"order_id":3,"price":"100.00","receive_price":40,"delivery_date":"2025/04/20"}`, &reception)

		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		var got storage.Reception
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "0015040", got.OrderInfo.SecretKey)
		assert.True(t, decimal.NewFromInt(60).Equal(got.ReminderPrice))
	})

	t.Run("reception records send order", func(t *testing.T) {
		f := newTestServer(t)
		f.storage.EXPECT().CreateReception(gomock.Any(), admin, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ access.Principal, in storage.ReceptionInput) (*storage.Reception, error) {
				assert.Equal(t, int64(4), in.OrderID)
				assert.True(t, in.ReceivePrice.IsZero())
				return sampleReception(12), nil
			})

		rr := f.do(t, http.MethodPost, "/api/reception-orders", `{"order":4,"price":10}`, &admin)

		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("price is required", func(t *testing.T) {
		f := newTestServer(t)

		rr := f.do(t, http.MethodPost, "/api/reception-orders", `{"order":4}`, &reception)

		assert.Equal(t, map[string][]string{"price": {"This field is required."}}, fieldErrors(t, rr))
	})

	t.Run("received above price", func(t *testing.T) {
		f := newTestServer(t)
		f.storage.EXPECT().CreateReception(gomock.Any(), reception, gomock.Any()).Return(nil, &storage.ValidationError{
			Fields: map[string][]string{"receive_price": {"Received price cannot be greater than the total price."}},
		})

		rr := f.do(t, http.MethodPost, "/api/reception-orders", `{"order":4,"price":10,"receive_price":20}`, &reception)

		assert.Equal(t, []string{"Received price cannot be greater than the total price."}, fieldErrors(t, rr)["receive_price"])
	})
}

func TestHandleListReceptions(t *testing.T) {
	t.Run("filters", func(t *testing.T) {
		f := newTestServer(t)
		f.storage.EXPECT().ListReceptions(gomock.Any(), designer, storage.ReceptionQuery{
			Page:      1,
			OrderID:   int64Ptr(3),
			IsChecked: boolPtr(true),
		}).Return(&storage.Page[storage.Reception]{Count: 1, Page: 1, PageSize: 10, Results: []storage.Reception{*sampleReception(11)}}, nil)

		rr := f.do(t, http.MethodGet, "/api/reception-orders?page=1&order=3&is_checked=true", nil, &designer)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"delivery_date":"2025-04-20"`)
	})

	t.Run("bad boolean", func(t *testing.T) {
		f := newTestServer(t)

		rr := f.do(t, http.MethodGet, "/api/order-by-price?is_checked=maybe", nil, &reception)

		assert.Equal(t, map[string][]string{"is_checked": {"Must be a valid boolean."}}, fieldErrors(t, rr))
	})
}

func TestHandleUpdateReception(t *testing.T) {
	t.Run("patch", func(t *testing.T) {
		f := newTestServer(t)
		f.storage.EXPECT().UpdateReception(gomock.Any(), reception, int64(11), storage.ReceptionPatch{IsChecked: boolPtr(true)}).
			Return(sampleReception(11), nil)

		rr := f.do(t, http.MethodPatch, "/api/reception-orders/11", `{"is_checked":true}`, &reception)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("put", func(t *testing.T) {
		f := newTestServer(t)
		f.storage.EXPECT().UpdateReception(gomock.Any(), reception, int64(11), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ access.Principal, _ int64, patch storage.ReceptionPatch) (*storage.Reception, error) {
				require.NotNil(t, patch.OrderID)
				assert.Equal(t, int64(3), *patch.OrderID)
				require.NotNil(t, patch.ReceivePrice)
				assert.True(t, decimal.NewFromInt(70).Equal(*patch.ReceivePrice))
				require.NotNil(t, patch.IsChecked)
				assert.False(t, *patch.IsChecked)
				assert.Nil(t, patch.DeliveryDate)
				return sampleReception(11), nil
			})

		rr := f.do(t, http.MethodPut, "/api/order-by-price/11", `{"order_id":3,"price":100,"receive_price":70}`, &reception)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("designer may not change", func(t *testing.T) {
		f := newTestServer(t)
		f.storage.EXPECT().UpdateReception(gomock.Any(), designer, int64(11), gomock.Any()).
			Return(nil, &storage.ForbiddenError{Reason: "Admin or Reception role required to modify reception details."})

		rr := f.do(t, http.MethodPatch, "/api/reception-orders/11", `{"is_checked":true}`, &designer)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestHandleDeleteReception(t *testing.T) {
	f := newTestServer(t)
	f.storage.EXPECT().DeleteReception(gomock.Any(), admin, int64(11)).Return(storage.ErrNotFound)

	rr := f.do(t, http.MethodDelete, "/api/reception-orders/11", nil, &admin)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandleCompletePayment(t *testing.T) {
	f := newTestServer(t)
	f.storage.EXPECT().CompletePayment(gomock.Any(), reception, int64(3)).Return(&storage.PaymentResult{
		OrderID:       3,
		ReminderPrice: decimal.Zero,
		ReceivePrice:  decimal.NewFromInt(100),
		Completed:     true,
		Message:       "Price is completed receive",
	}, nil)

	rr := f.do(t, http.MethodPost, "/api/order-by-price/complete/3/", nil, &reception)

	require.Equal(t, http.StatusOK, rr.Code)
	var res storage.PaymentResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.True(t, res.Completed)
	assert.Equal(t, "Price is completed receive", res.Message)
	assert.True(t, decimal.NewFromInt(100).Equal(res.ReceivePrice))
}
