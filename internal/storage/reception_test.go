package storage

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/designhouse/printdesk/internal/access"
	"github.com/designhouse/printdesk/internal/db"
	"github.com/designhouse/printdesk/internal/repository"
)

func storedReception(id int64, price, received, reminder string) *repository.ReceptionOrder {
	return &repository.ReceptionOrder{
		ID:             id,
		OrderID:        3,
		Price:          decimal.RequireFromString(price),
		ReceivePrice:   decimal.RequireFromString(received),
		ReminderPrice:  decimal.RequireFromString(reminder),
		CreatedAt:      fixedTime,
		OrderSecretKey: "0015040",
		OrderName:      "Business cards",
		DesignerID:     int64Ptr(designer.UserID),
		OrderStatus:    "Reception",
		OrderCreatedAt: fixedTime.AddDate(0, 0, -3),
	}
}

func TestStorage_CreateReception(t *testing.T) {
	ctx := context.Background()

	t.Run("reminder is derived from price and received", func(t *testing.T) {
		f := newFixture(t)
		f.orders.EXPECT().GetByID(ctx, int64(3)).Return(storedOrder(3, nil), nil)
		f.expectCommit()
		f.receptions.EXPECT().GetByOrderIDTx(ctx, f.tx, int64(3)).Return(nil, repository.ErrObjectNotFound)
		f.receptions.EXPECT().CreateTx(ctx, f.tx, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ db.Tx, r *repository.ReceptionOrder) error {
				assert.True(t, decimal.NewFromInt(60).Equal(r.ReminderPrice))
				require.NotNil(t, r.ReceptionNameID)
				assert.Equal(t, reception.UserID, *r.ReceptionNameID)
				require.NotNil(t, r.DeliveryDate)
				assert.True(t, time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC).Equal(*r.DeliveryDate))
				r.ID = 11
				return nil
			})
		f.outbox.EXPECT().CreateTx(ctx, f.tx, gomock.Any()).Return(nil)

		stored := storedReception(11, "100", "40", "60")
		delivery := time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC)
		stored.DeliveryDate = &delivery
		f.receptions.EXPECT().GetByID(ctx, int64(11)).Return(stored, nil)

		out, err := f.storage.CreateReception(ctx, reception, ReceptionInput{
			OrderID:      3,
			Price:        decimal.NewFromInt(100),
			ReceivePrice: decimal.NewFromInt(40),
			DeliveryDate: strPtr("2025/04/20"),
		})
		require.NoError(t, err)
		assert.Equal(t, "0015040", out.OrderInfo.SecretKey)
		require.NotNil(t, out.DeliveryDate)
		assert.Equal(t, "2025-04-20", *out.DeliveryDate)
	})

	t.Run("received above price", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.storage.CreateReception(ctx, reception, ReceptionInput{
			OrderID:      3,
			Price:        decimal.NewFromInt(100),
			ReceivePrice: decimal.NewFromInt(150),
		})
		fields := validationFields(t, err)
		assert.Equal(t, []string{"Received price cannot be greater than the total price."}, fields["receive_price"])
	})

	t.Run("negative price and bad date", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.storage.CreateReception(ctx, admin, ReceptionInput{
			OrderID:      3,
			Price:        decimal.NewFromInt(-1),
			ReceivePrice: decimal.Zero,
			DeliveryDate: strPtr("20-04-2025x"),
		})
		fields := validationFields(t, err)
		assert.Contains(t, fields["price"], "Price cannot be negative.")
		assert.Equal(t, []string{"Invalid date format. Use YYYY-MM-DD or YYYY/MM/DD."}, fields["delivery_date"])
	})

	t.Run("one reception per order", func(t *testing.T) {
		f := newFixture(t)
		f.orders.EXPECT().GetByID(ctx, int64(3)).Return(storedOrder(3, nil), nil)
		f.expectRollback()
		f.receptions.EXPECT().GetByOrderIDTx(ctx, f.tx, int64(3)).Return(storedReception(11, "100", "0", "100"), nil)

		_, err := f.storage.CreateReception(ctx, reception, ReceptionInput{OrderID: 3, Price: decimal.NewFromInt(10)})
		fields := validationFields(t, err)
		assert.Equal(t, []string{"Reception details already exist for Order ID 3."}, fields["order"])
	})

	t.Run("designers may not create", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.storage.CreateReception(ctx, designer, ReceptionInput{OrderID: 3})
		assert.True(t, isForbidden(err))
	})
}

func TestStorage_ListReceptions(t *testing.T) {
	ctx := context.Background()

	t.Run("designer is limited to own orders", func(t *testing.T) {
		f := newFixture(t)
		checked := true

		f.receptions.EXPECT().Count(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, c access.Criteria, filter repository.ReceptionFilter) (int, error) {
				require.NotNil(t, c.DesignerID)
				assert.Equal(t, designer.UserID, *c.DesignerID)
				require.NotNil(t, filter.IsChecked)
				assert.True(t, *filter.IsChecked)
				return 1, nil
			})
		f.receptions.EXPECT().List(ctx, gomock.Any(), gomock.Any()).Return(
			[]*repository.ReceptionOrder{storedReception(11, "100", "40", "60")}, nil)

		page, err := f.storage.ListReceptions(ctx, designer, ReceptionQuery{IsChecked: &checked})
		require.NoError(t, err)
		assert.Equal(t, 1, page.Count)
		require.Len(t, page.Results, 1)
		assert.Nil(t, page.Results[0].DeliveryDate)
	})

	t.Run("huge page numbers are capped", func(t *testing.T) {
		f := newFixture(t)

		f.receptions.EXPECT().Count(ctx, gomock.Any(), gomock.Any()).Return(1, nil)
		f.receptions.EXPECT().List(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ access.Criteria, filter repository.ReceptionFilter) ([]*repository.ReceptionOrder, error) {
				assert.Equal(t, MaxPageSize, filter.Limit)
				assert.Equal(t, (MaxPage-1)*MaxPageSize, filter.Offset)
				return nil, nil
			})

		page, err := f.storage.ListReceptions(ctx, admin, ReceptionQuery{Page: math.MaxInt, PageSize: 500})
		require.NoError(t, err)
		assert.Equal(t, MaxPage, page.Page)
		assert.Equal(t, MaxPageSize, page.PageSize)
		assert.Empty(t, page.Results)
	})

	t.Run("printer sees nothing", func(t *testing.T) {
		f := newFixture(t)

		page, err := f.storage.ListReceptions(ctx, printer, ReceptionQuery{})
		require.NoError(t, err)
		assert.Empty(t, page.Results)
	})
}

func TestStorage_UpdateReception(t *testing.T) {
	ctx := context.Background()

	t.Run("reminder is recomputed", func(t *testing.T) {
		f := newFixture(t)
		f.expectCommit()
		f.receptions.EXPECT().GetByIDTx(ctx, f.tx, int64(11)).Return(storedReception(11, "100", "40", "60"), nil)
		f.receptions.EXPECT().UpdateTx(ctx, f.tx, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ db.Tx, r *repository.ReceptionOrder) error {
				assert.True(t, decimal.NewFromInt(30).Equal(r.ReminderPrice))
				assert.True(t, r.IsChecked)
				return nil
			})
		f.outbox.EXPECT().CreateTx(ctx, f.tx, gomock.Any()).Return(nil)
		f.receptions.EXPECT().GetByID(ctx, int64(11)).Return(storedReception(11, "100", "70", "30"), nil)

		received := decimal.NewFromInt(70)
		checked := true
		out, err := f.storage.UpdateReception(ctx, reception, 11, ReceptionPatch{ReceivePrice: &received, IsChecked: &checked})
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(30).Equal(out.ReminderPrice))
	})

	t.Run("designer sees own record but may not change it", func(t *testing.T) {
		f := newFixture(t)
		f.expectRollback()
		f.receptions.EXPECT().GetByIDTx(ctx, f.tx, int64(11)).Return(storedReception(11, "100", "40", "60"), nil)

		checked := true
		_, err := f.storage.UpdateReception(ctx, designer, 11, ReceptionPatch{IsChecked: &checked})
		assert.True(t, isForbidden(err))
	})

	t.Run("moving to an order that already has details", func(t *testing.T) {
		f := newFixture(t)
		f.expectRollback()
		f.receptions.EXPECT().GetByIDTx(ctx, f.tx, int64(11)).Return(storedReception(11, "100", "40", "60"), nil)
		f.orders.EXPECT().GetByIDTx(ctx, f.tx, int64(4)).Return(storedOrder(4, nil), nil)
		f.receptions.EXPECT().GetByOrderIDTx(ctx, f.tx, int64(4)).Return(storedReception(12, "10", "0", "10"), nil)

		_, err := f.storage.UpdateReception(ctx, admin, 11, ReceptionPatch{OrderID: int64Ptr(4)})
		fields := validationFields(t, err)
		assert.Equal(t, []string{"Reception details already exist for Order ID 4."}, fields["order"])
	})
}

func TestStorage_CompletePayment(t *testing.T) {
	ctx := context.Background()

	t.Run("outstanding amount is received", func(t *testing.T) {
		f := newFixture(t)
		f.expectCommit()
		f.receptions.EXPECT().GetByOrderIDTx(ctx, f.tx, int64(3)).Return(storedReception(11, "100", "40", "60"), nil)
		f.receptions.EXPECT().UpdateTx(ctx, f.tx, gomock.Any()).Return(nil)
		f.outbox.EXPECT().CreateTx(ctx, f.tx, gomock.Any()).Return(nil)

		res, err := f.storage.CompletePayment(ctx, reception, 3)
		require.NoError(t, err)
		assert.True(t, res.Completed)
		assert.Equal(t, "Price is completed receive", res.Message)
		assert.True(t, decimal.NewFromInt(100).Equal(res.ReceivePrice))
		assert.True(t, res.ReminderPrice.IsZero())
	})

	t.Run("stale reminder leaves a balance", func(t *testing.T) {
		f := newFixture(t)
		f.expectCommit()
		f.receptions.EXPECT().GetByOrderIDTx(ctx, f.tx, int64(3)).Return(storedReception(11, "100", "40", "30"), nil)
		f.receptions.EXPECT().UpdateTx(ctx, f.tx, gomock.Any()).Return(nil)
		f.outbox.EXPECT().CreateTx(ctx, f.tx, gomock.Any()).Return(nil)

		res, err := f.storage.CompletePayment(ctx, admin, 3)
		require.NoError(t, err)
		assert.False(t, res.Completed)
		assert.Equal(t, "Price is not fully received yet", res.Message)
		assert.True(t, decimal.NewFromInt(30).Equal(res.ReminderPrice))
	})

	t.Run("no reception details", func(t *testing.T) {
		f := newFixture(t)
		f.expectRollback()
		f.receptions.EXPECT().GetByOrderIDTx(ctx, f.tx, int64(3)).Return(nil, repository.ErrObjectNotFound)

		_, err := f.storage.CompletePayment(ctx, reception, 3)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("designers may not settle payments", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.storage.CompletePayment(ctx, designer, 3)
		assert.True(t, isForbidden(err))
	})
}
