package postgresql_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/designhouse/printdesk/internal/access"
	mock_database "github.com/designhouse/printdesk/internal/db/mocks"
	"github.com/designhouse/printdesk/internal/repository"
	"github.com/designhouse/printdesk/internal/repository/postgresql"
)

func testOrder() *repository.Order {
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	designer := int64(7)
	return &repository.Order{
		OrderName:    "Wedding cards",
		CustomerName: "Sara",
		DesignerID:   &designer,
		Description:  "gold foil",
		SecretKey:    "0015101",
		CategoryID:   2,
		Status:       "Design",
		Attributes:   json.RawMessage(`{"paper":"matte"}`),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestOrderRepo_CreateTx(t *testing.T) {
	ctx := context.Background()

	t.Run("claimed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)
		order := testOrder()

		mockTx.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any(), anyArgs(10)...).
			DoAndReturn(func(_ context.Context, dest any, query string, args ...any) error {
				assert.Contains(t, query, "ON CONFLICT (secret_key) DO NOTHING")
				assert.Equal(t, order.SecretKey, args[4])
				*dest.(*int64) = 41
				return nil
			})

		ok, err := repo.CreateTx(ctx, mockTx, order)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(41), order.ID)
	})

	t.Run("key taken", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)
		order := testOrder()

		mockTx.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any(), anyArgs(10)...).
			Return(pgx.ErrNoRows)

		ok, err := repo.CreateTx(ctx, mockTx, order)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Zero(t, order.ID)
	})

	t.Run("unknown category", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		mockTx.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any(), anyArgs(10)...).
			Return(&pgconn.PgError{Code: "23503", ConstraintName: "orders_category_id_fkey"})

		ok, err := repo.CreateTx(ctx, mockTx, testOrder())
		assert.False(t, ok)
		assert.ErrorIs(t, err, repository.ErrReferenced)
	})
}

func TestOrderRepo_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)
		want := testOrder()
		want.ID = 5

		mockDB.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(int64(5))).
			DoAndReturn(func(_ context.Context, dest any, _ string, _ ...any) error {
				*dest.(*repository.Order) = *want
				return nil
			})

		got, err := repo.GetByID(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		mockDB.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(int64(5))).
			Return(pgx.ErrNoRows)

		got, err := repo.GetByID(ctx, 5)
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
		assert.Nil(t, got)
	})

	t.Run("locked read in tx", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		mockTx.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(int64(5))).
			DoAndReturn(func(_ context.Context, _ any, query string, _ ...any) error {
				assert.Contains(t, query, "FOR UPDATE OF o")
				return nil
			})

		_, err := repo.GetByIDTx(ctx, mockTx, 5)
		assert.NoError(t, err)
	})
}

func TestOrderRepo_UpdateTx(t *testing.T) {
	ctx := context.Background()

	t.Run("updated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)
		order := testOrder()
		order.ID = 9

		mockTx.EXPECT().
			Exec(gomock.Any(), gomock.Any(), anyArgs(9)...).
			DoAndReturn(func(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
				assert.Equal(t, int64(9), args[8])
				return pgconn.CommandTag("UPDATE 1"), nil
			})

		assert.NoError(t, repo.UpdateTx(ctx, mockTx, order))
	})

	t.Run("missing row", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		mockTx.EXPECT().
			Exec(gomock.Any(), gomock.Any(), anyArgs(9)...).
			Return(pgconn.CommandTag("UPDATE 0"), nil)

		assert.ErrorIs(t, repo.UpdateTx(ctx, mockTx, testOrder()), repository.ErrObjectNotFound)
	})
}

func TestOrderRepo_DeleteTx(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockDB := mock_database.NewMockDB(ctrl)
	mockTx := mock_database.NewMockTx(ctrl)
	repo := postgresql.NewOrderRepo(mockDB)

	mockTx.EXPECT().
		Exec(gomock.Any(), gomock.Any(), gomock.Eq(int64(3))).
		Return(pgconn.CommandTag("DELETE 1"), nil)
	assert.NoError(t, repo.DeleteTx(ctx, mockTx, 3))

	mockTx.EXPECT().
		Exec(gomock.Any(), gomock.Any(), gomock.Eq(int64(4))).
		Return(pgconn.CommandTag("DELETE 0"), nil)
	assert.ErrorIs(t, repo.DeleteTx(ctx, mockTx, 4), repository.ErrObjectNotFound)
}

func TestOrderRepo_List(t *testing.T) {
	ctx := context.Background()

	t.Run("partition and filters", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		designer := int64(7)
		criteria := access.Criteria{DesignerID: &designer, StatusMode: access.StatusEquals, Status: "Design"}
		filter := repository.OrderFilter{Search: "card", Limit: 10, Offset: 20}
		want := []*repository.Order{testOrder()}

		mockDB.EXPECT().
			Select(gomock.Any(), gomock.Any(), gomock.Any(), anyArgs(7)...).
			DoAndReturn(func(_ context.Context, dest any, query string, args ...any) error {
				assert.Contains(t, query, "o.designer_id = $1")
				assert.Contains(t, query, "lower(o.status) = $2")
				assert.Contains(t, query, "o.secret_key ILIKE $3")
				assert.Contains(t, query, "LIMIT $6 OFFSET $7")
				assert.Equal(t, []any{designer, "design", "%card%", "%card%", "%card%", 10, 20}, args)
				*dest.(*[]*repository.Order) = want
				return nil
			})

		got, err := repo.List(ctx, criteria, filter)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("db error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		mockDB.EXPECT().
			Select(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("connection reset"))

		_, err := repo.List(ctx, access.Criteria{}, repository.OrderFilter{})
		assert.ErrorContains(t, err, "failed to list orders")
	})
}

func TestOrderRepo_Count(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockDB := mock_database.NewMockDB(ctrl)
	repo := postgresql.NewOrderRepo(mockDB)

	mockDB.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, dest any, query string, _ ...any) error {
			assert.Contains(t, query, "WHERE FALSE")
			*dest.(*int) = 0
			return nil
		})

	n, err := repo.Count(ctx, access.Criteria{Deny: true}, repository.OrderFilter{})
	require.NoError(t, err)
	assert.Zero(t, n)
}
