package postgresql

import (
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/designhouse/printdesk/internal/access"
	"github.com/designhouse/printdesk/internal/repository"
)

func TestWhere_Add(t *testing.T) {
	var w where
	w.add("a = ?", 1)
	w.add("b BETWEEN ? AND ?", 2, 3)

	assert.Equal(t, " WHERE a = $1 AND b BETWEEN $2 AND $3", w.String())
	assert.Equal(t, []any{1, 2, 3}, w.args)
	assert.Equal(t, " LIMIT $4 OFFSET $5", w.limit(10, 20))
	assert.Equal(t, []any{1, 2, 3, 10, 20}, w.args)
}

func TestWhere_Empty(t *testing.T) {
	var w where
	assert.Equal(t, "", w.String())
	assert.Equal(t, "", w.limit(0, 0))
}

func TestWhere_ApplyCriteria(t *testing.T) {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)
	designer := int64(7)
	category := int64(3)

	tests := []struct {
		name     string
		criteria access.Criteria
		want     string
		args     []any
	}{
		{
			name:     "deny",
			criteria: access.Criteria{Deny: true, DesignerID: &designer},
			want:     " WHERE FALSE",
		},
		{
			name:     "everything",
			criteria: access.Criteria{},
			want:     "",
		},
		{
			name:     "own today",
			criteria: access.Criteria{DesignerID: &designer, DayMode: access.OnlyDay, DayStart: start, DayEnd: end},
			want:     " WHERE o.designer_id = $1 AND o.created_at >= $2 AND o.created_at < $3",
			args:     []any{designer, start, end},
		},
		{
			name:     "backlog",
			criteria: access.Criteria{DayMode: access.ExceptDay, DayStart: start, DayEnd: end, StatusMode: access.StatusNotEquals, Status: "Reception"},
			want:     " WHERE (o.created_at < $1 OR o.created_at >= $2) AND lower(o.status) <> $3",
			args:     []any{start, end, "reception"},
		},
		{
			name:     "category and status",
			criteria: access.Criteria{CategoryID: &category, StatusMode: access.StatusEquals, Status: "Printer"},
			want:     " WHERE o.category_id = $1 AND lower(o.status) = $2",
			args:     []any{category, "printer"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var w where
			w.applyCriteria(tc.criteria)
			assert.Equal(t, tc.want, w.String())
			assert.Equal(t, tc.args, w.args)
		})
	}
}

func TestWhere_ApplyOrderFilter(t *testing.T) {
	designer := int64(4)
	var w where
	w.applyOrderFilter(repository.OrderFilter{Search: "50%_off", Status: "Design", DesignerID: &designer})

	assert.Equal(t,
		" WHERE (o.secret_key ILIKE $1 OR o.order_name ILIKE $2 OR o.customer_name ILIKE $3) AND lower(o.status) = $4 AND o.designer_id = $5",
		w.String())
	assert.Equal(t, `%50\%\_off%`, w.args[0])
	assert.Equal(t, "design", w.args[3])
	assert.Equal(t, designer, w.args[4])
}

func TestMapWriteError(t *testing.T) {
	assert.NoError(t, mapWriteError(nil))
	assert.ErrorIs(t, mapWriteError(&pgconn.PgError{Code: "23505"}), repository.ErrDuplicate)
	assert.ErrorIs(t, mapWriteError(&pgconn.PgError{Code: "23503"}), repository.ErrReferenced)

	other := fmt.Errorf("boom")
	assert.Equal(t, other, mapWriteError(other))
}
