package postgresql

import (
	"errors"
	"fmt"
	"strings"

	"github.com/georgysavva/scany/pgxscan"
	"github.com/jackc/pgx/v4"

	"github.com/designhouse/printdesk/internal/access"
	"github.com/designhouse/printdesk/internal/db"
	"github.com/designhouse/printdesk/internal/repository"
)

// where accumulates AND-ed conditions with positional arguments. Conditions
// use "?" for arguments and are renumbered on add.
type where struct {
	conds []string
	args  []any
}

func (w *where) add(cond string, args ...any) {
	var b strings.Builder
	next := 0
	for _, r := range cond {
		if r == '?' && next < len(args) {
			w.args = append(w.args, args[next])
			next++
			fmt.Fprintf(&b, "$%d", len(w.args))
			continue
		}
		b.WriteRune(r)
	}
	w.conds = append(w.conds, b.String())
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// limit appends LIMIT/OFFSET placeholders after the collected arguments.
func (w *where) limit(limit, offset int) string {
	if limit <= 0 {
		return ""
	}
	w.args = append(w.args, limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(w.args)-1, len(w.args))
}

// applyCriteria renders a role partition over the orders table aliased o.
func (w *where) applyCriteria(c access.Criteria) {
	if c.Deny {
		w.add("FALSE")
		return
	}
	if c.DesignerID != nil {
		w.add("o.designer_id = ?", *c.DesignerID)
	}
	if c.CategoryID != nil {
		w.add("o.category_id = ?", *c.CategoryID)
	}

	switch c.DayMode {
	case access.OnlyDay:
		w.add("o.created_at >= ? AND o.created_at < ?", c.DayStart, c.DayEnd)
	case access.ExceptDay:
		w.add("(o.created_at < ? OR o.created_at >= ?)", c.DayStart, c.DayEnd)
	}

	switch c.StatusMode {
	case access.StatusEquals:
		w.add("lower(o.status) = ?", access.FoldStatus(c.Status))
	case access.StatusNotEquals:
		w.add("lower(o.status) <> ?", access.FoldStatus(c.Status))
	}
}

func (w *where) applyOrderFilter(f repository.OrderFilter) {
	if f.Search != "" {
		w.add("(o.secret_key ILIKE ? OR o.order_name ILIKE ? OR o.customer_name ILIKE ?)",
			likePattern(f.Search), likePattern(f.Search), likePattern(f.Search))
	}
	if f.Status != "" {
		w.add("lower(o.status) = ?", access.FoldStatus(f.Status))
	}
	if f.DesignerID != nil {
		w.add("o.designer_id = ?", *f.DesignerID)
	}
}

func (w *where) applyReceptionFilter(f repository.ReceptionFilter) {
	if f.OrderID != nil {
		w.add("r.order_id = ?", *f.OrderID)
	}
	if f.IsChecked != nil {
		w.add("r.is_checked = ?", *f.IsChecked)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || pgxscan.NotFound(err)
}

// mapWriteError translates constraint violations into repository errors.
func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := db.UniqueViolation(err); ok {
		return fmt.Errorf("%w: %v", repository.ErrDuplicate, err)
	}
	if _, ok := db.ForeignKeyViolation(err); ok {
		return fmt.Errorf("%w: %v", repository.ErrReferenced, err)
	}
	return err
}
