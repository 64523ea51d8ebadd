package postgresql

import (
	"context"
	"fmt"

	"github.com/designhouse/printdesk/internal/db"
)

// KeySequence reserves secret key numbers from a database sequence. nextval
// is never rolled back, so a number is handed out at most once.
type KeySequence struct {
	db   db.DB
	name string
}

func NewKeySequence(db db.DB) *KeySequence {
	return &KeySequence{db: db, name: "order_secret_key_seq"}
}

func (s *KeySequence) Next(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.Get(ctx, &n, "SELECT nextval($1::regclass)", s.name); err != nil {
		return 0, fmt.Errorf("failed to reserve %s: %w", s.name, err)
	}
	return n, nil
}
