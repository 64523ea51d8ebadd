package postgresql

import (
	"context"
	"fmt"

	"github.com/designhouse/printdesk/internal/db"
	"github.com/designhouse/printdesk/internal/repository"
	"github.com/designhouse/printdesk/internal/storage"
)

const userColumns = "id, username, password, first_name, last_name, email, role, is_admin, is_active, created_at"

type UserRepo struct {
	db db.DB
}

func NewUserRepo(db db.DB) storage.UserRepository {
	return &UserRepo{db: db}
}

// Create stores u. Password must already be hashed.
func (r *UserRepo) Create(ctx context.Context, u *repository.User) error {
	err := r.db.Get(ctx, &u.ID, `
        INSERT INTO users (
            username, password, first_name, last_name, email, role, is_admin, is_active, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id
    `, u.Username, u.Password, u.FirstName, u.LastName, u.Email, u.Role, u.IsAdmin, u.IsActive, u.CreatedAt)
	return mapWriteError(err)
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*repository.User, error) {
	var u repository.User
	if err := r.db.Get(ctx, &u, "SELECT "+userColumns+" FROM users WHERE id = $1", id); err != nil {
		if isNoRows(err) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*repository.User, error) {
	var u repository.User
	if err := r.db.Get(ctx, &u, "SELECT "+userColumns+" FROM users WHERE username = $1", username); err != nil {
		if isNoRows(err) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) List(ctx context.Context) ([]*repository.User, error) {
	var users []*repository.User
	if err := r.db.Select(ctx, &users, "SELECT "+userColumns+" FROM users ORDER BY id"); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
