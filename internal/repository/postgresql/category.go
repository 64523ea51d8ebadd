package postgresql

import (
	"context"
	"fmt"

	"github.com/designhouse/printdesk/internal/db"
	"github.com/designhouse/printdesk/internal/repository"
	"github.com/designhouse/printdesk/internal/storage"
)

type CategoryRepo struct {
	db db.DB
}

func NewCategoryRepo(db db.DB) storage.CategoryRepository {
	return &CategoryRepo{db: db}
}

func (r *CategoryRepo) Create(ctx context.Context, c *repository.Category) error {
	err := r.db.Get(ctx, &c.ID, `
        INSERT INTO categories (name, stages, category_list)
        VALUES ($1, $2, $3)
        RETURNING id
    `, c.Name, c.Stages, c.CategoryList)
	return mapWriteError(err)
}

func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*repository.Category, error) {
	var c repository.Category
	err := r.db.Get(ctx, &c, "SELECT id, name, stages, category_list FROM categories WHERE id = $1", id)
	if err != nil {
		if isNoRows(err) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepo) List(ctx context.Context, categoryList *string) ([]*repository.Category, error) {
	var w where
	if categoryList != nil {
		w.add("category_list = ?", *categoryList)
	}

	var categories []*repository.Category
	err := r.db.Select(ctx, &categories,
		"SELECT id, name, stages, category_list FROM categories"+w.String()+" ORDER BY id", w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *repository.Category) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE categories
        SET name = $1, stages = $2, category_list = $3
        WHERE id = $4
    `, c.Name, c.Stages, c.CategoryList, c.ID)
	if err != nil {
		return mapWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

func (r *CategoryRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return mapWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}
