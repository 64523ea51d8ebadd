package postgresql

import (
	"context"
	"fmt"

	"github.com/designhouse/printdesk/internal/db"
	"github.com/designhouse/printdesk/internal/repository"
	"github.com/designhouse/printdesk/internal/storage"
)

type AttributeTypeRepo struct {
	db db.DB
}

func NewAttributeTypeRepo(db db.DB) storage.AttributeTypeRepository {
	return &AttributeTypeRepo{db: db}
}

func (r *AttributeTypeRepo) Create(ctx context.Context, a *repository.AttributeType) error {
	err := r.db.Get(ctx, &a.ID, `
        INSERT INTO attribute_types (name, category_id, type)
        VALUES ($1, $2, $3)
        RETURNING id
    `, a.Name, a.CategoryID, a.Type)
	return mapWriteError(err)
}

func (r *AttributeTypeRepo) GetByID(ctx context.Context, id int64) (*repository.AttributeType, error) {
	var a repository.AttributeType
	err := r.db.Get(ctx, &a, "SELECT id, name, category_id, type FROM attribute_types WHERE id = $1", id)
	if err != nil {
		if isNoRows(err) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *AttributeTypeRepo) List(ctx context.Context, categoryID *int64) ([]*repository.AttributeType, error) {
	var w where
	if categoryID != nil {
		w.add("category_id = ?", *categoryID)
	}

	var types []*repository.AttributeType
	err := r.db.Select(ctx, &types,
		"SELECT id, name, category_id, type FROM attribute_types"+w.String()+" ORDER BY id", w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attribute types: %w", err)
	}
	return types, nil
}

func (r *AttributeTypeRepo) Update(ctx context.Context, a *repository.AttributeType) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE attribute_types
        SET name = $1, category_id = $2, type = $3
        WHERE id = $4
    `, a.Name, a.CategoryID, a.Type, a.ID)
	if err != nil {
		return mapWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

func (r *AttributeTypeRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM attribute_types WHERE id = $1", id)
	if err != nil {
		return mapWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

type AttributeValueRepo struct {
	db db.DB
}

func NewAttributeValueRepo(db db.DB) storage.AttributeValueRepository {
	return &AttributeValueRepo{db: db}
}

func (r *AttributeValueRepo) Create(ctx context.Context, v *repository.AttributeValue) error {
	err := r.db.Get(ctx, &v.ID, `
        INSERT INTO attribute_values (attribute_id, attribute_value)
        VALUES ($1, $2)
        RETURNING id
    `, v.AttributeID, v.AttributeValue)
	return mapWriteError(err)
}

func (r *AttributeValueRepo) GetByID(ctx context.Context, id int64) (*repository.AttributeValue, error) {
	var v repository.AttributeValue
	err := r.db.Get(ctx, &v, "SELECT id, attribute_id, attribute_value FROM attribute_values WHERE id = $1", id)
	if err != nil {
		if isNoRows(err) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *AttributeValueRepo) List(ctx context.Context, attributeID *int64) ([]*repository.AttributeValue, error) {
	var w where
	if attributeID != nil {
		w.add("attribute_id = ?", *attributeID)
	}

	var values []*repository.AttributeValue
	err := r.db.Select(ctx, &values,
		"SELECT id, attribute_id, attribute_value FROM attribute_values"+w.String()+" ORDER BY id", w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attribute values: %w", err)
	}
	return values, nil
}

func (r *AttributeValueRepo) ListByCategory(ctx context.Context, categoryID int64) ([]*repository.AttributeValue, error) {
	var values []*repository.AttributeValue
	err := r.db.Select(ctx, &values, `
        SELECT v.id, v.attribute_id, v.attribute_value
        FROM attribute_values v
        JOIN attribute_types t ON t.id = v.attribute_id
        WHERE t.category_id = $1
        ORDER BY v.id
    `, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attribute values of category %d: %w", categoryID, err)
	}
	return values, nil
}

func (r *AttributeValueRepo) Update(ctx context.Context, v *repository.AttributeValue) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE attribute_values
        SET attribute_id = $1, attribute_value = $2
        WHERE id = $3
    `, v.AttributeID, v.AttributeValue, v.ID)
	if err != nil {
		return mapWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

func (r *AttributeValueRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM attribute_values WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}
