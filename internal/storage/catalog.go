package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/designhouse/printdesk/internal/access"
	"github.com/designhouse/printdesk/internal/repository"
)

const msgCatalogForbidden = "You do not have permission to modify the catalog."

func (s *Storage) ListCategories(ctx context.Context, categoryList *string) ([]Category, error) {
	if categoryList != nil && !categoryLists[*categoryList] {
		return []Category{}, nil
	}
	rows, err := s.repos.Categories.List(ctx, categoryList)
	if err != nil {
		return nil, err
	}
	out := make([]Category, 0, len(rows))
	for _, c := range rows {
		out = append(out, toCategory(c))
	}
	return out, nil
}

func (s *Storage) GetCategory(ctx context.Context, id int64) (*Category, error) {
	c, err := s.repos.Categories.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "failed to get category")
	}
	out := toCategory(c)
	return &out, nil
}

func (s *Storage) CreateCategory(ctx context.Context, p access.Principal, in CategoryInput) (*Category, error) {
	if !access.CanManageCatalog(p) {
		return nil, forbidden(msgCatalogForbidden)
	}
	c, err := categoryRow(in)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Categories.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to add category: %w", err)
	}
	out := toCategory(c)
	return &out, nil
}

func (s *Storage) UpdateCategory(ctx context.Context, p access.Principal, id int64, in CategoryInput) (*Category, error) {
	if !access.CanManageCatalog(p) {
		return nil, forbidden(msgCatalogForbidden)
	}
	c, err := categoryRow(in)
	if err != nil {
		return nil, err
	}
	c.ID = id
	if err := s.repos.Categories.Update(ctx, c); err != nil {
		return nil, notFoundOr(err, "failed to update category")
	}
	s.cache.Invalidate(id)
	out := toCategory(c)
	return &out, nil
}

func (s *Storage) DeleteCategory(ctx context.Context, p access.Principal, id int64) error {
	if !access.CanManageCatalog(p) {
		return forbidden(msgCatalogForbidden)
	}
	if err := s.repos.Categories.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrReferenced) {
			return fmt.Errorf("%w: category %d still has orders", ErrConflict, id)
		}
		return notFoundOr(err, "failed to delete category")
	}
	s.cache.Invalidate(id)
	return nil
}

func (s *Storage) ListAttributeTypes(ctx context.Context, categoryID *int64) ([]AttributeType, error) {
	rows, err := s.repos.AttributeTypes.List(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	out := make([]AttributeType, 0, len(rows))
	for _, a := range rows {
		out = append(out, toAttributeType(a))
	}
	return out, nil
}

func (s *Storage) GetAttributeType(ctx context.Context, id int64) (*AttributeType, error) {
	a, err := s.repos.AttributeTypes.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "failed to get attribute type")
	}
	out := toAttributeType(a)
	return &out, nil
}

func (s *Storage) CreateAttributeType(ctx context.Context, p access.Principal, in AttributeTypeInput) (*AttributeType, error) {
	if !access.CanManageCatalog(p) {
		return nil, forbidden(msgCatalogForbidden)
	}
	row := &repository.AttributeType{Name: in.Name, CategoryID: in.CategoryID, Type: in.Type}
	if err := s.saveAttributeType(ctx, row, s.repos.AttributeTypes.Create); err != nil {
		return nil, err
	}
	out := toAttributeType(row)
	return &out, nil
}

func (s *Storage) UpdateAttributeType(ctx context.Context, p access.Principal, id int64, in AttributeTypeInput) (*AttributeType, error) {
	if !access.CanManageCatalog(p) {
		return nil, forbidden(msgCatalogForbidden)
	}
	old, err := s.repos.AttributeTypes.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "failed to get attribute type")
	}
	row := &repository.AttributeType{ID: id, Name: in.Name, CategoryID: in.CategoryID, Type: in.Type}
	if err := s.saveAttributeType(ctx, row, s.repos.AttributeTypes.Update); err != nil {
		return nil, err
	}
	s.cache.Invalidate(old.CategoryID)
	out := toAttributeType(row)
	return &out, nil
}

func (s *Storage) DeleteAttributeType(ctx context.Context, p access.Principal, id int64) error {
	if !access.CanManageCatalog(p) {
		return forbidden(msgCatalogForbidden)
	}
	old, err := s.repos.AttributeTypes.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "failed to get attribute type")
	}
	if err := s.repos.AttributeTypes.Delete(ctx, id); err != nil {
		return notFoundOr(err, "failed to delete attribute type")
	}
	s.cache.Invalidate(old.CategoryID)
	return nil
}

// saveAttributeType validates row and writes it with save. The pair
// (name, category) is unique.
func (s *Storage) saveAttributeType(ctx context.Context, row *repository.AttributeType, save func(context.Context, *repository.AttributeType) error) error {
	v := &ValidationError{}
	requireText(v, "name", row.Name)
	if !attributeKinds[row.Type] {
		v.Add("attribute_type", fmt.Sprintf("\"%s\" is not a valid choice.", row.Type))
	}
	if row.CategoryID <= 0 {
		v.Add("category", "This field is required.")
	}
	if err := v.err(); err != nil {
		return err
	}

	category, err := s.repos.Categories.GetByID(ctx, row.CategoryID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return newValidationError("category", invalidPK(row.CategoryID))
		}
		return fmt.Errorf("failed to get category: %w", err)
	}

	if err := save(ctx, row); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return newValidationError("name", fmt.Sprintf(
				"An attribute with the name '%s' already exists in the category '%s'.", row.Name, category.Name))
		case errors.Is(err, repository.ErrReferenced):
			return newValidationError("category", invalidPK(row.CategoryID))
		}
		return notFoundOr(err, "failed to save attribute type")
	}
	s.cache.Invalidate(row.CategoryID)
	return nil
}

func (s *Storage) ListAttributeValues(ctx context.Context, attributeID *int64) ([]AttributeValue, error) {
	rows, err := s.repos.AttributeValues.List(ctx, attributeID)
	if err != nil {
		return nil, err
	}
	out := make([]AttributeValue, 0, len(rows))
	for _, v := range rows {
		out = append(out, toAttributeValue(v))
	}
	return out, nil
}

func (s *Storage) GetAttributeValue(ctx context.Context, id int64) (*AttributeValue, error) {
	v, err := s.repos.AttributeValues.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "failed to get attribute value")
	}
	out := toAttributeValue(v)
	return &out, nil
}

func (s *Storage) CreateAttributeValue(ctx context.Context, p access.Principal, in AttributeValueInput) (*AttributeValue, error) {
	if !access.CanManageCatalog(p) {
		return nil, forbidden(msgCatalogForbidden)
	}
	row := &repository.AttributeValue{AttributeID: in.AttributeID, AttributeValue: in.AttributeValue}
	if err := s.saveAttributeValue(ctx, row, s.repos.AttributeValues.Create); err != nil {
		return nil, err
	}
	out := toAttributeValue(row)
	return &out, nil
}

func (s *Storage) UpdateAttributeValue(ctx context.Context, p access.Principal, id int64, in AttributeValueInput) (*AttributeValue, error) {
	if !access.CanManageCatalog(p) {
		return nil, forbidden(msgCatalogForbidden)
	}
	row := &repository.AttributeValue{ID: id, AttributeID: in.AttributeID, AttributeValue: in.AttributeValue}
	if err := s.saveAttributeValue(ctx, row, s.repos.AttributeValues.Update); err != nil {
		return nil, err
	}
	out := toAttributeValue(row)
	return &out, nil
}

func (s *Storage) DeleteAttributeValue(ctx context.Context, p access.Principal, id int64) error {
	if !access.CanManageCatalog(p) {
		return forbidden(msgCatalogForbidden)
	}
	if err := s.repos.AttributeValues.Delete(ctx, id); err != nil {
		return notFoundOr(err, "failed to delete attribute value")
	}
	s.cache.Clear()
	return nil
}

// saveAttributeValue validates row and writes it with save. The pair
// (attribute, value) is unique.
func (s *Storage) saveAttributeValue(ctx context.Context, row *repository.AttributeValue, save func(context.Context, *repository.AttributeValue) error) error {
	v := &ValidationError{}
	requireText(v, "attribute_value", row.AttributeValue)
	if row.AttributeID <= 0 {
		v.Add("attribute", "This field is required.")
	}
	if err := v.err(); err != nil {
		return err
	}

	attr, err := s.repos.AttributeTypes.GetByID(ctx, row.AttributeID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return newValidationError("attribute", invalidPK(row.AttributeID))
		}
		return fmt.Errorf("failed to get attribute type: %w", err)
	}

	if err := save(ctx, row); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return newValidationError("attribute_value", fmt.Sprintf(
				"The value '%s' already exists for the attribute '%s'.", row.AttributeValue, attr.Name))
		case errors.Is(err, repository.ErrReferenced):
			return newValidationError("attribute", invalidPK(row.AttributeID))
		}
		return notFoundOr(err, "failed to save attribute value")
	}
	s.cache.Clear()
	return nil
}

// CategoryAttributes returns a category with its attribute types and values,
// served from the cache when possible.
func (s *Storage) CategoryAttributes(ctx context.Context, categoryID int64) (*CategoryAttributes, error) {
	if cached, ok := s.cache.Get(categoryID); ok {
		return cached, nil
	}

	category, err := s.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	types, err := s.repos.AttributeTypes.List(ctx, &categoryID)
	if err != nil {
		return nil, err
	}
	values, err := s.repos.AttributeValues.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	byType := make(map[int64][]AttributeValue, len(types))
	for _, v := range values {
		byType[v.AttributeID] = append(byType[v.AttributeID], toAttributeValue(v))
	}

	out := &CategoryAttributes{Category: *category, Attributes: make([]AttributeWithValues, 0, len(types))}
	for _, t := range types {
		vals := byType[t.ID]
		if vals == nil {
			vals = []AttributeValue{}
		}
		out.Attributes = append(out.Attributes, AttributeWithValues{AttributeType: toAttributeType(t), Values: vals})
	}

	s.cache.Set(categoryID, out)
	return out, nil
}

func categoryRow(in CategoryInput) (*repository.Category, error) {
	v := &ValidationError{}
	requireText(v, "name", in.Name)
	if in.CategoryList != nil && !categoryLists[*in.CategoryList] {
		v.Add("category_list", fmt.Sprintf("\"%s\" is not a valid choice.", *in.CategoryList))
	}
	for _, stage := range in.Stages {
		if stage == "" {
			v.Add("stages", "Stage names may not be blank.")
			break
		}
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	stages := in.Stages
	if stages == nil {
		stages = []string{}
	}
	raw, err := json.Marshal(stages)
	if err != nil {
		return nil, fmt.Errorf("failed to encode stages: %w", err)
	}
	return &repository.Category{Name: in.Name, Stages: raw, CategoryList: in.CategoryList}, nil
}

func toCategory(c *repository.Category) Category {
	out := Category{ID: c.ID, Name: c.Name, CategoryList: c.CategoryList, Stages: []string{}}
	if len(c.Stages) > 0 {
		var stages []string
		if err := json.Unmarshal(c.Stages, &stages); err == nil && stages != nil {
			out.Stages = stages
		}
	}
	return out
}

func toAttributeType(a *repository.AttributeType) AttributeType {
	return AttributeType{ID: a.ID, Name: a.Name, CategoryID: a.CategoryID, Type: a.Type}
}

func toAttributeValue(v *repository.AttributeValue) AttributeValue {
	return AttributeValue{ID: v.ID, AttributeID: v.AttributeID, AttributeValue: v.AttributeValue}
}

func notFoundOr(err error, msg string) error {
	if errors.Is(err, repository.ErrObjectNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}
