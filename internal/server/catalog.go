package server

import (
	"net/http"

	"github.com/designhouse/printdesk/internal/storage"
)

type categoryRequest struct {
	Name         string   `json:"name" validate:"required,max=255"`
	Stages       []string `json:"stages"`
	CategoryList *string  `json:"category_list"`
}

type attributeTypeRequest struct {
	Name          string `json:"name" validate:"required,max=255"`
	Category      int64  `json:"category" validate:"required,gt=0"`
	AttributeType string `json:"attribute_type" validate:"required"`
}

type attributeValueRequest struct {
	Attribute      int64  `json:"attribute" validate:"required,gt=0"`
	AttributeValue string `json:"attribute_value" validate:"required,max=255"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	categories, err := s.storage.ListCategories(r.Context(), q.OptionalString("category_list"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		handleNotFound(w, r)
		return
	}
	category, err := s.storage.GetCategory(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, category)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !bind(w, r, &req) {
		return
	}
	category, err := s.storage.CreateCategory(r.Context(), caller(r), storage.CategoryInput(req))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, category)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		handleNotFound(w, r)
		return
	}
	var req categoryRequest
	if !bind(w, r, &req) {
		return
	}
	category, err := s.storage.UpdateCategory(r.Context(), caller(r), id, storage.CategoryInput(req))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, category)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		handleNotFound(w, r)
		return
	}
	if err := s.storage.DeleteCategory(r.Context(), caller(r), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCategoryAttributes(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		handleNotFound(w, r)
		return
	}
	tree, err := s.storage.CategoryAttributes(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, tree)
}

func (s *Server) handleListAttributeTypes(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	categoryID := q.Int64("category")
	if !q.Valid(w) {
		return
	}
	types, err := s.storage.ListAttributeTypes(r.Context(), categoryID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, types)
}

func (s *Server) handleGetAttributeType(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		handleNotFound(w, r)
		return
	}
	at, err := s.storage.GetAttributeType(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, at)
}

func (s *Server) handleCreateAttributeType(w http.ResponseWriter, r *http.Request) {
	var req attributeTypeRequest
	if !bind(w, r, &req) {
		return
	}
	at, err := s.storage.CreateAttributeType(r.Context(), caller(r), storage.AttributeTypeInput{
		Name:       req.Name,
		CategoryID: req.Category,
		Type:       req.AttributeType,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, at)
}

func (s *Server) handleUpdateAttributeType(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		handleNotFound(w, r)
		return
	}
	var req attributeTypeRequest
	if !bind(w, r, &req) {
		return
	}
	at, err := s.storage.UpdateAttributeType(r.Context(), caller(r), id, storage.AttributeTypeInput{
		Name:       req.Name,
		CategoryID: req.Category,
		Type:       req.AttributeType,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, at)
}

func (s *Server) handleDeleteAttributeType(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		handleNotFound(w, r)
		return
	}
	if err := s.storage.DeleteAttributeType(r.Context(), caller(r), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListAttributeValues(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	attributeID := q.Int64("attribute")
	if !q.Valid(w) {
		return
	}
	values, err := s.storage.ListAttributeValues(r.Context(), attributeID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, values)
}

func (s *Server) handleGetAttributeValue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		handleNotFound(w, r)
		return
	}
	av, err := s.storage.GetAttributeValue(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, av)
}

func (s *Server) handleCreateAttributeValue(w http.ResponseWriter, r *http.Request) {
	var req attributeValueRequest
	if !bind(w, r, &req) {
		return
	}
	av, err := s.storage.CreateAttributeValue(r.Context(), caller(r), storage.AttributeValueInput{
		AttributeID:    req.Attribute,
		AttributeValue: req.AttributeValue,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, av)
}

func (s *Server) handleUpdateAttributeValue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		handleNotFound(w, r)
		return
	}
	var req attributeValueRequest
	if !bind(w, r, &req) {
		return
	}
	av, err := s.storage.UpdateAttributeValue(r.Context(), caller(r), id, storage.AttributeValueInput{
		AttributeID:    req.Attribute,
		AttributeValue: req.AttributeValue,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, av)
}

func (s *Server) handleDeleteAttributeValue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		handleNotFound(w, r)
		return
	}
	if err := s.storage.DeleteAttributeValue(r.Context(), caller(r), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
