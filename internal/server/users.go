package server

import (
	"net/http"

	"github.com/designhouse/printdesk/internal/access"
	"github.com/designhouse/printdesk/internal/storage"
)

type userRequest struct {
	Username  string      `json:"username" validate:"required,max=150"`
	Password  string      `json:"password" validate:"required"`
	FirstName string      `json:"first_name" validate:"max=150"`
	LastName  string      `json:"last_name" validate:"max=150"`
	Email     string      `json:"email" validate:"omitempty,email"`
	Role      access.Role `json:"role"`
	IsAdmin   bool        `json:"is_admin"`
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.ListUsers(r.Context(), caller(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if !bind(w, r, &req) {
		return
	}
	user, err := s.users.CreateUser(r.Context(), caller(r), storage.UserInput(req))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		handleNotFound(w, r)
		return
	}
	user, err := s.users.GetUser(r.Context(), caller(r), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	p := caller(r)
	user, err := s.users.GetUser(r.Context(), p, p.UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}
