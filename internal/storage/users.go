package storage

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/designhouse/printdesk/internal/access"
	"github.com/designhouse/printdesk/internal/repository"
)

const minPasswordLength = 8

// Authenticate checks credentials and returns the caller's principal.
func (s *Storage) Authenticate(ctx context.Context, username, password string) (access.Principal, error) {
	u, err := s.repos.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return access.Principal{}, ErrInvalidCredentials
		}
		return access.Principal{}, fmt.Errorf("failed to get user: %w", err)
	}
	if !u.IsActive {
		return access.Principal{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return access.Principal{}, ErrInvalidCredentials
	}
	return principalOf(u), nil
}

// Principal reloads the principal of an existing active user.
func (s *Storage) Principal(ctx context.Context, userID int64) (access.Principal, error) {
	u, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return access.Principal{}, ErrInvalidCredentials
		}
		return access.Principal{}, fmt.Errorf("failed to get user: %w", err)
	}
	if !u.IsActive {
		return access.Principal{}, ErrInvalidCredentials
	}
	return principalOf(u), nil
}

func (s *Storage) CreateUser(ctx context.Context, p access.Principal, in UserInput) (*User, error) {
	if !access.CanManageUsers(p) {
		return nil, forbidden("Admin role required to manage users.")
	}

	v := &ValidationError{}
	requireText(v, "username", in.Username)
	if len(in.Password) < minPasswordLength {
		v.Add("password", fmt.Sprintf("Ensure this field has at least %d characters.", minPasswordLength))
	}
	if !in.Role.Known() {
		v.Add("role", fmt.Sprintf("\"%d\" is not a valid choice.", in.Role))
	}
	if in.Email != "" {
		if _, err := mail.ParseAddress(in.Email); err != nil {
			v.Add("email", "Enter a valid email address.")
		}
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	u, err := s.newUser(in)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, newValidationError("username", "A user with that username already exists.")
		}
		return nil, fmt.Errorf("failed to add user: %w", err)
	}
	out := toUser(u)
	return &out, nil
}

func (s *Storage) ListUsers(ctx context.Context, p access.Principal) ([]User, error) {
	if !access.CanManageUsers(p) {
		return nil, forbidden("Admin role required to manage users.")
	}
	rows, err := s.repos.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]User, 0, len(rows))
	for _, u := range rows {
		out = append(out, toUser(u))
	}
	return out, nil
}

// GetUser returns a user to admins or to the user themself.
func (s *Storage) GetUser(ctx context.Context, p access.Principal, id int64) (*User, error) {
	if !access.CanManageUsers(p) && p.UserID != id {
		return nil, ErrNotFound
	}
	u, err := s.repos.Users.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "failed to get user")
	}
	out := toUser(u)
	return &out, nil
}

// EnsureAdmin creates the bootstrap admin account when it does not exist.
func (s *Storage) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	_, err := s.repos.Users.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrObjectNotFound) {
		return fmt.Errorf("failed to look up admin: %w", err)
	}

	u, err := s.newUser(UserInput{Username: username, Password: password, Role: access.RoleAdmin, IsAdmin: true})
	if err != nil {
		return err
	}
	if err := s.repos.Users.Create(ctx, u); err != nil && !errors.Is(err, repository.ErrDuplicate) {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	s.logger.Info("bootstrap admin created", zap.String("username", username))
	return nil
}

func (s *Storage) newUser(in UserInput) (*repository.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return &repository.User{
		Username:  strings.TrimSpace(in.Username),
		Password:  string(hash),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Role:      int16(in.Role),
		IsAdmin:   in.IsAdmin,
		IsActive:  true,
		CreatedAt: s.timeNow().UTC(),
	}, nil
}

func principalOf(u *repository.User) access.Principal {
	return access.Principal{
		UserID:   u.ID,
		Username: u.Username,
		Role:     access.Role(u.Role),
		IsAdmin:  u.IsAdmin,
	}
}

func toUser(u *repository.User) User {
	role := access.Role(u.Role)
	return User{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      role,
		RoleName:  role.String(),
		IsAdmin:   u.IsAdmin,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
