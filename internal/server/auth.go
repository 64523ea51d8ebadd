package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/designhouse/printdesk/internal/access"
	"github.com/designhouse/printdesk/internal/storage"
)

type contextKey string

const principalKey contextKey = "principal"

const issuer = "printdesk"

var errInvalidToken = errors.New("invalid token")

type tokenClaims struct {
	Username string      `json:"username"`
	Role     access.Role `json:"role"`
	jwt.RegisteredClaims
}

type tokenRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func withPrincipal(ctx context.Context, p access.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// principalFrom returns the caller set by authMiddleware.
func principalFrom(ctx context.Context) (access.Principal, bool) {
	p, ok := ctx.Value(principalKey).(access.Principal)
	return p, ok
}

func (s *Server) handleIssueToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if !bind(w, r, &req) {
		return
	}

	p, err := s.users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	setAuditPrincipal(r.Context(), p)

	token, err := s.issueToken(p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.config.TokenTTL.Seconds()),
	})
}

func (s *Server) issueToken(p access.Principal) (string, error) {
	now := s.timeNow()
	claims := tokenClaims{
		Username: p.Username,
		Role:     p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(p.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// parseToken returns the user id the token was issued to.
func (s *Server) parseToken(raw string) (int64, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.timeNow),
	)
	if err != nil || !token.Valid {
		return 0, errInvalidToken
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, errInvalidToken
	}
	return id, nil
}

// authMiddleware accepts a Bearer token or HTTP Basic credentials and stores
// the caller in the request context.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := s.authenticate(r)
		if err != nil {
			if errors.Is(err, errInvalidToken) || errors.Is(err, storage.ErrInvalidCredentials) {
				w.Header().Set("WWW-Authenticate", `Bearer realm="printdesk", Basic realm="printdesk"`)
				respondError(w, http.StatusUnauthorized, "Authentication credentials were not provided or are invalid.")
				return
			}
			s.logger.Error("failed to authenticate request", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "Internal server error.")
			return
		}

		setAuditPrincipal(r.Context(), p)
		next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), p)))
	})
}

func (s *Server) authenticate(r *http.Request) (access.Principal, error) {
	header := r.Header.Get("Authorization")
	if raw, ok := strings.CutPrefix(header, "Bearer "); ok {
		id, err := s.parseToken(strings.TrimSpace(raw))
		if err != nil {
			return access.Principal{}, err
		}
		return s.users.Principal(r.Context(), id)
	}

	username, password, ok := r.BasicAuth()
	if !ok {
		return access.Principal{}, storage.ErrInvalidCredentials
	}
	return s.users.Authenticate(r.Context(), username, password)
}

// caller is only called behind authMiddleware.
func caller(r *http.Request) access.Principal {
	p, _ := principalFrom(r.Context())
	return p
}
