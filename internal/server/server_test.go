package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/designhouse/printdesk/internal/access"
	"github.com/designhouse/printdesk/internal/repository"
	mock_server "github.com/designhouse/printdesk/internal/server/mocks"
	"github.com/designhouse/printdesk/internal/storage"
)

var fixedNow = time.Date(2025, 4, 9, 12, 0, 0, 0, time.UTC)

var (
	admin     = access.Principal{UserID: 1, Username: "root", Role: access.RoleAdmin, IsAdmin: true}
	designer  = access.Principal{UserID: 5, Username: "sara", Role: access.RoleDesigner}
	reception = access.Principal{UserID: 9, Username: "desk", Role: access.RoleReception}
)

// memorySink collects audit batches.
type memorySink struct {
	mu      sync.Mutex
	entries []repository.AuditLogPayload
	batches int
	err     error
}

func (s *memorySink) SaveAuditLogs(_ context.Context, entries []repository.AuditLogPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.batches++
	s.entries = append(s.entries, entries...)
	return nil
}

func (s *memorySink) saved() []repository.AuditLogPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]repository.AuditLogPayload(nil), s.entries...)
}

type testServer struct {
	storage *mock_server.MockStorage
	users   *mock_server.MockUserService
	pinger  *mock_server.MockPinger
	sink    *memorySink
	server  *Server
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &testServer{
		storage: mock_server.NewMockStorage(ctrl),
		users:   mock_server.NewMockUserService(ctrl),
		pinger:  mock_server.NewMockPinger(ctrl),
		sink:    &memorySink{},
	}
	audit := NewAuditManager(f.sink, AuditConfig{Workers: 2, BatchSize: 1, FlushTimeout: 10 * time.Millisecond}, zap.NewNop())
	f.server = New(f.storage, f.users, f.pinger, audit, Config{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	}, zap.NewNop())
	f.server.timeNow = func() time.Time { return fixedNow }
	f.handler = f.server.Router()

	ctx, cancel := context.WithCancel(context.Background())
	audit.Start(ctx)
	t.Cleanup(func() {
		f.stopAudit()
		cancel()
	})
	return f
}

func (f *testServer) stopAudit() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	f.server.AuditManager.Shutdown(ctx)
}

// do sends a request through the router, authenticated as p when p is not nil.
func (f *testServer) do(t *testing.T, method, target string, body any, p *access.Principal) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if p != nil {
		token, err := f.server.issueToken(*p)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
		f.users.EXPECT().Principal(gomock.Any(), p.UserID).Return(*p, nil)
	}

	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)
	return rr
}

func fieldErrors(t *testing.T, rr *httptest.ResponseRecorder) map[string][]string {
	t.Helper()
	require.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
	var body struct {
		Errors map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body.Errors
}

func int64Ptr(v int64) *int64 { return &v }

func strPtr(v string) *string { return &v }

func boolPtr(v bool) *bool { return &v }

func TestHandleHealth(t *testing.T) {
	tests := []struct {
		name           string
		pingErr        error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "database answers",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"ok"}`,
		},
		{
			name:           "database down",
			pingErr:        errors.New("connection refused"),
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"status":"unavailable"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newTestServer(t)
			f.pinger.EXPECT().Ping(gomock.Any()).Return(tc.pingErr)

			rr := f.do(t, http.MethodGet, "/healthz", nil, nil)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func TestHandleIssueToken(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		f := newTestServer(t)
		f.users.EXPECT().Authenticate(gomock.Any(), "sara", "s3cret-pass").Return(designer, nil)

		rr := f.do(t, http.MethodPost, "/api/auth/token", map[string]string{
			"username": "sara",
			"password": "s3cret-pass",
		}, nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var resp tokenResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, int64(3600), resp.ExpiresIn)

		userID, err := f.server.parseToken(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, designer.UserID, userID)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		f := newTestServer(t)
		f.users.EXPECT().Authenticate(gomock.Any(), "sara", "guess").Return(access.Principal{}, storage.ErrInvalidCredentials)

		rr := f.do(t, http.MethodPost, "/api/auth/token", map[string]string{
			"username": "sara",
			"password": "guess",
		}, nil)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"error":"Invalid credentials."}`, rr.Body.String())
	})

	t.Run("missing password", func(t *testing.T) {
		f := newTestServer(t)

		rr := f.do(t, http.MethodPost, "/api/auth/token", map[string]string{"username": "sara"}, nil)

		assert.Equal(t, map[string][]string{"password": {"This field is required."}}, fieldErrors(t, rr))
	})

	t.Run("malformed body", func(t *testing.T) {
		f := newTestServer(t)

		rr := f.do(t, http.MethodPost, "/api/auth/token", "{", nil)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"Invalid request body"}`, rr.Body.String())
	})
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("no credentials", func(t *testing.T) {
		f := newTestServer(t)

		rr := f.do(t, http.MethodGet, "/api/categories", nil, nil)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Header().Get("WWW-Authenticate"), "Basic")
	})

	t.Run("basic credentials", func(t *testing.T) {
		f := newTestServer(t)
		f.users.EXPECT().Authenticate(gomock.Any(), "sara", "s3cret-pass").Return(designer, nil)
		f.storage.EXPECT().ListCategories(gomock.Any(), nil).Return([]storage.Category{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
		req.SetBasicAuth("sara", "s3cret-pass")
		rr := httptest.NewRecorder()
		f.handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("token signed with another key", func(t *testing.T) {
		f := newTestServer(t)
		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    issuer,
				Subject:   "1",
				ExpiresAt: jwt.NewNumericDate(fixedNow.Add(time.Hour)),
			},
		}).SignedString([]byte("other-secret"))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
		req.Header.Set("Authorization", "Bearer "+forged)
		rr := httptest.NewRecorder()
		f.handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		f := newTestServer(t)
		token, err := f.server.issueToken(designer)
		require.NoError(t, err)
		f.server.timeNow = func() time.Time { return fixedNow.Add(2 * time.Hour) }

		req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		f.handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("deactivated user", func(t *testing.T) {
		f := newTestServer(t)
		token, err := f.server.issueToken(designer)
		require.NoError(t, err)
		f.users.EXPECT().Principal(gomock.Any(), designer.UserID).Return(access.Principal{}, storage.ErrInvalidCredentials)

		req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		f.handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("user lookup fails", func(t *testing.T) {
		f := newTestServer(t)
		token, err := f.server.issueToken(designer)
		require.NoError(t, err)
		f.users.EXPECT().Principal(gomock.Any(), designer.UserID).Return(access.Principal{}, errors.New("db down"))

		req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		f.handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestRouter(t *testing.T) {
	t.Run("trailing slash reaches the route", func(t *testing.T) {
		f := newTestServer(t)
		f.storage.EXPECT().ListCategories(gomock.Any(), strPtr("WC")).Return([]storage.Category{
			{ID: 1, Name: "Banners", Stages: []string{"Print"}, CategoryList: strPtr("WC")},
		}, nil)

		rr := f.do(t, http.MethodGet, "/api/categories/?category_list=WC", nil, &designer)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[{"id":1,"name":"Banners","stages":["Print"],"category_list":"WC"}]`, rr.Body.String())
	})

	t.Run("unknown path", func(t *testing.T) {
		f := newTestServer(t)

		rr := f.do(t, http.MethodGet, "/api/unknown", nil, nil)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.JSONEq(t, `{"error":"Not found."}`, rr.Body.String())
	})
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "validation",
			err:            &storage.ValidationError{Fields: map[string][]string{"price": {"Price cannot be negative."}}},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"errors":{"price":["Price cannot be negative."]}}`,
		},
		{
			name:           "forbidden",
			err:            &storage.ForbiddenError{Reason: "Admin role required to manage users."},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"error":"Admin role required to manage users."}`,
		},
		{
			name:           "not found",
			err:            storage.ErrNotFound,
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"Not found."}`,
		},
		{
			name:           "conflict",
			err:            storage.ErrConflict,
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error":"Cannot delete this record because it is still referenced."}`,
		},
		{
			name:           "key exhausted",
			err:            storage.ErrKeyExhausted,
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"error":"Could not allocate a unique secret key, try again later.","code":"secret_key_exhausted"}`,
		},
		{
			name:           "unexpected",
			err:            errors.New("connection reset"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Internal server error."}`,
		},
	}

	f := newTestServer(t)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
			rr := httptest.NewRecorder()

			f.server.writeError(rr, req, tc.err)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}
