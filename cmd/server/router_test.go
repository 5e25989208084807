package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarmadH97/keeyu-task-board/internal/domain"
)

// newTestApplication wires a full application over a sqlmock database
// so routes can be exercised end to end through the real router and
// middleware chain.
func newTestApplication(t *testing.T) (*application, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	app, err := newApplication(testConfig(), testLogger(), db)
	require.NoError(t, err)

	return app, mock
}

func TestRouterHealthCheck(t *testing.T) {
	app, _ := newTestApplication(t)
	router := app.setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())
}

func TestRouterRequiresAuthentication(t *testing.T) {
	app, _ := newTestApplication(t)
	router := app.setupRouter()

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/boards"},
		{http.MethodPost, "/api/boards"},
		{http.MethodGet, "/api/boards/" + uuid.New().String()},
		{http.MethodPost, "/api/columns"},
		{http.MethodPost, "/api/tasks/" + uuid.New().String() + "/move"},
		{http.MethodGet, "/api/admin/users"},
	}

	for _, tc := range protected {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, "Authorization header required", resp["error"])
		})
	}
}

func TestRouterRejectsBadTokens(t *testing.T) {
	app, _ := newTestApplication(t)
	router := app.setupRouter()

	// A refresh token must not open protected routes even though it is
	// signed with the same key.
	refreshToken, err := app.jwtService.GenerateRefreshToken(
		context.Background(),
		uuid.New(),
		domain.RoleMember,
	)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"malformed token", "Bearer not-a-jwt"},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"refresh token on protected route", "Bearer " + refreshToken},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/boards", nil)
			req.Header.Set("Authorization", tc.header)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}

func TestRouterPublicAuthRoutes(t *testing.T) {
	app, _ := newTestApplication(t)
	router := app.setupRouter()

	// A malformed body proves the route is wired and public: the
	// handler rejects the payload instead of the router returning 404
	// or the auth middleware returning 401.
	for _, path := range []string{"/api/auth/register", "/api/auth/login", "/api/auth/refresh"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, path, strings.NewReader("{not json"))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestRouterAdminRoutes(t *testing.T) {
	t.Run("member is forbidden", func(t *testing.T) {
		app, _ := newTestApplication(t)
		router := app.setupRouter()

		memberToken, err := app.jwtService.GenerateToken(
			context.Background(),
			uuid.New(),
			domain.RoleMember,
		)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
		req.Header.Set("Authorization", "Bearer "+memberToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "Admin access required", resp["error"])
	})

	t.Run("admin lists accounts", func(t *testing.T) {
		app, mock := newTestApplication(t)
		router := app.setupRouter()

		adminID := uuid.New()
		now := time.Now().UTC()
		listPattern := regexp.QuoteMeta(
			"SELECT id, email, role, hashed_password, created_at, updated_at FROM users ORDER BY created_at",
		)
		mock.ExpectQuery(listPattern).WillReturnRows(
			sqlmock.NewRows(
				[]string{"id", "email", "role", "hashed_password", "created_at", "updated_at"},
			).
				AddRow(adminID, "admin@example.com", "admin", "$2a$10$abcdefghijklmnopqrstuv", now, now).
				AddRow(uuid.New(), "member@example.com", "member", "$2a$10$abcdefghijklmnopqrstuv", now, now),
		)

		adminToken, err := app.jwtService.GenerateToken(
			context.Background(),
			adminID,
			domain.RoleAdmin,
		)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
		req.Header.Set("Authorization", "Bearer "+adminToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "admin@example.com")
		assert.Contains(t, rr.Body.String(), "member@example.com")
		assert.NotContains(t, rr.Body.String(), "$2a$10$",
			"password hashes must never reach API responses")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRouterUnknownRoute(t *testing.T) {
	app, _ := newTestApplication(t)
	router := app.setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
