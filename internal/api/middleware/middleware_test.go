package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/futig/proposal-backend/internal/entity"
	"github.com/futig/proposal-backend/internal/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func signed(t *testing.T, m *token.Manager, role entity.Role) string {
	t.Helper()
	raw, err := m.Sign(&entity.User{ID: 3, Email: "u@example.com", Role: role})
	require.NoError(t, err)
	return raw
}

func whoAmI(w http.ResponseWriter, r *http.Request) {
	if id := IdentityFromContext(r.Context()); id != nil {
		w.Write([]byte(id.Role))
		return
	}
	w.Write([]byte("anonymous"))
}

func TestAuthenticate(t *testing.T) {
	m := token.NewManager(testSecret, time.Hour)
	stale := token.NewManager(testSecret, -time.Minute)
	h := Authenticate(m)(http.HandlerFunc(whoAmI))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "anonymous", wantStatus: http.StatusOK, wantBody: "anonymous"},
		{name: "client", header: "Bearer " + signed(t, m, entity.RoleClient), wantStatus: http.StatusOK, wantBody: "client"},
		{name: "lowercase scheme", header: "bearer " + signed(t, m, entity.RoleAdmin), wantStatus: http.StatusOK, wantBody: "admin"},
		{name: "garbage token", header: "Bearer not-a-jwt", wantStatus: http.StatusOK, wantBody: "anonymous"},
		{name: "expired token", header: "Bearer " + signed(t, stale, entity.RoleAdmin), wantStatus: http.StatusOK, wantBody: "anonymous"},
		{name: "other scheme", header: "Basic dXNlcjpwYXNz", wantStatus: http.StatusOK, wantBody: "anonymous"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	m := token.NewManager(testSecret, time.Hour)
	h := Authenticate(m)(RequireRole(entity.RoleAdmin)(http.HandlerFunc(whoAmI)))

	t.Run("expired admin token", func(t *testing.T) {
		stale := token.NewManager(testSecret, -time.Minute)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signed(t, stale, entity.RoleAdmin))
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	tests := []struct {
		name       string
		role       entity.Role
		wantStatus int
	}{
		{name: "anonymous", wantStatus: http.StatusUnauthorized},
		{name: "client", role: entity.RoleClient, wantStatus: http.StatusForbidden},
		{name: "admin", role: entity.RoleAdmin, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.role != "" {
				req.Header.Set("Authorization", "Bearer "+signed(t, m, tt.role))
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRequireAuth(t *testing.T) {
	h := RequireAuth(http.HandlerFunc(whoAmI))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithIdentity(req.Context(), &entity.Identity{UserID: 1, Role: entity.RoleClient}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"https://app.example.com"})(http.HandlerFunc(whoAmI))

	req := httptest.NewRequest(http.MethodOptions, "/proposals/generate", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoggerPassesThrough(t *testing.T) {
	h := Logger(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
