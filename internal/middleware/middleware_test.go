package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hongminglow/storefront/internal/auth"
	"github.com/hongminglow/storefront/internal/models"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func TestCORS_AllowListAndPreflight(t *testing.T) {
	h := CORS([]string{"http://localhost:5173"}, http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodOptions, "/api/productos", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/api/productos", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_WildcardPassesPlainRequestsThrough(t *testing.T) {
	h := CORS([]string{"*"}, http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodGet, "/api/perros", nil)
	req.Header.Set("Origin", "http://anything.test")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, RequestIDHeader, rec.Header().Get("Access-Control-Expose-Headers"))
}

func TestLogging_EchoesRequestID(t *testing.T) {
	h := Logging(zap.NewNop(), http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc", rec.Header().Get(RequestIDHeader))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestRequireAuthAndAdmin(t *testing.T) {
	tokens := auth.NewTokenManager("secret", "test", time.Hour)
	userToken, err := tokens.Generate(models.User{ID: 1, Role: models.NormalUser})
	require.NoError(t, err)
	adminToken, err := tokens.Generate(models.User{ID: 2, Role: models.AdminUser})
	require.NoError(t, err)

	authed := RequireAuth(tokens, okHandler)
	admin := RequireAdmin(tokens, okHandler)

	cases := []struct {
		name    string
		handler http.HandlerFunc
		header  string
		want    int
	}{
		{"no token", authed, "", http.StatusUnauthorized},
		{"garbage token", authed, "Bearer nope", http.StatusUnauthorized},
		{"user token", authed, "Bearer " + userToken, http.StatusNoContent},
		{"user on admin route", admin, "Bearer " + userToken, http.StatusForbidden},
		{"admin on admin route", admin, "Bearer " + adminToken, http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			tc.handler(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
