package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, svc jwt.Service, extra ...func(http.Handler) http.Handler) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(svc.JWTAuth()))
	r.Use(AuthRequired(svc.JWTAuth()))
	for _, mw := range extra {
		r.Use(mw)
	}
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFromContext(r.Context())
		require.True(t, ok)
		_ = json.NewEncoder(w).Encode(map[string]string{"user_id": p.UserID, "role": string(p.Role)})
	})
	return r
}

func doRequest(h http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequired(t *testing.T) {
	svc := jwt.NewJWTService("middleware-secret", time.Hour)
	h := newTestRouter(t, svc)

	t.Run("missing token", func(t *testing.T) {
		rec := doRequest(h, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("sse token rejected", func(t *testing.T) {
		token, _, err := svc.GenerateSSEToken(user.Principal{UserID: "u1", Role: user.RoleEmployee})
		require.NoError(t, err)
		rec := doRequest(h, token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("access token accepted", func(t *testing.T) {
		token, _, err := svc.GenerateAccessToken(user.Principal{UserID: "u1", Role: user.RoleEmployee})
		require.NoError(t, err)
		rec := doRequest(h, token)
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "u1", body["user_id"])
		assert.Equal(t, "employee", body["role"])
	})
}

func TestAdminOnly(t *testing.T) {
	svc := jwt.NewJWTService("middleware-secret", time.Hour)
	h := newTestRouter(t, svc, AdminOnly)

	employeeToken, _, err := svc.GenerateAccessToken(user.Principal{UserID: "u1", EmployeeID: "e1", EmployeeCode: "EMP1", Role: user.RoleEmployee})
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, doRequest(h, employeeToken).Code)

	adminToken, _, err := svc.GenerateAccessToken(user.Principal{UserID: "a1", Role: user.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, doRequest(h, adminToken).Code)
}

func TestRequireEmployee(t *testing.T) {
	svc := jwt.NewJWTService("middleware-secret", time.Hour)
	h := newTestRouter(t, svc, RequireEmployee)

	adminToken, _, err := svc.GenerateAccessToken(user.Principal{UserID: "a1", Role: user.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, doRequest(h, adminToken).Code)

	employeeToken, _, err := svc.GenerateAccessToken(user.Principal{UserID: "u1", EmployeeID: "e1", EmployeeCode: "EMP1", Role: user.RoleEmployee})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, doRequest(h, employeeToken).Code)
}
