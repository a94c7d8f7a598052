package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/e-n-s-o/enso/configs"
	"github.com/e-n-s-o/enso/internal/logger"
	"github.com/e-n-s-o/enso/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	configs.AppConfig.JWT.SECRET = "test-secret"
	os.Exit(m.Run())
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(configs.AppConfig.JWT.SECRET))
	require.NoError(t, err)
	return signed
}

func doRequest(handler http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticated_ValidToken(t *testing.T) {
	var gotUserID uint
	var gotRole string
	handler := Authenticated(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = r.Context().Value(UserIDContextKey).(uint)
		gotRole, _ = r.Context().Value(RoleContextKey).(string)
	}))

	token := signToken(t, jwt.MapClaims{
		"sub":  42,
		"role": models.RoleAdmin,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	rec := doRequest(handler, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(42), gotUserID)
	assert.Equal(t, models.RoleAdmin, gotRole)
}

func TestAuthenticated_MissingRoleDefaultsToUser(t *testing.T) {
	var gotRole string
	handler := Authenticated(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRole, _ = r.Context().Value(RoleContextKey).(string)
	}))

	token := signToken(t, jwt.MapClaims{
		"sub": 7,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	rec := doRequest(handler, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.RoleUser, gotRole)
}

func TestAuthenticated_Rejections(t *testing.T) {
	handler := Authenticated(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler must not run")
	}))

	expired := signToken(t, jwt.MapClaims{
		"sub": 1,
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{"expired token", "Bearer " + expired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(handler, tc.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := Authenticated(RequireAdmin(inner))

	userToken := signToken(t, jwt.MapClaims{
		"sub":  1,
		"role": models.RoleUser,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	adminToken := signToken(t, jwt.MapClaims{
		"sub":  2,
		"role": models.RoleAdmin,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	assert.Equal(t, http.StatusForbidden, doRequest(handler, "Bearer "+userToken).Code)
	assert.Equal(t, http.StatusNoContent, doRequest(handler, "Bearer "+adminToken).Code)
}
