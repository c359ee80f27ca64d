package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/straye-as/estimate-api/internal/auth"
	"github.com/straye-as/estimate-api/internal/config"
)

const testSecret = "test-secret-with-enough-bytes-123"

func signToken(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":  "user-42",
		"name": "Dana",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
}

// protected records the principal the middleware attached
func protected(got **auth.Principal) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, _ := auth.FromContext(r.Context())
		*got = p
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestJWTValidator(t *testing.T) {
	v := auth.NewJWTValidator(testSecret)

	p, err := v.ValidateToken(signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims()))
	require.NoError(t, err)
	assert.Equal(t, "user-42", p.Subject)
	assert.Equal(t, "Dana", p.Name)
	assert.Equal(t, auth.AuthTypeJWT, p.AuthType)

	expired := validClaims()
	expired["exp"] = time.Now().Add(-time.Minute).Unix()
	noExp := validClaims()
	delete(noExp, "exp")
	noSub := validClaims()
	delete(noSub, "sub")

	bad := map[string]string{
		"wrong secret": signToken(t, jwt.SigningMethodHS256, []byte("other-secret"), validClaims()),
		"wrong alg":    signToken(t, jwt.SigningMethodHS512, []byte(testSecret), validClaims()),
		"expired":      signToken(t, jwt.SigningMethodHS256, []byte(testSecret), expired),
		"no expiry":    signToken(t, jwt.SigningMethodHS256, []byte(testSecret), noExp),
		"no subject":   signToken(t, jwt.SigningMethodHS256, []byte(testSecret), noSub),
		"garbage":      "not.a.token",
	}
	for name, token := range bad {
		t.Run(name, func(t *testing.T) {
			_, err := v.ValidateToken(token)
			assert.ErrorIs(t, err, auth.ErrInvalidToken)
		})
	}
}

func TestMiddleware_Disabled(t *testing.T) {
	m := auth.NewMiddleware(&config.AuthConfig{}, zap.NewNop())
	assert.False(t, m.Enabled())

	var got *auth.Principal
	rec := httptest.NewRecorder()
	m.Authenticate(protected(&got)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/estimates", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, auth.AuthTypeDisabled, got.AuthType)
}

func TestMiddleware_Credentials(t *testing.T) {
	m := auth.NewMiddleware(&config.AuthConfig{APIKey: "key-123", JWTSecret: testSecret}, zap.NewNop())
	token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims())

	tests := []struct {
		name     string
		headers  map[string]string
		wantCode int
		wantType string
	}{
		{"api key", map[string]string{"X-API-Key": "key-123"}, http.StatusNoContent, auth.AuthTypeAPIKey},
		{"wrong api key", map[string]string{"X-API-Key": "nope"}, http.StatusUnauthorized, ""},
		{"bearer", map[string]string{"Authorization": "Bearer " + token}, http.StatusNoContent, auth.AuthTypeJWT},
		{"lowercase scheme", map[string]string{"Authorization": "bearer " + token}, http.StatusNoContent, auth.AuthTypeJWT},
		{"bad bearer", map[string]string{"Authorization": "Bearer x.y.z"}, http.StatusUnauthorized, ""},
		{"basic scheme", map[string]string{"Authorization": "Basic abc"}, http.StatusUnauthorized, ""},
		{"nothing", nil, http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *auth.Principal
			req := httptest.NewRequest(http.MethodGet, "/api/v1/estimates", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			m.Authenticate(protected(&got)).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantType != "" {
				require.NotNil(t, got)
				assert.Equal(t, tt.wantType, got.AuthType)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestMiddleware_APIKeyOnlyRejectsBearer(t *testing.T) {
	m := auth.NewMiddleware(&config.AuthConfig{APIKey: "key-123"}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	rec := httptest.NewRecorder()
	var got *auth.Principal
	m.Authenticate(protected(&got)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
