package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/straye-as/estimate-api/internal/config"
)

// Middleware handles authentication for HTTP requests
type Middleware struct {
	jwtValidator *JWTValidator
	apiKey       string
	logger       *zap.Logger
}

// NewMiddleware creates a new authentication middleware. With neither an
// API key nor a JWT secret configured every request is let through.
func NewMiddleware(cfg *config.AuthConfig, logger *zap.Logger) *Middleware {
	m := &Middleware{
		apiKey: cfg.APIKey,
		logger: logger,
	}
	if cfg.JWTSecret != "" {
		m.jwtValidator = NewJWTValidator(cfg.JWTSecret)
	}
	return m
}

// Enabled reports whether any credential is configured
func (m *Middleware) Enabled() bool {
	return m.apiKey != "" || m.jwtValidator != nil
}

// Authenticate is the main authentication middleware
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.Enabled() {
			ctx := WithPrincipal(r.Context(), &Principal{Subject: "anonymous", AuthType: AuthTypeDisabled})
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		// API key first
		if key := r.Header.Get("X-API-Key"); key != "" {
			if !m.validateAPIKey(key) {
				m.logger.Warn("invalid API key attempt",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := WithPrincipal(r.Context(), &Principal{Subject: "api-key", Name: "API client", AuthType: AuthTypeAPIKey})
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Unauthorized: missing authorization header", http.StatusUnauthorized)
			return
		}
		if m.jwtValidator == nil {
			http.Error(w, "Unauthorized: bearer tokens are not accepted", http.StatusUnauthorized)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			http.Error(w, "Unauthorized: invalid authorization header format", http.StatusUnauthorized)
			return
		}

		principal, err := m.jwtValidator.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("token validation failed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
				zap.Error(err),
			)
			http.Error(w, "Unauthorized: invalid token", http.StatusUnauthorized)
			return
		}

		m.logger.Debug("request authenticated",
			zap.String("path", r.URL.Path),
			zap.String("auth_type", principal.AuthType),
			zap.String("subject", principal.Subject),
		)
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
	})
}

// validateAPIKey compares in constant time
func (m *Middleware) validateAPIKey(key string) bool {
	if m.apiKey == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(m.apiKey)) == 1
}
