package auth

import "context"

// Principal is the caller of an authenticated request
type Principal struct {
	// Subject is the token subject, or "api-key" for API key callers
	Subject  string
	Name     string
	AuthType string
}

const (
	AuthTypeAPIKey   = "api_key"
	AuthTypeJWT      = "jwt"
	AuthTypeDisabled = "disabled"
)

type contextKey string

const principalKey contextKey = "principal"

// WithPrincipal stores p in ctx
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// FromContext returns the principal stored by the auth middleware
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey).(*Principal)
	return p, ok
}
