package internal

import (
	"context"
	"time"
)

type ctxKey string

const contextClaimsKey ctxKey = "identityClaims"

// IdentityClaims is the verified subset of the identity provider's session
// token that handlers are allowed to see.
type IdentityClaims struct {
	ExternalID string
	Email      string
	FirstName  string
	LastName   string
	ImageURL   string
}

func ClaimsFromContext(ctx context.Context) (*IdentityClaims, bool) {
	if ctx == nil {
		return nil, false
	}
	claims, ok := ctx.Value(contextClaimsKey).(*IdentityClaims)
	return claims, ok
}

func ContextWithClaims(ctx context.Context, claims *IdentityClaims) context.Context {
	return context.WithValue(ctx, contextClaimsKey, claims)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
