package middleware

import (
	"crypto/rsa"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/frahmantamala/timeoff-management/internal"
	"github.com/golang-jwt/jwt/v5"
)

// identityTokenClaims is the session token shape issued by the identity
// provider. The subject carries the external identity id.
type identityTokenClaims struct {
	jwt.RegisteredClaims
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	ImageURL  string `json:"image_url"`
}

// Authenticator verifies identity provider session tokens and stores the
// verified claims in the request context.
type Authenticator struct {
	publicKey *rsa.PublicKey
	issuer    string
	logger    *slog.Logger
}

func NewAuthenticator(publicKey *rsa.PublicKey, issuer string, logger *slog.Logger) *Authenticator {
	return &Authenticator{
		publicKey: publicKey,
		issuer:    issuer,
		logger:    logger,
	}
}

func (a *Authenticator) parseToken(tokenString string) (*identityTokenClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"RS256"})}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &identityTokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		return a.publicKey, nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*identityTokenClaims)
	if !ok || claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	return claims, nil
}

// Middleware rejects requests without a valid bearer token and injects the
// verified identity claims into the context for downstream handlers.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			writeUnauthorized(w, "missing bearer token")
			return
		}

		claims, err := a.parseToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			a.logger.Warn("token verification failed", "error", err)
			writeUnauthorized(w, "invalid token")
			return
		}

		ctx := internal.ContextWithClaims(r.Context(), &internal.IdentityClaims{
			ExternalID: claims.Subject,
			Email:      claims.Email,
			FirstName:  claims.FirstName,
			LastName:   claims.LastName,
			ImageURL:   claims.ImageURL,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	fmt.Fprintf(w, `{"code": %d, "message": %q}`, http.StatusUnauthorized, message)
}
