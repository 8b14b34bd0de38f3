package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims are the access-token claims the console reads. The token is not
// verified here; the backend is the authority and rejects bad tokens with 401.
type TokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// InspectToken decodes the access token without signature verification.
func InspectToken(token string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("inspect token: %w", err)
	}
	return claims, nil
}

// TokenExpiresWithin reports whether the access token expires within d. Tokens
// without an exp claim and tokens that fail to decode report false; the 401
// path handles those.
func TokenExpiresWithin(token string, d time.Duration) bool {
	claims, err := InspectToken(token)
	if err != nil || claims.ExpiresAt == nil {
		return false
	}
	return time.Until(claims.ExpiresAt.Time) < d
}
