package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// TokenExpiry reads the exp claim from an access token without verifying the
// signature. The client has no signing keys; the claim is a refresh hint,
// never an authorization decision.
func TokenExpiry(accessToken string) (time.Time, error) {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(accessToken, &claims); err != nil {
		return time.Time{}, errors.Wrap(err, "[TokenExpiry] ParseUnverified")
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, nil
	}
	return claims.ExpiresAt.Time, nil
}

// TokenExpired reports whether the access token's exp claim has passed,
// applying a leeway so tokens about to expire count as expired. Tokens
// without an exp claim, or that cannot be parsed, are treated as expired.
func TokenExpired(accessToken string, leeway time.Duration) bool {
	expiry, err := TokenExpiry(accessToken)
	if err != nil || expiry.IsZero() {
		return true
	}
	return time.Now().Add(leeway).After(expiry)
}
