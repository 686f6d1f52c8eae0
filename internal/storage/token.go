package storage

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what `skinwatch status` can tell about a stored token.
type TokenInfo struct {
	Opaque    bool
	Subject   string
	ExpiresAt time.Time
}

func (ti TokenInfo) Expired(now time.Time) bool {
	return !ti.ExpiresAt.IsZero() && now.After(ti.ExpiresAt)
}

// DescribeToken reads the claims of a JWT without verifying it. The signature
// is checked by the server; this is for display only.
func DescribeToken(token string) TokenInfo {
	claims := jwt.RegisteredClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, &claims)
	if err != nil {
		return TokenInfo{Opaque: true}
	}

	info := TokenInfo{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info
}
