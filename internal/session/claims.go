package session

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are read from the stored bearer token without verifying the
// signature: the signing secret belongs to the backend. The client only
// needs the role and the expiry.
type Claims struct {
	UserID string `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func ParseClaims(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (c *Claims) Expired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return now.After(c.ExpiresAt.Time)
}

// Privileged reports whether the role may see cross-employee aggregated
// data, such as the pending-requests summary.
func (c *Claims) Privileged() bool {
	switch strings.ToLower(c.Role) {
	case "owner", "manager":
		return true
	}
	return false
}
