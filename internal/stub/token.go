package stub

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// The stub issues HS256 JWTs as its authentication tokens. The dashboard
// treats them as opaque strings; only the stub itself ever parses them.
// Claims: sub (user ID), email, uname, roles, jti (random UUID), iat,
// exp.

var errInvalidToken = errors.New("invalid token")

// newAuthToken signs a token for the user with the given TTL.
func newAuthToken(secret string, u *User, ttlMin int) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   u.ID,
		"email": u.Email,
		"uname": u.Uname,
		"roles": u.Roles,
		"jti":   uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   now.Add(time.Duration(ttlMin) * time.Minute).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// parseAuthToken verifies the signature and expiry and returns the user
// ID the token was issued for.
func parseAuthToken(secret, raw string) (int, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return 0, errInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errInvalidToken
	}
	// Numeric claims decode as float64 from JSON.
	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, errInvalidToken
	}
	return int(sub), nil
}
