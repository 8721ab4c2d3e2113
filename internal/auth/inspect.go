package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Expired reports whether a bearer token is a JWT whose exp claim is at or
// before now. The client cannot verify the signature, so this only reads the
// claims. Opaque tokens and JWTs without exp are never considered expired: the
// backend stays the authority on whether they are still accepted.
func Expired(raw string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(now)
}
