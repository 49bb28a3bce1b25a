package utils // package utils provides helpers for reading the backend's access tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for parsing tokens issued by the backend
)

// ErrInvalidToken is returned when a token cannot be parsed, fails signature
// verification or has expired.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the subset of the backend token the gateway relies on.  The
// backend remains the authority on the token; the gateway reads it only to
// route requests to the right role group.
type Claims struct {
	Subject string    // user id taken from sub, id or userId
	Role    string    // role claim, empty when the backend omits it
	Expires time.Time // zero when the token carries no exp claim
}

// ParseToken reads the claims of a backend access token.  When secret is not
// empty the HS256 signature is verified; otherwise the token is decoded
// without verification and the backend rejects forged tokens on the next
// call.  Expired tokens are rejected in both cases.
func ParseToken(raw, secret string, now time.Time) (Claims, error) {
	claims := jwt.MapClaims{}
	var err error
	if secret != "" {
		_, err = jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
			// Reject anything but HMAC so a token cannot pick its own algorithm.
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		}, jwt.WithTimeFunc(func() time.Time { return now }))
	} else {
		_, _, err = jwt.NewParser().ParseUnverified(raw, claims)
	}
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	out := Claims{Subject: stringClaim(claims, "sub", "id", "userId", "user_id")}
	out.Role = stringClaim(claims, "role")
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.Expires = exp.Time
		if !now.Before(exp.Time) {
			return Claims{}, fmt.Errorf("%w: expired", ErrInvalidToken)
		}
	}
	if out.Subject == "" {
		return Claims{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return out, nil
}

// stringClaim returns the first non-empty claim among keys.  Numeric ids are
// formatted without a fractional part.
func stringClaim(claims jwt.MapClaims, keys ...string) string {
	for _, k := range keys {
		switch v := claims[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}
