package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token verification failures, classified for internal logging. The HTTP
// boundary collapses all of them into a single 401.
var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenSignature = errors.New("token signature invalid")
	ErrTokenMalformed = errors.New("token malformed")
)

// Claims is the payload signed into every access token. Subject and Company
// are fixed per deployment; UserID is the one per-user field and the
// canonical identity carried by a token.
type Claims struct {
	jwt.RegisteredClaims
	Company string `json:"company"`
	UserID  string `json:"user_id"`
}

// Codec issues and verifies signed access tokens (HS256). Tokens are
// stateless: nothing is persisted server-side and there is no revocation,
// only expiry.
type Codec struct {
	secret  []byte
	subject string
	company string
	ttl     time.Duration
}

// NewCodec returns a Codec signing with secret. subject and company are the
// fixed claim strings; ttl is the validity window from issuance.
func NewCodec(secret, subject, company string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), subject: subject, company: company, ttl: ttl}
}

// Issue signs a token for userID expiring ttl from now.
func (c *Codec) Issue(userID string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		Company: c.company,
		UserID:  userID,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify validates token and returns its claims. Failures are classified as
// ErrTokenExpired, ErrTokenSignature or ErrTokenMalformed.
func (c *Codec) Verify(token string) (Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrTokenSignature
		default:
			return Claims{}, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
		}
	}
	if !parsed.Valid {
		return Claims{}, ErrTokenSignature
	}
	return claims, nil
}
