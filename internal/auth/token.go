package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenInvalid is returned when a presented token fails verification for
// any reason: bad signature, malformed payload, or expiry.
var ErrTokenInvalid = errors.New("token is invalid")

// Signer issues and verifies HS256-signed session tokens.
type Signer struct {
	key []byte
	ttl time.Duration
}

// NewSigner creates a Signer from the configured secret and token lifetime.
func NewSigner(secret string, ttl time.Duration) (*Signer, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Signer{key: []byte(secret), ttl: ttl}, nil
}

// Sign issues a token carrying the given claims with the configured TTL.
func (s *Signer) Sign(c *Claims) (string, error) {
	claims := jwt.MapClaims{
		"sub":   c.Subject,
		"admin": c.Admin,
		"exp":   time.Now().Add(s.ttl).Unix(),
	}
	if c.Username != "" {
		claims["username"] = c.Username
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.key)
}

// Parse verifies the token string and decodes its claims. Verification
// failures of any kind are reported as ErrTokenInvalid.
func (s *Signer) Parse(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrTokenInvalid
	}

	token, err := jwt.Parse(tokenString,
		func(token *jwt.Token) (interface{}, error) { return s.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	out := &Claims{}
	if sub, ok := mc["sub"].(string); ok {
		out.Subject = sub
	}
	if out.Subject == "" {
		return nil, ErrTokenInvalid
	}
	if admin, ok := mc["admin"].(bool); ok {
		out.Admin = admin
	}
	if username, ok := mc["username"].(string); ok {
		out.Username = username
	}
	return out, nil
}
