package auth

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Bearer tokens carry the same identity as the session cookie, for API
// clients that cannot hold cookies.

var (
	tokenMu     sync.RWMutex
	tokenSecret []byte
	tokenTTL    = 7 * 24 * time.Hour
)

// InitTokens sets the HMAC secret used to sign and verify bearer tokens.
// Must be called during startup before any token is issued or parsed.
func InitTokens(secret string, ttl time.Duration) error {
	if secret == "" {
		return fmt.Errorf("token secret is empty")
	}
	tokenMu.Lock()
	defer tokenMu.Unlock()
	tokenSecret = []byte(secret)
	if ttl > 0 {
		tokenTTL = ttl
	}
	return nil
}

type tokenClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// IssueToken signs a bearer token for the user.
func IssueToken(u *SessionUser) (string, error) {
	tokenMu.RLock()
	secret := tokenSecret
	ttl := tokenTTL
	tokenMu.RUnlock()
	if len(secret) == 0 {
		return "", fmt.Errorf("token secret not initialized")
	}

	now := time.Now()
	claims := tokenClaims{
		Name:  u.Name,
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken verifies a bearer token and returns the identity it carries.
func ParseToken(raw string) (*SessionUser, error) {
	tokenMu.RLock()
	secret := tokenSecret
	tokenMu.RUnlock()
	if len(secret) == 0 {
		return nil, fmt.Errorf("token secret not initialized")
	}

	var claims tokenClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	return &SessionUser{ID: claims.Subject, Name: claims.Name, Email: claims.Email}, nil
}
