// Package token issues and verifies the signed session tokens carried in the
// Authorization header.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultTTL is the lifetime of an issued token. Expiry is absolute, not sliding.
const DefaultTTL = 7 * 24 * time.Hour

// ErrInvalid is returned (wrapped) for any token that fails verification:
// bad signature, unexpected algorithm, expired, or a malformed subject.
var ErrInvalid = errors.New("invalid token")

// Claims is the token payload. UserID is the user's ObjectID in hex,
// serialized as "id" for compatibility with tokens issued by earlier clients.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
}

// Manager signs and parses HS256 tokens with a shared secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager returns a Manager. A non-positive ttl falls back to DefaultTTL.
func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL returns the lifetime applied to issued tokens.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue creates a token for userID that expires TTL from now.
func (m *Manager) Issue(userID primitive.ObjectID) (string, error) {
	now := m.now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		UserID: userID.Hex(),
	})

	s, err := tok.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return s, nil
}

// Parse verifies tokenString and returns the embedded user id.
func (m *Manager) Parse(tokenString string) (primitive.ObjectID, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if !tok.Valid {
		return primitive.NilObjectID, ErrInvalid
	}

	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: malformed subject", ErrInvalid)
	}
	return id, nil
}
