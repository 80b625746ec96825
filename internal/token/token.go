// Package token issues and verifies the signed session tokens that stand in
// for server-side sessions. Tokens are stateless: verification is signature
// plus expiry only and never consults the store.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/maya/media-user-api/internal/domain"
)

var (
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the session token payload.
type Claims struct {
	UserName string `json:"userName"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies session tokens with an injected secret and TTL.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue signs a token carrying exactly the identity's ID and username.
func (i *Issuer) Issue(identity domain.Identity) (string, error) {
	now := time.Now()
	claims := Claims{
		UserName: identity.UserName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify checks signature and expiry and returns the embedded identity.
func (i *Issuer) Verify(tokenString string) (domain.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return i.secret, nil
	})
	if err != nil {
		return domain.Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return domain.Identity{}, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return domain.Identity{}, ErrInvalidToken
	}

	return domain.Identity{
		ID:       userID,
		UserName: claims.UserName,
	}, nil
}
