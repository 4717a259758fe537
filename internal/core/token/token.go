// Package token issues and verifies the short-lived bearer tokens returned on
// administrator login. Tokens are HS256-signed snapshots of identity claims;
// expiry is the only invalidation mechanism, there is no server-side tracking
// and no refresh.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/agrolink/livestock-api/internal/core/domain"
)

// TTL is the fixed validity window of every issued token.
const TTL = time.Hour

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the signed claim-set carried by a session token.
type Claims struct {
	SubjectID string             `json:"sub_id"`
	Kind      domain.AccountKind `json:"kind"`
	Name      string             `json:"name"`
	Phone     string             `json:"phone"`
	jwt.RegisteredClaims
}

// Issuer signs and validates session tokens with a process-wide symmetric key
// supplied via configuration at startup.
type Issuer struct {
	secret []byte
}

func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret)}
}

// Issue produces a signed token embedding the subject's identity claims plus
// issued-at and a fixed one-hour expiry.
func (i *Issuer) Issue(kind domain.AccountKind, subjectID, name, phone string) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		SubjectID: subjectID,
		Kind:      kind,
		Name:      name,
		Phone:     phone,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// Verify checks signature and expiry and returns the embedded claims. Expired
// or tampered tokens fail closed with ErrInvalidToken.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
