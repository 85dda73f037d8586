package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Claim struct {
	jwt.RegisteredClaims
	Metadata Metadata `json:"metadata"`
}

type Metadata struct {
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
	Role     string `json:"role,omitempty"`
}

// Sign issues an HS256 token for the admin panel and tests.
func Sign(secret string, metadata Metadata, ttl time.Duration) (string, error) {
	now := time.Now()
	claim := Claim{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   metadata.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Metadata: metadata,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claim).SignedString([]byte(secret))
}

func Parse(secret, raw string) (*Claim, error) {
	claim := &Claim{}
	_, err := jwt.ParseWithClaims(raw, claim, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if claim.Metadata.UserID == "" {
		return nil, errors.New("token has no user")
	}
	return claim, nil
}
