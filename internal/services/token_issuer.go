package services

import (
	"garage/internal/structures"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is what a token carries: the user id and an expiry.
type SessionClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

type TokenIssuerInterface interface {
	Issue(userID string) (string, error)
}

// TokenIssuer signs session tokens. Nothing in this module parses them back.
type TokenIssuer struct {
	secret []byte
	window time.Duration
	now    func() time.Time
}

func NewTokenIssuer(conf *structures.Config) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(conf.Auth.Secret),
		window: conf.Auth.SessionWindow,
		now:    time.Now,
	}
}

func (ti *TokenIssuer) Issue(userID string) (string, error) {
	now := ti.now()
	c := SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.window)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(ti.secret)
}
