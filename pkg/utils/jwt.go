package utils

import (
	"errors"
	"fmt"
	"time"

	"booking-service/internal/data/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// AccessClaims is the payload issued by the auth service.
type AccessClaims struct {
	Permissions []int `json:"permissions"`
	IsSuper     bool  `json:"is_super"`
	jwt.RegisteredClaims
}

// ParseAccessToken verifies an HS256 access token and returns the caller it identifies.
func ParseAccessToken(secret, raw string) (entity.Actor, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return entity.Actor{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return entity.Actor{}, ErrInvalidToken
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return entity.Actor{}, fmt.Errorf("%w: subject is not a uuid", ErrInvalidToken)
	}

	return entity.Actor{
		ID:           id,
		Permissions:  claims.Permissions,
		IsPrivileged: claims.IsSuper,
	}, nil
}

// SignAccessToken issues a token in the same shape the auth service does. Used by tests and local tooling.
func SignAccessToken(secret string, actor entity.Actor, claims jwt.RegisteredClaims) (string, error) {
	claims.Subject = actor.ID.String()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AccessClaims{
		Permissions:      actor.Permissions,
		IsSuper:          actor.IsPrivileged,
		RegisteredClaims: claims,
	})
	return token.SignedString([]byte(secret))
}

// ServiceToken signs a short-lived privileged token for calls to peer services.
func ServiceToken(secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	return SignAccessToken(secret, entity.Actor{
		ID:           uuid.New(),
		Permissions:  []int{entity.PermissionUser, entity.PermissionModerator},
		IsPrivileged: true,
	}, jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
}
