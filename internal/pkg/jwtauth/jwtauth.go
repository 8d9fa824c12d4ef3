// Package jwtauth issues and validates HS256 session tokens whose subject is
// the authenticated user's id.
package jwtauth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrNoSubject    = errors.New("token has no subject")
)

type Claims struct {
	jwt.StandardClaims
}

func GetToken(subject string, ttl time.Duration, secret string) (string, error) {
	if subject == "" {
		return "", ErrNoSubject
	}

	now := time.Now()

	claims := Claims{
		StandardClaims: jwt.StandardClaims{ //nolint:exhaustruct
			Subject:   subject,
			Id:        uuid.NewString(),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signed string error: %w", err)
	}

	return signed, nil
}

func ParseToken(tokenString, secret string) (Claims, error) {
	var claims Claims

	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"]) //nolint:goerr113
		}

		return []byte(secret), nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	if claims.Subject == "" {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, ErrNoSubject)
	}

	return claims, nil
}
