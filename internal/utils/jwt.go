// internal/utils/jwt.go
package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const handoffIssuer = "vinyl-storefront"

// HandoffClaims identify the persisted cart the checkout page should read.
type HandoffClaims struct {
	CartKey string `json:"cart_key"`
	jwt.RegisteredClaims
}

func GenerateHandoffToken(secret []byte, cartKey string, issuedAt time.Time, ttl time.Duration) (string, error) {
	claims := HandoffClaims{
		CartKey: cartKey,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			Issuer:    handoffIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ValidateHandoffToken(secret []byte, tokenString string) (*HandoffClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &HandoffClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*HandoffClaims); ok && token.Valid && claims.CartKey != "" {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
