package utils

import (
	"errors"
	"time"

	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
)

// StaffClaims are the JWT claims issued at login. Subject is the user ID.
type StaffClaims struct {
	Role    domain.Role `json:"role"`
	HotelID string      `json:"hotel_id"`
	jwt.RegisteredClaims
}

// Actor returns the identity carried by the claims.
func (c StaffClaims) Actor() domain.Actor {
	return domain.Actor{UserID: c.Subject, Role: c.Role, HotelID: c.HotelID}
}

// GenerateJWT generates a signed token for the actor.
func GenerateJWT(actor domain.Actor, secret string, expiryDuration time.Duration, issuer string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(expiryDuration)
	claims := StaffClaims{
		Role:    actor.Role,
		HotelID: actor.HotelID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   actor.UserID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseAndValidateJWT parses a token string, validates its signature and
// standard claims, and checks that the staff claims are complete.
func ParseAndValidateJWT(tokenString string, secretKey string) (*StaffClaims, error) {
	claims := &StaffClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.Subject == "" || claims.HotelID == "" || !claims.Role.IsValid() {
		return nil, errors.New("token is missing staff claims")
	}

	return claims, nil
}
