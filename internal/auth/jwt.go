package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims identifies either an admin or a waiter, always scoped to one
// establishment. Exactly one of AdminID / WaiterID is set.
type Claims struct {
	AdminID         *uint `json:"admin_id,omitempty"`
	WaiterID        *uint `json:"waiter_id,omitempty"`
	EstablishmentID uint  `json:"establishment_id"`
	jwt.RegisteredClaims
}

func GenerateAdminToken(secret string, adminID, establishmentID uint) (string, error) {
	return generate(secret, &Claims{AdminID: &adminID, EstablishmentID: establishmentID})
}

func GenerateWaiterToken(secret string, waiterID, establishmentID uint) (string, error) {
	return generate(secret, &Claims{WaiterID: &waiterID, EstablishmentID: establishmentID})
}

func generate(secret string, claims *Claims) (string, error) {
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(8 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
