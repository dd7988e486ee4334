package auth

import (
	"fmt"
	"strings"

	"mesa-backend/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CtxAdminIDKey  = "admin_id"
	CtxWaiterIDKey = "waiter_id"
	CtxEstabIDKey  = "establishment_id"
)

// Optional parses a bearer token when one is present and stores the identity
// in locals. Requests without a token (customer-facing calls) pass through;
// those handlers take an explicit establishment ID instead.
func Optional(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := parseBearer(c, cfg.JWTSecret)
		if err == nil {
			setLocals(c, claims)
		}
		return c.Next()
	}
}

// Required rejects requests without a valid bearer token.
func Required(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := parseBearer(c, cfg.JWTSecret)
		if err != nil {
			return err
		}
		setLocals(c, claims)
		return c.Next()
	}
}

func parseBearer(c *fiber.Ctx, secret string) (*Claims, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "missing Authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Authorization must be 'Bearer <token>'")
	}

	token, err := jwt.ParseWithClaims(parts[1], &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "could not decode token claims")
	}
	return claims, nil
}

func setLocals(c *fiber.Ctx, claims *Claims) {
	c.Locals(CtxAdminIDKey, claims.AdminID)
	c.Locals(CtxWaiterIDKey, claims.WaiterID)
	c.Locals(CtxEstabIDKey, claims.EstablishmentID)
}

// EstablishmentFromContext returns the establishment the token is scoped to,
// or false when the request carried no token.
func EstablishmentFromContext(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals(CtxEstabIDKey).(uint)
	return id, ok && id != 0
}

// WaiterFromContext returns the waiter identity, when the caller is a waiter.
func WaiterFromContext(c *fiber.Ctx) (uint, bool) {
	ptr, ok := c.Locals(CtxWaiterIDKey).(*uint)
	if !ok || ptr == nil {
		return 0, false
	}
	return *ptr, true
}
