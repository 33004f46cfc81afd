package middleware

import (
	"errors"
	"strings"

	"github.com/RespawnSociety/MesinKasir/internal/model"
	"github.com/RespawnSociety/MesinKasir/internal/service"

	"github.com/gofiber/fiber/v2"
)

// PrincipalKey is the fiber Locals key holding the *service.Principal.
const PrincipalKey = "principal"

// Authenticator resolves a bearer token. service.AuthService satisfies it.
type Authenticator interface {
	Authenticate(tokenString string) (*service.Principal, error)
}

// RequireAuth is middleware that validates the bearer token and stores the
// caller in c.Locals(PrincipalKey).
func RequireAuth(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token", "code": "Unauthenticated"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>", "code": "Unauthenticated"})
		}

		principal, err := auth.Authenticate(parts[1])
		if err != nil {
			if errors.Is(err, service.ErrAccountDisabled) {
				return c.Status(403).JSON(fiber.Map{"error": "Account is disabled", "code": "AccountDisabled"})
			}
			if errors.Is(err, service.ErrUnauthenticated) {
				return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token", "code": "Unauthenticated"})
			}
			return err
		}

		c.Locals(PrincipalKey, principal)
		return c.Next()
	}
}

// RequireRole rejects callers whose role is not in allowed. It runs before
// the body is parsed, so a forbidden caller never learns about payload errors.
func RequireRole(allowed ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, _ := c.Locals(PrincipalKey).(*service.Principal)
		if err := service.RequireRole(p, allowed...); err != nil {
			if errors.Is(err, service.ErrUnauthenticated) {
				return c.Status(401).JSON(fiber.Map{"error": "Unauthenticated", "code": "Unauthenticated"})
			}
			return c.Status(403).JSON(fiber.Map{"error": err.Error(), "code": "Forbidden"})
		}
		return c.Next()
	}
}
