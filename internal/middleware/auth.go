// Package middleware provides authentication, logging, and metrics middleware.
package middleware

import (
	"strings"

	"nexum/internal/config"
	"nexum/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// parseIdentity validates the bearer token and extracts the caller identity.
// The token is issued by the external identity provider; the "sub" claim is
// the opaque user ID.
func parseIdentity(c *fiber.Ctx) (*models.Identity, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Authorization header required")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid authorization header format")
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token structure - missing subject")
	}

	identity := &models.Identity{UserID: sub}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		identity.Name = name
	}
	if image, ok := claims["picture"].(string); ok {
		identity.Image = image
	}
	return identity, nil
}

// AuthRequired is a middleware that enforces authentication for protected routes.
func AuthRequired(c *fiber.Ctx) error {
	identity, err := parseIdentity(c)
	if err != nil {
		var ferr *fiber.Error
		msg := "Not authenticated"
		if e, ok := err.(*fiber.Error); ok {
			ferr = e
			msg = ferr.Message
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": msg,
		})
	}

	c.Locals("userID", identity.UserID)
	c.Locals("identity", identity)
	return c.Next()
}

// AuthOptional resolves the caller identity when a valid token is present but
// never rejects the request. Read paths that also serve anonymous callers use it.
func AuthOptional(c *fiber.Ctx) error {
	if identity, err := parseIdentity(c); err == nil {
		c.Locals("userID", identity.UserID)
		c.Locals("identity", identity)
	}
	return c.Next()
}
