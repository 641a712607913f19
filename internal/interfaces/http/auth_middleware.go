// Package http wires the fiber handlers, router and middleware of the API.
package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/kwisniewski/warsztat-api/internal/application/dto"
	"github.com/kwisniewski/warsztat-api/pkg/jwt"
)

// Locals keys populated by the auth middleware.
const (
	LocalUserID   = "user_id"
	LocalUserName = "user_name"
)

// AuthMiddleware validates the Bearer JWT and stores the user identity in
// c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header required"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "expected format: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "empty token"})
		}
		userID, userName, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "invalid or expired token"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalUserName, userName)
		return c.Next()
	}
}

// GetUserID returns the UserID from the context (after the auth middleware).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetUserName returns the display name from the context.
func GetUserName(c *fiber.Ctx) string {
	v := c.Locals(LocalUserName)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
