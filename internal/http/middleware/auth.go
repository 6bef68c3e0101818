package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"reviewapi/internal/auth"
)

// ClaimsLocalKey is the key used to store parsed token claims in Fiber's
// context locals.
const ClaimsLocalKey = "claims"

// ClaimsFromCtx returns the claims stored by Auth, or nil when the request
// did not pass through it.
func ClaimsFromCtx(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(ClaimsLocalKey).(*auth.Claims)
	return claims
}

// Auth rejects requests without a valid Bearer token. On success the parsed
// claims are stored in context locals under ClaimsLocalKey.
//
// A missing or malformed Authorization header yields 401 UNAUTHENTICATED; a
// present but unverifiable token yields 400 INVALID_TOKEN.
func Auth(signer *auth.Signer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return writeAuthError(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "missing bearer token")
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return writeAuthError(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "missing bearer token")
		}

		claims, err := signer.Parse(token)
		if err != nil {
			return writeAuthError(c, fiber.StatusBadRequest, "INVALID_TOKEN", "token is invalid or expired")
		}

		c.Locals(ClaimsLocalKey, claims)

		return c.Next()
	}
}

// writeAuthError mirrors the handler package's error envelope. The middleware
// cannot import it without creating a cycle.
func writeAuthError(c *fiber.Ctx, status int, code, message string) error {
	rid, _ := c.Locals(RequestIDLocalKey).(string)

	return c.Status(status).JSON(fiber.Map{
		"request_id": rid,
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}
