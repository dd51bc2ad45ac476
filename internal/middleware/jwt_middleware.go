package middleware

import (
	"slices"
	"strings"

	"etalase/internal/apperror"
	"etalase/internal/services"
	"etalase/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

const claimsKey = "claims"

// TokenValidator checks access tokens.
type TokenValidator interface {
	ValidateToken(token string) (*services.Claims, error)
}

// AuthRequired is a Fiber middleware to check for a valid JWT token.
func AuthRequired(tokens TokenValidator, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return apperror.Unauthorized("You are not login, Please login to get access this route")
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return apperror.Unauthorized("Authorization header format must be 'Bearer <token>'")
		}

		claims, err := tokens.ValidateToken(parts[1])
		if err != nil {
			log.Debug().Err(err).Msg("JWT validation failed")
			return apperror.Unauthorized("Invalid or expired token, please login again")
		}

		// Store claims in Fiber context for subsequent handlers
		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// AllowedTo lets the request through only when the authenticated user holds
// one of roles. It must run after AuthRequired.
func AllowedTo(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := CurrentUser(c)
		if claims == nil || !slices.Contains(roles, claims.Role) {
			return apperror.Forbidden("You are not allowed to access this route")
		}
		return c.Next()
	}
}

// CurrentUser returns the claims stored by AuthRequired, or nil.
func CurrentUser(c *fiber.Ctx) *services.Claims {
	claims, _ := c.Locals(claimsKey).(*services.Claims)
	return claims
}
