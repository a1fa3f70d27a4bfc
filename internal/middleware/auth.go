package middleware

import (
	"context"
	"strings"

	"learnhub/internal/auth"
	"learnhub/internal/models"
	"learnhub/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// Locals keys populated by AuthRequired.
const (
	LocalsUserID = "userID"
	LocalsClaims = "claims"
)

// AuthRequired returns middleware that enforces bearer-token authentication.
//
// A request without a usable Authorization header is rejected with 401; a
// request carrying a token that fails verification is rejected with 403.
// Claims are trusted as embedded in the token; the user store is never
// consulted here.
func AuthRequired(tokens *auth.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerToken(c)
		if !ok {
			observability.AuthFailuresTotal.WithLabelValues("missing_token").Inc()
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			observability.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Invalid or expired token"))
		}

		c.Locals(LocalsUserID, claims.UserID)
		c.Locals(LocalsClaims, claims)
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), UserIDKey, claims.UserID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// UserID returns the authenticated user id stored by AuthRequired.
func UserID(c *fiber.Ctx) string {
	if id, ok := c.Locals(LocalsUserID).(string); ok {
		return id
	}
	return ""
}

// TokenClaims returns the verified claims stored by AuthRequired.
func TokenClaims(c *fiber.Ctx) *auth.Claims {
	if claims, ok := c.Locals(LocalsClaims).(*auth.Claims); ok {
		return claims
	}
	return nil
}
