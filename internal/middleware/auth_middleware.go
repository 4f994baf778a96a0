package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pawprints/pawprints-backend/internal/models"
	jwtPkg "github.com/pawprints/pawprints-backend/pkg/jwt"
)

func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Authorization header is required",
			})
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Invalid authorization header format",
			})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := jwtPkg.ValidateToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Invalid token",
			})
		}

		userIDFloat, ok := claims["user_id"].(float64)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Invalid user ID in token",
			})
		}
		userID := uint(userIDFloat)

		userEmail, ok := claims["email"].(string)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Invalid email in token",
			})
		}

		// Tokens minted before roles existed fall back to plain user.
		role := models.RoleUser
		if roleClaim, ok := claims["role"].(string); ok && models.Role(roleClaim).IsValid() {
			role = models.Role(roleClaim)
		}

		c.Locals("userID", userID)
		c.Locals("userEmail", userEmail)
		c.Locals("userRole", role)

		return c.Next()
	}
}

// RequireRole gates a route to actors at or above the given role.
// Must run after AuthMiddleware.
func RequireRole(minimum models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("userRole").(models.Role)
		if !ok || role.Level() < minimum.Level() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"error":   "Insufficient privileges",
			})
		}
		return c.Next()
	}
}

// ActorFromContext rebuilds the authenticated principal set by
// AuthMiddleware.
func ActorFromContext(c *fiber.Ctx) models.Actor {
	actor := models.Actor{Role: models.RoleUser}
	if id, ok := c.Locals("userID").(uint); ok {
		actor.ID = id
	}
	if role, ok := c.Locals("userRole").(models.Role); ok {
		actor.Role = role
	}
	return actor
}
