package middleware

import (
	"github.com/gofiber/fiber/v2"

	"leadtrack-crm/internal/domain"
)

func RequireRole(requiredRole domain.UserRole) fiber.Handler {
	return RequireAnyRole(requiredRole)
}

func RequireAnyRole(roles ...domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if user == nil {
			return Unauthorized("User not found")
		}

		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}

		return Forbidden("Insufficient permissions for this operation")
	}
}

func RequireAdmin() fiber.Handler {
	return RequireRole(domain.RoleAdmin)
}
