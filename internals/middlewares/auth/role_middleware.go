package auth

import (
	"github.com/gofiber/fiber/v2"

	"levelearn_backend/internals/constants"
)

// OnlyRolesSlice guards a route group for the given roles. The auth
// middleware must run first so user_role is present in Locals.
func OnlyRolesSlice(message string, roles []string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("user_role").(string)
		if role == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Missing role")
		}
		if _, ok := allowed[role]; !ok {
			return fiber.NewError(fiber.StatusForbidden, message)
		}
		return c.Next()
	}
}

// OnlyAdmin is a shorthand for the admin-only groups.
func OnlyAdmin(feature string) fiber.Handler {
	return OnlyRolesSlice(constants.RoleErrorAdmin(feature), constants.AdminOnly)
}
