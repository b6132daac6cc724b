package helper

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// GetUserIDFromToken reads the user id stored by the auth middleware in
// c.Locals("user_id"). Returns 401 when not logged in, 400 when the
// stored value is not a positive integer.
func GetUserIDFromToken(c *fiber.Ctx) (uint, error) {
	v := c.Locals("user_id")
	if v == nil {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "User is not logged in")
	}

	switch t := v.(type) {
	case uint:
		if t == 0 {
			return 0, fiber.NewError(fiber.StatusUnauthorized, "User is not logged in")
		}
		return t, nil
	case int:
		if t <= 0 {
			return 0, fiber.NewError(fiber.StatusBadRequest, "User ID in token is not valid")
		}
		return uint(t), nil
	case float64:
		if t <= 0 {
			return 0, fiber.NewError(fiber.StatusBadRequest, "User ID in token is not valid")
		}
		return uint(t), nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, fiber.NewError(fiber.StatusUnauthorized, "User is not logged in")
		}
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil || n == 0 {
			return 0, fiber.NewError(fiber.StatusBadRequest, "User ID in token is not valid")
		}
		return uint(n), nil
	default:
		return 0, fiber.NewError(fiber.StatusBadRequest, "User ID in token is not valid")
	}
}

// GetRoleFromToken reads the role claim stored by the auth middleware.
func GetRoleFromToken(c *fiber.Ctx) string {
	if v, ok := c.Locals("user_role").(string); ok {
		return v
	}
	return ""
}

// FromFiberError turns an error bubbled out of a service/transaction
// (usually *fiber.Error) into the consistent JSON error envelope.
// Anything else falls back to 500 with the given message, so raw
// driver errors never reach the client.
func FromFiberError(c *fiber.Ctx, err error, fallback string) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonError(c, fiber.StatusInternalServerError, fallback)
}
