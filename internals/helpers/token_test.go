// file: internals/helpers/token_test.go
package helper

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestFromFiberError(t *testing.T) {
	app := fiber.New()
	app.Get("/fiber-error", func(c *fiber.Ctx) error {
		return FromFiberError(c, fiber.NewError(fiber.StatusNotFound, "Stage not found"), "fallback")
	})
	app.Get("/plain-error", func(c *fiber.Ctx) error {
		return FromFiberError(c, errors.New("pq: connection reset"), "Failed to submit evaluation")
	})

	t.Run("fiber error keeps its code and message", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/fiber-error", nil))
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		if resp.StatusCode != fiber.StatusNotFound {
			t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusNotFound)
		}
		body, _ := io.ReadAll(resp.Body)
		if !strings.Contains(string(body), "Stage not found") {
			t.Errorf("body = %s, want the fiber error message", body)
		}
	})

	t.Run("plain error becomes 500 with the fallback message", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/plain-error", nil))
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		if resp.StatusCode != fiber.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", resp.StatusCode)
		}
		body, _ := io.ReadAll(resp.Body)
		if strings.Contains(string(body), "pq:") {
			t.Errorf("driver error leaked to the client: %s", body)
		}
		if !strings.Contains(string(body), "Failed to submit evaluation") {
			t.Errorf("body = %s, want the fallback message", body)
		}
	})
}

func TestGetRoleFromToken(t *testing.T) {
	app := fiber.New()
	app.Get("/role", func(c *fiber.Ctx) error {
		c.Locals("user_role", "admin")
		if got := GetRoleFromToken(c); got != "admin" {
			t.Errorf("role = %q, want %q", got, "admin")
		}
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/no-role", func(c *fiber.Ctx) error {
		if got := GetRoleFromToken(c); got != "" {
			t.Errorf("role = %q, want empty", got)
		}
		return c.SendStatus(fiber.StatusOK)
	})

	for _, path := range []string{"/role", "/no-role"} {
		if _, err := app.Test(httptest.NewRequest("GET", path, nil)); err != nil {
			t.Fatalf("request %s: %v", path, err)
		}
	}
}
