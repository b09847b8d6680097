package handlers

import (
	applog "porcelain/internal/log"
	"porcelain/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RequireAdmin guards the admin area. It lets everyone through when admin
// login is disabled.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := ensureSID(c)
		if !auth.IsAdmin(sid) {
			if c.Method() == fiber.MethodGet {
				c.Status(fiber.StatusFound)
				applog.Security(c, "access.denied.admin", nil)
				return c.Redirect("/login")
			}
			c.Status(fiber.StatusForbidden)
			applog.Security(c, "access.denied.admin", nil)
			return notFound(c, fiber.StatusForbidden, "Přístup odepřen")
		}
		return c.Next()
	}
}

// LoadUser puts the signed-in user into Locals for templates.
func LoadUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := auth.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	}
}
