package handlers

import (
	"porcelain/internal/domain"
	"porcelain/internal/services"

	"github.com/gofiber/fiber/v2"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if u := c.Locals("user"); u != nil {
		data["User"] = u
	}
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		// Locals can be empty on the first request of a visitor.
		tok = c.Cookies("csrf_")
	}
	if tok != "" {
		data["CSRFToken"] = tok
	}
	// Header and cart drawer render from the visitor session.
	if s := session(c); s != nil {
		data["S"] = s.Snapshot()
	}
	data["Categories"] = domain.Categories()
	return c.Render(tmpl, data)
}

// notFound renders the friendly error page with status.
func notFound(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).Render("notfound", fiber.Map{"Message": msg})
}

func session(c *fiber.Ctx) *services.Session {
	s, _ := c.Locals(sessionLocal).(*services.Session)
	return s
}
