package handlers

import (
	"time"

	"porcelain/internal/log"
	"porcelain/internal/services"
	"porcelain/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const sessionLocal = "session"

type AuthHandler struct {
	Auth *services.AuthService
}

func ensureSID(c *fiber.Ctx) string {
	if sid, ok := c.Locals(log.SessionKey).(string); ok && sid != "" {
		return sid
	}
	sid := c.Cookies("sid")
	if _, ok := validate.ID(sid); !ok {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false,
		})
	}
	c.Locals(log.SessionKey, sid)
	return sid
}

// Visitor attaches the visitor session to every request.
func Visitor(sessions *services.SessionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := ensureSID(c)
		c.Locals(sessionLocal, sessions.Get(sid))
		return c.Next()
	}
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	email := c.FormValue("email")
	pass := c.FormValue("password")
	if _, ok := validate.Email(email); !ok {
		c.Status(fiber.StatusUnauthorized)
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_format"})
		return render(c, "login", fiber.Map{"Err": "Neplatný e-mail nebo heslo"})
	}
	if !validate.Password(pass) {
		c.Status(fiber.StatusUnauthorized)
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_password_format"})
		return render(c, "login", fiber.Map{"Err": "Neplatný e-mail nebo heslo"})
	}

	if _, err := h.Auth.Login(sid, email, pass); err != nil {
		c.Status(fiber.StatusUnauthorized)
		log.Security(c, "auth.login.fail", map[string]any{"email": email})
		return render(c, "login", fiber.Map{"Err": "Neplatný e-mail nebo heslo"})
	}

	log.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.Redirect("/admin")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	log.Audit(c, "auth.logout", nil)
	return c.Redirect("/")
}
