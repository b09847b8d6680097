package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"porcelain/internal/config"
	"porcelain/internal/domain"
	applog "porcelain/internal/log"
)

// NewViews loads the page templates and registers the helpers they use.
func NewViews(dir string) *html.Engine {
	engine := html.New(dir, ".html")
	engine.AddFunc("kc", domain.FormatKc)
	engine.AddFunc("dict", dict)
	return engine
}

// dict builds a map from alternating keys and values so a partial can get
// more than one argument.
func dict(kv ...any) map[string]any {
	m := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			m[k] = kv[i+1]
		}
	}
	return m
}

// ErrorHandler logs the error and shows a friendly page without details.
func ErrorHandler(c *fiber.Ctx, err error) error {
	c.Status(fiber.StatusInternalServerError)
	applog.Error(c, "server.error", err, nil)
	if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
		"Message": "Něco se pokazilo. Zkuste to prosím znovu.",
	}); rerr != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Něco se pokazilo. Zkuste to prosím znovu.")
	}
	return nil
}

// NewApp builds the Fiber app with middleware and every route.
func NewApp(d *Deps, cfg config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		Views:        NewViews(cfg.TemplatesDir),
		ErrorHandler: ErrorHandler,
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/static/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			c.Status(fiber.StatusForbidden)
			applog.Security(c, "csrf.fail", map[string]any{"err": err.Error()})
			return notFound(c, fiber.StatusForbidden, "Bezpečnostní kontrola selhala. Obnovte stránku a zkuste to znovu.")
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})

	app.Static("/static", cfg.StaticDir)
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	app.Use(Visitor(d.Sessions))
	app.Use(LoadUser(d.Auth))

	// ---------- Shop ----------
	app.Get("/", d.ShopHandler.Home)
	app.Post("/filter", d.ShopHandler.Filter)
	app.Get("/search", limiter.New(limiter.Config{Max: 30, Expiration: time.Minute}), d.SearchHandler.Search)
	app.Get("/product/:id", d.ProductHandler.Detail)

	app.Post("/cart", d.CartHandler.Add)
	app.Post("/cart/remove", d.CartHandler.Remove)
	app.Post("/cart/open", d.CartHandler.Open)
	app.Post("/cart/close", d.CartHandler.Close)

	// ---------- Admin ----------
	app.Get("/login", d.AuthHandler.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			c.Status(fiber.StatusTooManyRequests)
			applog.Security(c, "rate.login.hit", nil)
			return render(c, "login", fiber.Map{"Err": "Příliš mnoho pokusů. Zkuste to později."})
		},
	}), d.AuthHandler.Login)
	app.Post("/logout", d.AuthHandler.Logout)

	admin := app.Group("/admin", RequireAdmin(d.Auth))
	admin.Get("/", d.AdminHandler.Panel)
	admin.Post("/draft", d.AdminHandler.Draft)
	admin.Post("/draft/accept", d.AdminHandler.Accept)
	admin.Post("/draft/discard", d.AdminHandler.Discard)

	// ---------- API ----------
	api := app.Group("/api/v1")
	api.Get("/catalog", d.APIHandler.CatalogJSON)
	api.Get("/cart", d.APIHandler.CartJSON)
	api.Get("/session", d.APIHandler.SessionJSON)

	app.Use(func(c *fiber.Ctx) error {
		return notFound(c, fiber.StatusNotFound, "Stránka nenalezena")
	})
	return app
}
