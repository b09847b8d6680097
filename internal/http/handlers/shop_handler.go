package handlers

import (
	applog "porcelain/internal/log"
	"porcelain/internal/services"
	"porcelain/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ShopHandler struct {
	Catalog *services.CatalogService
}

// Home renders the shop. Coming back from the admin panel drops a finished
// draft.
func (h *ShopHandler) Home(c *fiber.Ctx) error {
	sess := session(c)
	if sess.Snapshot().View == services.ViewAdmin {
		sess.ShowShop()
	}
	f := sess.Filter()
	products, err := h.Catalog.FilterBy(f)
	if err != nil {
		c.Status(fiber.StatusInternalServerError)
		applog.Error(c, "catalog.list.fail", err, nil)
		return notFound(c, fiber.StatusInternalServerError, "Katalog se nepodařilo načíst. Zkuste to prosím znovu.")
	}
	return render(c, "home", fiber.Map{"Products": products, "Count": len(products)})
}

// Filter selects the category shown on the shop page.
func (h *ShopHandler) Filter(c *fiber.Ctx) error {
	f, ok := validate.Filter(c.FormValue("category"))
	if !ok {
		c.Status(fiber.StatusBadRequest)
		applog.Security(c, "validation.fail", map[string]any{"field": "category"})
		return notFound(c, fiber.StatusBadRequest, "Neznámá kategorie")
	}
	session(c).SelectFilter(f)
	return c.Redirect("/")
}
