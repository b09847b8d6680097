package handlers

import (
	applog "porcelain/internal/log"
	"porcelain/internal/services"
	"porcelain/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// APIHandler serves read-only JSON views of the catalog and the visitor
// session for polling clients.
type APIHandler struct {
	Catalog *services.CatalogService
	Cart    *services.CartService
}

func (h *APIHandler) CatalogJSON(c *fiber.Ctx) error {
	f, ok := validate.Filter(c.Query("category"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown category"})
	}
	products, err := h.Catalog.FilterBy(f)
	if err != nil {
		c.Status(fiber.StatusInternalServerError)
		applog.Error(c, "api.catalog.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "catalog unavailable"})
	}
	return c.JSON(fiber.Map{"category": f, "products": products})
}

func (h *APIHandler) CartJSON(c *fiber.Ctx) error {
	return c.JSON(h.Cart.View(ensureSID(c)))
}

func (h *APIHandler) SessionJSON(c *fiber.Ctx) error {
	return c.JSON(session(c).Snapshot())
}
