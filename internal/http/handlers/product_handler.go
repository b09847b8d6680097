package handlers

import (
	"errors"

	"porcelain/internal/log"
	"porcelain/internal/services"
	"porcelain/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		c.Status(fiber.StatusNotFound)
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return notFound(c, fiber.StatusNotFound, "Tento kousek už není k dispozici")
	}
	p, err := h.Catalog.GetProduct(id)
	if errors.Is(err, services.ErrProductNotFound) {
		return notFound(c, fiber.StatusNotFound, "Tento kousek už není k dispozici")
	}
	if err != nil {
		c.Status(fiber.StatusInternalServerError)
		log.Error(c, "product.get.fail", err, map[string]any{"product": id})
		return notFound(c, fiber.StatusInternalServerError, "Něco se pokazilo. Zkuste to prosím znovu.")
	}
	return render(c, "product", fiber.Map{"P": p})
}
