package handlers

import (
	"strings"

	"porcelain/internal/domain"
	"porcelain/internal/log"
	"porcelain/internal/services"
	"porcelain/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type SearchHandler struct {
	Catalog *services.CatalogService
}

func (h *SearchHandler) Search(c *fiber.Ctx) error {
	rawQ := c.Query("q")
	f, ok := validate.Filter(c.Query("category"))
	if !ok {
		c.Status(fiber.StatusBadRequest)
		log.Security(c, "validation.fail", map[string]any{"field": "category"})
		return render(c, "search", fiber.Map{
			"Q": "", "Products": []domain.Product{}, "Count": 0, "Err": "Neznámá kategorie",
		})
	}
	if strings.TrimSpace(rawQ) == "" {
		return render(c, "search", fiber.Map{"Q": "", "Filter": f, "Products": []domain.Product{}, "Count": 0})
	}
	q, ok := validate.Q(rawQ)
	if !ok {
		c.Status(fiber.StatusBadRequest)
		log.Security(c, "validation.fail", map[string]any{"field": "q", "value": rawQ})
		return render(c, "search", fiber.Map{
			"Q": "", "Filter": f, "Products": []domain.Product{}, "Count": 0,
			"Err": "Zadejte platný výraz (jen písmena a číslice)",
		})
	}

	products, err := h.Catalog.Search(q, f)
	if err != nil {
		c.Status(fiber.StatusInternalServerError)
		log.Error(c, "search.error", err, nil)
		return notFound(c, fiber.StatusInternalServerError, "Výsledky se nepodařilo načíst. Zkuste to prosím znovu.")
	}
	return render(c, "search", fiber.Map{"Q": q, "Filter": f, "Products": products, "Count": len(products)})
}
