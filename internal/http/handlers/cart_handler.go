package handlers

import (
	"errors"

	applog "porcelain/internal/log"
	"porcelain/internal/services"
	"porcelain/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart *services.CartService
}

// Add puts the product into the cart and then opens the drawer.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		c.Status(fiber.StatusBadRequest)
		applog.Security(c, "validation.fail", map[string]any{"field": "productId"})
		return notFound(c, fiber.StatusBadRequest, "Chybí produkt")
	}
	p, err := h.Cart.Add(sid, productID)
	if errors.Is(err, services.ErrProductNotFound) {
		return notFound(c, fiber.StatusNotFound, "Tento kousek už není k dispozici")
	}
	if err != nil {
		c.Status(fiber.StatusInternalServerError)
		applog.Error(c, "cart.add.fail", err, map[string]any{"product": productID})
		return notFound(c, fiber.StatusInternalServerError, "Něco se pokazilo. Zkuste to prosím znovu.")
	}
	session(c).OpenCart()
	applog.Info(c, "cart.add", map[string]any{"product": p.ID, "price": p.Price})
	return c.Redirect("/")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return notFound(c, fiber.StatusBadRequest, "Chybí produkt")
	}
	h.Cart.Remove(sid, productID)
	return c.Redirect("/")
}

func (h *CartHandler) Open(c *fiber.Ctx) error {
	session(c).OpenCart()
	return c.Redirect("/")
}

func (h *CartHandler) Close(c *fiber.Ctx) error {
	session(c).CloseCart()
	return c.Redirect("/")
}
