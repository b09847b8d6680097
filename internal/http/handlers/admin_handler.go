package handlers

import (
	"errors"
	"unicode/utf8"

	"porcelain/internal/drafting"
	applog "porcelain/internal/log"
	"porcelain/internal/services"
	"porcelain/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Drafts  *services.DraftService
	Gateway *drafting.Gateway
}

func (h *AdminHandler) page(c *fiber.Ctx, status int, errMsg string) error {
	c.Status(status)
	return render(c, "admin", fiber.Map{
		"Available": h.Gateway.Available(),
		"MaxNotes":  validate.MaxNotes,
		"Err":       errMsg,
	})
}

// GET /admin
func (h *AdminHandler) Panel(c *fiber.Ctx) error {
	session(c).ShowAdmin()
	return h.page(c, fiber.StatusOK, "")
}

// POST /admin/draft
func (h *AdminHandler) Draft(c *fiber.Ctx) error {
	sid := ensureSID(c)
	category, ok := validate.Category(c.FormValue("category"))
	if !ok {
		c.Status(fiber.StatusBadRequest)
		applog.Security(c, "validation.fail", map[string]any{"field": "category"})
		return h.page(c, fiber.StatusBadRequest, "Neznámá kategorie")
	}
	notes, ok := validate.Notes(c.FormValue("notes"))
	if !ok {
		return h.page(c, fiber.StatusBadRequest, "Popište prosím kousek, nejvýše 2000 znaků.")
	}

	err := h.Drafts.Start(sid, notes, category)
	switch {
	case errors.Is(err, services.ErrDraftInFlight):
		return h.page(c, fiber.StatusConflict, "Návrh se ještě připravuje.")
	case err != nil:
		c.Status(fiber.StatusInternalServerError)
		applog.Error(c, "admin.draft.start.fail", err, nil)
		return h.page(c, fiber.StatusInternalServerError, "Něco se pokazilo. Zkuste to prosím znovu.")
	}
	applog.Audit(c, "admin.draft.start", map[string]any{"category": category.Slug(), "notes_len": utf8.RuneCountInString(notes)})
	return c.Redirect("/admin")
}

// POST /admin/draft/accept
func (h *AdminHandler) Accept(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_, err := h.Drafts.Accept(sid)
	var fe validate.FieldErrors
	switch {
	case errors.Is(err, services.ErrNoDraft):
		return h.page(c, fiber.StatusConflict, "Není co uložit.")
	case errors.As(err, &fe):
		c.Status(fiber.StatusUnprocessableEntity)
		applog.Warn(c, "admin.draft.accept.invalid", err, nil)
		return h.page(c, fiber.StatusUnprocessableEntity, "Návrh nelze uložit: "+fe.Error())
	case err != nil:
		c.Status(fiber.StatusInternalServerError)
		applog.Error(c, "admin.draft.accept.fail", err, nil)
		return h.page(c, fiber.StatusInternalServerError, "Něco se pokazilo. Zkuste to prosím znovu.")
	}
	return c.Redirect("/")
}

// POST /admin/draft/discard
func (h *AdminHandler) Discard(c *fiber.Ctx) error {
	h.Drafts.Discard(ensureSID(c))
	applog.Audit(c, "admin.draft.discard", nil)
	return c.Redirect("/admin")
}
