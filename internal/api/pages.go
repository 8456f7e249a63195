package api

import (
	"github.com/gofiber/fiber/v2"
)

// PageHandler renders the server-side page shells. Data loading happens in the
// browser against the JSON API; the guards decide whether a page renders at
// all.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

func (h *PageHandler) Landing(c *fiber.Ctx) error {
	return c.Render("index", fiber.Map{"Title": "Itemboard"})
}

func (h *PageHandler) Login(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{"Title": "Sign in"})
}

func (h *PageHandler) Register(c *fiber.Ctx) error {
	return c.Render("register", fiber.Map{"Title": "Create account"})
}

func (h *PageHandler) Dashboard(c *fiber.Ctx) error {
	identity, _ := IdentityFromCtx(c)
	return c.Render("dashboard", fiber.Map{"Title": "Dashboard", "Email": identity.Email})
}

func (h *PageHandler) Items(c *fiber.Ctx) error {
	identity, _ := IdentityFromCtx(c)
	return c.Render("items", fiber.Map{"Title": "My items", "Email": identity.Email})
}

func (h *PageHandler) AddItem(c *fiber.Ctx) error {
	identity, _ := IdentityFromCtx(c)
	return c.Render("add_item", fiber.Map{"Title": "Add item", "Email": identity.Email})
}

func (h *PageHandler) ItemDetail(c *fiber.Ctx) error {
	identity, _ := IdentityFromCtx(c)
	return c.Render("item", fiber.Map{"Title": "Item", "Email": identity.Email, "ItemID": c.Params("id")})
}

func (h *PageHandler) Profile(c *fiber.Ctx) error {
	identity, _ := IdentityFromCtx(c)
	return c.Render("profile", fiber.Map{"Title": "Profile", "Email": identity.Email})
}

func (h *PageHandler) NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).Render("404", fiber.Map{"Title": "Not found"})
}
