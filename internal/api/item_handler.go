package api

import (
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"itemboard/internal/service"
)

type ItemHandler struct {
	itemService service.ItemService
	validate    *validator.Validate
}

func NewItemHandler(itemService service.ItemService) *ItemHandler {
	return &ItemHandler{
		itemService: itemService,
		validate:    validator.New(),
	}
}

type CreateItemRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

type UpdateItemRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (h *ItemHandler) List(c *fiber.Ctx) error {
	identity, ok := IdentityFromCtx(c)
	if !ok {
		return Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", service.DefaultPageLimit)

	result, err := h.itemService.List(c.Context(), identity.UserID, page, limit)
	if err != nil {
		slog.ErrorContext(c.Context(), "list items failed", "error", err)
		return Fail(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return Success(c, "success", result)
}

func (h *ItemHandler) Create(c *fiber.Ctx) error {
	identity, ok := IdentityFromCtx(c)
	if !ok {
		return Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return Fail(c, fiber.StatusBadRequest, "Invalid JSON format or empty request body")
	}

	if err := h.validate.Struct(&req); err != nil {
		return Fail(c, fiber.StatusBadRequest, validationMessage(err))
	}

	id, err := h.itemService.Create(c.Context(), identity.UserID, req.Title, req.Description)
	if err != nil {
		slog.ErrorContext(c.Context(), "create item failed", "error", err)
		return Fail(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return Success(c, "success", fiber.Map{"id": id})
}

func (h *ItemHandler) Get(c *fiber.Ctx) error {
	identity, ok := IdentityFromCtx(c)
	if !ok {
		return Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	item, err := h.itemService.Get(c.Context(), c.Params("id"), identity.UserID)
	if err != nil {
		return h.itemError(c, err, "get item failed")
	}

	return Success(c, "success", item)
}

func (h *ItemHandler) Update(c *fiber.Ctx) error {
	identity, ok := IdentityFromCtx(c)
	if !ok {
		return Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return Fail(c, fiber.StatusBadRequest, "Invalid JSON format or empty request body")
	}

	fields := map[string]string{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if len(fields) == 0 {
		return Fail(c, fiber.StatusBadRequest, "No valid fields to update")
	}

	item, err := h.itemService.Update(c.Context(), c.Params("id"), identity.UserID, fields)
	if err != nil {
		return h.itemError(c, err, "update item failed")
	}

	return Success(c, "success", item)
}

func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	identity, ok := IdentityFromCtx(c)
	if !ok {
		return Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	id := c.Params("id")
	if err := h.itemService.Delete(c.Context(), id, identity.UserID); err != nil {
		return h.itemError(c, err, "delete item failed")
	}

	return Success(c, "success", fiber.Map{"id": id})
}

// itemError maps not-found-or-not-owned to a single 404 so an existing id with
// a different owner is indistinguishable from a missing one.
func (h *ItemHandler) itemError(c *fiber.Ctx, err error, logMsg string) error {
	if errors.Is(err, service.ErrItemNotFound) {
		return Fail(c, fiber.StatusNotFound, "Not found")
	}
	slog.ErrorContext(c.Context(), logMsg, "error", err)
	return Fail(c, fiber.StatusInternalServerError, "Internal server error")
}
