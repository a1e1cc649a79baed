package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/benyoung8291/fieldflow-core-sub002/internal/application/dto"
	"github.com/benyoung8291/fieldflow-core-sub002/internal/application/templates"
	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain/entity"
)

// TemplateHandler handles template CRUD plus the editor's field catalog
// (protected).
type TemplateHandler struct {
	uc *templates.TemplateUseCase
}

// NewTemplateHandler builds the handler.
func NewTemplateHandler(uc *templates.TemplateUseCase) *TemplateHandler {
	return &TemplateHandler{uc: uc}
}

// Create stores a new template.
// POST /api/templates
func (h *TemplateHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.SaveTemplateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name is required"})
	}
	tpl, err := h.uc.Create(c.Context(), companyID, in)
	if err != nil {
		return templateError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tpl)
}

// Update rewrites an existing template.
// PUT /api/templates/:id
func (h *TemplateHandler) Update(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id required"})
	}
	var in dto.SaveTemplateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	tpl, err := h.uc.Update(c.Context(), companyID, id, in)
	if err != nil {
		return templateError(c, err)
	}
	return c.JSON(tpl)
}

// GetByID returns one template.
// GET /api/templates/:id
func (h *TemplateHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	id := c.Params("id")
	tpl, err := h.uc.GetByID(c.Context(), companyID, id)
	if err != nil {
		return templateError(c, err)
	}
	return c.JSON(tpl)
}

// List returns the company's templates, optionally filtered by type.
// GET /api/templates?type=invoice
func (h *TemplateHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	list, err := h.uc.List(c.Context(), companyID, c.Query("type"))
	if err != nil {
		return templateError(c, err)
	}
	return c.JSON(list)
}

// SetDefault flags a template as the default of its document type.
// POST /api/templates/:id/default
func (h *TemplateHandler) SetDefault(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	if err := h.uc.SetDefault(c.Context(), companyID, c.Params("id")); err != nil {
		return templateError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete removes a template.
// DELETE /api/templates/:id
func (h *TemplateHandler) Delete(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	if err := h.uc.Delete(c.Context(), companyID, c.Params("id")); err != nil {
		return templateError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Default returns the built-in template for a document type.
// GET /api/templates/default/:type
func (h *TemplateHandler) Default(c *fiber.Ctx) error {
	tpl, err := h.uc.Default(c.Context(), c.Params("type"))
	if err != nil {
		return templateError(c, err)
	}
	return c.JSON(tpl)
}

// AvailableFields returns the grouped field catalog for a document type.
// GET /api/templates/fields/:type
func (h *TemplateHandler) AvailableFields(c *fiber.Ctx) error {
	groups, err := h.uc.AvailableFields(c.Context(), c.Params("type"))
	if err != nil {
		return templateError(c, err)
	}
	return c.JSON(groups)
}

func templateError(c *fiber.Ctx, err error) error {
	if errors.Is(err, entity.ErrInvalidTemplate) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_TEMPLATE", Message: err.Error()})
	}
	return documentError(c, err)
}
