package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/benyoung8291/fieldflow-core-sub002/internal/application/dto"
	"github.com/benyoung8291/fieldflow-core-sub002/internal/application/settings"
)

// CompanySettingsHandler handles the company letterhead settings (protected).
type CompanySettingsHandler struct {
	uc *settings.SettingsUseCase
}

// NewCompanySettingsHandler builds the handler.
func NewCompanySettingsHandler(uc *settings.SettingsUseCase) *CompanySettingsHandler {
	return &CompanySettingsHandler{uc: uc}
}

// Get returns the company's settings.
// GET /api/settings
func (h *CompanySettingsHandler) Get(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	out, err := h.uc.Get(c.Context(), companyID)
	if err != nil {
		return documentError(c, err)
	}
	return c.JSON(out)
}

// Save creates or replaces the company's settings.
// PUT /api/settings
func (h *CompanySettingsHandler) Save(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.SaveCompanySettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name is required"})
	}
	out, err := h.uc.Save(c.Context(), companyID, in)
	if err != nil {
		return documentError(c, err)
	}
	return c.JSON(out)
}
