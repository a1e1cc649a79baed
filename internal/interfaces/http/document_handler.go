package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/benyoung8291/fieldflow-core-sub002/internal/application/documents"
	"github.com/benyoung8291/fieldflow-core-sub002/internal/application/dto"
	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain"
	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain/entity"
)

// DocumentHandler handles document CRUD and PDF downloads (protected).
type DocumentHandler struct {
	uc    *documents.DocumentUseCase
	pdfUC *documents.PDFUseCase
}

// NewDocumentHandler builds the handler.
func NewDocumentHandler(uc *documents.DocumentUseCase, pdfUC *documents.PDFUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc, pdfUC: pdfUC}
}

// Create stores a document with its line items.
// POST /api/documents
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.CreateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if in.Number == "" || in.Date.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "number and date are required"})
	}
	doc, err := h.uc.Create(c.Context(), companyID, in)
	if err != nil {
		return documentError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

// GetByID returns one document with line items.
// GET /api/documents/:id
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id required"})
	}
	doc, err := h.uc.GetByID(c.Context(), companyID, id)
	if err != nil {
		return documentError(c, err)
	}
	return c.JSON(doc)
}

// List returns the company's documents, newest first.
// GET /api/documents?type=invoice&limit=20&offset=0
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid pagination"})
	}
	docType := c.Query("type")
	docs, err := h.uc.List(c.Context(), companyID, docType, page)
	if err != nil {
		return documentError(c, err)
	}
	return c.JSON(docs)
}

// Delete removes a document.
// DELETE /api/documents/:id
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id required"})
	}
	if err := h.uc.Delete(c.Context(), companyID, id); err != nil {
		return documentError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadPDF renders a document to PDF using its resolved template.
// GET /api/documents/:id/pdf?template_id=...
func (h *DocumentHandler) DownloadPDF(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id required"})
	}
	templateID := c.Query("template_id")

	pdfBytes, filename, err := h.pdfUC.DownloadDocumentPDF(c.Context(), companyID, id, templateID)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidTemplate) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_TEMPLATE", Message: err.Error()})
		}
		return documentError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(pdfBytes)
}

// documentError maps domain sentinels to HTTP status codes.
func documentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid input"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "resource not found"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "access denied"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
