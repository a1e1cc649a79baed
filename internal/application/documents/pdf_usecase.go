package documents

import (
	"context"
	"fmt"
	"strings"

	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain"
	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain/entity"
	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain/repository"
)

// PDFUseCase orchestrates a document download: load, resolve template,
// render. Template resolution order: explicit template ID, then the stored
// default for the document type, then the built-in default.
type PDFUseCase struct {
	docRepo      repository.DocumentRepository
	templateRepo repository.TemplateRepository
	settingsRepo repository.CompanySettingsRepository
	generator    UnifiedPDFGenerator
}

// NewPDFUseCase builds the use case.
func NewPDFUseCase(
	docRepo repository.DocumentRepository,
	templateRepo repository.TemplateRepository,
	settingsRepo repository.CompanySettingsRepository,
	generator UnifiedPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		docRepo:      docRepo,
		templateRepo: templateRepo,
		settingsRepo: settingsRepo,
		generator:    generator,
	}
}

// DownloadDocumentPDF renders one document to PDF and returns the bytes plus
// a suggested filename. templateID may be empty to use the stored or built-in
// default.
func (uc *PDFUseCase) DownloadDocumentPDF(ctx context.Context, companyID, documentID, templateID string) ([]byte, string, error) {
	doc, err := uc.docRepo.GetByID(documentID)
	if err != nil {
		return nil, "", err
	}
	if doc == nil {
		return nil, "", domain.ErrNotFound
	}
	if doc.CompanyID != companyID {
		return nil, "", domain.ErrForbidden
	}

	items, err := uc.docRepo.GetLineItems(documentID)
	if err != nil {
		return nil, "", err
	}

	settings, err := uc.settingsRepo.GetByCompanyID(companyID)
	if err != nil {
		return nil, "", err
	}
	if settings == nil {
		settings = &entity.CompanySettings{CompanyID: companyID}
	}

	tpl, err := uc.resolveTemplate(companyID, templateID, doc.Type)
	if err != nil {
		return nil, "", err
	}

	pdfBytes, err := uc.generator.GenerateUnifiedPDF(ctx, GenerateRequest{
		Template:     tpl,
		Document:     doc,
		LineItems:    items,
		Company:      settings,
		DocumentType: doc.Type,
	})
	if err != nil {
		return nil, "", fmt.Errorf("generate pdf: %w", err)
	}
	return pdfBytes, pdfFilename(doc), nil
}

func (uc *PDFUseCase) resolveTemplate(companyID, templateID string, docType entity.DocumentType) (*entity.UnifiedTemplate, error) {
	if templateID != "" {
		tpl, err := uc.templateRepo.GetByID(templateID)
		if err != nil {
			return nil, err
		}
		if tpl == nil {
			return nil, domain.ErrNotFound
		}
		if tpl.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
		return tpl, nil
	}
	tpl, err := uc.templateRepo.GetDefault(companyID, docType)
	if err != nil {
		return nil, err
	}
	if tpl != nil {
		return tpl, nil
	}
	return entity.DefaultTemplate(docType), nil
}

// pdfFilename builds a download filename like "invoice-INV-2026-014.pdf".
func pdfFilename(doc *entity.DocumentData) string {
	number := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, doc.Number)
	if number == "" {
		number = doc.ID
	}
	return fmt.Sprintf("%s-%s.pdf", doc.Type, number)
}
