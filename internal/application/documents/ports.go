package documents

import (
	"context"

	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain/entity"
	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain/repository"
)

// GenerateRequest carries everything the PDF generator needs for one render.
// The generator is pure: it never loads data itself.
type GenerateRequest struct {
	Template     *entity.UnifiedTemplate
	Document     *entity.DocumentData
	LineItems    []*entity.LineItem
	Company      *entity.CompanySettings
	DocumentType entity.DocumentType
}

// UnifiedPDFGenerator renders one document of any supported type into PDF
// bytes using a unified template.
type UnifiedPDFGenerator interface {
	GenerateUnifiedPDF(ctx context.Context, req GenerateRequest) ([]byte, error)
}

// TxRunner runs a callback inside a database transaction with a document
// repository bound to it. Used so a document and its line items persist
// atomically.
type TxRunner interface {
	Run(ctx context.Context, fn func(docRepo repository.DocumentRepository) error) error
}
