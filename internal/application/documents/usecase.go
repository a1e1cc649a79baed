package documents

import (
	"context"

	"github.com/google/uuid"

	"github.com/benyoung8291/fieldflow-core-sub002/internal/application/dto"
	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain"
	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain/entity"
	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain/repository"
)

// DocumentUseCase use cases for creating and reading documents.
type DocumentUseCase struct {
	docRepo  repository.DocumentRepository
	txRunner TxRunner
}

// NewDocumentUseCase builds the use case.
func NewDocumentUseCase(docRepo repository.DocumentRepository, txRunner TxRunner) *DocumentUseCase {
	return &DocumentUseCase{docRepo: docRepo, txRunner: txRunner}
}

// Create persists a document with its line items in one transaction.
// Line-item parent references given as client-side IDs are remapped to the
// generated UUIDs; a reference that resolves to nothing is kept as given and
// later promoted to top-level at layout time.
func (uc *DocumentUseCase) Create(ctx context.Context, companyID string, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	docType := entity.DocumentType(in.Type)
	if !docType.Valid() {
		return nil, domain.ErrInvalidInput
	}

	doc := &entity.DocumentData{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Type:      docType,
		Number:    in.Number,
		Date:      in.Date,
		Status:    in.Status,

		Notes:           in.Notes,
		TermsConditions: in.TermsConditions,

		Subtotal:       in.Subtotal,
		TaxAmount:      in.TaxAmount,
		DiscountAmount: in.DiscountAmount,
		Total:          in.Total,

		Title:      in.Title,
		ValidUntil: in.ValidUntil,

		DueDate:      in.DueDate,
		PaymentTerms: in.PaymentTerms,
		AmountPaid:   in.AmountPaid,
		BalanceDue:   in.BalanceDue,

		DeliveryDate:    in.DeliveryDate,
		ShippingAddress: in.ShippingAddress,

		SiteLocation:    in.SiteLocation,
		TechnicianName:  in.TechnicianName,
		ServiceDate:     in.ServiceDate,
		Findings:        in.Findings,
		Recommendations: in.Recommendations,

		Customer:           in.Customer,
		Supplier:           in.Supplier,
		Location:           in.Location,
		SourceServiceOrder: in.SourceServiceOrder,
		SourceProject:      in.SourceProject,
	}

	items := buildLineItems(doc.ID, in.LineItems)

	err := uc.txRunner.Run(ctx, func(docRepo repository.DocumentRepository) error {
		return docRepo.Create(doc, items)
	})
	if err != nil {
		return nil, err
	}
	return toDocumentResponse(doc, items), nil
}

// buildLineItems assigns UUIDs and remaps parent references from client-side
// IDs to the generated ones.
func buildLineItems(documentID string, in []dto.LineItemRequest) []*entity.LineItem {
	idByClientID := make(map[string]string, len(in))
	items := make([]*entity.LineItem, 0, len(in))
	for i, li := range in {
		id := uuid.New().String()
		if li.ID != "" {
			idByClientID[li.ID] = id
		}
		items = append(items, &entity.LineItem{
			ID:               id,
			DocumentID:       documentID,
			ParentLineItemID: li.ParentID,
			Description:      li.Description,
			Quantity:         li.Quantity,
			UnitPrice:        li.UnitPrice,
			LineTotal:        li.LineTotal,
			CostPrice:        li.CostPrice,
			MarginPercentage: li.MarginPercentage,
			SortOrder:        orDefaultSort(li.SortOrder, i),
		})
	}
	for _, item := range items {
		if item.ParentLineItemID == "" {
			continue
		}
		if mapped, ok := idByClientID[item.ParentLineItemID]; ok {
			item.ParentLineItemID = mapped
		}
	}
	return items
}

func orDefaultSort(sortOrder, index int) int {
	if sortOrder != 0 {
		return sortOrder
	}
	return index
}

// GetByID loads a document with its line items, enforcing company ownership.
func (uc *DocumentUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.DocumentResponse, error) {
	doc, err := uc.docRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	if doc.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	items, err := uc.docRepo.GetLineItems(id)
	if err != nil {
		return nil, err
	}
	return toDocumentResponse(doc, items), nil
}

// List returns a company's documents, optionally filtered by type.
func (uc *DocumentUseCase) List(ctx context.Context, companyID, docType string, page dto.PageRequest) ([]*dto.DocumentResponse, error) {
	page.DefaultPage()
	if docType != "" && !entity.DocumentType(docType).Valid() {
		return nil, domain.ErrInvalidInput
	}
	docs, err := uc.docRepo.ListByCompany(companyID, entity.DocumentType(docType), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, toDocumentResponse(d, nil))
	}
	return out, nil
}

// Delete removes a document after checking ownership.
func (uc *DocumentUseCase) Delete(ctx context.Context, companyID, id string) error {
	doc, err := uc.docRepo.GetByID(id)
	if err != nil {
		return err
	}
	if doc == nil {
		return domain.ErrNotFound
	}
	if doc.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return uc.docRepo.Delete(id)
}

func toDocumentResponse(doc *entity.DocumentData, items []*entity.LineItem) *dto.DocumentResponse {
	resp := &dto.DocumentResponse{
		ID:        doc.ID,
		CompanyID: doc.CompanyID,
		Type:      string(doc.Type),
		Number:    doc.Number,
		Date:      doc.Date,
		Status:    doc.Status,

		Notes:           doc.Notes,
		TermsConditions: doc.TermsConditions,

		Subtotal:       doc.Subtotal,
		TaxAmount:      doc.TaxAmount,
		DiscountAmount: doc.DiscountAmount,
		Total:          doc.Total,

		Title:      doc.Title,
		ValidUntil: doc.ValidUntil,

		DueDate:      doc.DueDate,
		PaymentTerms: doc.PaymentTerms,
		AmountPaid:   doc.AmountPaid,
		BalanceDue:   doc.BalanceDue,

		DeliveryDate:    doc.DeliveryDate,
		ShippingAddress: doc.ShippingAddress,

		SiteLocation:    doc.SiteLocation,
		TechnicianName:  doc.TechnicianName,
		ServiceDate:     doc.ServiceDate,
		Findings:        doc.Findings,
		Recommendations: doc.Recommendations,

		Customer:           doc.Customer,
		Supplier:           doc.Supplier,
		Location:           doc.Location,
		SourceServiceOrder: doc.SourceServiceOrder,
		SourceProject:      doc.SourceProject,

		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
	for _, item := range items {
		resp.LineItems = append(resp.LineItems, dto.LineItemResponse{
			ID:               item.ID,
			ParentID:         item.ParentLineItemID,
			Description:      item.Description,
			Quantity:         item.Quantity,
			UnitPrice:        item.UnitPrice,
			LineTotal:        item.LineTotal,
			CostPrice:        item.CostPrice,
			MarginPercentage: item.MarginPercentage,
			SortOrder:        item.SortOrder,
		})
	}
	return resp
}
