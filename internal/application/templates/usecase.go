package templates

import (
	"context"

	"github.com/benyoung8291/fieldflow-core-sub002/internal/application/dto"
	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain"
	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain/entity"
	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain/render"
	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain/repository"
)

// TemplateUseCase CRUD over unified templates plus the field catalog the
// template editor consumes.
type TemplateUseCase struct {
	repo repository.TemplateRepository
}

// NewTemplateUseCase builds the use case.
func NewTemplateUseCase(repo repository.TemplateRepository) *TemplateUseCase {
	return &TemplateUseCase{repo: repo}
}

// Create validates and persists a new template. When flagged as default it
// also claims the default slot for its document type.
func (uc *TemplateUseCase) Create(ctx context.Context, companyID string, in dto.SaveTemplateRequest) (*dto.TemplateResponse, error) {
	tpl, err := fromSaveRequest(companyID, in)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(tpl); err != nil {
		return nil, err
	}
	if tpl.IsDefault {
		if err := uc.repo.SetDefault(tpl.ID, companyID, tpl.DocumentType); err != nil {
			return nil, err
		}
	}
	return toTemplateResponse(tpl), nil
}

// Update validates and rewrites an existing template.
func (uc *TemplateUseCase) Update(ctx context.Context, companyID, id string, in dto.SaveTemplateRequest) (*dto.TemplateResponse, error) {
	existing, err := uc.getOwned(companyID, id)
	if err != nil {
		return nil, err
	}
	tpl, err := fromSaveRequest(companyID, in)
	if err != nil {
		return nil, err
	}
	tpl.ID = existing.ID
	tpl.CreatedAt = existing.CreatedAt
	if err := uc.repo.Update(tpl); err != nil {
		return nil, err
	}
	if in.IsDefault && !existing.IsDefault {
		if err := uc.repo.SetDefault(tpl.ID, companyID, tpl.DocumentType); err != nil {
			return nil, err
		}
		tpl.IsDefault = true
	}
	return toTemplateResponse(tpl), nil
}

// GetByID loads one template, enforcing company ownership.
func (uc *TemplateUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.TemplateResponse, error) {
	tpl, err := uc.getOwned(companyID, id)
	if err != nil {
		return nil, err
	}
	return toTemplateResponse(tpl), nil
}

// List returns a company's templates, optionally filtered by document type.
func (uc *TemplateUseCase) List(ctx context.Context, companyID, docType string) ([]*dto.TemplateResponse, error) {
	if docType != "" && !entity.DocumentType(docType).Valid() {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.ListByCompany(companyID, entity.DocumentType(docType))
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TemplateResponse, 0, len(list))
	for _, tpl := range list {
		out = append(out, toTemplateResponse(tpl))
	}
	return out, nil
}

// SetDefault flags a template as the default for its document type.
func (uc *TemplateUseCase) SetDefault(ctx context.Context, companyID, id string) error {
	tpl, err := uc.getOwned(companyID, id)
	if err != nil {
		return err
	}
	return uc.repo.SetDefault(tpl.ID, companyID, tpl.DocumentType)
}

// Delete removes a template after checking ownership.
func (uc *TemplateUseCase) Delete(ctx context.Context, companyID, id string) error {
	tpl, err := uc.getOwned(companyID, id)
	if err != nil {
		return err
	}
	return uc.repo.Delete(tpl.ID)
}

// Default returns the built-in template for a document type, for the editor's
// "start from scratch" flow.
func (uc *TemplateUseCase) Default(ctx context.Context, docType string) (*dto.TemplateResponse, error) {
	dt := entity.DocumentType(docType)
	if !dt.Valid() {
		return nil, domain.ErrInvalidInput
	}
	return toTemplateResponse(entity.DefaultTemplate(dt)), nil
}

// AvailableFields returns the grouped field catalog the template editor shows
// for a document type.
func (uc *TemplateUseCase) AvailableFields(ctx context.Context, docType string) ([]render.FieldGroup, error) {
	dt := entity.DocumentType(docType)
	if !dt.Valid() {
		return nil, domain.ErrInvalidInput
	}
	return render.AvailableFields(dt), nil
}

func (uc *TemplateUseCase) getOwned(companyID, id string) (*entity.UnifiedTemplate, error) {
	tpl, err := uc.repo.GetByID(id)
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

func fromSaveRequest(companyID string, in dto.SaveTemplateRequest) (*entity.UnifiedTemplate, error) {
	docType := entity.DocumentType(in.DocumentType)
	if !docType.Valid() {
		return nil, domain.ErrInvalidInput
	}
	tpl := &entity.UnifiedTemplate{
		CompanyID:       companyID,
		Name:            in.Name,
		DocumentType:    docType,
		IsDefault:       in.IsDefault,
		LineItemsConfig: in.LineItemsConfig,
		PageSettings:    in.PageSettings,
		Header:          in.Header,
		Footer:          in.Footer,
		FieldMappings:   in.FieldMappings,
	}
	if err := tpl.Validate(); err != nil {
		return nil, err
	}
	return tpl, nil
}

func toTemplateResponse(tpl *entity.UnifiedTemplate) *dto.TemplateResponse {
	return &dto.TemplateResponse{
		ID:              tpl.ID,
		CompanyID:       tpl.CompanyID,
		Name:            tpl.Name,
		DocumentType:    string(tpl.DocumentType),
		IsDefault:       tpl.IsDefault,
		LineItemsConfig: tpl.LineItemsConfig,
		PageSettings:    tpl.PageSettings,
		Header:          tpl.Header,
		Footer:          tpl.Footer,
		FieldMappings:   tpl.FieldMappings,
		CreatedAt:       tpl.CreatedAt,
		UpdatedAt:       tpl.UpdatedAt,
	}
}
