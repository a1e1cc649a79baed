package repository

import "github.com/benyoung8291/fieldflow-core-sub002/internal/domain/entity"

// TemplateRepository defines the persistence port for UnifiedTemplate.
type TemplateRepository interface {
	Create(tpl *entity.UnifiedTemplate) error
	Update(tpl *entity.UnifiedTemplate) error
	GetByID(id string) (*entity.UnifiedTemplate, error)
	// GetDefault returns the template flagged as default for the company and
	// document type, or nil when none has been configured.
	GetDefault(companyID string, docType entity.DocumentType) (*entity.UnifiedTemplate, error)
	// SetDefault flags one template as default and clears the flag from any
	// other template of the same company and document type.
	SetDefault(id, companyID string, docType entity.DocumentType) error
	ListByCompany(companyID string, docType entity.DocumentType) ([]*entity.UnifiedTemplate, error)
	Delete(id string) error
}
