package repository

import "github.com/benyoung8291/fieldflow-core-sub002/internal/domain/entity"

// DocumentRepository defines the persistence port for DocumentData and its
// line items (DIP).
type DocumentRepository interface {
	Create(doc *entity.DocumentData, items []*entity.LineItem) error
	GetByID(id string) (*entity.DocumentData, error)
	GetLineItems(documentID string) ([]*entity.LineItem, error)
	ListByCompany(companyID string, docType entity.DocumentType, limit, offset int) ([]*entity.DocumentData, error)
	Update(doc *entity.DocumentData) error
	Delete(id string) error
}
