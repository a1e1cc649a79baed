package repository

import "github.com/benyoung8291/fieldflow-core-sub002/internal/domain/entity"

// CompanySettingsRepository defines the persistence port for CompanySettings.
// Each company has at most one settings row.
type CompanySettingsRepository interface {
	// GetByCompanyID returns nil when the company has no settings row yet.
	GetByCompanyID(companyID string) (*entity.CompanySettings, error)
	Upsert(settings *entity.CompanySettings) error
}
