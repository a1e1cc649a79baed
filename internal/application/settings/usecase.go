package settings

import (
	"context"

	"github.com/benyoung8291/fieldflow-core-sub002/internal/application/dto"
	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain"
	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain/entity"
	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain/repository"
)

// SettingsUseCase reads and writes a company's letterhead settings.
type SettingsUseCase struct {
	repo repository.CompanySettingsRepository
}

// NewSettingsUseCase builds the use case.
func NewSettingsUseCase(repo repository.CompanySettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{repo: repo}
}

// Get returns the company's settings or ErrNotFound when none exist yet.
func (uc *SettingsUseCase) Get(ctx context.Context, companyID string) (*dto.CompanySettingsResponse, error) {
	s, err := uc.repo.GetByCompanyID(companyID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return toSettingsResponse(s), nil
}

// Save creates or replaces the company's settings.
func (uc *SettingsUseCase) Save(ctx context.Context, companyID string, in dto.SaveCompanySettingsRequest) (*dto.CompanySettingsResponse, error) {
	if len(in.Logo) > 0 && in.LogoFormat == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCompanyID(companyID)
	if err != nil {
		return nil, err
	}
	s := &entity.CompanySettings{
		CompanyID:  companyID,
		Name:       in.Name,
		Logo:       in.Logo,
		LogoFormat: in.LogoFormat,
		Address:    in.Address,
		Phone:      in.Phone,
		Email:      in.Email,
		Website:    in.Website,
		ABN:        in.ABN,

		BankName:          in.BankName,
		BankBSB:           in.BankBSB,
		BankAccountNumber: in.BankAccountNumber,
		BankAccountName:   in.BankAccountName,
	}
	if existing != nil {
		s.ID = existing.ID
		s.CreatedAt = existing.CreatedAt
	}
	if err := uc.repo.Upsert(s); err != nil {
		return nil, err
	}
	return toSettingsResponse(s), nil
}

func toSettingsResponse(s *entity.CompanySettings) *dto.CompanySettingsResponse {
	return &dto.CompanySettingsResponse{
		ID:         s.ID,
		CompanyID:  s.CompanyID,
		Name:       s.Name,
		HasLogo:    s.HasLogo(),
		LogoFormat: s.LogoFormat,
		Address:    s.Address,
		Phone:      s.Phone,
		Email:      s.Email,
		Website:    s.Website,
		ABN:        s.ABN,

		BankName:          s.BankName,
		BankBSB:           s.BankBSB,
		BankAccountNumber: s.BankAccountNumber,
		BankAccountName:   s.BankAccountName,

		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
