package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain/entity"
	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain/repository"
)

var _ repository.CompanySettingsRepository = (*CompanySettingsRepo)(nil)

// CompanySettingsRepo implements CompanySettingsRepository over PostgreSQL.
type CompanySettingsRepo struct {
	pool *pgxpool.Pool
}

// NewCompanySettingsRepository builds the persistence adapter for settings.
func NewCompanySettingsRepository(pool *pgxpool.Pool) *CompanySettingsRepo {
	return &CompanySettingsRepo{pool: pool}
}

// GetByCompanyID returns the settings row for a company, or nil when the
// company has not configured any yet.
func (r *CompanySettingsRepo) GetByCompanyID(companyID string) (*entity.CompanySettings, error) {
	query := `
		SELECT id, company_id, name, logo, COALESCE(logo_format, ''), address,
		       COALESCE(phone, ''), COALESCE(email, ''), COALESCE(website, ''), COALESCE(abn, ''),
		       COALESCE(bank_name, ''), COALESCE(bank_bsb, ''), COALESCE(bank_account_number, ''), COALESCE(bank_account_name, ''),
		       created_at, updated_at
		FROM company_settings WHERE company_id = $1`
	var s entity.CompanySettings
	var address []byte
	err := r.pool.QueryRow(context.Background(), query, companyID).Scan(
		&s.ID, &s.CompanyID, &s.Name, &s.Logo, &s.LogoFormat, &address,
		&s.Phone, &s.Email, &s.Website, &s.ABN,
		&s.BankName, &s.BankBSB, &s.BankAccountNumber, &s.BankAccountName,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company settings: %w", err)
	}
	if err := unmarshalJSONB(address, &s.Address); err != nil {
		return nil, fmt.Errorf("decode settings address: %w", err)
	}
	return &s, nil
}

// Upsert inserts or replaces the settings row for a company.
func (r *CompanySettingsRepo) Upsert(settings *entity.CompanySettings) error {
	if settings.ID == "" {
		settings.ID = uuid.New().String()
	}
	now := time.Now()
	if settings.CreatedAt.IsZero() {
		settings.CreatedAt = now
	}
	settings.UpdatedAt = now

	address, err := marshalJSONB(settings.Address, settings.Address.IsZero())
	if err != nil {
		return err
	}
	query := `
		INSERT INTO company_settings (id, company_id, name, logo, logo_format, address, phone, email, website, abn,
		                              bank_name, bank_bsb, bank_account_number, bank_account_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (company_id) DO UPDATE SET
			name = EXCLUDED.name, logo = EXCLUDED.logo, logo_format = EXCLUDED.logo_format,
			address = EXCLUDED.address, phone = EXCLUDED.phone, email = EXCLUDED.email,
			website = EXCLUDED.website, abn = EXCLUDED.abn,
			bank_name = EXCLUDED.bank_name, bank_bsb = EXCLUDED.bank_bsb,
			bank_account_number = EXCLUDED.bank_account_number, bank_account_name = EXCLUDED.bank_account_name,
			updated_at = EXCLUDED.updated_at`
	_, err = r.pool.Exec(context.Background(), query,
		settings.ID, settings.CompanyID, settings.Name, settings.Logo, nullIfEmpty(settings.LogoFormat), address,
		nullIfEmpty(settings.Phone), nullIfEmpty(settings.Email), nullIfEmpty(settings.Website), nullIfEmpty(settings.ABN),
		nullIfEmpty(settings.BankName), nullIfEmpty(settings.BankBSB), nullIfEmpty(settings.BankAccountNumber), nullIfEmpty(settings.BankAccountName),
		settings.CreatedAt, settings.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert company settings: %w", err)
	}
	return nil
}
