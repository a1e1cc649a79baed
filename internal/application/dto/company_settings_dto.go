package dto

import (
	"time"

	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain/entity"
)

// SaveCompanySettingsRequest input to create or replace the letterhead
// settings of a company. Logo is base64 in JSON ([]byte marshals that way).
type SaveCompanySettingsRequest struct {
	Name       string              `json:"name" validate:"required,max=200"`
	Logo       []byte              `json:"logo,omitempty"`
	LogoFormat string              `json:"logo_format" validate:"omitempty,oneof=png jpg"`
	Address    entity.AddressParts `json:"address,omitempty"`
	Phone      string              `json:"phone,omitempty" validate:"omitempty,max=50"`
	Email      string              `json:"email,omitempty" validate:"omitempty,email"`
	Website    string              `json:"website,omitempty" validate:"omitempty,max=200"`
	ABN        string              `json:"abn,omitempty" validate:"omitempty,max=20"`

	BankName          string `json:"bank_name,omitempty" validate:"omitempty,max=100"`
	BankBSB           string `json:"bank_bsb,omitempty" validate:"omitempty,max=10"`
	BankAccountNumber string `json:"bank_account_number,omitempty" validate:"omitempty,max=20"`
	BankAccountName   string `json:"bank_account_name,omitempty" validate:"omitempty,max=200"`
}

// CompanySettingsResponse settings output.
type CompanySettingsResponse struct {
	ID         string              `json:"id"`
	CompanyID  string              `json:"company_id"`
	Name       string              `json:"name"`
	HasLogo    bool                `json:"has_logo"`
	LogoFormat string              `json:"logo_format,omitempty"`
	Address    entity.AddressParts `json:"address,omitempty"`
	Phone      string              `json:"phone,omitempty"`
	Email      string              `json:"email,omitempty"`
	Website    string              `json:"website,omitempty"`
	ABN        string              `json:"abn,omitempty"`

	BankName          string `json:"bank_name,omitempty"`
	BankBSB           string `json:"bank_bsb,omitempty"`
	BankAccountNumber string `json:"bank_account_number,omitempty"`
	BankAccountName   string `json:"bank_account_name,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
