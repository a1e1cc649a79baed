package entity

import "time"

// CompanySettings holds the rendering tenant's letterhead data. Every field
// besides Name is optional; absent fields render as nothing.
type CompanySettings struct {
	ID        string
	CompanyID string

	Name       string
	Logo       []byte // raw image bytes, empty = no logo on documents
	LogoFormat string // "png" or "jpg"
	Address    AddressParts
	Phone      string
	Email      string
	Website    string
	ABN        string

	// Bank details shown in the invoice "Payment Details" block.
	BankName          string
	BankBSB           string
	BankAccountNumber string
	BankAccountName   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasBankDetails reports whether any bank-detail field is populated. Invoices
// render the "Payment Details" region only when true.
func (c *CompanySettings) HasBankDetails() bool {
	return c.BankName != "" || c.BankBSB != "" || c.BankAccountNumber != "" || c.BankAccountName != ""
}

// HasLogo reports whether letterhead logo bytes are available.
func (c *CompanySettings) HasLogo() bool {
	return len(c.Logo) > 0
}
