package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain/entity"
)

// CreateDocumentRequest input to create a document with its line items.
// Monetary totals are trusted input: the caller's workflow computes them and
// this service stores and renders them as given.
type CreateDocumentRequest struct {
	Type   string    `json:"type" validate:"required,oneof=quote invoice purchase_order field_report"`
	Number string    `json:"number" validate:"required,max=50"`
	Date   time.Time `json:"date" validate:"required"`
	Status string    `json:"status" validate:"omitempty,max=50"`

	Notes           string `json:"notes,omitempty"`
	TermsConditions string `json:"terms_conditions,omitempty"`

	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Total          decimal.Decimal `json:"total"`

	// Quote
	Title      string     `json:"title,omitempty"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`

	// Invoice
	DueDate      *time.Time       `json:"due_date,omitempty"`
	PaymentTerms string           `json:"payment_terms,omitempty"`
	AmountPaid   *decimal.Decimal `json:"amount_paid,omitempty"`
	BalanceDue   *decimal.Decimal `json:"balance_due,omitempty"`

	// Purchase order
	DeliveryDate    *time.Time          `json:"delivery_date,omitempty"`
	ShippingAddress entity.AddressParts `json:"shipping_address,omitempty"`

	// Field report
	SiteLocation    string     `json:"site_location,omitempty"`
	TechnicianName  string     `json:"technician_name,omitempty"`
	ServiceDate     *time.Time `json:"service_date,omitempty"`
	Findings        string     `json:"findings,omitempty"`
	Recommendations string     `json:"recommendations,omitempty"`

	Customer           *entity.PartySnapshot    `json:"customer,omitempty"`
	Supplier           *entity.PartySnapshot    `json:"supplier,omitempty"`
	Location           *entity.LocationSnapshot `json:"location,omitempty"`
	SourceServiceOrder *entity.SourceRef        `json:"source_service_order,omitempty"`
	SourceProject      *entity.SourceRef        `json:"source_project,omitempty"`

	LineItems []LineItemRequest `json:"line_items" validate:"dive"`
}

// LineItemRequest one line of a document. ParentID references another line by
// its position key (client-side ID) or persisted ID; empty means top-level.
type LineItemRequest struct {
	ID          string          `json:"id,omitempty"`
	ParentID    string          `json:"parent_id,omitempty"`
	Description string          `json:"description" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`

	CostPrice        *decimal.Decimal `json:"cost_price,omitempty"`
	MarginPercentage *decimal.Decimal `json:"margin_percentage,omitempty"`

	SortOrder int `json:"sort_order"`
}

// DocumentResponse document output.
type DocumentResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Type      string    `json:"type"`
	Number    string    `json:"number"`
	Date      time.Time `json:"date"`
	Status    string    `json:"status"`

	Notes           string `json:"notes,omitempty"`
	TermsConditions string `json:"terms_conditions,omitempty"`

	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Total          decimal.Decimal `json:"total"`

	Title      string     `json:"title,omitempty"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`

	DueDate      *time.Time       `json:"due_date,omitempty"`
	PaymentTerms string           `json:"payment_terms,omitempty"`
	AmountPaid   *decimal.Decimal `json:"amount_paid,omitempty"`
	BalanceDue   *decimal.Decimal `json:"balance_due,omitempty"`

	DeliveryDate    *time.Time          `json:"delivery_date,omitempty"`
	ShippingAddress entity.AddressParts `json:"shipping_address,omitempty"`

	SiteLocation    string     `json:"site_location,omitempty"`
	TechnicianName  string     `json:"technician_name,omitempty"`
	ServiceDate     *time.Time `json:"service_date,omitempty"`
	Findings        string     `json:"findings,omitempty"`
	Recommendations string     `json:"recommendations,omitempty"`

	Customer           *entity.PartySnapshot    `json:"customer,omitempty"`
	Supplier           *entity.PartySnapshot    `json:"supplier,omitempty"`
	Location           *entity.LocationSnapshot `json:"location,omitempty"`
	SourceServiceOrder *entity.SourceRef        `json:"source_service_order,omitempty"`
	SourceProject      *entity.SourceRef        `json:"source_project,omitempty"`

	LineItems []LineItemResponse `json:"line_items,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LineItemResponse one persisted line of a document.
type LineItemResponse struct {
	ID               string           `json:"id"`
	ParentID         string           `json:"parent_id,omitempty"`
	Description      string           `json:"description"`
	Quantity         decimal.Decimal  `json:"quantity"`
	UnitPrice        decimal.Decimal  `json:"unit_price"`
	LineTotal        decimal.Decimal  `json:"line_total"`
	CostPrice        *decimal.Decimal `json:"cost_price,omitempty"`
	MarginPercentage *decimal.Decimal `json:"margin_percentage,omitempty"`
	SortOrder        int              `json:"sort_order"`
}
