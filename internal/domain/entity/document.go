package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType selects which visual composition and field-mapping section
// applies when rendering a document.
type DocumentType string

const (
	DocumentTypeQuote         DocumentType = "quote"
	DocumentTypeInvoice       DocumentType = "invoice"
	DocumentTypePurchaseOrder DocumentType = "purchase_order"
	DocumentTypeFieldReport   DocumentType = "field_report"
)

// Valid reports whether t is one of the four known document types.
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentTypeQuote, DocumentTypeInvoice, DocumentTypePurchaseOrder, DocumentTypeFieldReport:
		return true
	}
	return false
}

// AddressParts holds a postal address split into components. Rendering joins
// the non-empty parts; an all-empty address displays as nothing.
type AddressParts struct {
	Line1    string `json:"line1,omitempty"`
	Line2    string `json:"line2,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	Postcode string `json:"postcode,omitempty"`
	Country  string `json:"country,omitempty"`
}

// Join returns the non-empty address components separated by ", ".
func (a AddressParts) Join() string {
	parts := make([]string, 0, 6)
	for _, p := range []string{a.Line1, a.Line2, a.City, a.State, a.Postcode, a.Country} {
		if s := strings.TrimSpace(p); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// IsZero reports whether every component of the address is empty.
func (a AddressParts) IsZero() bool {
	return a.Join() == ""
}

// PartySnapshot is an inlined copy of a customer or supplier taken when the
// document was assembled. It is immutable at render time; the renderer never
// follows foreign keys.
type PartySnapshot struct {
	Name        string       `json:"name"`
	ContactName string       `json:"contact_name,omitempty"`
	Email       string       `json:"email,omitempty"`
	Phone       string       `json:"phone,omitempty"`
	Address     AddressParts `json:"address,omitempty"`
}

// LocationSnapshot is an inlined copy of a site/location reference.
type LocationSnapshot struct {
	Name    string       `json:"name"`
	Address AddressParts `json:"address,omitempty"`
}

// SourceRef links a document back to the service order or project it was
// raised from. Only the display fields are snapshotted.
type SourceRef struct {
	Number string `json:"number"`
	Title  string `json:"title,omitempty"`
}

// DocumentData is the normalized, type-agnostic record describing one
// renderable document instance. Type-specific fields are populated only for
// the matching DocumentType and ignored otherwise.
type DocumentData struct {
	ID        string
	CompanyID string
	Type      DocumentType

	Number string
	Date   time.Time
	Status string

	Notes           string
	TermsConditions string

	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal

	// Quote
	Title      string
	ValidUntil *time.Time

	// Invoice
	DueDate      *time.Time
	PaymentTerms string
	AmountPaid   *decimal.Decimal
	BalanceDue   *decimal.Decimal

	// Purchase order
	DeliveryDate    *time.Time
	ShippingAddress AddressParts

	// Field report
	SiteLocation    string
	TechnicianName  string
	ServiceDate     *time.Time
	Findings        string
	Recommendations string

	Customer           *PartySnapshot
	Supplier           *PartySnapshot
	Location           *LocationSnapshot
	SourceServiceOrder *SourceRef
	SourceProject      *SourceRef

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasSourceReference reports whether the document links back to a service
// order or project. The "Reference Details" region renders only when true.
func (d *DocumentData) HasSourceReference() bool {
	return (d.SourceServiceOrder != nil && d.SourceServiceOrder.Number != "") ||
		(d.SourceProject != nil && d.SourceProject.Number != "")
}
