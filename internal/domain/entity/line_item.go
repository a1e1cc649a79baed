package entity

import "github.com/shopspring/decimal"

// LineItem is one billable/reportable row of a document.
//
// LineTotal is trusted input: the renderer never recomputes it from
// Quantity × UnitPrice. ParentLineItemID establishes a one-level-deep
// parent→sub-item tree; a sub-item whose parent cannot be resolved is
// promoted to a top-level row at layout time.
type LineItem struct {
	ID               string
	DocumentID       string
	ParentLineItemID string // empty = top-level item

	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal

	// Only rendered when the template requests the matching columns.
	CostPrice        *decimal.Decimal
	MarginPercentage *decimal.Decimal

	SortOrder int
}
