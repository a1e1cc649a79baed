package render_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain/entity"
	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain/render"
)

func totalsDoc(docType entity.DocumentType, subtotal, tax, discount, total int64) *entity.DocumentData {
	return &entity.DocumentData{
		Type:           docType,
		Subtotal:       decimal.NewFromInt(subtotal),
		TaxAmount:      decimal.NewFromInt(tax),
		DiscountAmount: decimal.NewFromInt(discount),
		Total:          decimal.NewFromInt(total),
	}
}

func TestBuildTotalsLinesQuote(t *testing.T) {
	lines := render.BuildTotalsLines(totalsDoc(entity.DocumentTypeQuote, 1000, 100, 0, 1100))

	require.Len(t, lines, 3, "no discount line when discount is zero")
	assert.Equal(t, render.TotalLine{Label: "Subtotal", Value: "$1,000.00"}, lines[0])
	assert.Equal(t, render.TotalLine{Label: "GST (10%)", Value: "$100.00"}, lines[1])
	assert.Equal(t, render.TotalLine{Label: "Total (Inc. GST)", Value: "$1,100.00", Emphasis: true}, lines[2])
}

func TestBuildTotalsLinesWithDiscount(t *testing.T) {
	lines := render.BuildTotalsLines(totalsDoc(entity.DocumentTypeQuote, 1000, 90, 100, 990))

	require.Len(t, lines, 4)
	assert.Equal(t, render.TotalLine{Label: "Discount", Value: "-$100.00"}, lines[1])
	// Rate derives from the discounted base: 90 / (1000 - 100) = 10%.
	assert.Equal(t, "GST (10%)", lines[2].Label)
}

func TestBuildTotalsLinesFractionalRate(t *testing.T) {
	lines := render.BuildTotalsLines(totalsDoc(entity.DocumentTypeQuote, 200, 15, 0, 215))
	assert.Equal(t, "GST (7.5%)", lines[1].Label)
}

func TestBuildTotalsLinesZeroBase(t *testing.T) {
	lines := render.BuildTotalsLines(totalsDoc(entity.DocumentTypeQuote, 0, 0, 0, 0))
	assert.Equal(t, "GST", lines[1].Label, "no rate is derivable from a zero base")
	assert.Equal(t, "$0.00", lines[1].Value)
}

func TestBuildTotalsLinesInvoicePayment(t *testing.T) {
	paid := decimal.NewFromInt(500)
	doc := totalsDoc(entity.DocumentTypeInvoice, 1000, 100, 0, 1100)
	doc.AmountPaid = &paid

	lines := render.BuildTotalsLines(doc)
	require.Len(t, lines, 5)
	assert.Equal(t, render.TotalLine{Label: "Amount Paid", Value: "$500.00"}, lines[3])
	// Balance is computed from total − amount paid when not supplied.
	assert.Equal(t, render.TotalLine{Label: "Balance Due", Value: "$600.00", Emphasis: true}, lines[4])
}

func TestBuildTotalsLinesInvoiceExplicitBalance(t *testing.T) {
	paid := decimal.NewFromInt(500)
	balance := decimal.NewFromInt(612)
	doc := totalsDoc(entity.DocumentTypeInvoice, 1000, 100, 0, 1100)
	doc.AmountPaid = &paid
	doc.BalanceDue = &balance

	lines := render.BuildTotalsLines(doc)
	assert.Equal(t, "$612.00", lines[len(lines)-1].Value, "a stored balance is trusted, not recomputed")
}

// The renderer never recomputes stored amounts, so the fixtures themselves
// must be arithmetically consistent: Σ line_total = subtotal and
// subtotal - discount + tax = total.
func TestQuoteFixtureTotalsConsistent(t *testing.T) {
	doc := totalsDoc(entity.DocumentTypeQuote, 1000, 90, 100, 990)
	items := []*entity.LineItem{
		{Description: "Labour", Quantity: decimal.NewFromInt(4), UnitPrice: decimal.NewFromInt(150), LineTotal: decimal.NewFromInt(600)},
		{Description: "Parts", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(200), LineTotal: decimal.NewFromInt(400)},
	}

	sum := decimal.Zero
	for _, it := range items {
		assert.True(t, it.Quantity.Mul(it.UnitPrice).Equal(it.LineTotal), "%s: line total disagrees with qty × unit price", it.Description)
		sum = sum.Add(it.LineTotal)
	}
	assert.True(t, sum.Equal(doc.Subtotal))
	assert.True(t, doc.Subtotal.Sub(doc.DiscountAmount).Add(doc.TaxAmount).Equal(doc.Total))
}

func TestBuildTotalsLinesNoPaymentRowsOutsideInvoices(t *testing.T) {
	paid := decimal.NewFromInt(500)
	doc := totalsDoc(entity.DocumentTypeQuote, 1000, 100, 0, 1100)
	doc.AmountPaid = &paid

	lines := render.BuildTotalsLines(doc)
	assert.Len(t, lines, 3, "payment rows are invoice-only")
}
