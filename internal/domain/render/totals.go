package render

import (
	"fmt"
	"strings"

	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// TotalLine is one row of the totals block.
type TotalLine struct {
	Label    string
	Value    string
	Emphasis bool // grand total / balance due
}

// BuildTotalsLines computes the totals block: subtotal, a discount line only
// when discount_amount > 0, the GST line labeled with the derived rate, and
// the emphasized grand total. Invoices with a recorded payment additionally
// show amount paid and an emphasized balance due. All money goes through the
// shared currency formatting.
func BuildTotalsLines(doc *entity.DocumentData) []TotalLine {
	lines := []TotalLine{
		{Label: "Subtotal", Value: FormatValue(doc.Subtotal, FormatCurrency)},
	}
	if doc.DiscountAmount.IsPositive() {
		lines = append(lines, TotalLine{
			Label: "Discount",
			Value: "-" + FormatValue(doc.DiscountAmount, FormatCurrency),
		})
	}
	lines = append(lines,
		TotalLine{Label: taxLabel(doc), Value: FormatValue(doc.TaxAmount, FormatCurrency)},
		TotalLine{Label: "Total (Inc. GST)", Value: FormatValue(doc.Total, FormatCurrency), Emphasis: true},
	)

	if doc.Type == entity.DocumentTypeInvoice && doc.AmountPaid != nil && doc.AmountPaid.IsPositive() {
		lines = append(lines, TotalLine{
			Label: "Amount Paid",
			Value: FormatValue(doc.AmountPaid, FormatCurrency),
		})
		balance := doc.BalanceDue
		if balance == nil {
			b := doc.Total.Sub(*doc.AmountPaid)
			balance = &b
		}
		lines = append(lines, TotalLine{
			Label:    "Balance Due",
			Value:    FormatValue(balance, FormatCurrency),
			Emphasis: true,
		})
	}
	return lines
}

// taxLabel derives the GST rate from tax_amount over the taxed base
// (subtotal − discount). DocumentData carries no explicit rate field; when
// the base is zero the label is plain "GST".
func taxLabel(doc *entity.DocumentData) string {
	base := doc.Subtotal.Sub(doc.DiscountAmount)
	if !base.IsPositive() {
		return "GST"
	}
	rate := doc.TaxAmount.Div(base).Mul(decimal.NewFromInt(100)).Round(1)
	s := rate.StringFixed(1)
	s = strings.TrimSuffix(s, ".0")
	return fmt.Sprintf("GST (%s%%)", s)
}
