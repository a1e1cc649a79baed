package render_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain/entity"
	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain/render"
)

// ──────────────────────────────────────────────────────────────────────────────
// FormatValue
// ──────────────────────────────────────────────────────────────────────────────

func TestFormatValueCurrency(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"grouped two decimals", decimal.NewFromFloat(1234.5), "$1,234.50"},
		{"zero", decimal.Zero, "$0.00"},
		{"negative sign before symbol", decimal.NewFromFloat(-50), "-$50.00"},
		{"float input", 99.9, "$99.90"},
		{"string with symbol and commas", "$1,234.50", "$1,234.50"},
		{"nil renders empty", nil, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, render.FormatValue(tc.in, render.FormatCurrency))
		})
	}
}

func TestFormatValueNumberKeepsOwnDecimals(t *testing.T) {
	assert.Equal(t, "3", render.FormatValue(decimal.NewFromInt(3), render.FormatNumber))
	assert.Equal(t, "2.5", render.FormatValue(decimal.RequireFromString("2.5"), render.FormatNumber))
	assert.Equal(t, "1,200", render.FormatValue(decimal.NewFromInt(1200), render.FormatNumber))
}

func TestFormatValuePercentage(t *testing.T) {
	assert.Equal(t, "17.5%", render.FormatValue(decimal.RequireFromString("17.5"), render.FormatPercentage))
	assert.Equal(t, "10.0%", render.FormatValue(decimal.NewFromInt(10), render.FormatPercentage))
}

func TestFormatValueDates(t *testing.T) {
	d := time.Date(2026, 3, 9, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "09/03/2026", render.FormatValue(d, render.FormatDate))
	assert.Equal(t, "9 March 2026", render.FormatValue(d, render.FormatDateLong))

	// ISO strings are parsed, garbage falls back to the raw string.
	assert.Equal(t, "09/03/2026", render.FormatValue("2026-03-09", render.FormatDate))
	assert.Equal(t, "not a date", render.FormatValue("not a date", render.FormatDate))
}

func TestFormatValueNilAndUnknownKind(t *testing.T) {
	var nilTime *time.Time
	var nilDec *decimal.Decimal
	assert.Equal(t, "", render.FormatValue(nilTime, render.FormatDate))
	assert.Equal(t, "", render.FormatValue(nilDec, render.FormatCurrency))

	// Unknown kinds fall through to text.
	assert.Equal(t, "hello", render.FormatValue("hello", render.Format("mystery")))
}

// ──────────────────────────────────────────────────────────────────────────────
// GetNestedValue
// ──────────────────────────────────────────────────────────────────────────────

func TestGetNestedValueTraversesStructsAndMaps(t *testing.T) {
	doc := &entity.DocumentData{
		Customer: &entity.PartySnapshot{
			Name:    "Acme Electrical",
			Address: entity.AddressParts{City: "Brisbane", State: "QLD"},
		},
	}
	bag := map[string]any{"document": doc, "customer": doc.Customer}

	v, ok := render.GetNestedValue(bag, "customer.name")
	require.True(t, ok)
	assert.Equal(t, "Acme Electrical", v)

	// json tag name and case-insensitive field name both resolve
	v, ok = render.GetNestedValue(bag, "customer.address.city")
	require.True(t, ok)
	assert.Equal(t, "Brisbane", v)

	v, ok = render.GetNestedValue(bag, "document.Customer.Address.State")
	require.True(t, ok)
	assert.Equal(t, "QLD", v)
}

func TestGetNestedValueAbsentPaths(t *testing.T) {
	doc := &entity.DocumentData{}
	bag := map[string]any{"document": doc, "customer": doc.Customer}

	_, ok := render.GetNestedValue(bag, "customer.name") // nil snapshot
	assert.False(t, ok)
	_, ok = render.GetNestedValue(bag, "document.no_such_field")
	assert.False(t, ok)
	_, ok = render.GetNestedValue(bag, "document.number.deeper") // non-container
	assert.False(t, ok)
	_, ok = render.GetNestedValue(bag, "")
	assert.False(t, ok)
}

// ──────────────────────────────────────────────────────────────────────────────
// ReplacePlaceholders
// ──────────────────────────────────────────────────────────────────────────────

func TestReplacePlaceholders(t *testing.T) {
	m := render.FieldMapping{
		"customer.name": "Acme Electrical",
		"totals.total":  "$1,100.00",
	}

	out := render.ReplacePlaceholders("Dear {{customer.name}}, total {{totals.total}}.", m)
	assert.Equal(t, "Dear Acme Electrical, total $1,100.00.", out)

	// Unresolvable paths substitute to empty.
	assert.Equal(t, "Hello !", render.ReplacePlaceholders("Hello {{nobody}}!", m))

	// Format modifier re-formats the mapped display string.
	out = render.ReplacePlaceholders("Amount: {{totals.total|currency}}", m)
	assert.Equal(t, "Amount: $1,100.00", out)

	// No placeholders: text passes through untouched.
	assert.Equal(t, "plain text", render.ReplacePlaceholders("plain text", m))
}

func TestReplacePlaceholdersMalformedTokens(t *testing.T) {
	m := render.FieldMapping{"b": "X"}

	// An unclosed token is left as plain text.
	assert.Equal(t, "tail {{open", render.ReplacePlaceholders("tail {{open", m))

	// Nested braces emit the opening braces literally and rescan.
	assert.Equal(t, "{{aX", render.ReplacePlaceholders("{{a{{b}}", m))
}

// ──────────────────────────────────────────────────────────────────────────────
// BuildDataMapping / AvailableFields
// ──────────────────────────────────────────────────────────────────────────────

func testDocument(docType entity.DocumentType) *entity.DocumentData {
	valid := time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)
	return &entity.DocumentData{
		Type:       docType,
		Number:     "Q-2026-042",
		Date:       time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		Status:     "sent",
		Subtotal:   decimal.NewFromInt(1000),
		TaxAmount:  decimal.NewFromInt(100),
		Total:      decimal.NewFromInt(1100),
		Title:      "Switchboard upgrade",
		ValidUntil: &valid,
		Customer: &entity.PartySnapshot{
			Name:  "Acme Electrical",
			Email: "accounts@acme.example",
			Address: entity.AddressParts{
				Line1: "12 Wharf St", City: "Brisbane", State: "QLD", Postcode: "4000",
			},
		},
		SourceServiceOrder: &entity.SourceRef{Number: "SO-881"},
	}
}

func testCompany() *entity.CompanySettings {
	return &entity.CompanySettings{
		Name: "FieldFlow Services Pty Ltd",
		ABN:  "51 824 753 556",
		Address: entity.AddressParts{
			Line1: "4/18 Campbell St", City: "Bowen Hills", State: "QLD", Postcode: "4006",
		},
	}
}

func TestBuildDataMappingQuote(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 5, 0, 0, time.UTC)
	m := render.BuildDataMapping(testDocument(entity.DocumentTypeQuote), testCompany(), entity.DocumentTypeQuote, now)

	assert.Equal(t, "FieldFlow Services Pty Ltd", m["company.name"])
	assert.Equal(t, "4/18 Campbell St, Bowen Hills, QLD, 4006", m["company.full_address"])
	assert.Equal(t, "Q-2026-042", m["document.number"])
	assert.Equal(t, "09/03/2026", m["document.date"])
	assert.Equal(t, "Acme Electrical", m["customer.name"])
	assert.Equal(t, "$1,000.00", m["totals.subtotal"])
	assert.Equal(t, "$1,100.00", m["totals.total"])
	assert.Equal(t, "SO-881", m["ref.service_order"])
	assert.Equal(t, "", m["ref.project"])
	assert.Equal(t, "10/03/2026", m["current.date"])
	assert.Equal(t, "10/03/2026 9:05 AM", m["current.datetime"])

	// Type-specific section
	assert.Equal(t, "Switchboard upgrade", m["quote.title"])
	assert.Equal(t, "30/04/2026", m["quote.valid_until"])
	_, hasInvoiceKeys := m["invoice.due_date"]
	assert.False(t, hasInvoiceKeys, "quote mapping must not carry invoice keys")
}

func TestBuildDataMappingNilSafety(t *testing.T) {
	m := render.BuildDataMapping(nil, nil, entity.DocumentTypeInvoice, time.Now())
	assert.Equal(t, "", m["customer.name"])
	assert.Equal(t, "", m["company.name"])
	assert.Equal(t, "$0.00", m["totals.total"])
}

// Every key of a built mapping must survive a full placeholder round-trip,
// and any key outside the mapping must resolve to "".
func TestPlaceholderRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 5, 0, 0, time.UTC)
	for _, docType := range []entity.DocumentType{
		entity.DocumentTypeQuote,
		entity.DocumentTypeInvoice,
		entity.DocumentTypePurchaseOrder,
		entity.DocumentTypeFieldReport,
	} {
		m := render.BuildDataMapping(testDocument(docType), testCompany(), docType, now)
		require.NotEmpty(t, m)
		for key, want := range m {
			assert.Equal(t, want, render.ReplacePlaceholders("{{"+key+"}}", m), "%s: key %q", docType, key)
		}
		assert.Equal(t, "", render.ReplacePlaceholders("{{no.such.key}}", m))
	}
}

func TestAvailableFieldsMatchesMappingKeys(t *testing.T) {
	now := time.Now()
	for _, docType := range []entity.DocumentType{
		entity.DocumentTypeQuote,
		entity.DocumentTypeInvoice,
		entity.DocumentTypePurchaseOrder,
		entity.DocumentTypeFieldReport,
	} {
		m := render.BuildDataMapping(testDocument(docType), testCompany(), docType, now)
		for _, group := range render.AvailableFields(docType) {
			require.NotEmpty(t, group.Category)
			for _, f := range group.Fields {
				_, ok := m[f.Path]
				assert.True(t, ok, "catalog field %q for %s must exist in the mapping", f.Path, docType)
			}
		}
	}
}

func TestAvailableFieldsTypeSections(t *testing.T) {
	categories := func(docType entity.DocumentType) []string {
		var names []string
		for _, g := range render.AvailableFields(docType) {
			names = append(names, g.Category)
		}
		return names
	}

	assert.Contains(t, categories(entity.DocumentTypeQuote), "Quote")
	assert.Contains(t, categories(entity.DocumentTypeInvoice), "Invoice")
	assert.Contains(t, categories(entity.DocumentTypePurchaseOrder), "Purchase Order")
	assert.Contains(t, categories(entity.DocumentTypeFieldReport), "Field Report")
	assert.NotContains(t, categories(entity.DocumentTypeQuote), "Invoice")
}
