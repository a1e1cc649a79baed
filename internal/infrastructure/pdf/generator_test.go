package pdf_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benyoung8291/fieldflow-core-sub002/internal/application/documents"
	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain/entity"
	"github.com/benyoung8291/fieldflow-core-sub002/internal/infrastructure/pdf"
)

func frozenClock() func() time.Time {
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func renderRequest(docType entity.DocumentType) documents.GenerateRequest {
	due := time.Date(2026, 4, 9, 0, 0, 0, 0, time.UTC)
	doc := &entity.DocumentData{
		Type:      docType,
		Number:    "DOC-2026-001",
		Date:      time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		Status:    "sent",
		Subtotal:  decimal.NewFromInt(1000),
		TaxAmount: decimal.NewFromInt(100),
		Total:     decimal.NewFromInt(1100),
		Notes:     "Thanks for your business, {{customer.name}}.",
		DueDate:   &due,
		Customer: &entity.PartySnapshot{
			Name:    "Acme Electrical",
			Email:   "accounts@acme.example",
			Address: entity.AddressParts{Line1: "12 Wharf St", City: "Brisbane", State: "QLD"},
		},
		SiteLocation:   "Bowen Hills substation",
		TechnicianName: "R. Patel",
		Findings:       "Corroded terminals on phase B.",
	}
	items := []*entity.LineItem{
		{
			ID: "a", Description: "Install switchboard",
			Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(800), LineTotal: decimal.NewFromInt(800),
		},
		{
			ID: "a1", ParentLineItemID: "a", Description: "Circuit breakers",
			Quantity: decimal.NewFromInt(6), UnitPrice: decimal.NewFromInt(25), LineTotal: decimal.NewFromInt(150),
		},
		{
			ID: "b", Description: "Site inspection",
			Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(120), LineTotal: decimal.NewFromInt(120),
		},
	}
	return documents.GenerateRequest{
		Template:     entity.DefaultTemplate(docType),
		Document:     doc,
		LineItems:    items,
		Company:      &entity.CompanySettings{Name: "FieldFlow Services Pty Ltd", ABN: "51 824 753 556"},
		DocumentType: docType,
	}
}

func TestGenerateUnifiedPDFAllDocumentTypes(t *testing.T) {
	g := pdf.NewGenerator(pdf.WithClock(frozenClock()))
	for _, docType := range []entity.DocumentType{
		entity.DocumentTypeQuote,
		entity.DocumentTypeInvoice,
		entity.DocumentTypePurchaseOrder,
		entity.DocumentTypeFieldReport,
	} {
		out, err := g.GenerateUnifiedPDF(context.Background(), renderRequest(docType))
		require.NoError(t, err, "render for %s", docType)
		require.NotEmpty(t, out)
		assert.Equal(t, "%PDF-", string(out[:5]), "output for %s must be a PDF", docType)
	}
}

func TestGenerateUnifiedPDFInvoicePaymentDetails(t *testing.T) {
	g := pdf.NewGenerator(pdf.WithClock(frozenClock()))

	// The shared fixture company carries no bank details, so the first
	// render has no payment-details region at all.
	plain := renderRequest(entity.DocumentTypeInvoice)
	require.False(t, plain.Company.HasBankDetails())

	banked := renderRequest(entity.DocumentTypeInvoice)
	banked.Company.BankName = "Commonwealth Bank"
	banked.Company.BankBSB = "062-000"
	banked.Company.BankAccountNumber = "1234 5678"
	banked.Company.BankAccountName = "FieldFlow Services Pty Ltd"
	require.True(t, banked.Company.HasBankDetails())

	without, err := g.GenerateUnifiedPDF(context.Background(), plain)
	require.NoError(t, err)
	with, err := g.GenerateUnifiedPDF(context.Background(), banked)
	require.NoError(t, err)

	assert.Equal(t, "%PDF-", string(with[:5]))
	assert.NotEqual(t, without, with, "bank details must add a payment-details region to the invoice")
}

func TestGenerateUnifiedPDFDeterministicWithFrozenClock(t *testing.T) {
	g := pdf.NewGenerator(pdf.WithClock(frozenClock()))

	first, err := g.GenerateUnifiedPDF(context.Background(), renderRequest(entity.DocumentTypeInvoice))
	require.NoError(t, err)
	second, err := g.GenerateUnifiedPDF(context.Background(), renderRequest(entity.DocumentTypeInvoice))
	require.NoError(t, err)

	assert.Equal(t, first, second, "same input and clock must produce identical bytes")
}

func TestGenerateUnifiedPDFMinimalDocument(t *testing.T) {
	// The sparsest possible request: empty document, no items, no company.
	g := pdf.NewGenerator(pdf.WithClock(frozenClock()))
	out, err := g.GenerateUnifiedPDF(context.Background(), documents.GenerateRequest{
		Template:     entity.DefaultTemplate(entity.DocumentTypeFieldReport),
		DocumentType: entity.DocumentTypeFieldReport,
	})
	require.NoError(t, err, "missing data renders blank regions, never errors")
	assert.Equal(t, "%PDF-", string(out[:5]))
}

func TestGenerateUnifiedPDFInvalidTemplate(t *testing.T) {
	g := pdf.NewGenerator(pdf.WithClock(frozenClock()))

	req := renderRequest(entity.DocumentTypeQuote)
	req.Template.PageSettings = nil
	_, err := g.GenerateUnifiedPDF(context.Background(), req)
	assert.ErrorIs(t, err, entity.ErrInvalidTemplate)

	req = renderRequest(entity.DocumentTypeQuote)
	req.Template.LineItemsConfig.Columns = nil
	_, err = g.GenerateUnifiedPDF(context.Background(), req)
	assert.ErrorIs(t, err, entity.ErrInvalidTemplate)
}

func TestGenerateUnifiedPDFUnknownTypeFallsBackToQuote(t *testing.T) {
	g := pdf.NewGenerator(pdf.WithClock(frozenClock()))

	req := renderRequest(entity.DocumentTypeQuote)
	req.DocumentType = entity.DocumentType("memo")
	req.Document.Type = entity.DocumentType("memo")

	out, err := g.GenerateUnifiedPDF(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(out[:5]))
}

func TestGenerateUnifiedPDFTitleOverrideAndFooter(t *testing.T) {
	g := pdf.NewGenerator(pdf.WithClock(frozenClock()))

	req := renderRequest(entity.DocumentTypeQuote)
	req.Template.Header = &entity.HeaderConfig{ShowLogo: false, TitleOverride: "ESTIMATE"}
	req.Template.Footer = &entity.FooterConfig{Text: "{{company.name}} | {{document.number}}"}

	out, err := g.GenerateUnifiedPDF(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(out[:5]))
}
