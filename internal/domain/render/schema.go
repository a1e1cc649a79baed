package render

import (
	"time"

	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain/entity"
)

// fieldSource is the data bag a field extractor reads from. Doc and Company
// may carry nil snapshots; extractors must tolerate that.
type fieldSource struct {
	Doc     *entity.DocumentData
	Company *entity.CompanySettings
	Now     time.Time
}

// fieldSpec is one entry of the closed per-type field schema. The same table
// backs both BuildDataMapping and AvailableFields so the two cannot drift.
type fieldSpec struct {
	path    string
	label   string
	format  Format
	extract func(s fieldSource) any
}

// FieldDef describes one selectable field for the template editor.
type FieldDef struct {
	Path   string `json:"path"`
	Label  string `json:"label"`
	Format Format `json:"format"`
}

// FieldGroup is a category of selectable fields.
type FieldGroup struct {
	Category string     `json:"category"`
	Fields   []FieldDef `json:"fields"`
}

type fieldCategory struct {
	name  string
	specs []fieldSpec
}

// ── common schema (every document type) ──────────────────────────────────────

var companyCategory = fieldCategory{name: "Company", specs: []fieldSpec{
	{"company.name", "Company Name", FormatText, func(s fieldSource) any { return s.Company.Name }},
	{"company.abn", "ABN", FormatText, func(s fieldSource) any { return s.Company.ABN }},
	{"company.phone", "Company Phone", FormatText, func(s fieldSource) any { return s.Company.Phone }},
	{"company.email", "Company Email", FormatText, func(s fieldSource) any { return s.Company.Email }},
	{"company.website", "Company Website", FormatText, func(s fieldSource) any { return s.Company.Website }},
	{"company.full_address", "Company Address", FormatText, func(s fieldSource) any { return s.Company.Address.Join() }},
}}

var documentCategory = fieldCategory{name: "Document", specs: []fieldSpec{
	{"document.number", "Document Number", FormatText, func(s fieldSource) any { return s.Doc.Number }},
	{"document.date", "Document Date", FormatDate, func(s fieldSource) any { return s.Doc.Date }},
	{"document.status", "Status", FormatText, func(s fieldSource) any { return s.Doc.Status }},
	{"document.notes", "Notes", FormatText, func(s fieldSource) any { return s.Doc.Notes }},
	{"document.terms", "Terms & Conditions", FormatText, func(s fieldSource) any { return s.Doc.TermsConditions }},
}}

var customerCategory = fieldCategory{name: "Customer", specs: []fieldSpec{
	{"customer.name", "Customer Name", FormatText, func(s fieldSource) any { return partyField(s.Doc.Customer, func(p *entity.PartySnapshot) string { return p.Name }) }},
	{"customer.contact_name", "Customer Contact", FormatText, func(s fieldSource) any { return partyField(s.Doc.Customer, func(p *entity.PartySnapshot) string { return p.ContactName }) }},
	{"customer.email", "Customer Email", FormatText, func(s fieldSource) any { return partyField(s.Doc.Customer, func(p *entity.PartySnapshot) string { return p.Email }) }},
	{"customer.phone", "Customer Phone", FormatText, func(s fieldSource) any { return partyField(s.Doc.Customer, func(p *entity.PartySnapshot) string { return p.Phone }) }},
	{"customer.full_address", "Customer Address", FormatText, func(s fieldSource) any { return partyField(s.Doc.Customer, func(p *entity.PartySnapshot) string { return p.Address.Join() }) }},
}}

var totalsCategory = fieldCategory{name: "Totals", specs: []fieldSpec{
	{"totals.subtotal", "Subtotal", FormatCurrency, func(s fieldSource) any { return s.Doc.Subtotal }},
	{"totals.tax", "Tax Amount", FormatCurrency, func(s fieldSource) any { return s.Doc.TaxAmount }},
	{"totals.discount", "Discount", FormatCurrency, func(s fieldSource) any { return s.Doc.DiscountAmount }},
	{"totals.total", "Total", FormatCurrency, func(s fieldSource) any { return s.Doc.Total }},
}}

var referenceCategory = fieldCategory{name: "References", specs: []fieldSpec{
	{"ref.service_order", "Source Service Order", FormatText, func(s fieldSource) any { return refNumber(s.Doc.SourceServiceOrder) }},
	{"ref.project", "Source Project", FormatText, func(s fieldSource) any { return refNumber(s.Doc.SourceProject) }},
}}

var generatedCategory = fieldCategory{name: "Generated", specs: []fieldSpec{
	{"current.date", "Generation Date", FormatDate, func(s fieldSource) any { return s.Now }},
	{"current.datetime", "Generation Date & Time", FormatText, func(s fieldSource) any { return s.Now.Format(datetimePattern) }},
}}

// ── type-specific schema ─────────────────────────────────────────────────────

var quoteCategory = fieldCategory{name: "Quote", specs: []fieldSpec{
	{"quote.title", "Quote Title", FormatText, func(s fieldSource) any { return s.Doc.Title }},
	{"quote.valid_until", "Valid Until", FormatDate, func(s fieldSource) any { return s.Doc.ValidUntil }},
}}

var invoiceCategory = fieldCategory{name: "Invoice", specs: []fieldSpec{
	{"invoice.due_date", "Due Date", FormatDate, func(s fieldSource) any { return s.Doc.DueDate }},
	{"invoice.payment_terms", "Payment Terms", FormatText, func(s fieldSource) any { return s.Doc.PaymentTerms }},
	{"invoice.amount_paid", "Amount Paid", FormatCurrency, func(s fieldSource) any { return s.Doc.AmountPaid }},
	{"invoice.balance_due", "Balance Due", FormatCurrency, func(s fieldSource) any { return s.Doc.BalanceDue }},
}}

var purchaseOrderCategory = fieldCategory{name: "Purchase Order", specs: []fieldSpec{
	{"po.delivery_date", "Delivery Date", FormatDate, func(s fieldSource) any { return s.Doc.DeliveryDate }},
	{"po.shipping_address", "Shipping Address", FormatText, func(s fieldSource) any { return s.Doc.ShippingAddress.Join() }},
	{"po.supplier_name", "Supplier Name", FormatText, func(s fieldSource) any { return partyField(s.Doc.Supplier, func(p *entity.PartySnapshot) string { return p.Name }) }},
	{"po.supplier_email", "Supplier Email", FormatText, func(s fieldSource) any { return partyField(s.Doc.Supplier, func(p *entity.PartySnapshot) string { return p.Email }) }},
	{"po.supplier_full_address", "Supplier Address", FormatText, func(s fieldSource) any { return partyField(s.Doc.Supplier, func(p *entity.PartySnapshot) string { return p.Address.Join() }) }},
}}

var fieldReportCategory = fieldCategory{name: "Field Report", specs: []fieldSpec{
	{"report.site_location", "Site Location", FormatText, func(s fieldSource) any { return s.Doc.SiteLocation }},
	{"report.technician_name", "Technician", FormatText, func(s fieldSource) any { return s.Doc.TechnicianName }},
	{"report.service_date", "Service Date", FormatDate, func(s fieldSource) any { return s.Doc.ServiceDate }},
	{"report.findings", "Findings", FormatText, func(s fieldSource) any { return s.Doc.Findings }},
	{"report.recommendations", "Recommendations", FormatText, func(s fieldSource) any { return s.Doc.Recommendations }},
}}

var commonCategories = []fieldCategory{
	companyCategory, documentCategory, customerCategory,
	totalsCategory, referenceCategory, generatedCategory,
}

var typeCategories = map[entity.DocumentType]fieldCategory{
	entity.DocumentTypeQuote:         quoteCategory,
	entity.DocumentTypeInvoice:       invoiceCategory,
	entity.DocumentTypePurchaseOrder: purchaseOrderCategory,
	entity.DocumentTypeFieldReport:   fieldReportCategory,
}

// BuildDataMapping produces the full flat path → display string table for the
// given document. Type-specific keys exist only for the matching document
// type; callers must not assume every key is present. now supplies the
// current.* fields so renders can be made deterministic in tests.
func BuildDataMapping(doc *entity.DocumentData, company *entity.CompanySettings, docType entity.DocumentType, now time.Time) FieldMapping {
	if doc == nil {
		doc = &entity.DocumentData{}
	}
	if company == nil {
		company = &entity.CompanySettings{}
	}
	src := fieldSource{Doc: doc, Company: company, Now: now}

	m := make(FieldMapping)
	for _, cat := range categoriesFor(docType) {
		for _, f := range cat.specs {
			m[f.path] = FormatValue(f.extract(src), f.format)
		}
	}
	return m
}

// AvailableFields returns the static per-type field catalogue offered by the
// template editor, grouped by category. No side effects.
func AvailableFields(docType entity.DocumentType) []FieldGroup {
	cats := categoriesFor(docType)
	groups := make([]FieldGroup, 0, len(cats))
	for _, cat := range cats {
		g := FieldGroup{Category: cat.name, Fields: make([]FieldDef, 0, len(cat.specs))}
		for _, f := range cat.specs {
			g.Fields = append(g.Fields, FieldDef{Path: f.path, Label: f.label, Format: f.format})
		}
		groups = append(groups, g)
	}
	return groups
}

func categoriesFor(docType entity.DocumentType) []fieldCategory {
	cats := make([]fieldCategory, 0, len(commonCategories)+1)
	cats = append(cats, commonCategories...)
	if tc, ok := typeCategories[docType]; ok {
		cats = append(cats, tc)
	}
	return cats
}

func partyField(p *entity.PartySnapshot, get func(*entity.PartySnapshot) string) any {
	if p == nil {
		return nil
	}
	return get(p)
}

func refNumber(r *entity.SourceRef) any {
	if r == nil {
		return nil
	}
	return r.Number
}
