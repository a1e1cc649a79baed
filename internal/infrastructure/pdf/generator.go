// Package pdf implements the unified document generator over Maroto v2.
//
// One visual composition exists per document type (quote, invoice, purchase
// order, field report), each assembled from the same shared region
// primitives:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: logo + company letterhead  │  TITLE + N° + date    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  INFO COLUMNS: customer / supplier / site (per type)        │
//	│  REFERENCES: source service order / project (conditional)   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  LINE ITEMS table (template-driven columns and styling)     │
//	│  TOTALS: subtotal / discount / GST / total (right-aligned)  │
//	│  NOTES / TERMS (placeholder-substituted free text)          │
//	│  FOOTER: repeated on every page                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	marotoentity "github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/benyoung8291/fieldflow-core-sub002/internal/application/documents"
	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain/entity"
	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain/render"
)

// Ensure Generator implements the application port.
var _ documents.UnifiedPDFGenerator = (*Generator)(nil)

// Generator renders documents with Maroto. Stateless apart from the injected
// clock, so one instance may serve concurrent render calls.
type Generator struct {
	clock func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock replaces the wall clock used for current.* fields and the PDF
// creation date. Freeze it for byte-identical output in tests.
func WithClock(clock func() time.Time) Option {
	return func(g *Generator) { g.clock = clock }
}

// NewGenerator builds the generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{clock: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GenerateUnifiedPDF renders the document described by req to PDF bytes.
//
// Missing or malformed document data renders as blank regions: generation is
// best-effort and only a structurally invalid template (missing page
// settings or line-items config) aborts with entity.ErrInvalidTemplate. An
// unrecognized document type falls back to the quote composition.
func (g *Generator) GenerateUnifiedPDF(_ context.Context, req documents.GenerateRequest) ([]byte, error) {
	if err := req.Template.Validate(); err != nil {
		return nil, err
	}

	doc := req.Document
	if doc == nil {
		doc = &entity.DocumentData{}
	}
	company := req.Company
	if company == nil {
		company = &entity.CompanySettings{}
	}
	docType := req.DocumentType
	if docType == "" {
		docType = doc.Type
	}
	comp, ok := compositions[docType]
	if !ok {
		comp = compositions[entity.DocumentTypeQuote]
	}

	now := g.clock()
	mapping := render.BuildDataMapping(doc, company, docType, now)
	applyFieldMappingOverrides(mapping, req.Template.FieldMappings, doc, company)

	layout, err := render.BuildLineItemsTable(req.LineItems, *req.Template.LineItemsConfig)
	if err != nil {
		return nil, err
	}

	rc := &renderContext{
		doc:     doc,
		company: company,
		tpl:     req.Template,
		layout:  layout,
		mapping: mapping,
	}

	title := comp.title(rc)
	m := maroto.New(pageConfig(req.Template, company, title, now))
	if err := m.RegisterFooter(footerRows(rc)...); err != nil {
		return nil, fmt.Errorf("pdf: register footer: %w", err)
	}
	m.AddRows(comp.build(rc, title)...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return out.GetBytes(), nil
}

// applyFieldMappingOverrides resolves the template editor's custom source
// paths against the raw document/company graph and overwrites the matching
// mapping keys. Unresolvable paths overwrite with "".
func applyFieldMappingOverrides(m render.FieldMapping, overrides map[string]string, doc *entity.DocumentData, company *entity.CompanySettings) {
	if len(overrides) == 0 {
		return
	}
	bag := map[string]any{
		"document": doc,
		"company":  company,
		"customer": doc.Customer,
		"supplier": doc.Supplier,
		"location": doc.Location,
	}
	for key, srcPath := range overrides {
		if v, ok := render.GetNestedValue(bag, srcPath); ok {
			m[key] = render.FormatValue(v, render.FormatText)
		} else {
			m[key] = ""
		}
	}
}

// pageConfig builds the Maroto document config from the template's page
// settings. Template margins are in points; Maroto works in millimetres.
func pageConfig(tpl *entity.UnifiedTemplate, company *entity.CompanySettings, title string, now time.Time) *marotoentity.Config {
	ps := tpl.PageSettings

	size := pagesize.A4
	switch ps.Size {
	case entity.PageSizeLetter:
		size = pagesize.Letter
	case entity.PageSizeLegal:
		size = pagesize.Legal
	}
	orient := orientation.Vertical
	if ps.Orientation == entity.OrientationLandscape {
		orient = orientation.Horizontal
	}

	return config.NewBuilder().
		WithPageSize(size).
		WithOrientation(orient).
		WithLeftMargin(ptToMM(ps.MarginLeft)).
		WithRightMargin(ptToMM(ps.MarginRight)).
		WithTopMargin(ptToMM(ps.MarginTop)).
		WithBottomMargin(ptToMM(ps.MarginBottom)).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(company.Name, true).
		WithCreationDate(now).
		Build()
}

// ptToMM converts points (template units) to millimetres (Maroto units).
func ptToMM(pt float64) float64 {
	return pt * 25.4 / 72.0
}
