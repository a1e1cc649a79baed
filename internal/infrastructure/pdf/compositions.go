package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain/entity"
	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain/render"
)

// ── palette ──────────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 45, Green: 55, Blue: 72}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorMuted   = &props.Color{Red: 130, Green: 130, Blue: 130}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorBorder  = &props.Color{Red: 220, Green: 220, Blue: 220}
)

func rgbColor(c *entity.RGB, fallback *props.Color) *props.Color {
	if c == nil {
		return fallback
	}
	return &props.Color{Red: c.R, Green: c.G, Blue: c.B}
}

// ── renderContext / composition registry ─────────────────────────────────────

// renderContext carries everything a composition needs for one render call.
type renderContext struct {
	doc     *entity.DocumentData
	company *entity.CompanySettings
	tpl     *entity.UnifiedTemplate
	layout  *render.TableLayout
	mapping render.FieldMapping
}

type composition struct {
	defaultTitle string
	build        func(rc *renderContext, title string) []core.Row
}

func (c composition) title(rc *renderContext) string {
	if rc.tpl.Header != nil && rc.tpl.Header.TitleOverride != "" {
		return rc.tpl.Header.TitleOverride
	}
	return c.defaultTitle
}

// compositions maps each document type to its visual composition. Dispatch
// through this table replaces per-type branching; all four variants share
// the region primitives below.
var compositions = map[entity.DocumentType]composition{
	entity.DocumentTypeQuote:         {defaultTitle: "QUOTE", build: quoteRows},
	entity.DocumentTypeInvoice:       {defaultTitle: "TAX INVOICE", build: invoiceRows},
	entity.DocumentTypePurchaseOrder: {defaultTitle: "PURCHASE ORDER", build: purchaseOrderRows},
	entity.DocumentTypeFieldReport:   {defaultTitle: "FIELD SERVICE REPORT", build: fieldReportRows},
}

// ── compositions ─────────────────────────────────────────────────────────────

func quoteRows(rc *renderContext, title string) []core.Row {
	rows := headerRegion(rc, title)

	quoteLines := filterEmpty([]string{
		rc.doc.Title,
		labelled("Valid Until", rc.mapping["quote.valid_until"]),
	})
	rows = append(rows, infoRow(
		partyCol(6, "Quote For", rc.doc.Customer),
		infoCol(6, "Quote Details", quoteLines),
	))
	rows = append(rows, referenceRegion(rc)...)
	rows = append(rows, tableRegion(rc)...)
	rows = append(rows, totalsRegion(rc)...)
	rows = append(rows, freeTextRegions(rc)...)
	return rows
}

func invoiceRows(rc *renderContext, title string) []core.Row {
	rows := headerRegion(rc, title)

	invoiceLines := filterEmpty([]string{
		labelled("Due Date", rc.mapping["invoice.due_date"]),
		labelled("Payment Terms", rc.doc.PaymentTerms),
	})
	rows = append(rows, infoRow(
		partyCol(6, "Bill To", rc.doc.Customer),
		infoCol(6, "Invoice Details", invoiceLines),
	))
	rows = append(rows, referenceRegion(rc)...)
	rows = append(rows, tableRegion(rc)...)
	rows = append(rows, totalsRegion(rc)...)
	if rc.company.HasBankDetails() {
		rows = append(rows, paymentDetailsRegion(rc.company)...)
	}
	rows = append(rows, freeTextRegions(rc)...)
	return rows
}

func purchaseOrderRows(rc *renderContext, title string) []core.Row {
	rows := headerRegion(rc, title)

	shipLines := filterEmpty([]string{
		rc.doc.ShippingAddress.Join(),
		labelled("Delivery Date", rc.mapping["po.delivery_date"]),
	})
	rows = append(rows, infoRow(
		partyCol(6, "Supplier", rc.doc.Supplier),
		infoCol(6, "Ship To", shipLines),
	))
	rows = append(rows, referenceRegion(rc)...)
	rows = append(rows, tableRegion(rc)...)
	rows = append(rows, totalsRegion(rc)...)
	rows = append(rows, freeTextRegions(rc)...)
	return rows
}

func fieldReportRows(rc *renderContext, title string) []core.Row {
	rows := headerRegion(rc, title)

	siteLines := filterEmpty([]string{
		rc.doc.SiteLocation,
		locationLine(rc.doc.Location),
		labelled("Service Date", rc.mapping["report.service_date"]),
		labelled("Technician", rc.doc.TechnicianName),
	})
	rows = append(rows, infoRow(
		partyCol(6, "Customer", rc.doc.Customer),
		infoCol(6, "Site Details", siteLines),
	))
	rows = append(rows, referenceRegion(rc)...)
	rows = append(rows, sectionRegion("Findings", rc.doc.Findings, rc.mapping)...)
	rows = append(rows, sectionRegion("Recommendations", rc.doc.Recommendations, rc.mapping)...)
	rows = append(rows, tableRegion(rc)...)
	rows = append(rows, totalsRegion(rc)...)
	rows = append(rows, freeTextRegions(rc)...)
	return rows
}

// ── shared region primitives ─────────────────────────────────────────────────

// headerRegion: company letterhead (optional logo) on the left, document
// title + number + date on the right, then a divider.
func headerRegion(rc *renderContext, title string) []core.Row {
	companyTexts := []core.Component{
		text.New(rc.company.Name, props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
		}),
	}
	if rc.company.ABN != "" {
		companyTexts = append(companyTexts, text.New("ABN: "+rc.company.ABN, props.Text{
			Size: 8, Top: 9, Color: colorGray,
		}))
	}
	if contact := joinNonEmpty("   |   ", rc.company.Address.Join(), rc.company.Phone, rc.company.Email); contact != "" {
		companyTexts = append(companyTexts, text.New(contact, props.Text{
			Size: 7.5, Top: 13, Color: colorGray,
		}))
	}

	right := col.New(5).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Right, Color: colorPrimary, Top: 1,
		}),
		text.New(rc.doc.Number, props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 8,
		}),
		text.New(labelled("Date", rc.mapping["document.date"]), props.Text{
			Size: 8, Align: align.Right, Top: 14, Color: colorGray,
		}),
	)

	header := row.New(20)
	if rc.company.HasLogo() && showLogo(rc.tpl) {
		header.Add(
			image.NewFromBytesCol(2, rc.company.Logo, logoExtension(rc.company), props.Rect{
				Percent: 90, Center: true,
			}),
			col.New(5).Add(companyTexts...),
			right,
		)
	} else {
		header.Add(col.New(7).Add(companyTexts...), right)
	}

	return []core.Row{
		header,
		line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}),
	}
}

func showLogo(tpl *entity.UnifiedTemplate) bool {
	return tpl.Header == nil || tpl.Header.ShowLogo
}

func logoExtension(c *entity.CompanySettings) extension.Type {
	if c.LogoFormat == "jpg" || c.LogoFormat == "jpeg" {
		return extension.Jpg
	}
	return extension.Png
}

// infoCol: a titled block of stacked detail lines.
func infoCol(size int, heading string, lines []string) core.Col {
	components := []core.Component{
		text.New(heading, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
	}
	top := 6.0
	for _, l := range lines {
		components = append(components, text.New(l, props.Text{Size: 8, Top: top, Color: colorGray}))
		top += 4
	}
	return col.New(size).Add(components...)
}

// partyCol: an infoCol built from a party snapshot; renders an empty block
// when the snapshot is absent.
func partyCol(size int, heading string, p *entity.PartySnapshot) core.Col {
	if p == nil {
		return infoCol(size, heading, nil)
	}
	return infoCol(size, heading, filterEmpty([]string{
		p.Name,
		p.ContactName,
		p.Address.Join(),
		joinNonEmpty("   |   ", p.Phone, p.Email),
	}))
}

func infoRow(cols ...core.Col) core.Row {
	return row.New(26).Add(cols...)
}

// referenceRegion renders only when the document links back to a source
// service order or project.
func referenceRegion(rc *renderContext) []core.Row {
	if !rc.doc.HasSourceReference() {
		return nil
	}
	lines := filterEmpty([]string{
		sourceRefLine("Service Order", rc.doc.SourceServiceOrder),
		sourceRefLine("Project", rc.doc.SourceProject),
	})
	return []core.Row{
		row.New(float64(8 + 4*len(lines))).Add(infoCol(12, "Reference Details", lines)),
	}
}

func sourceRefLine(label string, ref *entity.SourceRef) string {
	if ref == nil || ref.Number == "" {
		return ""
	}
	if ref.Title != "" {
		return fmt.Sprintf("%s: %s (%s)", label, ref.Number, ref.Title)
	}
	return label + ": " + ref.Number
}

func locationLine(loc *entity.LocationSnapshot) string {
	if loc == nil {
		return ""
	}
	return joinNonEmpty(", ", loc.Name, loc.Address.Join())
}

// ── line-items table region ──────────────────────────────────────────────────

func tableRegion(rc *renderContext) []core.Row {
	if len(rc.layout.Rows) == 0 {
		return nil
	}
	units := gridUnits(rc.layout.Columns)
	cfg := rc.layout.Config

	rows := make([]core.Row, 0, len(rc.layout.Rows)+2)
	rows = append(rows, line.NewRow(2))
	rows = append(rows, tableHeaderRow(rc.layout.Columns, units, cfg.HeaderStyle))
	for _, r := range rc.layout.Rows {
		rows = append(rows, tableDataRow(r, rc.layout.Columns, units, cfg))
	}
	return rows
}

func tableHeaderRow(columns []render.TableColumn, units []int, style entity.HeaderStyle) core.Row {
	size := style.FontSize
	if size <= 0 {
		size = 8
	}
	textColor := rgbColor(style.TextColor, colorWhite)

	r := row.New(8).WithStyle(&props.Cell{
		BackgroundColor: rgbColor(style.Background, colorPrimary),
	})
	for i, c := range columns {
		r.Add(col.New(units[i]).Add(text.New(c.Label, props.Text{
			Style: fontstyle.Bold, Size: size, Align: columnAlign(c.Key),
			Color: textColor, Top: 2, Left: 1, Right: 1,
		})))
	}
	return r
}

func tableDataRow(tr render.TableRow, columns []render.TableColumn, units []int, cfg entity.LineItemsConfig) core.Row {
	size := cfg.RowStyle.FontSize
	if size <= 0 {
		size = 8
	}

	cell := &props.Cell{}
	if tr.Alternate {
		cell.BackgroundColor = rgbColor(cfg.RowStyle.AlternateBackground, nil)
	}
	if cfg.RowStyle.BottomBorder {
		cell.BorderType = border.Bottom
		cell.BorderColor = colorBorder
		cell.BorderThickness = 0.2
	}

	r := row.New(6).WithStyle(cell)
	for i, c := range columns {
		tp := props.Text{
			Size: size, Align: columnAlign(c.Key), Top: 1, Left: 1, Right: 1,
		}
		if tr.SubItem {
			// Sub-items always use a fixed muted/italic style, independent of
			// the banding configuration.
			tp.Style = fontstyle.Italic
			tp.Color = colorMuted
			if c.Key == entity.ColumnDescription {
				tp.Left = 1 + ptToMM(cfg.SubItemIndent)
			}
		}
		r.Add(col.New(units[i]).Add(text.New(tr.Cells[i], tp)))
	}
	return r
}

func columnAlign(key entity.ColumnKey) align.Type {
	switch key {
	case entity.ColumnDescription:
		return align.Left
	case entity.ColumnQuantity:
		return align.Center
	default:
		return align.Right
	}
}

// gridUnits converts resolved width percentages to Maroto's 12-unit grid,
// distributing rounding leftovers by largest remainder so the row fills the
// grid exactly.
func gridUnits(columns []render.TableColumn) []int {
	n := len(columns)
	units := make([]int, n)
	if n >= 12 {
		for i := range units {
			units[i] = 1
		}
		return units
	}

	total := 0.0
	for _, c := range columns {
		if c.WidthPercent > 0 {
			total += c.WidthPercent
		}
	}
	if total <= 0 {
		total = float64(n)
	}

	fracs := make([]float64, n)
	sum := 0
	for i, c := range columns {
		w := c.WidthPercent
		if w <= 0 {
			w = total / float64(n)
		}
		exact := w / total * 12
		u := int(exact)
		if u < 1 {
			u = 1
		}
		units[i] = u
		fracs[i] = exact - float64(int(exact))
		sum += u
	}
	for sum < 12 {
		best := 0
		for i := 1; i < n; i++ {
			if fracs[i] > fracs[best] {
				best = i
			}
		}
		units[best]++
		fracs[best] = -1
		sum++
	}
	for sum > 12 {
		best := -1
		for i := 0; i < n; i++ {
			if units[i] > 1 && (best < 0 || units[i] > units[best]) {
				best = i
			}
		}
		if best < 0 {
			break
		}
		units[best]--
		sum--
	}
	return units
}

// ── totals region ────────────────────────────────────────────────────────────

func totalsRegion(rc *renderContext) []core.Row {
	lines := render.BuildTotalsLines(rc.doc)
	rows := make([]core.Row, 0, len(lines)+1)
	rows = append(rows, line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, l := range lines {
		rows = append(rows, totalsLineRow(l))
	}
	return rows
}

func totalsLineRow(l render.TotalLine) core.Row {
	size := 9.0
	style := fontstyle.Normal
	color := (*props.Color)(nil)
	if l.Emphasis {
		size = 10
		style = fontstyle.Bold
		color = colorPrimary
	}
	return row.New(5).Add(
		col.New(6),
		col.New(3).Add(text.New(l.Label+":", props.Text{
			Style: fontstyle.Bold, Size: size, Align: align.Right, Color: color, Right: 2,
		})),
		col.New(3).Add(text.New(l.Value, props.Text{
			Style: style, Size: size, Align: align.Right, Color: color, Right: 1,
		})),
	)
}

// ── free text / payment details / footer ─────────────────────────────────────

// freeTextRegions: notes then terms, placeholder-substituted.
func freeTextRegions(rc *renderContext) []core.Row {
	rows := sectionRegion("Notes", rc.doc.Notes, rc.mapping)
	rows = append(rows, sectionRegion("Terms & Conditions", rc.doc.TermsConditions, rc.mapping)...)
	return rows
}

// sectionRegion: a titled free-text block. Absent text renders nothing at
// all, not an empty block.
func sectionRegion(heading, body string, mapping render.FieldMapping) []core.Row {
	if body == "" {
		return nil
	}
	resolved := render.ReplacePlaceholders(body, mapping)
	height := 8.0 + 3.5*float64(len(resolved)/90)
	return []core.Row{
		line.NewRow(2),
		row.New(5).Add(col.New(12).Add(
			text.New(heading, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
		row.New(height).Add(col.New(12).Add(
			text.New(resolved, props.Text{Size: 8, Color: colorGray, Top: 1}),
		)),
	}
}

func paymentDetailsRegion(c *entity.CompanySettings) []core.Row {
	lines := filterEmpty([]string{
		labelled("Bank", c.BankName),
		labelled("BSB", c.BankBSB),
		labelled("Account Number", c.BankAccountNumber),
		labelled("Account Name", c.BankAccountName),
	})
	return []core.Row{
		line.NewRow(2),
		row.New(float64(8 + 4*len(lines))).Add(infoCol(12, "Payment Details", lines)),
	}
}

// footerRows builds the fixed footer repeated on every page.
func footerRows(rc *renderContext) []core.Row {
	footText := ""
	if rc.tpl.Footer != nil {
		footText = render.ReplacePlaceholders(rc.tpl.Footer.Text, rc.mapping)
	}
	if footText == "" {
		footText = joinNonEmpty("   |   ",
			rc.company.Name,
			rc.mapping["document.number"],
			labelled("Generated", rc.mapping["current.datetime"]),
		)
	}
	return []core.Row{
		line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.3}),
		row.New(6).Add(col.New(12).Add(
			text.New(footText, props.Text{Size: 7, Align: align.Center, Color: colorMuted, Top: 1}),
		)),
	}
}

// ── helpers ──────────────────────────────────────────────────────────────────

func labelled(label, value string) string {
	if value == "" {
		return ""
	}
	return label + ": " + value
}

func joinNonEmpty(sep string, parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += sep
		}
		out += p
	}
	return out
}

func filterEmpty(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
