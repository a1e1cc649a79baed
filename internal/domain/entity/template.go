package entity

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTemplate marks a structurally unrenderable template. It is the
// only fatal error class in the rendering path; everything else degrades.
var ErrInvalidTemplate = errors.New("invalid template")

// ColumnKey identifies a line-items table column. The set is closed; unknown
// keys render empty cells rather than erroring.
type ColumnKey string

const (
	ColumnDescription ColumnKey = "description"
	ColumnQuantity    ColumnKey = "quantity"
	ColumnUnitPrice   ColumnKey = "unit_price"
	ColumnLineTotal   ColumnKey = "line_total"
	ColumnCostPrice   ColumnKey = "cost_price"
	ColumnMargin      ColumnKey = "margin"
)

// Label returns the column's header text.
func (k ColumnKey) Label() string {
	switch k {
	case ColumnDescription:
		return "Description"
	case ColumnQuantity:
		return "Qty"
	case ColumnUnitPrice:
		return "Unit Price"
	case ColumnLineTotal:
		return "Total"
	case ColumnCostPrice:
		return "Cost"
	case ColumnMargin:
		return "Margin"
	}
	return string(k)
}

// Default column widths as percentages of the table width. Widths are
// independent per column and are not required to sum to 100.
const fallbackColumnWidth = 15.0

var defaultColumnWidths = map[ColumnKey]float64{
	ColumnDescription: 50,
	ColumnQuantity:    12,
	ColumnUnitPrice:   19,
	ColumnLineTotal:   19,
	ColumnCostPrice:   15,
	ColumnMargin:      10,
}

// DefaultWidth returns the documented default width percentage for the
// column, or the generic fallback for unknown keys.
func (k ColumnKey) DefaultWidth() float64 {
	if w, ok := defaultColumnWidths[k]; ok {
		return w
	}
	return fallbackColumnWidth
}

// RGB is a 0–255 color triple used in template styling.
type RGB struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// HeaderStyle styles the line-items table header row.
type HeaderStyle struct {
	Background *RGB    `json:"background,omitempty"`
	TextColor  *RGB    `json:"text_color,omitempty"`
	FontSize   float64 `json:"font_size,omitempty"`
}

// RowStyle styles line-items data rows.
type RowStyle struct {
	FontSize            float64 `json:"font_size,omitempty"`
	AlternateBackground *RGB    `json:"alternate_background,omitempty"` // nil = no banding
	BottomBorder        bool    `json:"bottom_border,omitempty"`
}

// LineItemsConfig is the per-template layout policy for the line-items table.
type LineItemsConfig struct {
	Columns       []ColumnKey           `json:"columns"`
	ShowSubItems  bool                  `json:"show_sub_items"`
	ColumnWidths  map[ColumnKey]float64 `json:"column_widths,omitempty"` // percentages
	HeaderStyle   HeaderStyle           `json:"header_style"`
	RowStyle      RowStyle              `json:"row_style"`
	SubItemIndent float64               `json:"sub_item_indent,omitempty"` // points
}

// PageSize is the template page size.
type PageSize string

const (
	PageSizeA4     PageSize = "A4"
	PageSizeLetter PageSize = "LETTER"
	PageSizeLegal  PageSize = "LEGAL"
)

// Orientation is the template page orientation.
type Orientation string

const (
	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
)

// PageSettings holds page geometry. Margins are in points.
type PageSettings struct {
	Size         PageSize    `json:"size"`
	Orientation  Orientation `json:"orientation"`
	MarginTop    float64     `json:"margin_top"`
	MarginRight  float64     `json:"margin_right"`
	MarginBottom float64     `json:"margin_bottom"`
	MarginLeft   float64     `json:"margin_left"`
}

// HeaderConfig is the optional free-form header configuration.
type HeaderConfig struct {
	ShowLogo      bool   `json:"show_logo"`
	TitleOverride string `json:"title_override,omitempty"` // replaces the per-type document title
}

// FooterConfig is the optional footer configuration. Text supports
// {{path}} placeholders resolved against the document's field mapping.
type FooterConfig struct {
	Text string `json:"text,omitempty"`
}

// UnifiedTemplate ties a document type to its page geometry, line-items
// layout and optional header/footer configuration. Templates are immutable
// configuration; the data being rendered lives in DocumentData.
type UnifiedTemplate struct {
	ID           string
	CompanyID    string
	Name         string
	DocumentType DocumentType
	IsDefault    bool

	LineItemsConfig *LineItemsConfig
	PageSettings    *PageSettings
	Header          *HeaderConfig
	Footer          *FooterConfig

	// FieldMappings overrides mapping keys with custom source paths, e.g.
	// "document.notes" → "customer.address.city". Persisted by the template
	// editor; applied after the standard mapping is built.
	FieldMappings map[string]string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the template's structural fields. A template missing page
// settings or line-items config (or with an empty column list) cannot be
// rendered: inventing page geometry would produce unpredictable output, so
// these are hard errors rather than fallbacks.
func (t *UnifiedTemplate) Validate() error {
	if t == nil {
		return fmt.Errorf("%w: template is nil", ErrInvalidTemplate)
	}
	if t.PageSettings == nil {
		return fmt.Errorf("%w: missing page_settings", ErrInvalidTemplate)
	}
	if t.LineItemsConfig == nil {
		return fmt.Errorf("%w: missing line_items_config", ErrInvalidTemplate)
	}
	if len(t.LineItemsConfig.Columns) == 0 {
		return fmt.Errorf("%w: line_items_config.columns is empty", ErrInvalidTemplate)
	}
	return nil
}

// DefaultTemplate returns a complete, renderable template for the given
// document type: four-column line-items table, A4 portrait, 40-point margins.
// It never fails and is sufficient, unmodified, to render a valid document.
func DefaultTemplate(docType DocumentType) *UnifiedTemplate {
	return &UnifiedTemplate{
		Name:         "Default " + string(docType),
		DocumentType: docType,
		IsDefault:    true,
		LineItemsConfig: &LineItemsConfig{
			Columns:      []ColumnKey{ColumnDescription, ColumnQuantity, ColumnUnitPrice, ColumnLineTotal},
			ShowSubItems: true,
			HeaderStyle: HeaderStyle{
				Background: &RGB{R: 45, G: 55, B: 72},
				TextColor:  &RGB{R: 255, G: 255, B: 255},
				FontSize:   8,
			},
			RowStyle: RowStyle{
				FontSize:            8,
				AlternateBackground: &RGB{R: 243, G: 244, B: 246},
				BottomBorder:        true,
			},
			SubItemIndent: 12,
		},
		PageSettings: &PageSettings{
			Size:         PageSizeA4,
			Orientation:  OrientationPortrait,
			MarginTop:    40,
			MarginRight:  40,
			MarginBottom: 40,
			MarginLeft:   40,
		},
		Header: &HeaderConfig{ShowLogo: true},
	}
}
