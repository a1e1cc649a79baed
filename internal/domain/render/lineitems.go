package render

import (
	"fmt"

	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain/entity"
)

// TableColumn is one resolved column of the line-items table.
type TableColumn struct {
	Key          entity.ColumnKey
	Label        string
	WidthPercent float64
}

// TableRow is one layout-ready row: every cell already formatted to its final
// display string.
type TableRow struct {
	ItemID    string
	Cells     []string
	SubItem   bool // rendered muted/italic, indented by SubItemIndent
	Alternate bool // banding, top-level rows only
}

// TableLayout is the renderable table structure computed from a line-item
// list and a LineItemsConfig. It carries no knowledge of the rendering
// surface.
type TableLayout struct {
	Columns []TableColumn
	Rows    []TableRow
	Config  entity.LineItemsConfig
}

// BuildLineItemsTable computes the table layout:
//
//  1. Items whose ParentLineItemID resolves to an existing top-level item are
//     sub-items; everything else (including orphans) is top-level.
//  2. Each top-level item is emitted in input order, followed by its
//     sub-items in input order when ShowSubItems is set. Depth is at most 1.
//  3. Cells are formatted per column; unknown column keys render empty.
//  4. Banding parity counts top-level rows only.
//
// An empty column list is a configuration error: there is no table shape to
// compute.
func BuildLineItemsTable(items []*entity.LineItem, cfg entity.LineItemsConfig) (*TableLayout, error) {
	if len(cfg.Columns) == 0 {
		return nil, fmt.Errorf("%w: line_items_config.columns is empty", entity.ErrInvalidTemplate)
	}

	columns := make([]TableColumn, 0, len(cfg.Columns))
	for _, key := range cfg.Columns {
		columns = append(columns, TableColumn{
			Key:          key,
			Label:        key.Label(),
			WidthPercent: resolveColumnWidth(key, cfg.ColumnWidths),
		})
	}

	topLevelIDs := make(map[string]bool, len(items))
	for _, it := range items {
		if it.ParentLineItemID == "" {
			topLevelIDs[it.ID] = true
		}
	}

	// Orphaned sub-items (parent id not found) are promoted to top-level
	// rather than dropped.
	var topLevel []*entity.LineItem
	subsByParent := make(map[string][]*entity.LineItem)
	for _, it := range items {
		if it.ParentLineItemID == "" || !topLevelIDs[it.ParentLineItemID] {
			topLevel = append(topLevel, it)
			continue
		}
		subsByParent[it.ParentLineItemID] = append(subsByParent[it.ParentLineItemID], it)
	}

	banding := cfg.RowStyle.AlternateBackground != nil
	rows := make([]TableRow, 0, len(items))
	for i, it := range topLevel {
		rows = append(rows, TableRow{
			ItemID:    it.ID,
			Cells:     renderCells(it, cfg.Columns),
			Alternate: banding && i%2 == 1,
		})
		if !cfg.ShowSubItems {
			continue
		}
		for _, sub := range subsByParent[it.ID] {
			rows = append(rows, TableRow{
				ItemID:  sub.ID,
				Cells:   renderCells(sub, cfg.Columns),
				SubItem: true,
			})
		}
	}

	return &TableLayout{Columns: columns, Rows: rows, Config: cfg}, nil
}

// resolveColumnWidth applies the explicit template width, then the documented
// per-column default, then the generic fallback.
func resolveColumnWidth(key entity.ColumnKey, widths map[entity.ColumnKey]float64) float64 {
	if w, ok := widths[key]; ok && w > 0 {
		return w
	}
	return key.DefaultWidth()
}

// renderCells maps a line item to one formatted cell per configured column.
// Unsupported column keys render as empty cells.
func renderCells(it *entity.LineItem, columns []entity.ColumnKey) []string {
	cells := make([]string, 0, len(columns))
	for _, key := range columns {
		cells = append(cells, renderCell(it, key))
	}
	return cells
}

func renderCell(it *entity.LineItem, key entity.ColumnKey) string {
	switch key {
	case entity.ColumnDescription:
		return it.Description
	case entity.ColumnQuantity:
		return FormatValue(it.Quantity, FormatNumber)
	case entity.ColumnUnitPrice:
		return FormatValue(it.UnitPrice, FormatCurrency)
	case entity.ColumnLineTotal:
		return FormatValue(it.LineTotal, FormatCurrency)
	case entity.ColumnCostPrice:
		return FormatValue(it.CostPrice, FormatCurrency)
	case entity.ColumnMargin:
		return FormatValue(it.MarginPercentage, FormatPercentage)
	}
	return ""
}
