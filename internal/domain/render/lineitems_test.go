package render_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain/entity"
	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain/render"
)

func item(id, parentID, description string, qty, unitPrice, total int64) *entity.LineItem {
	return &entity.LineItem{
		ID:               id,
		ParentLineItemID: parentID,
		Description:      description,
		Quantity:         decimal.NewFromInt(qty),
		UnitPrice:        decimal.NewFromInt(unitPrice),
		LineTotal:        decimal.NewFromInt(total),
	}
}

func tableConfig() entity.LineItemsConfig {
	return entity.LineItemsConfig{
		Columns:      []entity.ColumnKey{entity.ColumnDescription, entity.ColumnQuantity, entity.ColumnUnitPrice, entity.ColumnLineTotal},
		ShowSubItems: true,
		RowStyle: entity.RowStyle{
			AlternateBackground: &entity.RGB{R: 243, G: 244, B: 246},
		},
	}
}

func TestBuildLineItemsTableFlattensSubItemsAfterParent(t *testing.T) {
	items := []*entity.LineItem{
		item("a", "", "Install switchboard", 1, 800, 800),
		item("a1", "a", "Circuit breakers", 6, 25, 150),
		item("a2", "a", "Labour", 2, 95, 190),
		item("b", "", "Site inspection", 1, 120, 120),
	}
	layout, err := render.BuildLineItemsTable(items, tableConfig())
	require.NoError(t, err)

	require.Len(t, layout.Rows, 4)
	assert.Equal(t, []string{"a", "a1", "a2", "b"}, rowIDs(layout.Rows))

	assert.False(t, layout.Rows[0].SubItem)
	assert.True(t, layout.Rows[1].SubItem)
	assert.True(t, layout.Rows[2].SubItem)
	assert.False(t, layout.Rows[3].SubItem)

	// Cells are final display strings
	assert.Equal(t, []string{"Install switchboard", "1", "$800.00", "$800.00"}, layout.Rows[0].Cells)
	assert.Equal(t, []string{"Circuit breakers", "6", "$25.00", "$150.00"}, layout.Rows[1].Cells)
}

func TestBuildLineItemsTableHidesSubItemsWhenDisabled(t *testing.T) {
	items := []*entity.LineItem{
		item("a", "", "Install switchboard", 1, 800, 800),
		item("a1", "a", "Circuit breakers", 6, 25, 150),
		item("b", "", "Site inspection", 1, 120, 120),
	}
	cfg := tableConfig()
	cfg.ShowSubItems = false

	layout, err := render.BuildLineItemsTable(items, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, rowIDs(layout.Rows))
}

func TestBuildLineItemsTableBandingCountsTopLevelOnly(t *testing.T) {
	items := []*entity.LineItem{
		item("a", "", "One", 1, 10, 10),
		item("a1", "a", "Sub", 1, 5, 5),
		item("b", "", "Two", 1, 10, 10),
		item("c", "", "Three", 1, 10, 10),
	}
	layout, err := render.BuildLineItemsTable(items, tableConfig())
	require.NoError(t, err)

	byID := rowsByID(layout.Rows)
	assert.False(t, byID["a"].Alternate)
	assert.True(t, byID["b"].Alternate, "second top-level row is banded even with a sub-item between")
	assert.False(t, byID["c"].Alternate)
	assert.False(t, byID["a1"].Alternate, "sub-items are never banded")
}

func TestBuildLineItemsTableNoBandingWithoutAlternateBackground(t *testing.T) {
	cfg := tableConfig()
	cfg.RowStyle.AlternateBackground = nil

	layout, err := render.BuildLineItemsTable([]*entity.LineItem{
		item("a", "", "One", 1, 10, 10),
		item("b", "", "Two", 1, 10, 10),
	}, cfg)
	require.NoError(t, err)
	for _, row := range layout.Rows {
		assert.False(t, row.Alternate)
	}
}

func TestBuildLineItemsTablePromotesOrphans(t *testing.T) {
	items := []*entity.LineItem{
		item("a", "", "Parent", 1, 10, 10),
		item("x", "no-such-parent", "Orphan", 1, 5, 5),
	}
	layout, err := render.BuildLineItemsTable(items, tableConfig())
	require.NoError(t, err)

	require.Len(t, layout.Rows, 2)
	byID := rowsByID(layout.Rows)
	assert.False(t, byID["x"].SubItem, "orphaned sub-item must render as a top-level row")
}

func TestBuildLineItemsTableColumnWidths(t *testing.T) {
	cfg := tableConfig()
	layout, err := render.BuildLineItemsTable(nil, cfg)
	require.NoError(t, err)

	widths := make(map[entity.ColumnKey]float64)
	for _, col := range layout.Columns {
		widths[col.Key] = col.WidthPercent
	}
	assert.Equal(t, 50.0, widths[entity.ColumnDescription])
	assert.Equal(t, 12.0, widths[entity.ColumnQuantity])
	assert.Equal(t, 19.0, widths[entity.ColumnUnitPrice])
	assert.Equal(t, 19.0, widths[entity.ColumnLineTotal])

	// Explicit template widths win; zero/negative fall back to defaults.
	cfg.ColumnWidths = map[entity.ColumnKey]float64{
		entity.ColumnDescription: 60,
		entity.ColumnQuantity:    0,
	}
	layout, err = render.BuildLineItemsTable(nil, cfg)
	require.NoError(t, err)
	assert.Equal(t, 60.0, layout.Columns[0].WidthPercent)
	assert.Equal(t, 12.0, layout.Columns[1].WidthPercent)
}

func TestBuildLineItemsTableOptionalColumns(t *testing.T) {
	cost := decimal.NewFromInt(60)
	margin := decimal.RequireFromString("25.5")
	it := item("a", "", "Breaker", 1, 80, 80)
	it.CostPrice = &cost
	it.MarginPercentage = &margin

	cfg := tableConfig()
	cfg.Columns = []entity.ColumnKey{entity.ColumnDescription, entity.ColumnCostPrice, entity.ColumnMargin}

	layout, err := render.BuildLineItemsTable([]*entity.LineItem{it}, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"Breaker", "$60.00", "25.5%"}, layout.Rows[0].Cells)

	// Absent optional values render empty, never zero.
	bare := item("b", "", "Labour", 1, 95, 95)
	layout, err = render.BuildLineItemsTable([]*entity.LineItem{bare}, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"Labour", "", ""}, layout.Rows[0].Cells)
}

func TestBuildLineItemsTableEmptyColumnsIsError(t *testing.T) {
	cfg := tableConfig()
	cfg.Columns = nil

	_, err := render.BuildLineItemsTable(nil, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrInvalidTemplate)
}

func rowIDs(rows []render.TableRow) []string {
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ItemID)
	}
	return ids
}

func rowsByID(rows []render.TableRow) map[string]render.TableRow {
	m := make(map[string]render.TableRow, len(rows))
	for _, r := range rows {
		m[r.ItemID] = r
	}
	return m
}
