package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain/entity"
)

func TestUnifiedTemplateValidate(t *testing.T) {
	base := func() *entity.UnifiedTemplate {
		return entity.DefaultTemplate(entity.DocumentTypeQuote)
	}

	t.Run("default template is valid", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("nil template", func(t *testing.T) {
		var tpl *entity.UnifiedTemplate
		assert.ErrorIs(t, tpl.Validate(), entity.ErrInvalidTemplate)
	})

	t.Run("missing page settings", func(t *testing.T) {
		tpl := base()
		tpl.PageSettings = nil
		assert.ErrorIs(t, tpl.Validate(), entity.ErrInvalidTemplate)
	})

	t.Run("missing line items config", func(t *testing.T) {
		tpl := base()
		tpl.LineItemsConfig = nil
		assert.ErrorIs(t, tpl.Validate(), entity.ErrInvalidTemplate)
	})

	t.Run("empty column list", func(t *testing.T) {
		tpl := base()
		tpl.LineItemsConfig.Columns = nil
		assert.ErrorIs(t, tpl.Validate(), entity.ErrInvalidTemplate)
	})
}

func TestDefaultTemplateIsCompleteForEveryType(t *testing.T) {
	for _, docType := range []entity.DocumentType{
		entity.DocumentTypeQuote,
		entity.DocumentTypeInvoice,
		entity.DocumentTypePurchaseOrder,
		entity.DocumentTypeFieldReport,
	} {
		tpl := entity.DefaultTemplate(docType)
		require.NoError(t, tpl.Validate(), "default template for %s must be renderable", docType)
		assert.Equal(t, docType, tpl.DocumentType)
		assert.Equal(t, entity.PageSizeA4, tpl.PageSettings.Size)
		assert.Equal(t, entity.OrientationPortrait, tpl.PageSettings.Orientation)
		assert.Len(t, tpl.LineItemsConfig.Columns, 4)
		assert.True(t, tpl.LineItemsConfig.ShowSubItems)
	}
}

func TestColumnKeyDefaults(t *testing.T) {
	assert.Equal(t, 50.0, entity.ColumnDescription.DefaultWidth())
	assert.Equal(t, 12.0, entity.ColumnQuantity.DefaultWidth())
	assert.Equal(t, 19.0, entity.ColumnUnitPrice.DefaultWidth())
	assert.Equal(t, 19.0, entity.ColumnLineTotal.DefaultWidth())
	assert.Equal(t, 15.0, entity.ColumnCostPrice.DefaultWidth())
	assert.Equal(t, 10.0, entity.ColumnMargin.DefaultWidth())
	assert.Equal(t, 15.0, entity.ColumnKey("mystery").DefaultWidth())

	assert.Equal(t, "Description", entity.ColumnDescription.Label())
	assert.Equal(t, "Qty", entity.ColumnQuantity.Label())
	assert.Equal(t, "mystery", entity.ColumnKey("mystery").Label())
}

func TestDocumentTypeValid(t *testing.T) {
	assert.True(t, entity.DocumentTypeQuote.Valid())
	assert.True(t, entity.DocumentTypeFieldReport.Valid())
	assert.False(t, entity.DocumentType("memo").Valid())
	assert.False(t, entity.DocumentType("").Valid())
}

func TestAddressPartsJoin(t *testing.T) {
	full := entity.AddressParts{
		Line1: "12 Wharf St", Line2: "Level 3", City: "Brisbane",
		State: "QLD", Postcode: "4000", Country: "Australia",
	}
	assert.Equal(t, "12 Wharf St, Level 3, Brisbane, QLD, 4000, Australia", full.Join())

	partial := entity.AddressParts{City: "Brisbane", Postcode: " 4000 "}
	assert.Equal(t, "Brisbane, 4000", partial.Join())

	assert.True(t, entity.AddressParts{}.IsZero())
	assert.False(t, partial.IsZero())
}
