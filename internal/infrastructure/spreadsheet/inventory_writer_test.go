package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/orderpad/backend/internal/domain/ordering"
)

func TestFullInventoryWriter_Write(t *testing.T) {
	rows := []ordering.InventoryRow{
		{Item: "Rice", CurrentInventory: "3", ToOrder: "7"},
		{Item: "Kale", CurrentInventory: "1.5", ToOrder: ordering.DoNotOrder},
		{Item: "Salt"},
	}

	data, err := NewFullInventoryWriter().Write(rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{FullInventorySheet}, f.GetSheetList())

	got, err := f.GetRows(FullInventorySheet)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, []string{"Item", "Current Inventory", "To Order"}, got[0])
	assert.Equal(t, []string{"Rice", "3", "7"}, got[1])
	assert.Equal(t, []string{"Kale", "1.5", "Do not order"}, got[2])
	assert.Equal(t, []string{"Salt"}, got[3])

	t.Run("numbers are numeric cells", func(t *testing.T) {
		typ, err := f.GetCellType(FullInventorySheet, "B2")
		require.NoError(t, err)
		assert.NotEqual(t, excelize.CellTypeSharedString, typ)
		assert.NotEqual(t, excelize.CellTypeInlineString, typ)

		typ, err = f.GetCellType(FullInventorySheet, "C3")
		require.NoError(t, err)
		assert.Contains(t, []excelize.CellType{excelize.CellTypeSharedString, excelize.CellTypeInlineString}, typ)
	})
}

func TestFullInventoryWriter_EmptyCatalog(t *testing.T) {
	data, err := NewFullInventoryWriter().Write(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(FullInventorySheet)
	require.NoError(t, err)
	require.Len(t, got, 1)
}
