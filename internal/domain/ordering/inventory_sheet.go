package ordering

import "github.com/orderpad/backend/internal/domain/catalog"

// InventoryRow is one row of the full inventory export
type InventoryRow struct {
	Item             string `json:"item"`
	CurrentInventory Entry  `json:"current_inventory"`
	ToOrder          Entry  `json:"to_order"`
}

// InventoryRows lists every catalog item with its raw inventory and order
// entries, empty when nothing was entered.
func InventoryRows(items catalog.Catalog, s Session) []InventoryRow {
	s = s.Normalize()
	rows := make([]InventoryRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, InventoryRow{
			Item:             item.Name,
			CurrentInventory: s.Inventory[item.Name],
			ToOrder:          s.Orders[item.Name],
		})
	}
	return rows
}
