package ordering

import (
	"maps"

	"github.com/orderpad/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// Reconcile fills in the order quantity of every catalog item and marks the
// session applied. It never mutates its inputs and never fails: running it
// again on its own output returns the same orders.
func Reconcile(items catalog.Catalog, s Session) Session {
	out := s.Clone()
	out.Orders = ReconcileOrders(items, s.DayType, s.Inventory, s.Orders)
	out.Applied = true
	return out
}

// ReconcileOrders computes a completed order map. For each item an existing
// non-empty order is kept, clamped to zero when negative or when the stock is
// DoNotOrder; DoNotOrder inventory orders zero; otherwise the order is
// max(recommended - on hand, 0), with unknown day types and unparsable stock
// counting as zero.
func ReconcileOrders(items catalog.Catalog, day catalog.DayType, inventory, orders map[string]Entry) map[string]Entry {
	out := cloneMap(orders)
	for _, item := range items {
		have := inventory[item.Name]
		if existing, ok := out[item.Name]; ok && !existing.IsEmpty() {
			out[item.Name] = normalizeOrder(have, existing)
			continue
		}
		if have.IsDoNotOrder() {
			out[item.Name] = IntEntry(0)
			continue
		}
		needed := decimal.NewFromInt(int64(item.RecommendedFor(day)))
		out[item.Name] = NumberEntry(decimal.Max(needed.Sub(have.Quantity()), decimal.Zero))
	}
	return out
}

// IsReconciled reports whether s was applied and reconciling it again would
// not change any order. Inventory edited after applying is not detected: the
// client's orders are kept as explicit overrides.
func (s Session) IsReconciled(items catalog.Catalog) bool {
	if !s.Applied {
		return false
	}
	return maps.Equal(ReconcileOrders(items, s.DayType, s.Inventory, s.Orders), s.Orders)
}

// normalizeOrder holds an order entry to the order invariants: a number is
// never negative and DoNotOrder stock always orders zero.
func normalizeOrder(have, order Entry) Entry {
	if have.IsDoNotOrder() {
		return IntEntry(0)
	}
	if d, ok := order.Number(); ok && d.IsNegative() {
		return IntEntry(0)
	}
	return order
}
