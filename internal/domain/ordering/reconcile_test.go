package ordering

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/orderpad/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItems() catalog.Catalog {
	return catalog.Catalog{
		{ID: "1", Name: "Rice", Category: catalog.CategoryDryGoods, Recommended: catalog.Recommendation{
			catalog.DayTypeWeekday: 10, catalog.DayTypeWeekend: 3, catalog.DayTypeLongWeekend: 25,
		}},
		{ID: "2", Name: "Lettuce", Category: catalog.CategoryGreens, Recommended: catalog.Recommendation{
			catalog.DayTypeWeekday: 6,
		}},
		{ID: "3", Name: "Flour", Category: catalog.CategoryDryGoods, Recommended: catalog.Recommendation{
			catalog.DayTypeWeekday: 8, catalog.DayTypeWeekend: 8,
		}},
		{ID: "4", Name: "Chicken", Category: catalog.CategoryMeat, Recommended: catalog.Recommendation{
			catalog.DayTypeWeekday: 12,
		}},
	}
}

func TestReconcile(t *testing.T) {
	items := sampleItems()

	t.Run("orders the shortfall", func(t *testing.T) {
		s := newTestSession(t).WithInventory("Rice", "4")
		out := Reconcile(items, s)
		assert.Equal(t, Entry("6"), out.Orders["Rice"])
		assert.True(t, out.Applied)
	})

	t.Run("clamps surplus to zero", func(t *testing.T) {
		s, err := newTestSession(t).WithDayType(catalog.DayTypeWeekend)
		require.NoError(t, err)
		out := Reconcile(items, s.WithInventory("Rice", "5"))
		assert.Equal(t, Entry("0"), out.Orders["Rice"])
	})

	t.Run("do not order yields zero regardless of need", func(t *testing.T) {
		s := newTestSession(t).WithInventory("Chicken", DoNotOrder)
		out := Reconcile(items, s)
		assert.Equal(t, Entry("0"), out.Orders["Chicken"])
	})

	t.Run("absent and unparsable stock count as zero", func(t *testing.T) {
		s := newTestSession(t).WithInventory("Flour", "plenty")
		out := Reconcile(items, s)
		assert.Equal(t, Entry("8"), out.Orders["Flour"])
		assert.Equal(t, Entry("6"), out.Orders["Lettuce"])
	})

	t.Run("undefined day type column needs zero", func(t *testing.T) {
		s, err := newTestSession(t).WithDayType(catalog.DayTypeLongWeekend)
		require.NoError(t, err)
		out := Reconcile(items, s)
		assert.Equal(t, Entry("0"), out.Orders["Lettuce"])
		assert.Equal(t, Entry("25"), out.Orders["Rice"])

		unknown := newTestSession(t)
		unknown.DayType = catalog.DayType("HOLIDAY")
		out = Reconcile(items, unknown)
		assert.Equal(t, Entry("0"), out.Orders["Rice"])
	})

	t.Run("fractional stock", func(t *testing.T) {
		out := Reconcile(items, newTestSession(t).WithInventory("Rice", "2.5"))
		assert.Equal(t, Entry("7.5"), out.Orders["Rice"])
	})

	t.Run("explicit orders are never overwritten", func(t *testing.T) {
		s := newTestSession(t).WithInventory("Rice", "4").WithOrder("Rice", "1").WithOrder("Flour", DoNotOrder)
		out := Reconcile(items, s)
		assert.Equal(t, Entry("1"), out.Orders["Rice"])
		assert.Equal(t, DoNotOrder, out.Orders["Flour"])
	})

	t.Run("decoded orders are normalized", func(t *testing.T) {
		var s Session
		require.NoError(t, json.Unmarshal([]byte(`{"day_type":"WEEKDAYS",`+
			`"inventory":{"Rice":"Do not order","Flour":"2"},"orders":{"Rice":7,"Flour":-5}}`), &s))

		out := Reconcile(items, s)
		assert.Equal(t, Entry("0"), out.Orders["Rice"])
		assert.Equal(t, Entry("0"), out.Orders["Flour"])
		assert.Equal(t, Entry("6"), out.Orders["Lettuce"])

		for _, row := range InventoryRows(items, s) {
			if d, ok := row.ToOrder.Number(); ok {
				assert.False(t, d.IsNegative(), row.Item)
			}
		}
	})

	t.Run("does not mutate inputs", func(t *testing.T) {
		s := newTestSession(t).WithInventory("Rice", "4")
		before := s.Clone()
		itemsBefore := items.Clone()

		_ = Reconcile(items, s)

		assert.Equal(t, before, s)
		assert.Equal(t, itemsBefore, items)
	})

	t.Run("is idempotent", func(t *testing.T) {
		s := newTestSession(t).
			WithInventory("Rice", "4").
			WithInventory("Chicken", DoNotOrder).
			WithOrder("Flour", "2")
		once := Reconcile(items, s)
		twice := Reconcile(items, once)
		assert.Equal(t, once, twice)
	})

	t.Run("orders are never negative and match the formula", func(t *testing.T) {
		for needed := 0; needed <= 12; needed += 3 {
			for have := 0; have <= 12; have += 2 {
				cat := catalog.Catalog{{Name: "X", Recommended: catalog.Recommendation{catalog.DayTypeWeekday: needed}}}
				s := newTestSession(t).WithInventory("X", IntEntry(int64(have)))
				got := Reconcile(cat, s).Orders["X"].Quantity()

				want := decimal.NewFromInt(int64(max(needed-have, 0)))
				assert.True(t, got.Equal(want), fmt.Sprintf("needed=%d have=%d got=%s", needed, have, got))
				assert.False(t, got.IsNegative())
			}
		}
	})
}
