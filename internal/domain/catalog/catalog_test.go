package catalog

import (
	"errors"
	"testing"

	"github.com/orderpad/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCatalog() Catalog {
	return Catalog{
		{ID: "1", Name: "Rice", Category: CategoryDryGoods, Recommended: Recommendation{DayTypeWeekday: 20, DayTypeWeekend: 15, DayTypeLongWeekend: 25}},
		{ID: "2", Name: "Lettuce", Category: CategoryGreens, Recommended: Recommendation{DayTypeWeekday: 6, DayTypeWeekend: 8, DayTypeLongWeekend: 10}},
		{ID: "3", Name: "Flour", Category: CategoryDryGoods, Recommended: Recommendation{DayTypeWeekday: 4}},
		{ID: "4", Name: "Chicken", Category: CategoryMeat, Recommended: Recommendation{DayTypeWeekday: 12, DayTypeWeekend: 18, DayTypeLongWeekend: 24}},
	}
}

func TestCategory(t *testing.T) {
	t.Run("maps known codes to display names", func(t *testing.T) {
		assert.Equal(t, "Dry Goods", CategoryDryGoods.DisplayName())
		assert.Equal(t, "Greens", CategoryGreens.DisplayName())
		assert.Equal(t, "Meat", CategoryMeat.DisplayName())
		assert.Equal(t, "Other", CategoryOther.DisplayName())
	})

	t.Run("unknown codes display as the raw code", func(t *testing.T) {
		c := ParseCategory(" X ")
		assert.False(t, c.IsKnown())
		assert.Equal(t, "X", c.DisplayName())
	})
}

func TestParseDayType(t *testing.T) {
	cases := map[string]DayType{
		"WEEKDAYS":      DayTypeWeekday,
		"weekday":       DayTypeWeekday,
		"Weekends":      DayTypeWeekend,
		"LONG WEEKENDS": DayTypeLongWeekend,
		"long_weekend":  DayTypeLongWeekend,
		"Long Weekend":  DayTypeLongWeekend,
	}
	for raw, want := range cases {
		t.Run(raw, func(t *testing.T) {
			got, ok := ParseDayType(raw)
			require.True(t, ok)
			assert.Equal(t, want, got)
		})
	}

	t.Run("rejects unknown values", func(t *testing.T) {
		_, ok := ParseDayType("holiday")
		assert.False(t, ok)
		_, ok = ParseDayType("  ")
		assert.False(t, ok)
	})

	t.Run("labels", func(t *testing.T) {
		assert.Equal(t, "Long Weekend", DayTypeLongWeekend.Label())
		assert.Equal(t, "HOLIDAY", DayType("HOLIDAY").Label())
	})
}

func TestCatalog_Lookup(t *testing.T) {
	c := sampleCatalog()

	item, ok := c.Find("Flour")
	require.True(t, ok)
	assert.Equal(t, 4, item.RecommendedFor(DayTypeWeekday))
	assert.Equal(t, 0, item.RecommendedFor(DayTypeWeekend), "undefined day type defaults to 0")

	_, ok = c.Find("Sugar")
	assert.False(t, ok)

	assert.Equal(t, []string{"Rice", "Lettuce", "Flour", "Chicken"}, c.Names())
	assert.Equal(t, []Category{CategoryDryGoods, CategoryGreens, CategoryMeat}, c.Categories())
}

func TestCatalog_Move(t *testing.T) {
	c := sampleCatalog()

	t.Run("moves item forward", func(t *testing.T) {
		out, err := c.Move(0, 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"Lettuce", "Flour", "Rice", "Chicken"}, out.Names())
		assert.Equal(t, []string{"Rice", "Lettuce", "Flour", "Chicken"}, c.Names(), "receiver untouched")
	})

	t.Run("moves item backward", func(t *testing.T) {
		out, err := c.Move(3, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"Chicken", "Rice", "Lettuce", "Flour"}, out.Names())
	})

	t.Run("rejects out of range", func(t *testing.T) {
		_, err := c.Move(0, 4)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})
}

func TestCatalog_Reorder(t *testing.T) {
	c := sampleCatalog()

	out, err := c.Reorder([]string{"Chicken", "Flour", "Lettuce", "Rice"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Chicken", "Flour", "Lettuce", "Rice"}, out.Names())

	_, err = c.Reorder([]string{"Chicken", "Flour"})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	_, err = c.Reorder([]string{"Chicken", "Flour", "Lettuce", "Sugar"})
	assert.True(t, errors.Is(err, shared.ErrNotFound))

	_, err = c.Reorder([]string{"Chicken", "Chicken", "Lettuce", "Rice"})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
}

func TestCatalog_Add(t *testing.T) {
	c := sampleCatalog()

	t.Run("appends with next numeric id", func(t *testing.T) {
		out, err := c.Add(Item{Name: "Sugar", Category: CategoryDryGoods, Recommended: Recommendation{DayTypeWeekday: 3}})
		require.NoError(t, err)
		require.Len(t, out, 5)
		assert.Equal(t, "5", out[4].ID)
		assert.Equal(t, 3, out[4].RecommendedFor(DayTypeWeekday))
		assert.Equal(t, 0, out[4].RecommendedFor(DayTypeWeekend))
		assert.Len(t, c, 4)
	})

	t.Run("defaults category to Other", func(t *testing.T) {
		out, err := c.Add(Item{Name: "Napkins"})
		require.NoError(t, err)
		assert.Equal(t, CategoryOther, out[4].Category)
	})

	t.Run("rejects duplicates ignoring case", func(t *testing.T) {
		_, err := c.Add(Item{Name: "rice"})
		assert.True(t, errors.Is(err, shared.ErrAlreadyExists))
	})

	t.Run("rejects empty names", func(t *testing.T) {
		_, err := c.Add(Item{Name: "   "})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be empty")
	})
}

func TestCatalog_Remove(t *testing.T) {
	c := sampleCatalog()

	out, err := c.Remove("Lettuce")
	require.NoError(t, err)
	assert.Equal(t, []string{"Rice", "Flour", "Chicken"}, out.Names())

	_, err = c.Remove("Lettuce ")
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestCatalog_WithRecommendation(t *testing.T) {
	c := sampleCatalog()

	out, err := c.WithRecommendation("Rice", DayTypeWeekend, 40)
	require.NoError(t, err)
	rice, _ := out.Find("Rice")
	assert.Equal(t, 40, rice.RecommendedFor(DayTypeWeekend))

	original, _ := c.Find("Rice")
	assert.Equal(t, 15, original.RecommendedFor(DayTypeWeekend), "receiver untouched")

	out, err = c.WithRecommendation("Rice", DayTypeWeekend, -3)
	require.NoError(t, err)
	rice, _ = out.Find("Rice")
	assert.Equal(t, 0, rice.RecommendedFor(DayTypeWeekend))

	_, err = c.WithRecommendation("Rice", DayType("HOLIDAY"), 1)
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
}

func TestRecommendationOverrides(t *testing.T) {
	c := sampleCatalog()

	overrides := RecommendationOverrides{}.
		With("Rice", DayTypeWeekday, 30).
		With("Ghost", DayTypeWeekday, 9)

	t.Run("override wins for its day type only", func(t *testing.T) {
		out := overrides.Apply(c)
		rice, _ := out.Find("Rice")
		assert.Equal(t, 30, rice.RecommendedFor(DayTypeWeekday))
		assert.Equal(t, 15, rice.RecommendedFor(DayTypeWeekend))

		original, _ := c.Find("Rice")
		assert.Equal(t, 20, original.RecommendedFor(DayTypeWeekday))
	})

	t.Run("overrides for unknown items are ignored", func(t *testing.T) {
		out := overrides.Apply(c)
		assert.Equal(t, c.Names(), out.Names())
	})

	t.Run("without removes every day type", func(t *testing.T) {
		pruned := overrides.Without("Rice")
		_, ok := pruned.Get("Rice", DayTypeWeekday)
		assert.False(t, ok)
		_, ok = overrides.Get("Rice", DayTypeWeekday)
		assert.True(t, ok)
	})

	t.Run("nil overrides clone to an empty map", func(t *testing.T) {
		var none RecommendationOverrides
		assert.NotNil(t, none.Clone())
		assert.Equal(t, c, none.Apply(c))
	})
}
