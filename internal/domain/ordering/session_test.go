package ordering

import (
	"errors"
	"testing"

	"github.com/orderpad/backend/internal/domain/catalog"
	"github.com/orderpad/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) Session {
	t.Helper()
	s, err := NewSession(catalog.DayTypeWeekday)
	require.NoError(t, err)
	return s
}

func TestNewSession(t *testing.T) {
	t.Run("starts empty", func(t *testing.T) {
		s := newTestSession(t)
		assert.NotEmpty(t, s.ID)
		assert.Equal(t, catalog.DayTypeWeekday, s.DayType)
		assert.Empty(t, s.Inventory)
		assert.Empty(t, s.Orders)
		assert.False(t, s.Applied)
	})

	t.Run("rejects unknown day type", func(t *testing.T) {
		_, err := NewSession(catalog.DayType("HOLIDAY"))
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})
}

func TestSession_WithDayType(t *testing.T) {
	s := newTestSession(t).
		WithInventory("Rice", "4").
		WithNote("Rice", "basmati")
	s = Reconcile(sampleItems(), s)
	require.True(t, s.Applied)

	out, err := s.WithDayType(catalog.DayTypeWeekend)
	require.NoError(t, err)
	assert.Equal(t, catalog.DayTypeWeekend, out.DayType)
	assert.Empty(t, out.Inventory)
	assert.Empty(t, out.Orders)
	assert.False(t, out.Applied)
	assert.Equal(t, "basmati", out.Notes["Rice"], "notes survive a day type change")
	assert.True(t, s.Applied, "receiver untouched")
}

func TestSession_WithInventory(t *testing.T) {
	t.Run("resets applied", func(t *testing.T) {
		s := Reconcile(sampleItems(), newTestSession(t))
		out := s.WithInventory("Rice", "2")
		assert.False(t, out.Applied)
		assert.Equal(t, Entry("2"), out.Inventory["Rice"])
		assert.Empty(t, s.Inventory)
	})

	t.Run("do not order forces a zero order", func(t *testing.T) {
		s := newTestSession(t).WithOrder("Rice", "9").WithInventory("Rice", DoNotOrder)
		assert.Equal(t, Entry("0"), s.Orders["Rice"])
	})

	t.Run("empty entry clears the field", func(t *testing.T) {
		s := newTestSession(t).WithInventory("Rice", "2").WithInventory("Rice", "")
		_, ok := s.Inventory["Rice"]
		assert.False(t, ok)
	})
}

func TestSession_WithOrder(t *testing.T) {
	s := newTestSession(t)

	out := s.WithOrder("Rice", "5")
	assert.Equal(t, Entry("5"), out.Orders["Rice"])

	out = out.WithOrder("Rice", "-1")
	assert.Equal(t, Entry("0"), out.Orders["Rice"])

	out = out.WithOrder("Rice", DoNotOrder)
	assert.Equal(t, DoNotOrder, out.Orders["Rice"])

	out = out.WithOrder("Rice", "")
	_, ok := out.Orders["Rice"]
	assert.False(t, ok)

	out = s.WithInventory("Flour", DoNotOrder).WithOrder("Flour", "3")
	assert.Equal(t, Entry("0"), out.Orders["Flour"])
}

func TestSession_Notes(t *testing.T) {
	s := newTestSession(t).WithNote("Rice", "brown").WithFinalNote("deliver before 9")
	assert.Equal(t, "brown", s.Notes["Rice"])
	assert.Equal(t, "deliver before 9", s.FinalNote)

	s = s.WithNote("Rice", "")
	_, ok := s.Notes["Rice"]
	assert.False(t, ok)
}

func TestSession_WithDoNotRecommend(t *testing.T) {
	s := newTestSession(t).WithInventory("Rice", "4")

	on := s.WithDoNotRecommend("Rice", true)
	assert.True(t, on.DoNotRecommend["Rice"])
	assert.Equal(t, Entry("4"), on.Orders["Rice"])

	applied := Reconcile(sampleItems(), on)
	assert.Equal(t, Entry("4"), applied.Orders["Rice"], "pinned order survives reconciliation")

	off := applied.WithDoNotRecommend("Rice", false)
	assert.False(t, off.DoNotRecommend["Rice"])
	_, ok := off.Orders["Rice"]
	assert.False(t, ok)

	empty := newTestSession(t).WithDoNotRecommend("Flour", true)
	assert.Equal(t, Entry("0"), empty.Orders["Flour"])
}

func TestSession_Clone(t *testing.T) {
	var zero Session
	c := zero.Clone()
	assert.NotNil(t, c.Inventory)
	assert.NotNil(t, c.Orders)
	assert.NotNil(t, c.Notes)
	assert.Nil(t, c.DoNotRecommend)
}

func TestSession_Normalize(t *testing.T) {
	s := newTestSession(t)
	s.Inventory["Rice"] = DoNotOrder
	s.Inventory["Flour"] = "2"
	s.Orders["Rice"] = "7"
	s.Orders["Flour"] = "-5"
	s.Orders["Chicken"] = "3"
	s.Orders["Lettuce"] = DoNotOrder

	out := s.Normalize()

	assert.Equal(t, Entry("0"), out.Orders["Rice"])
	assert.Equal(t, Entry("0"), out.Orders["Flour"])
	assert.Equal(t, Entry("3"), out.Orders["Chicken"])
	assert.Equal(t, DoNotOrder, out.Orders["Lettuce"])

	t.Run("input untouched", func(t *testing.T) {
		assert.Equal(t, Entry("-5"), s.Orders["Flour"])
	})

	t.Run("negative order entered directly", func(t *testing.T) {
		got := newTestSession(t).WithOrder("Chicken", "-2")
		assert.Equal(t, Entry("0"), got.Orders["Chicken"])
	})
}
