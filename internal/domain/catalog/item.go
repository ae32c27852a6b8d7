package catalog

import (
	"strings"

	"github.com/orderpad/backend/internal/domain/shared"
)

// Recommendation maps a day type to the recommended stock level
type Recommendation map[DayType]int

// For returns the recommended quantity for the day type, or 0 when undefined
func (r Recommendation) For(day DayType) int {
	if r == nil {
		return 0
	}
	return r[day]
}

// Clone returns an independent copy
func (r Recommendation) Clone() Recommendation {
	out := make(Recommendation, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Item is one orderable catalog row. Name is the unique key.
type Item struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Category    Category       `json:"category"`
	Recommended Recommendation `json:"recommended"`
}

// NewItem creates an item, rejecting empty names. An empty category defaults to Other.
func NewItem(id, name string, category Category, recommended Recommendation) (Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Item{}, shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot be empty")
	}
	if category == "" {
		category = CategoryOther
	}
	rec := make(Recommendation, len(AllDayTypes()))
	for _, day := range AllDayTypes() {
		rec[day] = clampQuantity(recommended.For(day))
	}
	return Item{
		ID:          strings.TrimSpace(id),
		Name:        name,
		Category:    category,
		Recommended: rec,
	}, nil
}

// RecommendedFor returns the recommended quantity for the day type
func (i Item) RecommendedFor(day DayType) int {
	return i.Recommended.For(day)
}

// Clone returns a copy that shares no maps with the receiver
func (i Item) Clone() Item {
	i.Recommended = i.Recommended.Clone()
	return i
}

func clampQuantity(q int) int {
	if q < 0 {
		return 0
	}
	return q
}
