package catalog

import (
	"strconv"

	"github.com/orderpad/backend/internal/domain/shared"
	"golang.org/x/text/cases"
)

// Catalog is the ordered list of items. Order is significant: it drives display
// and the grouping order of the order document.
//
// Mutating operations return a new Catalog and leave the receiver untouched.
type Catalog []Item

// Find returns the item with the given name
func (c Catalog) Find(name string) (Item, bool) {
	if idx := c.IndexOf(name); idx >= 0 {
		return c[idx], true
	}
	return Item{}, false
}

// IndexOf returns the position of the named item or -1
func (c Catalog) IndexOf(name string) int {
	for i := range c {
		if c[i].Name == name {
			return i
		}
	}
	return -1
}

// Names returns item names in catalog order
func (c Catalog) Names() []string {
	names := make([]string, len(c))
	for i := range c {
		names[i] = c[i].Name
	}
	return names
}

// Categories returns the distinct categories in order of first appearance
func (c Catalog) Categories() []Category {
	seen := make(map[Category]struct{})
	var out []Category
	for _, item := range c {
		if _, ok := seen[item.Category]; ok {
			continue
		}
		seen[item.Category] = struct{}{}
		out = append(out, item.Category)
	}
	return out
}

// Clone returns a deep copy
func (c Catalog) Clone() Catalog {
	if c == nil {
		return nil
	}
	out := make(Catalog, len(c))
	for i := range c {
		out[i] = c[i].Clone()
	}
	return out
}

// Move relocates the item at index from to index to
func (c Catalog) Move(from, to int) (Catalog, error) {
	if from < 0 || from >= len(c) || to < 0 || to >= len(c) {
		return nil, shared.Errorf(shared.ErrInvalidInput, "Move from %d to %d is out of range for %d items", from, to, len(c))
	}
	out := c.Clone()
	item := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append(Catalog{item}, out[to:]...)...)
	return out, nil
}

// Reorder returns the catalog arranged in the given name order.
// names must be a permutation of the catalog's names.
func (c Catalog) Reorder(names []string) (Catalog, error) {
	if len(names) != len(c) {
		return nil, shared.Errorf(shared.ErrInvalidInput, "Reorder expects %d names, got %d", len(c), len(names))
	}
	out := make(Catalog, 0, len(c))
	used := make(map[string]bool, len(names))
	for _, name := range names {
		idx := c.IndexOf(name)
		if idx < 0 {
			return nil, shared.Errorf(shared.ErrNotFound, "Item %q not found", name)
		}
		if used[name] {
			return nil, shared.Errorf(shared.ErrInvalidInput, "Item %q listed twice", name)
		}
		used[name] = true
		out = append(out, c[idx].Clone())
	}
	return out, nil
}

// Add appends an item. Names are compared case-insensitively for duplicates.
// An item without an ID gets the next free numeric ID.
func (c Catalog) Add(item Item) (Catalog, error) {
	item, err := NewItem(item.ID, item.Name, item.Category, item.Recommended)
	if err != nil {
		return nil, err
	}
	fold := cases.Fold()
	key := fold.String(item.Name)
	for i := range c {
		if fold.String(c[i].Name) == key {
			return nil, shared.Errorf(shared.ErrAlreadyExists, "Item %q already exists", c[i].Name)
		}
	}
	if item.ID == "" {
		item.ID = c.nextID()
	}
	out := append(c.Clone(), item)
	return out, nil
}

// Remove drops the named item
func (c Catalog) Remove(name string) (Catalog, error) {
	idx := c.IndexOf(name)
	if idx < 0 {
		return nil, shared.Errorf(shared.ErrNotFound, "Item %q not found", name)
	}
	out := c.Clone()
	return append(out[:idx], out[idx+1:]...), nil
}

// WithRecommendation sets the recommended quantity of one item for one day type.
// Negative quantities are clamped to 0.
func (c Catalog) WithRecommendation(name string, day DayType, qty int) (Catalog, error) {
	if !day.IsValid() {
		return nil, shared.Errorf(shared.ErrInvalidInput, "Unknown day type %q", day)
	}
	idx := c.IndexOf(name)
	if idx < 0 {
		return nil, shared.Errorf(shared.ErrNotFound, "Item %q not found", name)
	}
	out := c.Clone()
	if out[idx].Recommended == nil {
		out[idx].Recommended = Recommendation{}
	}
	out[idx].Recommended[day] = clampQuantity(qty)
	return out, nil
}

func (c Catalog) nextID() string {
	maxID := 0
	for i := range c {
		if n, err := strconv.Atoi(c[i].ID); err == nil && n > maxID {
			maxID = n
		}
	}
	return strconv.Itoa(maxID + 1)
}
