package catalog

import "strings"

// Category is the single-letter category code carried by catalog rows
type Category string

const (
	CategoryDryGoods Category = "D"
	CategoryGreens   Category = "G"
	CategoryMeat     Category = "M"
	CategoryOther    Category = "T"
)

var categoryNames = map[Category]string{
	CategoryDryGoods: "Dry Goods",
	CategoryGreens:   "Greens",
	CategoryMeat:     "Meat",
	CategoryOther:    "Other",
}

// ParseCategory trims the raw code. Unknown codes are kept as they are so that
// they still group and print under their own heading.
func ParseCategory(raw string) Category {
	return Category(strings.TrimSpace(raw))
}

// IsKnown reports whether the code is one of D, G, M or T
func (c Category) IsKnown() bool {
	_, ok := categoryNames[c]
	return ok
}

// DisplayName returns the heading printed for the category.
// Unknown codes display as the raw code.
func (c Category) DisplayName() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return string(c)
}

// String returns the category code
func (c Category) String() string {
	return string(c)
}
