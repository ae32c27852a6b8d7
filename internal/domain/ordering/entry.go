package ordering

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// Entry is the raw value of an inventory or order field: a number, the
// DoNotOrder sentinel, or empty. The raw text is kept so exports can show
// exactly what was entered.
type Entry string

// DoNotOrder excludes an item from ordering. It is distinct from a zero quantity.
const DoNotOrder Entry = "Do not order"

// NumberEntry formats a quantity as an entry. Negative values clamp to zero.
func NumberEntry(q decimal.Decimal) Entry {
	if q.IsNegative() {
		q = decimal.Zero
	}
	return Entry(q.String())
}

// IntEntry formats an integer quantity as an entry
func IntEntry(n int64) Entry {
	return NumberEntry(decimal.NewFromInt(n))
}

// ParseEntry trims raw input and recognizes loose spellings of the sentinel
func ParseEntry(raw string) Entry {
	s := strings.TrimSpace(raw)
	switch cases.Fold().String(strings.NewReplacer("_", " ", "-", " ").Replace(s)) {
	case "do not order", "donotorder":
		return DoNotOrder
	}
	return Entry(s)
}

// IsEmpty reports whether nothing was entered
func (e Entry) IsEmpty() bool {
	return strings.TrimSpace(string(e)) == ""
}

// IsDoNotOrder reports whether the entry is the DoNotOrder sentinel
func (e Entry) IsDoNotOrder() bool {
	return e == DoNotOrder
}

// Number returns the numeric value; ok is false for empty, sentinel or unparsable entries
func (e Entry) Number() (decimal.Decimal, bool) {
	if e.IsEmpty() || e.IsDoNotOrder() {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.TrimSpace(string(e)))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Quantity returns the numeric value, degrading to zero
func (e Entry) Quantity() decimal.Decimal {
	d, _ := e.Number()
	return d
}

// IsPositive reports whether the entry is a number greater than zero
func (e Entry) IsPositive() bool {
	d, ok := e.Number()
	return ok && d.IsPositive()
}

// String returns the raw text
func (e Entry) String() string {
	return string(e)
}

// UnmarshalJSON accepts a string, a number or null
func (e *Entry) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*e = ParseEntry(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*e = Entry(n.String())
	return nil
}
