package ordering

import (
	"fmt"
	"time"

	"github.com/orderpad/backend/internal/domain/catalog"
	"github.com/orderpad/backend/internal/domain/shared"
)

// DateLayout is the date format used in document bodies and export file names
const DateLayout = "2006-01-02"

// ErrNotApplied is returned when an order document is requested before reconciliation ran
var ErrNotApplied = shared.Errorf(shared.ErrInvalidState, "Apply recommendations before generating the order document")

// OrderLine is one printed item
type OrderLine struct {
	Name     string `json:"name"`
	Quantity Entry  `json:"quantity"`
	Note     string `json:"note,omitempty"`
}

// Text renders the line as "<name>: <qty>[, <note>]"
func (l OrderLine) Text() string {
	if l.Note != "" {
		return fmt.Sprintf("%s: %s, %s", l.Name, l.Quantity, l.Note)
	}
	return fmt.Sprintf("%s: %s", l.Name, l.Quantity)
}

// OrderGroup is the set of lines printed under one category heading
type OrderGroup struct {
	Category catalog.Category `json:"category"`
	Title    string           `json:"title"`
	Lines    []OrderLine      `json:"lines"`
}

// OrderSheet is the content of the order document before layout
type OrderSheet struct {
	Date      time.Time    `json:"date"`
	FinalNote string       `json:"final_note,omitempty"`
	Groups    []OrderGroup `json:"groups"`
}

// BuildOrderSheet selects the items with a positive order quantity and groups
// them by category in catalog order. Categories without such items are left out.
// The session must be applied and up to date with its own orders; a session
// marked applied with missing orders is rejected.
func BuildOrderSheet(items catalog.Catalog, s Session, date time.Time) (*OrderSheet, error) {
	s = s.Normalize()
	if !s.IsReconciled(items) {
		return nil, ErrNotApplied
	}

	sheet := &OrderSheet{Date: date, FinalNote: s.FinalNote}
	for _, cat := range items.Categories() {
		group := OrderGroup{Category: cat, Title: cat.DisplayName()}
		for _, item := range items {
			if item.Category != cat {
				continue
			}
			qty, ok := s.Orders[item.Name]
			if !ok || !qty.IsPositive() {
				continue
			}
			group.Lines = append(group.Lines, OrderLine{
				Name:     item.Name,
				Quantity: qty,
				Note:     s.Notes[item.Name],
			})
		}
		if len(group.Lines) > 0 {
			sheet.Groups = append(sheet.Groups, group)
		}
	}
	return sheet, nil
}

// DateString returns the sheet date as YYYY-MM-DD
func (s *OrderSheet) DateString() string {
	return s.Date.Format(DateLayout)
}

// LineCount returns the number of item lines across all groups
func (s *OrderSheet) LineCount() int {
	n := 0
	for _, g := range s.Groups {
		n += len(g.Lines)
	}
	return n
}

// OrderDocumentFileName returns order-YYYY-MM-DD.pdf
func OrderDocumentFileName(date time.Time) string {
	return "order-" + date.Format(DateLayout) + ".pdf"
}

// FullInventoryFileName returns full-inventory-YYYY-MM-DD.xlsx
func FullInventoryFileName(date time.Time) string {
	return "full-inventory-" + date.Format(DateLayout) + ".xlsx"
}
