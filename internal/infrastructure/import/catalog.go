package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/orderpad/backend/internal/domain/catalog"
)

// CatalogHeader is the column layout used for catalog files
var CatalogHeader = []string{"id", "name", "category", "weekdayQty", "weekendQty", "longWeekendQty"}

const (
	colID = iota
	colName
	colCategory
	colWeekday
	colWeekend
	colLongWeekend
)

var quantityColumns = []struct {
	index int
	day   catalog.DayType
}{
	{colWeekday, catalog.DayTypeWeekday},
	{colWeekend, catalog.DayTypeWeekend},
	{colLongWeekend, catalog.DayTypeLongWeekend},
}

// LoadResult is a parsed catalog plus the rows that were dropped or patched
type LoadResult struct {
	Catalog catalog.Catalog
	Issues  []RowIssue
}

// ParseCatalog reads a catalog CSV. Rows with a blank name are dropped and
// unparsable quantities become 0.
func ParseCatalog(r io.Reader) (catalog.Catalog, error) {
	res, err := ParseCatalogDetailed(r)
	if err != nil {
		return nil, err
	}
	return res.Catalog, nil
}

// ParseCatalogDetailed is ParseCatalog with per-row diagnostics
func ParseCatalogDetailed(r io.Reader) (*LoadResult, error) {
	res := &LoadResult{Catalog: catalog.Catalog{}}

	parser, err := NewCSVParser(r)
	if errors.Is(err, ErrEmptyFile) {
		return res, nil
	}
	if err != nil {
		return nil, err
	}

	if err := parser.ParseHeader(); err != nil {
		if errors.Is(err, ErrMissingHeader) {
			return res, nil
		}
		return nil, err
	}

	for {
		row, err := parser.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Issues = append(res.Issues, RowIssue{
				Row:     parser.CurrentRow(),
				Code:    ErrCodeImportMalformedRow,
				Message: err.Error(),
			})
			continue
		}
		if row.IsEmpty() {
			continue
		}

		item, issues, ok := itemFromRow(row)
		res.Issues = append(res.Issues, issues...)
		if ok {
			res.Catalog = append(res.Catalog, item)
		}
	}

	return res, nil
}

func itemFromRow(row *Row) (catalog.Item, []RowIssue, bool) {
	var issues []RowIssue

	name := row.Field(colName)
	if name == "" {
		issues = append(issues, RowIssue{
			Row:     row.LineNumber,
			Column:  CatalogHeader[colName],
			Code:    ErrCodeImportEmptyName,
			Message: "row dropped: name is empty",
		})
		return catalog.Item{}, issues, false
	}

	category := catalog.ParseCategory(row.Field(colCategory))
	if category != "" && !category.IsKnown() {
		issues = append(issues, RowIssue{
			Row:     row.LineNumber,
			Column:  CatalogHeader[colCategory],
			Code:    ErrCodeImportUnknownCategory,
			Message: "unknown category code",
			Value:   string(category),
		})
	}

	rec := make(catalog.Recommendation, len(quantityColumns))
	for _, qc := range quantityColumns {
		raw := row.Field(qc.index)
		qty, ok := parseQuantity(raw)
		if !ok {
			issues = append(issues, RowIssue{
				Row:     row.LineNumber,
				Column:  CatalogHeader[qc.index],
				Code:    ErrCodeImportInvalidNumber,
				Message: "quantity is not a number, using 0",
				Value:   raw,
			})
		}
		rec[qc.day] = qty
	}

	item, err := catalog.NewItem(row.Field(colID), name, category, rec)
	if err != nil {
		issues = append(issues, RowIssue{
			Row:     row.LineNumber,
			Column:  CatalogHeader[colName],
			Code:    ErrCodeImportEmptyName,
			Message: err.Error(),
		})
		return catalog.Item{}, issues, false
	}
	return item, issues, true
}

// parseQuantity reads the leading integer of raw, so "12.5" and "12 cases"
// both give 12. A blank value is 0 without complaint.
func parseQuantity(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, true
	}

	end := 0
	if raw[0] == '-' || raw[0] == '+' {
		end = 1
	}
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}

	n, err := strconv.Atoi(raw[:end])
	if err != nil {
		return 0, false
	}
	if n < 0 {
		n = 0
	}
	return n, true
}

// WriteCatalog writes c in the layout ParseCatalog reads
func WriteCatalog(w io.Writer, c catalog.Catalog) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CatalogHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, item := range c {
		record := []string{
			item.ID,
			item.Name,
			string(item.Category),
			strconv.Itoa(item.RecommendedFor(catalog.DayTypeWeekday)),
			strconv.Itoa(item.RecommendedFor(catalog.DayTypeWeekend)),
			strconv.Itoa(item.RecommendedFor(catalog.DayTypeLongWeekend)),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write item %q: %w", item.Name, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
