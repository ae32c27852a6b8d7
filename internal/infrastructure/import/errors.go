package csvimport

import (
	"errors"
	"fmt"
)

// Row issue codes
const (
	ErrCodeImportEmptyName       = "ERR_IMPORT_EMPTY_NAME"
	ErrCodeImportInvalidNumber   = "ERR_IMPORT_INVALID_NUMBER"
	ErrCodeImportMalformedRow    = "ERR_IMPORT_MALFORMED_ROW"
	ErrCodeImportUnknownCategory = "ERR_IMPORT_UNKNOWN_CATEGORY"
)

var (
	// ErrEmptyFile is returned when the CSV input is empty
	ErrEmptyFile = errors.New("CSV file is empty")

	// ErrInvalidEncoding is returned when the input is not UTF-8
	ErrInvalidEncoding = errors.New("invalid file encoding")

	// ErrMissingHeader is returned when the CSV input has no header row
	ErrMissingHeader = errors.New("CSV file missing header row")
)

// RowIssue records a row that was dropped or a field that was defaulted while
// loading. Issues never stop a load.
type RowIssue struct {
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// Error implements the error interface
func (e RowIssue) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("row %d, column '%s': %s", e.Row, e.Column, e.Message)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}
