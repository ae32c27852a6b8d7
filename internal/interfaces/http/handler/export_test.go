package handler

import (
	"bytes"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	orderingapp "github.com/orderpad/backend/internal/application/ordering"
	"github.com/orderpad/backend/internal/domain/ordering"
	"github.com/orderpad/backend/internal/infrastructure/printing"
	"github.com/orderpad/backend/internal/infrastructure/spreadsheet"
	"github.com/orderpad/backend/internal/interfaces/http/dto"
)

func TestExportHandler_OrderDocument(t *testing.T) {
	t.Run("requires an applied session", func(t *testing.T) {
		api := newTestAPI(t)
		session := api.startSession(t)

		w := api.do(t, http.MethodPost, "/api/v1/exports/order-pdf", orderingapp.SessionRequest{Session: session})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidState, decodeError(t, w).Code)
		api.pdf.AssertNotCalled(t, "Write", mock.Anything, mock.Anything)
	})

	t.Run("streams the document as a download", func(t *testing.T) {
		api := newTestAPI(t)
		session := api.startSession(t)
		applied, err := api.sessions.Apply(t.Context(), session)
		require.NoError(t, err)

		api.pdf.On("Write", mock.Anything, mock.MatchedBy(func(sheet *ordering.OrderSheet) bool {
			return sheet.DateString() == "2026-03-14" && sheet.LineCount() == 3
		})).Return(&printing.OrderDocument{
			FileName: "order-2026-03-14.pdf",
			Data:     []byte("%PDF-1.4"),
			Pages:    1,
		}, nil)

		w := api.do(t, http.MethodPost, "/api/v1/exports/order-pdf", orderingapp.SessionRequest{Session: applied})

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, printing.PDFContentType, w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="order-2026-03-14.pdf"`)
		assert.Equal(t, "1", w.Header().Get(HeaderPageCount))
		assert.Equal(t, "%PDF-1.4", w.Body.String())
		api.pdf.AssertExpectations(t)
	})

	t.Run("renderer failure answers 502", func(t *testing.T) {
		api := newTestAPI(t)
		applied, err := api.sessions.Apply(t.Context(), api.startSession(t))
		require.NoError(t, err)

		api.pdf.On("Write", mock.Anything, mock.Anything).
			Return(nil, printing.NewRenderError(printing.ErrCodeRenderFailed, "chrome crashed", errors.New("boom")))

		w := api.do(t, http.MethodPost, "/api/v1/exports/order-pdf", orderingapp.SessionRequest{Session: applied})

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, dto.ErrCodeRenderFailed, decodeError(t, w).Code)
	})
}

func TestExportHandler_FullInventory(t *testing.T) {
	api := newTestAPI(t)
	session := api.startSession(t).
		WithInventory("Milk", ordering.Entry("4")).
		WithInventory("Lettuce", ordering.DoNotOrder)

	w := api.do(t, http.MethodPost, "/api/v1/exports/full-inventory", orderingapp.SessionRequest{Session: session})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, spreadsheet.XLSXContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "full-inventory-2026-03-14.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(spreadsheet.FullInventorySheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Milk", rows[1][0])
	assert.Equal(t, "4", rows[1][1])
	assert.Equal(t, string(ordering.DoNotOrder), rows[2][1])
}
