package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	orderingapp "github.com/orderpad/backend/internal/application/ordering"
)

// Response headers describing a generated file
const (
	HeaderPageCount  = "X-Page-Count"
	HeaderArchiveKey = "X-Archive-Key"
)

// ExportHandler streams the order document and the full inventory workbook
type ExportHandler struct {
	BaseHandler
	exports *orderingapp.ExportService
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(exports *orderingapp.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// OrderDocument handles POST /exports/order-pdf. The session must be applied.
func (h *ExportHandler) OrderDocument(c *gin.Context) {
	var req orderingapp.SessionRequest
	if !h.BindJSON(c, &req) {
		return
	}
	artifact, err := h.exports.OrderDocument(c.Request.Context(), req.Session)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.send(c, artifact)
}

// FullInventory handles POST /exports/full-inventory. Gated.
func (h *ExportHandler) FullInventory(c *gin.Context) {
	var req orderingapp.SessionRequest
	if !h.BindJSON(c, &req) {
		return
	}
	artifact, err := h.exports.FullInventory(c.Request.Context(), req.Session)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.send(c, artifact)
}

func (h *ExportHandler) send(c *gin.Context, a *orderingapp.Artifact) {
	if a.Pages > 0 {
		c.Header(HeaderPageCount, strconv.Itoa(a.Pages))
	}
	if a.ArchiveKey != "" {
		c.Header(HeaderArchiveKey, a.ArchiveKey)
	}
	h.SendFile(c, a.FileName, a.ContentType, a.Data)
}
