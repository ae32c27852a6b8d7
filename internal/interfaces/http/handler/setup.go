package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/orderpad/backend/internal/application/catalog"
	"github.com/orderpad/backend/internal/domain/catalog"
)

// SetupHandler exposes the gated catalog editor
type SetupHandler struct {
	BaseHandler
	setup *catalogapp.SetupService
}

// NewSetupHandler creates a new SetupHandler
func NewSetupHandler(setup *catalogapp.SetupService) *SetupHandler {
	return &SetupHandler{setup: setup}
}

// GetCatalog handles GET /setup/catalog
func (h *SetupHandler) GetCatalog(c *gin.Context) {
	items, err := h.setup.Catalog(c.Request.Context())
	h.reply(c, items, err)
}

// UpdateRecommendation handles PUT /setup/recommendations
func (h *SetupHandler) UpdateRecommendation(c *gin.Context) {
	var req catalogapp.UpdateRecommendationRequest
	if !h.BindJSON(c, &req) {
		return
	}
	items, err := h.setup.UpdateRecommendation(c.Request.Context(), req)
	h.reply(c, items, err)
}

// AddItem handles POST /setup/items
func (h *SetupHandler) AddItem(c *gin.Context) {
	var req catalogapp.AddItemRequest
	if !h.BindJSON(c, &req) {
		return
	}
	items, err := h.setup.AddItem(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, catalogapp.ToCatalogResponse(items, h.setup.FileName()))
}

// RemoveItem handles DELETE /setup/items/:name
func (h *SetupHandler) RemoveItem(c *gin.Context) {
	items, err := h.setup.RemoveItem(c.Request.Context(), c.Param("name"))
	h.reply(c, items, err)
}

// MoveItem handles POST /setup/items/move
func (h *SetupHandler) MoveItem(c *gin.Context) {
	var req catalogapp.MoveItemRequest
	if !h.BindJSON(c, &req) {
		return
	}
	items, err := h.setup.MoveItem(c.Request.Context(), req)
	h.reply(c, items, err)
}

// ReorderItems handles PUT /setup/items/order
func (h *SetupHandler) ReorderItems(c *gin.Context) {
	var req catalogapp.ReorderItemsRequest
	if !h.BindJSON(c, &req) {
		return
	}
	items, err := h.setup.ReorderItems(c.Request.Context(), req)
	h.reply(c, items, err)
}

// ExportCSV handles GET /setup/catalog.csv. The file keeps the loaded file's name.
func (h *SetupHandler) ExportCSV(c *gin.Context) {
	data, fileName, err := h.setup.ExportCSV(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SendFile(c, fileName, catalogapp.CSVContentType, data)
}

// Reset handles DELETE /setup/overrides
func (h *SetupHandler) Reset(c *gin.Context) {
	items, err := h.setup.Reset(c.Request.Context())
	h.reply(c, items, err)
}

func (h *SetupHandler) reply(c *gin.Context, items catalog.Catalog, err error) {
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, catalogapp.ToCatalogResponse(items, h.setup.FileName()))
}
