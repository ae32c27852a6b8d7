package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/orderpad/backend/internal/application/catalog"
	"github.com/orderpad/backend/internal/interfaces/http/dto"
)

// CatalogHandler serves the read-only catalog and the health check
type CatalogHandler struct {
	BaseHandler
	setup       *catalogapp.SetupService
	serviceName string
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(setup *catalogapp.SetupService, serviceName string) *CatalogHandler {
	return &CatalogHandler{setup: setup, serviceName: serviceName}
}

// Get handles GET /catalog
func (h *CatalogHandler) Get(c *gin.Context) {
	items, err := h.setup.Catalog(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, catalogapp.ToCatalogResponse(items, h.setup.FileName()))
}

// Health handles GET /health. The catalog must load for the service to be healthy.
func (h *CatalogHandler) Health(c *gin.Context) {
	items, err := h.setup.Catalog(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, dto.NewSuccessResponse(dto.HealthResponse{
			Status:  "unavailable",
			Service: h.serviceName,
		}))
		return
	}
	h.Success(c, dto.HealthResponse{
		Status:  "ok",
		Service: h.serviceName,
		Items:   len(items),
	})
}
