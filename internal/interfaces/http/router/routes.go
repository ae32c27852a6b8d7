package router

import (
	"github.com/orderpad/backend/internal/domain/access"
	"github.com/orderpad/backend/internal/interfaces/http/handler"
	"github.com/orderpad/backend/internal/interfaces/http/middleware"
)

// Handlers are the API handlers mounted by RegisterAPI
type Handlers struct {
	Gate     *handler.GateHandler
	Catalog  *handler.CatalogHandler
	Sessions *handler.SessionHandler
	Exports  *handler.ExportHandler
	Setup    *handler.SetupHandler
}

// RegisterAPI registers every API route on r. Setup and the full inventory
// export require the X-Passphrase header to unlock their gate.
func RegisterAPI(r *Router, h Handlers, authorizer access.Authorizer) {
	system := NewDomainGroup("system", "")
	system.GET("/health", h.Catalog.Health)
	system.GET("/catalog", h.Catalog.Get)
	system.POST("/gate/verify", h.Gate.Verify)

	sessions := NewDomainGroup("sessions", "/sessions")
	sessions.POST("", h.Sessions.Start)
	sessions.POST("/day-type", h.Sessions.ChangeDayType)
	sessions.POST("/inventory", h.Sessions.UpdateInventory)
	sessions.POST("/order", h.Sessions.UpdateOrder)
	sessions.POST("/note", h.Sessions.UpdateNote)
	sessions.POST("/final-note", h.Sessions.UpdateFinalNote)
	sessions.POST("/do-not-recommend", h.Sessions.ToggleDoNotRecommend)
	sessions.POST("/apply", h.Sessions.Apply)

	exports := NewDomainGroup("exports", "/exports")
	exports.POST("/order-pdf", h.Exports.OrderDocument)
	exports.POST("/full-inventory",
		middleware.RequireGate(authorizer, access.GateFullInventoryExport),
		h.Exports.FullInventory,
	)

	setup := NewDomainGroup("setup", "/setup").
		Use(middleware.RequireGate(authorizer, access.GateSetup))
	setup.GET("/catalog", h.Setup.GetCatalog)
	setup.GET("/catalog.csv", h.Setup.ExportCSV)
	setup.PUT("/recommendations", h.Setup.UpdateRecommendation)
	setup.DELETE("/overrides", h.Setup.Reset)

	items := setup.Group("items", "/items")
	items.POST("", h.Setup.AddItem)
	items.POST("/move", h.Setup.MoveItem)
	items.PUT("/order", h.Setup.ReorderItems)
	items.DELETE("/:name", h.Setup.RemoveItem)

	r.Register(system).
		Register(sessions).
		Register(exports).
		Register(setup)
}
