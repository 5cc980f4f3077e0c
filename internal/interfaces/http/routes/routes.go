// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/ogtriplek/tyre-storefront/internal/config"
	"github.com/ogtriplek/tyre-storefront/internal/domain/storefront"
	"github.com/ogtriplek/tyre-storefront/internal/interfaces/http/handlers"
	"github.com/ogtriplek/tyre-storefront/internal/interfaces/http/middleware"
	"github.com/ogtriplek/tyre-storefront/internal/pkg/session"
	"github.com/sirupsen/logrus"
)

// Dependencies are the services the routes are wired to
type Dependencies struct {
	Config  *config.Config
	Catalog storefront.Catalog
	Store   storefront.Store
	Tokens  *session.TokenManager
	Logger  *logrus.Logger
}

// SetupRoutes registers every API route on rg
func SetupRoutes(rg *gin.RouterGroup, deps Dependencies) {
	SetupCatalogRoutes(rg, deps)

	// Everything below reads or changes the caller's page session
	scoped := rg.Group("")
	scoped.Use(middleware.Session(deps.Config, deps.Tokens, deps.Logger))

	SetupSelectorRoutes(scoped, deps)
	SetupFilterRoutes(scoped, deps)
	SetupProductRoutes(scoped, deps)
	SetupCartRoutes(scoped, deps)
}

// SetupCatalogRoutes sets up the raw catalog routes
func SetupCatalogRoutes(rg *gin.RouterGroup, deps Dependencies) {
	catalogHandler := handlers.NewCatalogHandler(deps.Catalog)

	catalog := rg.Group("/catalog")
	{
		catalog.GET("/vehicles", catalogHandler.ListVehicles)
		catalog.GET("/vehicles/:id", catalogHandler.GetVehicle)
		catalog.GET("/products", catalogHandler.ListProducts)
		catalog.GET("/products/:id", catalogHandler.GetProduct)
	}
}

// SetupSelectorRoutes sets up the vehicle picker routes
func SetupSelectorRoutes(rg *gin.RouterGroup, deps Dependencies) {
	selectorHandler := handlers.NewSelectorHandler(deps.Store)

	selector := rg.Group("/selector")
	{
		selector.GET("", selectorHandler.GetSelector)
		selector.PUT("/query", selectorHandler.SetQuery)
		selector.POST("/toggle", selectorHandler.Toggle)
		selector.PUT("/vehicle", selectorHandler.SelectVehicle)
		selector.DELETE("/vehicle", selectorHandler.ClearVehicle)
	}
}

// SetupFilterRoutes sets up category and attribute filter routes
func SetupFilterRoutes(rg *gin.RouterGroup, deps Dependencies) {
	filterHandler := handlers.NewFilterHandler(deps.Store, deps.Logger)

	filters := rg.Group("/filters")
	{
		filters.GET("", filterHandler.GetFilters)
		filters.GET("/options", filterHandler.GetOptions)
		filters.PUT("/category", filterHandler.SetCategory)
		filters.PUT("/attributes", filterHandler.SetAttributes)
		filters.DELETE("/attributes", filterHandler.ClearAttributes)
	}
}

// SetupProductRoutes sets up the product area route
func SetupProductRoutes(rg *gin.RouterGroup, deps Dependencies) {
	productHandler := handlers.NewProductHandler(deps.Store)

	rg.GET("/products", productHandler.GetProducts)
}

// SetupCartRoutes sets up cart routes
func SetupCartRoutes(rg *gin.RouterGroup, deps Dependencies) {
	cartHandler := handlers.NewCartHandler(deps.Store)

	cart := rg.Group("/cart")
	{
		cart.GET("", cartHandler.GetCart)
		cart.GET("/count", cartHandler.GetCartCount)
		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items/:id", cartHandler.UpdateCartItem)
		cart.DELETE("/items/:id", cartHandler.RemoveFromCart)
		cart.DELETE("", cartHandler.ClearCart)
	}
}
