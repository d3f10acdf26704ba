package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/server/http/handlers"
	"github.com/polkiloo/storefront/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	productHandler := handlers.NewProductHandler(facade)
	cartHandler := handlers.NewCartHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)

	api := engine.Group("/api")
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.GET("/products", productHandler.List)
	api.GET("/products/:id", productHandler.Get)

	admin := api.Group("/products")
	admin.Use(middleware.AuthRequired(facade), middleware.AdminRequired())
	admin.POST("", productHandler.Create)
	admin.PUT("/:id", productHandler.Update)
	admin.DELETE("/:id", productHandler.Delete)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(facade))
	protected.GET("/cart", cartHandler.Get)
	protected.POST("/cart", cartHandler.Add)
	protected.DELETE("/cart/:productId", cartHandler.Remove)
	protected.POST("/orders/from-cart", orderHandler.PlaceFromCart)
	protected.GET("/orders", orderHandler.List)
	protected.POST("/orders/:id/cancel", orderHandler.Cancel)

	return engine
}
