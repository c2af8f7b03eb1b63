// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"condor/internal/delivery/http/middleware"
	"condor/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler         *handler.UserHandler
	CatalogHandler      *handler.CatalogHandler
	CartHandler         *handler.CartHandler
	PaymentHandler      *handler.PaymentHandler
	PurchaseHandler     *handler.PurchaseHandler
	NotificationHandler *handler.NotificationHandler
	DeviceHandler       *handler.DeviceHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Public auth routes
	api.POST("/register", r.params.UserHandler.Register)
	api.POST("/login", r.params.UserHandler.Login)

	// Everything below requires a valid access token
	authed := api.Group("", r.params.AuthMiddleware.Authenticate)

	authed.GET("/user", r.params.UserHandler.GetProfile)

	// Catalog
	authed.GET("/products", r.params.CatalogHandler.ListProducts)
	authed.GET("/products/barcode/:barcode", r.params.CatalogHandler.GetProductByBarcode)
	authed.GET("/products/:id", r.params.CatalogHandler.GetProduct)

	// Cart
	authed.GET("/cart", r.params.CartHandler.ListItems)
	authed.POST("/cart", r.params.CartHandler.AddItem)
	authed.PUT("/cart/:id", r.params.CartHandler.SetQuantity)
	authed.DELETE("/cart/:id", r.params.CartHandler.RemoveItem)
	authed.DELETE("/cart", r.params.CartHandler.Clear)

	// Payment methods
	authed.GET("/payment-methods", r.params.PaymentHandler.ListMethods)
	authed.POST("/payment-methods", r.params.PaymentHandler.AddMethod)
	authed.PUT("/payment-methods/:id/preferred", r.params.PaymentHandler.SetPreferred)
	authed.DELETE("/payment-methods/:id", r.params.PaymentHandler.RemoveMethod)

	// Checkout and purchase history
	authed.POST("/purchases", r.params.PurchaseHandler.Checkout)
	authed.GET("/purchases", r.params.PurchaseHandler.ListPurchases)
	authed.GET("/purchases/:id/pix", r.params.PurchaseHandler.GetPixQR)

	// Notification center
	authed.GET("/notifications", r.params.NotificationHandler.ListNotifications)
	authed.PUT("/notifications/read-all", r.params.NotificationHandler.MarkAllRead)
	authed.PUT("/notifications/:id/read", r.params.NotificationHandler.MarkRead)

	// Push devices
	authed.POST("/devices", r.params.DeviceHandler.RegisterDevice)
}
