package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jhoicas/nibso-dashboard/internal/application/auth"
	"github.com/jhoicas/nibso-dashboard/internal/application/inventory"
	"github.com/jhoicas/nibso-dashboard/internal/application/loyalty"
	"github.com/jhoicas/nibso-dashboard/internal/application/ports"
	"github.com/jhoicas/nibso-dashboard/internal/application/pos"
	"github.com/jhoicas/nibso-dashboard/internal/application/promotion"
	"github.com/jhoicas/nibso-dashboard/internal/domain/entity"
)

// RouterDeps dependencias para el router. Shipments y Metrics pueden ser nil.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	Inventory     *inventory.Ledger
	Replenishment *inventory.ReplenishmentUseCase
	Promotions    *promotion.Catalog
	Loyalty       *loyalty.Registry
	Terminals     *pos.Terminals
	Sales         SalesHandlerDeps
	Shipments     ports.ShipmentLister
	Metrics       nethttp.Handler
	JWTSecret     string
}

// Router registra las rutas de la API.
//
// Permisos: cashier opera el carrito y consulta catálogo y miembros; manager además
// administra catálogo, promociones y reportes; admin además gestiona usuarios.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleManager, entity.RoleCashier)
	managers := RequireRole(entity.RoleAdmin, entity.RoleManager)
	supermarket := RequireVertical(deps.Terminals.Profile(), entity.VerticalSupermarket)

	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	users.Get("/", authHandler.ListUsers)
	users.Post("/", authHandler.CreateUser)

	// Inventario
	invHandler := NewInventoryHandler(deps.Inventory, deps.Replenishment)
	inv := protected.Group("/inventory")
	inv.Get("/", anyRole, invHandler.List)
	inv.Get("/replenishment", managers, invHandler.Replenishment)
	inv.Get("/:id", anyRole, invHandler.GetByID)
	inv.Post("/", managers, invHandler.Create)
	inv.Post("/bulk", managers, invHandler.CreateBulk)
	inv.Put("/:id", managers, invHandler.Update)

	// Promociones y fidelización (solo supermercado)
	promoHandler := NewPromotionHandler(deps.Promotions)
	promos := protected.Group("/promotions", supermarket)
	promos.Get("/", anyRole, promoHandler.List)
	promos.Post("/", managers, promoHandler.Create)
	promos.Delete("/:id", managers, promoHandler.Delete)

	loyaltyHandler := NewLoyaltyHandler(deps.Loyalty)
	members := protected.Group("/loyalty/members", supermarket, anyRole)
	members.Get("/", loyaltyHandler.List)
	members.Post("/", loyaltyHandler.Create)
	members.Get("/:id", loyaltyHandler.GetByID)

	// Punto de venta: un carrito por usuario autenticado
	posHandler := NewPOSHandler(deps.Terminals)
	cart := protected.Group("/pos/cart", anyRole)
	cart.Get("/", posHandler.View)
	cart.Delete("/", posHandler.Clear)
	cart.Post("/items", posHandler.AddItem)
	cart.Put("/items/:id", posHandler.SetQuantity)
	cart.Delete("/items/:id", posHandler.RemoveItem)
	cart.Put("/delivery", posHandler.SetDelivery)
	cart.Delete("/delivery", posHandler.ClearDelivery)
	cart.Put("/member", posHandler.AttachMember)
	cart.Delete("/member", posHandler.DetachMember)
	cart.Post("/finalize", posHandler.Finalize)

	// Reportes de ventas
	salesHandler := NewSalesHandler(deps.Sales)
	salesGroup := protected.Group("/sales")
	salesGroup.Get("/transactions/:id/receipt.pdf", anyRole, salesHandler.ReceiptPDF)
	salesGroup.Get("/transactions/:id", anyRole, salesHandler.Transaction)
	salesGroup.Get("/transactions", managers, salesHandler.Transactions)
	salesGroup.Get("/daily", managers, salesHandler.Daily)
	salesGroup.Get("/chart", managers, salesHandler.Chart)
	salesGroup.Get("/summary", managers, salesHandler.Summary)
	salesGroup.Get("/insights", managers, salesHandler.Insights)

	if deps.Shipments != nil {
		shipHandler := NewShipmentHandler(deps.Shipments)
		protected.Get("/shipments", managers, shipHandler.List)
	}
}
