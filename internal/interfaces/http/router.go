package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kwisniewski/warsztat-api/internal/application/auth"
	"github.com/kwisniewski/warsztat-api/internal/application/catalog"
	"github.com/kwisniewski/warsztat-api/internal/application/directory"
	"github.com/kwisniewski/warsztat-api/internal/application/orders"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	ClientUC   *directory.ClientUseCase
	VehicleUC  *directory.VehicleUseCase
	ServiceUC  *catalog.ServiceUseCase
	MaterialUC *catalog.MaterialUseCase
	OrderUC    *orders.OrderUseCase
	JWTSecret  string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Protected routes (Bearer token required)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Clients
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	// Vehicles
	vehicles := protected.Group("/vehicles")
	vehicleHandler := NewVehicleHandler(deps.VehicleUC)
	vehicles.Post("/", vehicleHandler.Create)
	vehicles.Get("/", vehicleHandler.List)
	vehicles.Get("/:id", vehicleHandler.GetByID)
	vehicles.Put("/:id", vehicleHandler.Update)
	vehicles.Delete("/:id", vehicleHandler.Delete)

	// Labor catalog
	services := protected.Group("/services")
	serviceHandler := NewServiceHandler(deps.ServiceUC)
	services.Post("/", serviceHandler.Create)
	services.Get("/", serviceHandler.List)
	services.Get("/:id", serviceHandler.GetByID)
	services.Put("/:id", serviceHandler.Update)
	services.Delete("/:id", serviceHandler.Delete)

	// Parts catalog
	materials := protected.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materials.Post("/", materialHandler.Create)
	materials.Get("/", materialHandler.List)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Put("/:id", materialHandler.Update)
	materials.Delete("/:id", materialHandler.Delete)

	// Orders and estimates. The draft estimate route must be registered
	// before /:id so "estimate" is not captured as an order id.
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	ordersGroup.Post("/estimate", orderHandler.DraftEstimate)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Put("/:id", orderHandler.Update)
	ordersGroup.Delete("/:id", orderHandler.Delete)
	ordersGroup.Post("/:id/estimate", orderHandler.Estimate)
}
