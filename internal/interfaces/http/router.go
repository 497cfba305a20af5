package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rioplatense/vsm-api/internal/application/auth"
	"github.com/rioplatense/vsm-api/internal/application/catalog"
	"github.com/rioplatense/vsm-api/internal/application/stock"
	"github.com/rioplatense/vsm-api/internal/application/withdrawal"
	"github.com/rioplatense/vsm-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	WithdrawalUC *withdrawal.UseCase
	StockUC      *stock.QueryUseCase
	CatalogUC    *catalog.UseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Registro de usuarios (solo admin)
	protected.Post("/auth/register", RequireRole(entity.RoleAdmin), authHandler.Register)

	// Catálogo (combos de la UI)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	protected.Get("/employees", catalogHandler.SearchEmployees)
	protected.Get("/cost-centers", catalogHandler.ListCostCenters)
	protected.Get("/warehouses", catalogHandler.ListWarehouses)
	protected.Get("/materials", catalogHandler.SearchMaterials)

	// Stock en vivo contra SAP
	stockHandler := NewStockHandler(deps.StockUC)
	protected.Get("/stock", stockHandler.Query)

	// Vales de retiro
	withdrawals := protected.Group("/withdrawals")
	withdrawalHandler := NewWithdrawalHandler(deps.WithdrawalUC)
	withdrawals.Post("/", withdrawalHandler.Create)
	withdrawals.Get("/", withdrawalHandler.List)
	withdrawals.Get("/:id", withdrawalHandler.Get)
	withdrawals.Get("/:id/slip", withdrawalHandler.Slip)
	withdrawals.Post("/:id/deliver", RequireRole(entity.RoleAdmin, entity.RolePanolero), withdrawalHandler.Deliver)
	withdrawals.Post("/:id/reject", RequireRole(entity.RoleAdmin, entity.RolePanolero), withdrawalHandler.Reject)
	withdrawals.Delete("/:id", RequireRole(entity.RoleAdmin), withdrawalHandler.Cancel)
}
