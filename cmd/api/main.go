package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/rioplatense/vsm-api/internal/application/auth"
	"github.com/rioplatense/vsm-api/internal/application/catalog"
	"github.com/rioplatense/vsm-api/internal/application/stock"
	"github.com/rioplatense/vsm-api/internal/application/withdrawal"
	infrapdf "github.com/rioplatense/vsm-api/internal/infrastructure/pdf"
	"github.com/rioplatense/vsm-api/internal/infrastructure/postgres"
	"github.com/rioplatense/vsm-api/internal/infrastructure/sap"
	httpRouter "github.com/rioplatense/vsm-api/internal/interfaces/http"
	"github.com/rioplatense/vsm-api/pkg/config"
	"github.com/rioplatense/vsm-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("sap_env", cfg.SAP.Env).
		Msg("iniciando aplicación")

	if err := cfg.SAP.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración SAP incompleta")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	withdrawalRepo := postgres.NewWithdrawalRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	costCenterRepo := postgres.NewCostCenterRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Conector SAP: un cliente RFC compartido por stock y entregas.
	sapClient := sap.NewClient(sap.Config{
		Endpoint:  cfg.SAP.Endpoint(),
		Username:  cfg.SAP.Username,
		Password:  cfg.SAP.Password,
		VerifyTLS: cfg.SAP.VerifyTLS,
		Timeout:   cfg.SAP.Timeout(),
	}, log.Component("sap"))
	stockSvc := sap.NewStockService(sapClient, log.Component("sap.stock"), cfg.SAP.MatnrPadWidth)
	deliverySvc := sap.NewDeliveryService(sapClient, log.Component("sap.delivery"))

	slipGenerator := infrapdf.NewMarotoSlipGenerator()

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	withdrawalUC := withdrawal.NewUseCase(
		txRunner, withdrawalRepo, materialRepo, employeeRepo,
		costCenterRepo, warehouseRepo, deliverySvc, slipGenerator,
		log.Component("withdrawal"),
	)
	stockUC := stock.NewQueryUseCase(materialRepo, warehouseRepo, stockSvc, log.Component("stock"))
	catalogUC := catalog.NewUseCase(employeeRepo, costCenterRepo, warehouseRepo, materialRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60, // la entrega espera la respuesta de SAP
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "VSM API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		WithdrawalUC: withdrawalUC,
		StockUC:      stockUC,
		CatalogUC:    catalogUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
