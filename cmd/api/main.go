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

	"github.com/kwisniewski/warsztat-api/internal/application/auth"
	"github.com/kwisniewski/warsztat-api/internal/application/catalog"
	"github.com/kwisniewski/warsztat-api/internal/application/directory"
	"github.com/kwisniewski/warsztat-api/internal/application/orders"
	infrapdf "github.com/kwisniewski/warsztat-api/internal/infrastructure/pdf"
	"github.com/kwisniewski/warsztat-api/internal/infrastructure/postgres"
	httpRouter "github.com/kwisniewski/warsztat-api/internal/interfaces/http"
	"github.com/kwisniewski/warsztat-api/pkg/config"
	"github.com/kwisniewski/warsztat-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	vehicleRepo := postgres.NewVehicleRepository(pool)
	serviceRepo := postgres.NewServiceRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	clientUC := directory.NewClientUseCase(clientRepo)
	vehicleUC := directory.NewVehicleUseCase(vehicleRepo)
	serviceUC := catalog.NewServiceUseCase(serviceRepo)
	materialUC := catalog.NewMaterialUseCase(materialRepo)

	// PDF: printable repair estimate
	estimateGen := infrapdf.NewMarotoEstimateGenerator()
	orderUC := orders.NewOrderUseCase(
		orderRepo, clientRepo, vehicleRepo, serviceRepo, materialRepo,
		txRunner, estimateGen,
		orders.ShopIdentity{
			Name:    cfg.Workshop.Name,
			Address: cfg.Workshop.Address,
			City:    cfg.Workshop.City,
			Phone:   cfg.Workshop.Phone,
		},
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Warsztat API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		ClientUC:   clientUC,
		VehicleUC:  vehicleUC,
		ServiceUC:  serviceUC,
		MaterialUC: materialUC,
		OrderUC:    orderUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
