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

	"github.com/jhoicas/plate-rental-api/internal/application/billing"
	"github.com/jhoicas/plate-rental-api/internal/domain/rental"
	"github.com/jhoicas/plate-rental-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/plate-rental-api/internal/interfaces/http"
	"github.com/jhoicas/plate-rental-api/pkg/config"
	"github.com/jhoicas/plate-rental-api/pkg/logger"
	"github.com/jhoicas/plate-rental-api/pkg/money"
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
		Str("service_rate", cfg.Billing.ServiceRate.String()).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	clientRepo := postgres.NewClientRepository(pool)
	challanRepo := postgres.NewChallanRepository(pool)
	billRepo := postgres.NewBillRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	engine := rental.NewEngine(
		log.With().Str("component", "rental_engine").Logger(),
		money.FromDecimal(cfg.Billing.ServiceRate),
	)
	clientUC := billing.NewClientUseCase(clientRepo)
	calculateUC := billing.NewCalculateBillUseCase(engine)
	generateUC := billing.NewGenerateBillUseCase(
		txRunner, clientRepo, challanRepo, billRepo, engine,
		log.With().Str("component", "billing").Logger(),
		billing.GenerateOptions{
			NumberPrefix:       cfg.Billing.NumberPrefix,
			PreviewConcurrency: cfg.Billing.PreviewConcurrency,
		},
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Zerolog()))

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Plate Rental Billing API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		pingCtx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CalculateBill: calculateUC,
		GenerateBill:  generateUC,
		ClientUC:      clientUC,
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
