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

	"github.com/rechnungswerk/erechnung-api/internal/application/analytics"
	"github.com/rechnungswerk/erechnung-api/internal/application/auth"
	"github.com/rechnungswerk/erechnung-api/internal/application/billing"
	"github.com/rechnungswerk/erechnung-api/internal/domain/einvoice"
	infraeinvoice "github.com/rechnungswerk/erechnung-api/internal/infrastructure/einvoice"
	"github.com/rechnungswerk/erechnung-api/internal/infrastructure/postgres"
	httpRouter "github.com/rechnungswerk/erechnung-api/internal/interfaces/http"
	"github.com/rechnungswerk/erechnung-api/pkg/config"
	"github.com/rechnungswerk/erechnung-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("konfiguration laden: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("anwendung startet")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("postgresql-verbindung")
	}
	defer pool.Close()

	store := postgres.NewDocumentStore(pool)
	userRepo := postgres.NewUserRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)

	// Generierungs-Engine: UBL- und CII-Builder hinter dem Orchestrator.
	orchestrator := billing.NewFormatOrchestrator(
		infraeinvoice.NewXRechnungBuilder(),
		infraeinvoice.NewZUGFeRDBuilder(),
	)
	generateUC := billing.NewGenerateFormatsUseCase(store, orchestrator)

	invoiceUC := billing.NewInvoiceUseCase(store)
	partnerUC := billing.NewPartnerUseCase(store)
	configUC := billing.NewConfigUseCase(store)
	dashboardUC := analytics.NewDashboardUseCase(statsRepo)
	authUC := auth.NewUseCase(userRepo, store, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI lokal: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "E-Rechnung API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		InvoiceUC:  invoiceUC,
		PartnerUC:  partnerUC,
		ConfigUC:   configUC,
		GenerateUC: generateUC,
		GenerateOpts: einvoice.Options{
			SellerFallback: einvoice.SellerFallback{
				Name:  cfg.Seller.Name,
				TaxID: cfg.Seller.TaxID,
				Email: cfg.Seller.Email,
			},
		},
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("http-server beendet")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown-signal empfangen, server wird beendet...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server-shutdown")
	}

	log.Info().Msg("anwendung beendet")
}
