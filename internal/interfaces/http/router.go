package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rechnungswerk/erechnung-api/internal/application/analytics"
	"github.com/rechnungswerk/erechnung-api/internal/application/auth"
	"github.com/rechnungswerk/erechnung-api/internal/application/billing"
	"github.com/rechnungswerk/erechnung-api/internal/domain/einvoice"
)

// RouterDeps Abhängigkeiten für den Router.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	InvoiceUC    *billing.InvoiceUseCase
	PartnerUC    *billing.PartnerUseCase
	ConfigUC     *billing.ConfigUseCase
	GenerateUC   *billing.GenerateFormatsUseCase
	GenerateOpts einvoice.Options
	DashboardUC  *analytics.DashboardUseCase
	JWTSecret    string
}

// Router registriert die API-Routen.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (öffentlich)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Formatgenerierung (öffentlich; Rechnungssuche mandantsübergreifend)
	formatHandler := NewFormatHandler(deps.GenerateUC, deps.GenerateOpts)
	api.Post("/invoices/generate-formats", formatHandler.Generate)

	// Geschützte Routen (Bearer-Token erforderlich)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Rechnungen
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/:id", invoiceHandler.GetByID)

	// Geschäftspartner und Legacy-Kunden
	partnerHandler := NewPartnerHandler(deps.PartnerUC)
	partners := protected.Group("/partners")
	partners.Get("/", partnerHandler.ListPartners)
	partners.Post("/", partnerHandler.CreatePartner)
	partners.Get("/:id", partnerHandler.GetPartner)
	customers := protected.Group("/customers")
	customers.Get("/", partnerHandler.ListCustomers)
	customers.Post("/", partnerHandler.CreateCustomer)

	// Firmenprofil; Schreiben nur für Admins
	companyHandler := NewCompanyHandler(deps.ConfigUC)
	config := protected.Group("/config")
	config.Get("/", companyHandler.GetConfig)
	config.Put("/", RequireRole("admin"), companyHandler.UpdateConfig)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Summary)
}
