// seed legt einen Demo-Mandanten mit Benutzer, Firmenprofil und einer
// Beispielrechnung an und importiert optional Geschäftspartner aus einer
// CSV-Datei (Latin-1, wie von älteren deutschen Warenwirtschaften exportiert).
//
// Aufruf: go run ./cmd/seed [pfad/partner.csv]
// CSV-Spalten: name;email;ustid;strasse;hausnummer;plz;ort;land
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/rechnungswerk/erechnung-api/internal/domain/entity"
	"github.com/rechnungswerk/erechnung-api/internal/domain/repository"
	"github.com/rechnungswerk/erechnung-api/internal/infrastructure/postgres"
	"github.com/rechnungswerk/erechnung-api/pkg/config"
)

const (
	demoEmail    = "demo@rechnungswerk.dev"
	demoPassword = "demo1234"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("konfiguration laden: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("postgresql-verbindung: %v", err)
	}
	defer pool.Close()

	store := postgres.NewDocumentStore(pool)
	users := postgres.NewUserRepository(pool)

	companyID := uuid.NewString()
	now := time.Now()

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		fail("passwort hashen: %v", err)
	}
	user := &entity.User{
		ID:           uuid.NewString(),
		CompanyID:    companyID,
		Email:        demoEmail,
		PasswordHash: string(hash),
		Role:         "admin",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, user); err != nil {
		fail("demo-benutzer anlegen: %v", err)
	}

	companyCfg := entity.CompanyConfig{Company: entity.CompanyProfile{
		Name:    "Rechnungswerk Demo GmbH",
		Address: "Werkstraße 12, 10115 Berlin",
		TaxID:   "DE812345670",
		Email:   demoEmail,
	}}
	if err := setJSON(ctx, store, companyID, repository.DocConfig, companyCfg); err != nil {
		fail("firmenprofil schreiben: %v", err)
	}

	partners := []entity.BusinessPartner{demoPartner(companyID, now)}
	if len(os.Args) > 1 {
		imported, err := readPartnersCSV(os.Args[1], companyID, now)
		if err != nil {
			fail("csv importieren: %v", err)
		}
		partners = append(partners, imported...)
	}
	if err := setJSON(ctx, store, companyID, repository.DocBusinessPartners, partners); err != nil {
		fail("geschäftspartner schreiben: %v", err)
	}

	invoices := []entity.Invoice{demoInvoice(companyID, &partners[0], now)}
	if err := setJSON(ctx, store, companyID, repository.DocInvoices, invoices); err != nil {
		fail("rechnungen schreiben: %v", err)
	}

	fmt.Printf("Demo-Mandant %s angelegt: %d Partner, 1 Rechnung\n", companyID, len(partners))
	fmt.Printf("Login: %s / %s\n", demoEmail, demoPassword)
	fmt.Printf("Rechnungs-ID für generate-formats: %s\n", invoices[0].ID)
}

// readPartnersCSV liest Partner aus einer Latin-1-CSV (Semikolon-getrennt).
func readPartnersCSV(path, companyID string, now time.Time) ([]entity.BusinessPartner, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	r.Comma = ';'
	r.FieldsPerRecord = 8

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	var partners []entity.BusinessPartner
	for i, rec := range records {
		if i == 0 && rec[0] == "name" {
			continue // Kopfzeile
		}
		partners = append(partners, entity.BusinessPartner{
			ID:           uuid.NewString(),
			CompanyID:    companyID,
			Name:         rec[0],
			Email:        rec[1],
			TaxID:        rec[2],
			SelectedRole: entity.RoleCustomer,
			Address: entity.PartnerAddress{
				Street:      rec[3],
				HouseNumber: rec[4],
				PostalCode:  rec[5],
				City:        rec[6],
				Country:     rec[7],
			},
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return partners, nil
}

func demoPartner(companyID string, now time.Time) entity.BusinessPartner {
	return entity.BusinessPartner{
		ID:           uuid.NewString(),
		CompanyID:    companyID,
		Name:         "Beispiel Kunde AG",
		Email:        "rechnung@beispielkunde.de",
		TaxID:        "DE198765430",
		SelectedRole: entity.RoleCustomer,
		Address: entity.PartnerAddress{
			Street:      "Hauptstraße",
			HouseNumber: "42",
			City:        "München",
			PostalCode:  "80331",
			Country:     "Deutschland",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func demoInvoice(companyID string, partner *entity.BusinessPartner, now time.Time) entity.Invoice {
	subtotal := decimal.NewFromInt(1500)
	taxRate := decimal.NewFromInt(19)
	taxAmount := subtotal.Mul(taxRate).Div(decimal.NewFromInt(100)).Round(2)
	return entity.Invoice{
		ID:            uuid.NewString(),
		CompanyID:     companyID,
		InvoiceNumber: "RE-2026-0001",
		Date:          now.Format("2006-01-02"),
		DueDate:       now.AddDate(0, 0, 14).Format("2006-01-02"),
		Items: []entity.InvoiceItem{
			{Description: "Beratungsleistung", Quantity: decimal.NewFromInt(10), Price: decimal.NewFromInt(150)},
		},
		Subtotal:        subtotal,
		TaxRate:         taxRate,
		TaxAmount:       taxAmount,
		Total:           subtotal.Add(taxAmount),
		Currency:        "EUR",
		Notes:           "Zahlbar innerhalb von 14 Tagen ohne Abzug.",
		BusinessPartner: partner,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func setJSON(ctx context.Context, store repository.DocumentStore, companyID, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return store.Set(ctx, companyID, key, raw)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
