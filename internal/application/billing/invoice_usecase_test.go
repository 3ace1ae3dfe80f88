package billing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rechnungswerk/erechnung-api/internal/application/billing"
	"github.com/rechnungswerk/erechnung-api/internal/application/dto"
	"github.com/rechnungswerk/erechnung-api/internal/domain"
	"github.com/rechnungswerk/erechnung-api/internal/domain/entity"
	"github.com/rechnungswerk/erechnung-api/internal/domain/repository"
)

func TestInvoiceCreate_SummenMitDecimal(t *testing.T) {
	uc := billing.NewInvoiceUseCase(newFakeStore())

	inv, err := uc.Create(context.Background(), "firma-a", dto.CreateInvoiceRequest{
		InvoiceNumber: "RE-2026-0001",
		Items: []dto.InvoiceItemRequest{
			{Description: "Beratung", Quantity: decimal.NewFromInt(10), Price: decimal.NewFromFloat(150)},
			{Description: "Fahrtkosten", Quantity: decimal.NewFromInt(1), Price: decimal.NewFromFloat(99.99)},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, inv.ID)

	// 10×150 + 1×99.99 = 1599.99; 19% darauf = 304.00 (gerundet); brutto 1903.99.
	assert.Equal(t, "1599.99", inv.Subtotal.StringFixed(2))
	assert.Equal(t, "19", inv.TaxRate.String(), "fehlender Steuersatz -> 19")
	assert.Equal(t, "304.00", inv.TaxAmount.StringFixed(2))
	assert.Equal(t, "1903.99", inv.Total.StringFixed(2))
	assert.Equal(t, "EUR", inv.Currency)
	assert.NotEmpty(t, inv.Date, "fehlendes Datum wird auf heute gesetzt")
}

func TestInvoiceCreate_PartnerSchnappschussWirdEingebettet(t *testing.T) {
	store := newFakeStore()
	partner := entity.BusinessPartner{
		ID:   "bp-1",
		Name: "Beispiel Kunde AG",
		Address: entity.PartnerAddress{
			Street: "Hauptstraße", HouseNumber: "42", City: "München",
		},
	}
	store.seed(t, "firma-a", repository.DocBusinessPartners, []entity.BusinessPartner{partner})
	uc := billing.NewInvoiceUseCase(store)

	inv, err := uc.Create(context.Background(), "firma-a", dto.CreateInvoiceRequest{
		BusinessPartnerID: "bp-1",
		Items:             []dto.InvoiceItemRequest{{Description: "Lizenz", Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(100)}},
	})
	require.NoError(t, err)
	require.NotNil(t, inv.BusinessPartner)
	assert.Equal(t, "Beispiel Kunde AG", inv.BusinessPartner.Name)
	assert.Nil(t, inv.Customer)

	// Persistiert: Get muss dieselbe Rechnung samt Schnappschuss liefern.
	loaded, err := uc.Get(context.Background(), "firma-a", inv.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.BusinessPartner)
	assert.Equal(t, "München", loaded.BusinessPartner.Address.City)
}

func TestInvoiceCreate_UnbekannterPartner(t *testing.T) {
	uc := billing.NewInvoiceUseCase(newFakeStore())
	_, err := uc.Create(context.Background(), "firma-a", dto.CreateInvoiceRequest{
		BusinessPartnerID: "gibt-es-nicht",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoiceCreate_LegacyCustomerInline(t *testing.T) {
	uc := billing.NewInvoiceUseCase(newFakeStore())
	inv, err := uc.Create(context.Background(), "firma-a", dto.CreateInvoiceRequest{
		Customer: &dto.CreateCustomerRequest{Name: "Schmidt KG", Email: "info@schmidt.example"},
	})
	require.NoError(t, err)
	require.NotNil(t, inv.Customer)
	assert.Equal(t, "Schmidt KG", inv.Customer.Name)
	assert.Nil(t, inv.BusinessPartner)
}

func TestInvoiceListUndGet(t *testing.T) {
	uc := billing.NewInvoiceUseCase(newFakeStore())

	list, err := uc.List(context.Background(), "firma-a")
	require.NoError(t, err)
	assert.Empty(t, list, "leerer Mandant -> leere Liste ohne Fehler")

	created, err := uc.Create(context.Background(), "firma-a", dto.CreateInvoiceRequest{})
	require.NoError(t, err)

	list, err = uc.List(context.Background(), "firma-a")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	_, err = uc.Get(context.Background(), "firma-b", created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "fremder Mandant sieht die Rechnung nicht")
}

func TestPartnerCreate_Validierung(t *testing.T) {
	uc := billing.NewPartnerUseCase(newFakeStore())
	ctx := context.Background()

	_, err := uc.CreatePartner(ctx, "firma-a", dto.CreatePartnerRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "Name ist Pflicht")

	_, err = uc.CreatePartner(ctx, "firma-a", dto.CreatePartnerRequest{Name: "X", SelectedRole: "LIEFERANT"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "Rolle außerhalb des Katalogs")

	p, err := uc.CreatePartner(ctx, "firma-a", dto.CreatePartnerRequest{Name: "X", SelectedRole: "supplier"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSupplier, p.SelectedRole, "Rolle wird normalisiert")

	p, err = uc.CreatePartner(ctx, "firma-a", dto.CreatePartnerRequest{Name: "Y"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCustomer, p.SelectedRole, "leere Rolle -> CUSTOMER")
}

func TestConfigUpdateUndGet(t *testing.T) {
	uc := billing.NewConfigUseCase(newFakeStore())
	ctx := context.Background()

	cfg, err := uc.Get(ctx, "firma-a")
	require.NoError(t, err)
	assert.Nil(t, cfg, "ohne Profil nil ohne Fehler")

	_, err = uc.Update(ctx, "firma-a", dto.UpdateConfigRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "Firmenname ist Pflicht")

	updated, err := uc.Update(ctx, "firma-a", dto.UpdateConfigRequest{
		Company: dto.CompanyProfileRequest{Name: "Rechnungswerk Demo GmbH", TaxID: "DE812345670"},
	})
	require.NoError(t, err)

	cfg, err = uc.Get(ctx, "firma-a")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, updated.Company.Name, cfg.Company.Name)
	assert.Equal(t, "DE812345670", cfg.Company.TaxID)
}
