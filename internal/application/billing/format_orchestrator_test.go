package billing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rechnungswerk/erechnung-api/internal/application/billing"
	"github.com/rechnungswerk/erechnung-api/internal/domain"
	"github.com/rechnungswerk/erechnung-api/internal/domain/einvoice"
	"github.com/rechnungswerk/erechnung-api/internal/domain/entity"
	infraeinvoice "github.com/rechnungswerk/erechnung-api/internal/infrastructure/einvoice"
)

var testNow = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

func testOrchestrator() *billing.FormatOrchestrator {
	return billing.NewFormatOrchestratorWithClock(
		infraeinvoice.NewXRechnungBuilder(),
		infraeinvoice.NewZUGFeRDBuilder(),
		func() time.Time { return testNow },
	)
}

func orchestratorInvoice() *entity.Invoice {
	return &entity.Invoice{
		ID:            "inv-42",
		InvoiceNumber: "RE-2026-0042",
		Date:          "2026-02-01",
		Currency:      "EUR",
		TaxRate:       decimal.NewFromInt(19),
		Subtotal:      decimal.NewFromInt(100),
		TaxAmount:     decimal.NewFromInt(19),
		Total:         decimal.NewFromInt(119),
		Items: []entity.InvoiceItem{
			{Description: "Lizenz", Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(100)},
		},
		Customer: &entity.LegacyCustomer{Name: "Schmidt KG"},
	}
}

func TestGenerateFormats_NurXRechnung(t *testing.T) {
	bundle, err := testOrchestrator().GenerateFormats(orchestratorInvoice(), nil, "XRechnung", einvoice.Options{})
	require.NoError(t, err)

	assert.NotNil(t, bundle.Formats.XRechnung)
	assert.Nil(t, bundle.Formats.ZUGFeRD, "ZUGFeRD war nicht angefordert")
	assert.Equal(t, "inv-42", bundle.InvoiceID)
}

func TestGenerateFormats_NurZUGFeRD(t *testing.T) {
	bundle, err := testOrchestrator().GenerateFormats(orchestratorInvoice(), nil, "ZUGFeRD", einvoice.Options{})
	require.NoError(t, err)

	assert.Nil(t, bundle.Formats.XRechnung)
	assert.NotNil(t, bundle.Formats.ZUGFeRD)
}

func TestGenerateFormats_BothErzeugtBeide(t *testing.T) {
	bundle, err := testOrchestrator().GenerateFormats(orchestratorInvoice(), nil, "Both", einvoice.Options{})
	require.NoError(t, err)

	require.NotNil(t, bundle.Formats.XRechnung)
	require.NotNil(t, bundle.Formats.ZUGFeRD)
	assert.Equal(t, einvoice.FormatXRechnung, bundle.Formats.XRechnung.Format)
	assert.Equal(t, einvoice.FormatZUGFeRD, bundle.Formats.ZUGFeRD.Format)
}

func TestGenerateFormats_SelektorCaseInsensitiv(t *testing.T) {
	for _, sel := range []string{"xrechnung", "XRECHNUNG", " XRechnung ", "zugferd", "both", "BOTH"} {
		_, err := testOrchestrator().GenerateFormats(orchestratorInvoice(), nil, sel, einvoice.Options{})
		assert.NoError(t, err, "Selektor %q muss akzeptiert werden", sel)
	}
}

// Ein leerer Selektor ist kein Fehler: der Endpunkt behandelt format als
// optional, leer fällt auf Both zurück.
func TestGenerateFormats_LeererSelektorErzeugtBeide(t *testing.T) {
	for _, sel := range []string{"", "   "} {
		bundle, err := testOrchestrator().GenerateFormats(orchestratorInvoice(), nil, sel, einvoice.Options{})
		require.NoError(t, err, "Selektor %q", sel)
		assert.NotNil(t, bundle.Formats.XRechnung, "leerer Selektor muss XRechnung liefern")
		assert.NotNil(t, bundle.Formats.ZUGFeRD, "leerer Selektor muss ZUGFeRD liefern")
	}
}

func TestGenerateFormats_UnbekannterSelektor(t *testing.T) {
	for _, sel := range []string{"PDF", "ubl", "Both "} {
		if sel == "Both " {
			continue // getrimmt, gültig
		}
		_, err := testOrchestrator().GenerateFormats(orchestratorInvoice(), nil, sel, einvoice.Options{})
		require.Error(t, err, "Selektor %q", sel)
		assert.ErrorIs(t, err, domain.ErrUnknownFormat)
	}

	_, err := testOrchestrator().GenerateFormats(orchestratorInvoice(), nil, "PDF", einvoice.Options{})
	assert.Contains(t, err.Error(), `"PDF"`, "der fehlerhafte Wert muss in der Nachricht stehen")
}

func TestGenerateFormats_Metadaten(t *testing.T) {
	bundle, err := testOrchestrator().GenerateFormats(orchestratorInvoice(), nil, "Both", einvoice.Options{})
	require.NoError(t, err)

	assert.Equal(t, testNow, bundle.Metadata.GeneratedAt, "injizierte Uhr muss durchschlagen")
	assert.Equal(t, "Both", bundle.Metadata.RequestedFormat, "Selektor unnormalisiert in den Metadaten")
	assert.Equal(t, einvoice.PartnerTypeCustomer, bundle.Metadata.BusinessPartner.Type)
	assert.Equal(t, "Schmidt KG", bundle.Metadata.BusinessPartner.Name)
}

// Beide Dokumente eines Both-Laufs verwenden dieselbe Uhr: eine Rechnung ohne
// Datum bekommt in UBL und CII dasselbe Ausstellungsdatum.
func TestGenerateFormats_GemeinsameUhrBeiFehlendemDatum(t *testing.T) {
	inv := orchestratorInvoice()
	inv.Date = ""
	bundle, err := testOrchestrator().GenerateFormats(inv, nil, "Both", einvoice.Options{})
	require.NoError(t, err)

	assert.Contains(t, bundle.Formats.XRechnung.XML, "<cbc:IssueDate>2026-03-15</cbc:IssueDate>")
	assert.Contains(t, bundle.Formats.ZUGFeRD.XML, `<udt:DateTimeString format="102">20260315</udt:DateTimeString>`)
}

func TestGenerateFormats_NilInvoice(t *testing.T) {
	_, err := testOrchestrator().GenerateFormats(nil, nil, "Both", einvoice.Options{})
	assert.Error(t, err)
}
