package einvoice_test

import (
	"strings"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domeinvoice "github.com/rechnungswerk/erechnung-api/internal/domain/einvoice"
	"github.com/rechnungswerk/erechnung-api/internal/domain/entity"
	infra "github.com/rechnungswerk/erechnung-api/internal/infrastructure/einvoice"
)

var testNow = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

// testInvoice eine vollständige Rechnung mit Geschäftspartner.
func testInvoice() *entity.Invoice {
	return &entity.Invoice{
		ID:            "7c0bfe4e-0000-0000-0000-000000000001",
		InvoiceNumber: "RE-2026-0042",
		Date:          "2026-02-01",
		DueDate:       "2026-02-15",
		Currency:      "EUR",
		TaxRate:       decimal.NewFromInt(19),
		Subtotal:      decimal.NewFromInt(1500),
		TaxAmount:     decimal.NewFromInt(285),
		Total:         decimal.NewFromInt(1785),
		Notes:         "Zahlbar innerhalb von 14 Tagen.",
		Items: []entity.InvoiceItem{
			{Description: "Beratungsleistung", Quantity: decimal.NewFromInt(10), Price: decimal.NewFromInt(150)},
		},
		BusinessPartner: &entity.BusinessPartner{
			Name:  "Beispiel Kunde AG",
			Email: "rechnung@beispielkunde.de",
			TaxID: "DE198765430",
			Address: entity.PartnerAddress{
				Street:      "Hauptstraße",
				HouseNumber: "42",
				City:        "München",
				PostalCode:  "80331",
				Country:     "Deutschland",
			},
		},
	}
}

func buildXRechnung(t *testing.T, inv *entity.Invoice, cfg *entity.CompanyConfig) *domeinvoice.Result {
	t.Helper()
	customer := domeinvoice.NewCustomerResolver().Resolve(inv)
	res, err := infra.NewXRechnungBuilder().Build(inv, cfg, customer, domeinvoice.Options{}, testNow)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func TestXRechnung_Kennungen(t *testing.T) {
	res := buildXRechnung(t, testInvoice(), nil)

	assert.Equal(t, domeinvoice.FormatXRechnung, res.Format)
	assert.Equal(t, "3.0", res.Version)
	assert.Equal(t, "EN16931", res.Standard)
	assert.Equal(t, "XRechnung_RE-2026-0042.xml", res.FileName)
	assert.Equal(t, "application/xml", res.MimeType)
	assert.Equal(t, len(res.XML), res.Size)

	assert.True(t, strings.HasPrefix(res.XML, infra.XMLDeclaration),
		"Dokument muss mit der XML-Deklaration beginnen")
	assert.Contains(t, res.XML, infra.XRechnungCustomizationID)
	assert.Contains(t, res.XML, infra.XRechnungProfileID)
	assert.Contains(t, res.XML, `xmlns="`+infra.NsInvoice+`"`)
	assert.Contains(t, res.XML, `xmlns:cac="`+infra.NsCac+`"`)
	assert.Contains(t, res.XML, `xmlns:cbc="`+infra.NsCbc+`"`)
}

func TestXRechnung_KernfelderUndBetraege(t *testing.T) {
	res := buildXRechnung(t, testInvoice(), nil)

	assert.Contains(t, res.XML, "<cbc:ID>RE-2026-0042</cbc:ID>")
	assert.Contains(t, res.XML, "<cbc:IssueDate>2026-02-01</cbc:IssueDate>")
	assert.Contains(t, res.XML, "<cbc:DueDate>2026-02-15</cbc:DueDate>")
	assert.Contains(t, res.XML, "<cbc:InvoiceTypeCode>380</cbc:InvoiceTypeCode>")
	assert.Contains(t, res.XML, "<cbc:DocumentCurrencyCode>EUR</cbc:DocumentCurrencyCode>")
	assert.Contains(t, res.XML, "<cbc:PaymentMeansCode>58</cbc:PaymentMeansCode>")
	assert.Contains(t, res.XML, "<cbc:PaymentID>RE-2026-0042</cbc:PaymentID>")

	assert.Contains(t, res.XML, `<cbc:TaxableAmount currencyID="EUR">1500.00</cbc:TaxableAmount>`)
	assert.Contains(t, res.XML, `<cbc:TaxInclusiveAmount currencyID="EUR">1785.00</cbc:TaxInclusiveAmount>`)
	assert.Contains(t, res.XML, `<cbc:PayableAmount currencyID="EUR">1785.00</cbc:PayableAmount>`)
	assert.Contains(t, res.XML, `<cbc:InvoicedQuantity unitCode="C62">10.00</cbc:InvoicedQuantity>`)
	assert.Contains(t, res.XML, "<cbc:Percent>19.00</cbc:Percent>")

	// Käuferadresse: Straße und Hausnummer zusammengezogen.
	assert.Contains(t, res.XML, "<cbc:StreetName>Hauptstraße 42</cbc:StreetName>")
}

func TestXRechnung_VerkaeuferPlatzhalterOhneKonfiguration(t *testing.T) {
	res := buildXRechnung(t, testInvoice(), nil)

	assert.Contains(t, res.XML, "<cbc:Name>Muster Unternehmen GmbH</cbc:Name>")
	assert.Contains(t, res.XML, "<cbc:CompanyID>DE123456789</cbc:CompanyID>")
	assert.Contains(t, res.XML, "<cbc:StreetName>Musterstraße 1</cbc:StreetName>")
}

func TestXRechnung_KonfigurierteFirmaAberFesteAdresse(t *testing.T) {
	cfg := &entity.CompanyConfig{Company: entity.CompanyProfile{
		Name:    "Rechnungswerk Demo GmbH",
		Address: "Werkstraße 12, 10115 Berlin",
		TaxID:   "DE812345670",
		Email:   "demo@rechnungswerk.dev",
	}}
	res := buildXRechnung(t, testInvoice(), cfg)

	assert.Contains(t, res.XML, "<cbc:Name>Rechnungswerk Demo GmbH</cbc:Name>")
	assert.Contains(t, res.XML, "<cbc:CompanyID>DE812345670</cbc:CompanyID>")
	// Die Verkäufer-Postadresse bleibt der feste Platzhalter, auch wenn die
	// Konfiguration eine Adresse trägt.
	assert.Contains(t, res.XML, "<cbc:StreetName>Musterstraße 1</cbc:StreetName>")
	assert.NotContains(t, res.XML, "Werkstraße")
}

func TestXRechnung_OhnePositionenPlatzhalterzeile(t *testing.T) {
	inv := testInvoice()
	inv.Items = nil
	inv.Subtotal = decimal.Zero
	inv.TaxAmount = decimal.Zero
	inv.Total = decimal.Zero

	res := buildXRechnung(t, inv, nil)

	assert.Contains(t, res.XML, "<cbc:Name>"+infra.PlaceholderLineName+"</cbc:Name>")
	assert.Contains(t, res.XML, `<cbc:InvoicedQuantity unitCode="C62">0.00</cbc:InvoicedQuantity>`)
	assert.Contains(t, res.XML, `<cbc:LineExtensionAmount currencyID="EUR">0.00</cbc:LineExtensionAmount>`)
}

func TestXRechnung_FallbacksOhneKaeuferUndDatum(t *testing.T) {
	inv := &entity.Invoice{ID: "nur-id"}
	res := buildXRechnung(t, inv, nil)

	// Keine Rechnungsnummer: die ID ist die Dokumentnummer.
	assert.Contains(t, res.XML, "<cbc:ID>nur-id</cbc:ID>")
	assert.Equal(t, "XRechnung_nur-id.xml", res.FileName)
	// Kein Datum: injizierte Uhr.
	assert.Contains(t, res.XML, "<cbc:IssueDate>2026-03-15</cbc:IssueDate>")
	assert.NotContains(t, res.XML, "<cbc:DueDate>", "ohne Fälligkeit kein DueDate-Element")
	assert.Contains(t, res.XML, "<cbc:Name>Unbekannter Kunde</cbc:Name>")
	assert.Contains(t, res.XML, "<cbc:DocumentCurrencyCode>EUR</cbc:DocumentCurrencyCode>")
}

func TestXRechnung_SonderzeichenWerdenEscapet(t *testing.T) {
	inv := testInvoice()
	inv.BusinessPartner.Name = `Müller & Söhne <GmbH> "KG"`
	inv.Items[0].Description = "Wartung & Support"
	inv.Notes = "Rabatt > 5%"

	res := buildXRechnung(t, inv, nil)

	assert.Contains(t, res.XML, "Müller &amp; Söhne &lt;GmbH&gt; &quot;KG&quot;")
	assert.Contains(t, res.XML, "Wartung &amp; Support")
	assert.Contains(t, res.XML, "Rabatt &gt; 5%")
	assert.NotContains(t, res.XML, `Söhne <GmbH>`, "rohe spitze Klammern dürfen nicht durchrutschen")

	// Parse-Rückweg: das Dokument muss wohlgeformt sein und die Werte
	// unescapet zurückliefern.
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(res.XML))
	name := doc.FindElement("//cac:AccountingCustomerParty/cac:Party/cac:PartyName/cbc:Name")
	require.NotNil(t, name)
	assert.Equal(t, `Müller & Söhne <GmbH> "KG"`, name.Text())
}

func TestXRechnung_NilInvoice(t *testing.T) {
	_, err := infra.NewXRechnungBuilder().Build(nil, nil, domeinvoice.CustomerData{}, domeinvoice.Options{}, testNow)
	assert.Error(t, err)
}
