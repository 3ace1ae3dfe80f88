package einvoice_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rechnungswerk/erechnung-api/internal/domain/einvoice"
	"github.com/rechnungswerk/erechnung-api/internal/domain/entity"
)

var testNow = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

// ──────────────────────────────────────────────────────────────────────────────
// Default-Politik für fehlende Felder
// ──────────────────────────────────────────────────────────────────────────────

func TestQuantityOrDefault(t *testing.T) {
	assert.True(t, decimal.NewFromInt(1).Equal(einvoice.QuantityOrDefault(decimal.Zero)),
		"Menge 0 gilt als fehlend -> 1")
	assert.True(t, decimal.NewFromInt(1).Equal(einvoice.QuantityOrDefault(decimal.NewFromInt(-3))))
	assert.True(t, decimal.NewFromFloat(2.5).Equal(einvoice.QuantityOrDefault(decimal.NewFromFloat(2.5))))
}

func TestPriceOrDefault(t *testing.T) {
	assert.True(t, decimal.Zero.Equal(einvoice.PriceOrDefault(decimal.NewFromInt(-10))),
		"negativer Preis gilt als fehlend -> 0")
	assert.True(t, decimal.Zero.Equal(einvoice.PriceOrDefault(decimal.Zero)),
		"Preis 0 ist ein gültiger Preis")
	assert.True(t, decimal.NewFromFloat(19.99).Equal(einvoice.PriceOrDefault(decimal.NewFromFloat(19.99))))
}

func TestTaxRateOrDefault(t *testing.T) {
	assert.True(t, decimal.NewFromInt(19).Equal(einvoice.TaxRateOrDefault(decimal.Zero)))
	assert.True(t, decimal.NewFromInt(7).Equal(einvoice.TaxRateOrDefault(decimal.NewFromInt(7))),
		"ermäßigter Satz darf nicht überschrieben werden")
}

func TestCurrencyOrDefault(t *testing.T) {
	assert.Equal(t, "EUR", einvoice.CurrencyOrDefault(""))
	assert.Equal(t, "CHF", einvoice.CurrencyOrDefault("CHF"))
}

func TestLineTotal_MitDefaults(t *testing.T) {
	// Menge fehlt (0) -> 1; Zeilensumme == Preis.
	item := entity.InvoiceItem{Price: decimal.NewFromFloat(150)}
	assert.True(t, decimal.NewFromFloat(150).Equal(einvoice.LineTotal(item)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Betrags- und Datumsformatierung
// ──────────────────────────────────────────────────────────────────────────────

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1000.00", einvoice.FormatAmount(decimal.NewFromInt(1000)),
		"immer 2 Nachkommastellen, keine Tausendertrennung")
	assert.Equal(t, "0.10", einvoice.FormatAmount(decimal.NewFromFloat(0.1)))
	assert.Equal(t, "2.35", einvoice.FormatAmount(decimal.NewFromFloat(2.345)),
		"kaufmännische Rundung auf 2 Stellen")
}

func TestISODateOrNow(t *testing.T) {
	assert.Equal(t, "2025-12-01", einvoice.ISODateOrNow("2025-12-01", testNow))
	assert.Equal(t, "2026-03-15", einvoice.ISODateOrNow("", testNow))
}

func TestCompactDate(t *testing.T) {
	assert.Equal(t, "20251201", einvoice.CompactDate("2025-12-01", testNow))
	assert.Equal(t, "20260315", einvoice.CompactDate("", testNow))
}

// ──────────────────────────────────────────────────────────────────────────────
// Verkäufer-Auflösung
// ──────────────────────────────────────────────────────────────────────────────

func TestResolveSeller_OhneKonfiguration(t *testing.T) {
	s := einvoice.ResolveSeller(nil, einvoice.Options{})
	assert.Equal(t, einvoice.DefaultSellerName, s.Name)
	assert.Equal(t, einvoice.DefaultSellerTaxID, s.TaxID)
	assert.Equal(t, einvoice.DefaultSellerEmail, s.Email)
	assert.Equal(t, einvoice.SellerStreet, s.Street)
}

func TestResolveSeller_TeilkonfigurationFaelltProFeldZurueck(t *testing.T) {
	cfg := &entity.CompanyConfig{Company: entity.CompanyProfile{Name: "Rechnungswerk Demo GmbH"}}
	s := einvoice.ResolveSeller(cfg, einvoice.Options{})
	assert.Equal(t, "Rechnungswerk Demo GmbH", s.Name)
	assert.Equal(t, einvoice.DefaultSellerTaxID, s.TaxID, "fehlende TaxID -> Platzhalter")
	// Die Postadresse kommt nie aus der Konfiguration.
	assert.Equal(t, einvoice.SellerStreet, s.Street)
	assert.Equal(t, einvoice.SellerCity, s.City)
}

// SELLER_*-Fallback: ersetzt die Platzhalter, verliert aber gegen die
// Mandantenkonfiguration.
func TestResolveSeller_KonfigurierterFallback(t *testing.T) {
	opts := einvoice.Options{SellerFallback: einvoice.SellerFallback{
		Name:  "Werk AG",
		TaxID: "DE999999999",
	}}

	s := einvoice.ResolveSeller(nil, opts)
	assert.Equal(t, "Werk AG", s.Name)
	assert.Equal(t, "DE999999999", s.TaxID)
	assert.Equal(t, einvoice.DefaultSellerEmail, s.Email, "leeres Fallback-Feld -> Platzhalter")
	assert.Equal(t, einvoice.SellerStreet, s.Street, "Postadresse bleibt fest")

	cfg := &entity.CompanyConfig{Company: entity.CompanyProfile{Name: "Rechnungswerk Demo GmbH"}}
	s = einvoice.ResolveSeller(cfg, opts)
	assert.Equal(t, "Rechnungswerk Demo GmbH", s.Name, "Mandantenkonfiguration hat Vorrang")
	assert.Equal(t, "DE999999999", s.TaxID, "fehlendes Konfigurationsfeld -> Fallback")
}

// ──────────────────────────────────────────────────────────────────────────────
// XML-Escaping
// ──────────────────────────────────────────────────────────────────────────────

func TestEscape(t *testing.T) {
	assert.Equal(t, "M&amp;M &lt;GmbH&gt;", einvoice.Escape(`M&M <GmbH>`))
	assert.Equal(t, "&quot;Zitat&quot; &apos;s", einvoice.Escape(`"Zitat" 's`))
	assert.Equal(t, "Müller Straße", einvoice.Escape("Müller Straße"),
		"Umlaute bleiben unverändert")
	// Bereits escapte Eingabe wird erneut escapet (kein Doppel-Escape-Schutz).
	assert.Equal(t, "&amp;amp;", einvoice.Escape("&amp;"))
}
