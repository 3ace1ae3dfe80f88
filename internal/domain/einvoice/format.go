package einvoice

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rechnungswerk/erechnung-api/internal/domain/entity"
	"github.com/rechnungswerk/erechnung-api/pkg/erechnung"
)

// Die Quelle der übernommenen Daten sind lose JSON-Dokumente aus dem UI;
// jedes numerische Feld kann fehlen. Statt Null-Koaleszieren verstreut über
// die Builder liegt die komplette Default-Politik hier, einzeln testbar.

// ein JSON-0 ist von "fehlt" nicht unterscheidbar; nicht-positive Mengen
// gelten daher als fehlend.

// QuantityOrDefault liefert die Positionsmenge, Default 1.
func QuantityOrDefault(q decimal.Decimal) decimal.Decimal {
	if q.IsPositive() {
		return q
	}
	return decimal.NewFromInt(1)
}

// PriceOrDefault liefert den Einzelpreis, Default 0 (negativ gilt als fehlend).
func PriceOrDefault(p decimal.Decimal) decimal.Decimal {
	if p.IsNegative() {
		return decimal.Zero
	}
	return p
}

// TaxRateOrDefault liefert den Steuersatz in Prozent, Default 19.
func TaxRateOrDefault(rate decimal.Decimal) decimal.Decimal {
	if rate.IsPositive() {
		return rate
	}
	return decimal.NewFromInt(erechnung.DefaultTaxRatePercent)
}

// CurrencyOrDefault liefert die Rechnungswährung, Default EUR.
func CurrencyOrDefault(currency string) string {
	if currency == "" {
		return erechnung.DefaultCurrency
	}
	return currency
}

// LineTotal berechnet die Zeilensumme quantity × price mit aufgelösten Defaults.
func LineTotal(item entity.InvoiceItem) decimal.Decimal {
	return QuantityOrDefault(item.Quantity).Mul(PriceOrDefault(item.Price))
}

// FormatAmount rendert einen Betrag mit exakt 2 Nachkommastellen,
// Dezimalpunkt, ohne Tausendertrennung ("1000.00").
func FormatAmount(d decimal.Decimal) string {
	return d.Round(2).StringFixed(2)
}

// FormatRate rendert einen Steuersatz mit 2 Nachkommastellen ("19.00").
func FormatRate(d decimal.Decimal) string {
	return d.Round(2).StringFixed(2)
}

// ISODateOrNow liefert das ISO-Datum (YYYY-MM-DD) oder das aktuelle Datum,
// falls keines gesetzt ist.
func ISODateOrNow(iso string, now time.Time) string {
	if iso != "" {
		return iso
	}
	return now.Format("2006-01-02")
}

// CompactDate wandelt ein ISO-Datum in die kompakte CII-Form YYYYMMDD
// (Format-Code 102). Fehlt das Datum, wird das aktuelle Datum verwendet.
func CompactDate(iso string, now time.Time) string {
	if iso == "" {
		return now.Format("20060102")
	}
	return strings.ReplaceAll(iso, "-", "")
}

// Platzhalter-Stammdaten des Verkäufers.
const (
	DefaultSellerName  = "Muster Unternehmen GmbH"
	DefaultSellerTaxID = "DE123456789"
	DefaultSellerEmail = "info@musterunternehmen.de"

	// Die Postadresse des Verkäufers ist fest verdrahtet; aus der Konfiguration
	// werden nur Name, USt-IdNr. und E-Mail übernommen (beobachtetes Verhalten
	// der Vorgängerimplementierung, siehe DESIGN.md).
	SellerStreet      = "Musterstraße 1"
	SellerCity        = "Musterstadt"
	SellerPostalCode  = "12345"
	SellerCountryCode = "DE"
)

// SellerData die aufgelösten Verkäufer-Stammdaten für beide Builder.
type SellerData struct {
	Name        string
	TaxID       string
	Email       string
	Street      string
	City        string
	PostalCode  string
	CountryCode string
}

// ResolveSeller löst die Verkäuferdaten auf. Vorrang pro Feld:
// Firmenkonfiguration des Mandanten, dann der konfigurierte Fallback aus
// den Optionen, dann der eingebaute Platzhalter; nie ein Fehler.
// Die Postadresse ist immer die feste Platzhalter-Adresse.
func ResolveSeller(cfg *entity.CompanyConfig, opts Options) SellerData {
	s := SellerData{
		Name:        DefaultSellerName,
		TaxID:       DefaultSellerTaxID,
		Email:       DefaultSellerEmail,
		Street:      SellerStreet,
		City:        SellerCity,
		PostalCode:  SellerPostalCode,
		CountryCode: SellerCountryCode,
	}
	if opts.SellerFallback.Name != "" {
		s.Name = opts.SellerFallback.Name
	}
	if opts.SellerFallback.TaxID != "" {
		s.TaxID = opts.SellerFallback.TaxID
	}
	if opts.SellerFallback.Email != "" {
		s.Email = opts.SellerFallback.Email
	}
	if cfg == nil {
		return s
	}
	if cfg.Company.Name != "" {
		s.Name = cfg.Company.Name
	}
	if cfg.Company.TaxID != "" {
		s.TaxID = cfg.Company.TaxID
	}
	if cfg.Company.Email != "" {
		s.Email = cfg.Company.Email
	}
	return s
}
