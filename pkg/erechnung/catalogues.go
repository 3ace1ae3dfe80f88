// Package erechnung enthält Code-Kataloge für die elektronische Rechnung
// nach EN 16931 (XRechnung 3.0 / ZUGFeRD 2.2).
package erechnung

// =============================================================================
// UNTDID 1001 - Dokumenttypen
// =============================================================================

const (
	// DocTypeCommercialInvoice Handelsrechnung; einziger hier erzeugter Dokumenttyp.
	DocTypeCommercialInvoice = "380"
)

// =============================================================================
// UN/ECE Recommendation 20 - Maßeinheiten (@unitCode)
// =============================================================================

const (
	UnitPiece = "C62" // Stück / "one"
	UnitHour  = "HUR" // Stunde
	UnitDay   = "DAY" // Tag
	UnitKilo  = "KGM" // Kilogramm
)

// =============================================================================
// UNTDID 5305 - Steuerkategorien
// =============================================================================

const (
	TaxCategoryStandard = "S" // Regelsteuersatz
	TaxCategoryZero     = "Z" // Nullsatz
	TaxCategoryExempt   = "E" // steuerbefreit
)

// TaxSchemeVAT Steuerschema-ID für Umsatzsteuer (UBL cac:TaxScheme/cbc:ID).
const TaxSchemeVAT = "VAT"

// =============================================================================
// UNTDID 4461 - Zahlungsmittel
// =============================================================================

const (
	PaymentMeansSEPACredit = "58" // SEPA-Überweisung
	PaymentMeansSEPADebit  = "59" // SEPA-Lastschrift
	PaymentMeansCard       = "54" // Kreditkarte
)

// DefaultCurrency Währung, falls die Rechnung keine trägt.
const DefaultCurrency = "EUR"

// DefaultTaxRatePercent Regelsteuersatz (DE), falls die Rechnung keinen trägt.
const DefaultTaxRatePercent = 19

// countryCodes bildet Ländernamen (deutsch und englisch) auf ISO-3166-1-alpha-2 ab.
// Unbekannte oder fehlende Länder fallen still auf DE zurück; kein Fehler.
var countryCodes = map[string]string{
	"Deutschland": "DE",
	"Germany":     "DE",
	"Österreich":  "AT",
	"Austria":     "AT",
	"Schweiz":     "CH",
	"Switzerland": "CH",
	"Frankreich":  "FR",
	"France":      "FR",
	"Niederlande": "NL",
	"Netherlands": "NL",
}

// CountryCode liefert den ISO-Code zum Ländernamen, Default "DE".
func CountryCode(countryName string) string {
	if code, ok := countryCodes[countryName]; ok {
		return code
	}
	return "DE"
}
