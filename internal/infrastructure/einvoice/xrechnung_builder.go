package einvoice

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rechnungswerk/erechnung-api/internal/domain/einvoice"
	"github.com/rechnungswerk/erechnung-api/internal/domain/entity"
	"github.com/rechnungswerk/erechnung-api/pkg/erechnung"
)

// Offizielle UBL-2.1-Namespaces und XRechnung-3.0-Kennungen.
const (
	NsInvoice = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	NsCac     = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	NsCbc     = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"

	// CustomizationID der XRechnung 3.0 (EN-16931-konform, KoSIT).
	XRechnungCustomizationID = "urn:cen.eu:en16931:2017#compliant#urn:xeinkauf.de:kosit:xrechnung_3.0"
	// ProfileID Peppol BIS Billing 3.0.
	XRechnungProfileID = "urn:fdc:peppol.eu:2017:poacc:billing:01:1.0"
)

// XMLDeclaration steht auf beiden Dokumenten exakt so.
const XMLDeclaration = `<?xml version="1.0" encoding="UTF-8"?>`

// PlaceholderLineName Positionsname der Platzhalterzeile bei leerer Positionsliste.
// Beide Formate verlangen mindestens eine Rechnungszeile.
const PlaceholderLineName = "Keine Positionen"

// XRechnungBuilder erzeugt ein UBL-2.1-Invoice-Dokument nach der
// XRechnung-3.0-Customization (EN 16931). Reine Funktion über den Eingaben;
// kein I/O, keine Validierung gegen XSD/Schematron.
type XRechnungBuilder struct{}

// NewXRechnungBuilder erstellt den Builder.
func NewXRechnungBuilder() *XRechnungBuilder {
	return &XRechnungBuilder{}
}

// Build generiert das XRechnung-Dokument für die Rechnung.
// customer ist die bereits aufgelöste Käuferform; now liefert das
// Fallback-Datum für Rechnungen ohne Ausstellungsdatum.
func (b *XRechnungBuilder) Build(inv *entity.Invoice, cfg *entity.CompanyConfig, customer einvoice.CustomerData, opts einvoice.Options, now time.Time) (*einvoice.Result, error) {
	if inv == nil {
		return nil, fmt.Errorf("einvoice: invoice fehlt")
	}
	_ = opts // Platzhalter für künftige Erweiterungen

	number := inv.DisplayNumber()
	currency := einvoice.CurrencyOrDefault(inv.Currency)
	seller := einvoice.ResolveSeller(cfg, opts)
	taxRate := einvoice.TaxRateOrDefault(inv.TaxRate)

	w := newUBLWriter()
	w.raw(XMLDeclaration)
	w.open(`Invoice xmlns="` + NsInvoice + `" xmlns:cac="` + NsCac + `" xmlns:cbc="` + NsCbc + `"`)

	w.leaf("cbc:CustomizationID", XRechnungCustomizationID)
	w.leaf("cbc:ProfileID", XRechnungProfileID)
	w.leaf("cbc:ID", number)
	w.leaf("cbc:IssueDate", einvoice.ISODateOrNow(inv.Date, now))
	if inv.DueDate != "" {
		w.leaf("cbc:DueDate", inv.DueDate)
	}
	w.leaf("cbc:InvoiceTypeCode", erechnung.DocTypeCommercialInvoice)
	if inv.Notes != "" {
		w.leaf("cbc:Note", inv.Notes)
	}
	w.leaf("cbc:DocumentCurrencyCode", currency)

	b.writeSupplierParty(w, seller)
	b.writeCustomerParty(w, customer)
	b.writePaymentMeans(w, number)
	b.writeTaxTotal(w, inv, taxRate, currency)
	b.writeMonetaryTotal(w, inv, currency)
	b.writeInvoiceLines(w, inv.Items, taxRate, currency)

	w.close("Invoice")

	xml := w.String()
	return &einvoice.Result{
		Format:   einvoice.FormatXRechnung,
		Version:  einvoice.VersionXRechnung,
		Standard: einvoice.Standard,
		XML:      xml,
		FileName: "XRechnung_" + number + ".xml",
		MimeType: einvoice.MimeType,
		Size:     len(xml),
	}, nil
}

// writeSupplierParty: Name/USt-IdNr./E-Mail aus der Konfiguration, Postadresse
// fest verdrahtet (beobachtete Asymmetrie der Vorgängerimplementierung).
func (b *XRechnungBuilder) writeSupplierParty(w *ublWriter, seller einvoice.SellerData) {
	w.open("cac:AccountingSupplierParty")
	w.open("cac:Party")

	w.open("cac:PartyName")
	w.leaf("cbc:Name", seller.Name)
	w.close("cac:PartyName")

	w.open("cac:PostalAddress")
	w.leaf("cbc:StreetName", seller.Street)
	w.leaf("cbc:CityName", seller.City)
	w.leaf("cbc:PostalZone", seller.PostalCode)
	w.open("cac:Country")
	w.leaf("cbc:IdentificationCode", seller.CountryCode)
	w.close("cac:Country")
	w.close("cac:PostalAddress")

	w.open("cac:PartyTaxScheme")
	w.leaf("cbc:CompanyID", seller.TaxID)
	w.open("cac:TaxScheme")
	w.leaf("cbc:ID", erechnung.TaxSchemeVAT)
	w.close("cac:TaxScheme")
	w.close("cac:PartyTaxScheme")

	w.open("cac:Contact")
	w.leaf("cbc:ElectronicMail", seller.Email)
	w.close("cac:Contact")

	w.close("cac:Party")
	w.close("cac:AccountingSupplierParty")
}

func (b *XRechnungBuilder) writeCustomerParty(w *ublWriter, customer einvoice.CustomerData) {
	w.open("cac:AccountingCustomerParty")
	w.open("cac:Party")

	w.open("cac:PartyName")
	w.leaf("cbc:Name", customer.Name)
	w.close("cac:PartyName")

	street := strings.TrimSpace(customer.Street + " " + customer.HouseNumber)
	w.open("cac:PostalAddress")
	w.leaf("cbc:StreetName", street)
	w.leaf("cbc:CityName", customer.City)
	w.leaf("cbc:PostalZone", customer.PostalCode)
	w.open("cac:Country")
	w.leaf("cbc:IdentificationCode", customer.CountryCode)
	w.close("cac:Country")
	w.close("cac:PostalAddress")

	// Steuerblock nur, wenn der Käufer eine USt-IdNr. hat.
	if customer.TaxID != "" {
		w.open("cac:PartyTaxScheme")
		w.leaf("cbc:CompanyID", customer.TaxID)
		w.open("cac:TaxScheme")
		w.leaf("cbc:ID", erechnung.TaxSchemeVAT)
		w.close("cac:TaxScheme")
		w.close("cac:PartyTaxScheme")
	}

	if customer.Email != "" {
		w.open("cac:Contact")
		w.leaf("cbc:ElectronicMail", customer.Email)
		w.close("cac:Contact")
	}

	w.close("cac:Party")
	w.close("cac:AccountingCustomerParty")
}

func (b *XRechnungBuilder) writePaymentMeans(w *ublWriter, number string) {
	w.open("cac:PaymentMeans")
	w.leaf("cbc:PaymentMeansCode", erechnung.PaymentMeansSEPACredit)
	w.leaf("cbc:PaymentID", number)
	w.close("cac:PaymentMeans")
}

func (b *XRechnungBuilder) writeTaxTotal(w *ublWriter, inv *entity.Invoice, taxRate decimal.Decimal, currency string) {
	w.open("cac:TaxTotal")
	w.leafAmount("cbc:TaxAmount", einvoice.FormatAmount(inv.TaxAmount), currency)
	w.open("cac:TaxSubtotal")
	w.leafAmount("cbc:TaxableAmount", einvoice.FormatAmount(inv.Subtotal), currency)
	w.leafAmount("cbc:TaxAmount", einvoice.FormatAmount(inv.TaxAmount), currency)
	w.open("cac:TaxCategory")
	w.leaf("cbc:ID", erechnung.TaxCategoryStandard)
	w.leaf("cbc:Percent", einvoice.FormatRate(taxRate))
	w.open("cac:TaxScheme")
	w.leaf("cbc:ID", erechnung.TaxSchemeVAT)
	w.close("cac:TaxScheme")
	w.close("cac:TaxCategory")
	w.close("cac:TaxSubtotal")
	w.close("cac:TaxTotal")
}

func (b *XRechnungBuilder) writeMonetaryTotal(w *ublWriter, inv *entity.Invoice, currency string) {
	// Keine Behandlung von Zu-/Abschlägen: Zeilensumme == Nettobetrag.
	w.open("cac:LegalMonetaryTotal")
	w.leafAmount("cbc:LineExtensionAmount", einvoice.FormatAmount(inv.Subtotal), currency)
	w.leafAmount("cbc:TaxExclusiveAmount", einvoice.FormatAmount(inv.Subtotal), currency)
	w.leafAmount("cbc:TaxInclusiveAmount", einvoice.FormatAmount(inv.Total), currency)
	w.leafAmount("cbc:PayableAmount", einvoice.FormatAmount(inv.Total), currency)
	w.close("cac:LegalMonetaryTotal")
}

func (b *XRechnungBuilder) writeInvoiceLines(w *ublWriter, items []entity.InvoiceItem, taxRate decimal.Decimal, currency string) {
	if len(items) == 0 {
		// Beide Schemata verlangen >= 1 Zeile: Platzhalter mit Nullbeträgen.
		b.writeLine(w, 1, PlaceholderLineName, "0.00", "0.00", "0.00", taxRate, currency)
		return
	}
	for i, item := range items {
		qty := einvoice.QuantityOrDefault(item.Quantity)
		price := einvoice.PriceOrDefault(item.Price)
		b.writeLine(w, i+1,
			item.Description,
			einvoice.FormatAmount(qty),
			einvoice.FormatAmount(qty.Mul(price)),
			einvoice.FormatAmount(price),
			taxRate, currency,
		)
	}
}

func (b *XRechnungBuilder) writeLine(w *ublWriter, id int, name, qty, lineTotal, unitPrice string, taxRate decimal.Decimal, currency string) {
	w.open("cac:InvoiceLine")
	w.leaf("cbc:ID", strconv.Itoa(id))
	w.leafAttr("cbc:InvoicedQuantity", qty, "unitCode", erechnung.UnitPiece)
	w.leafAmount("cbc:LineExtensionAmount", lineTotal, currency)

	w.open("cac:Item")
	w.leaf("cbc:Name", name)
	w.open("cac:ClassifiedTaxCategory")
	w.leaf("cbc:ID", erechnung.TaxCategoryStandard)
	w.leaf("cbc:Percent", einvoice.FormatRate(taxRate))
	w.open("cac:TaxScheme")
	w.leaf("cbc:ID", erechnung.TaxSchemeVAT)
	w.close("cac:TaxScheme")
	w.close("cac:ClassifiedTaxCategory")
	w.close("cac:Item")

	w.open("cac:Price")
	w.leafAmount("cbc:PriceAmount", unitPrice, currency)
	w.close("cac:Price")

	w.close("cac:InvoiceLine")
}

// ublWriter schreibt eingerücktes XML mit expliziten Präfixen. Jeder dynamische
// Wert läuft durch einvoice.Escape; die Tag-Namen selbst sind Literale.
type ublWriter struct {
	buf   bytes.Buffer
	depth int
}

func newUBLWriter() *ublWriter {
	return &ublWriter{}
}

func (w *ublWriter) indent() {
	for i := 0; i < w.depth; i++ {
		w.buf.WriteString("  ")
	}
}

// raw schreibt eine Zeile ohne Escaping (Deklaration).
func (w *ublWriter) raw(line string) {
	w.buf.WriteString(line)
	w.buf.WriteByte('\n')
}

// open öffnet ein Element; tag darf Attribute enthalten.
func (w *ublWriter) open(tag string) {
	w.indent()
	w.buf.WriteString("<")
	w.buf.WriteString(tag)
	w.buf.WriteString(">\n")
	w.depth++
}

func (w *ublWriter) close(tag string) {
	w.depth--
	w.indent()
	w.buf.WriteString("</")
	w.buf.WriteString(tag)
	w.buf.WriteString(">\n")
}

// leaf schreibt <tag>wert</tag> mit escaptem Wert.
func (w *ublWriter) leaf(tag, value string) {
	w.indent()
	fmt.Fprintf(&w.buf, "<%s>%s</%s>\n", tag, einvoice.Escape(value), tag)
}

// leafAttr schreibt ein Blatt mit einem Attribut.
func (w *ublWriter) leafAttr(tag, value, attrName, attrValue string) {
	w.indent()
	fmt.Fprintf(&w.buf, `<%s %s="%s">%s</%s>`+"\n", tag, attrName, einvoice.Escape(attrValue), einvoice.Escape(value), tag)
}

// leafAmount schreibt einen Betrag mit currencyID-Attribut.
func (w *ublWriter) leafAmount(tag, value, currency string) {
	w.leafAttr(tag, value, "currencyID", currency)
}

func (w *ublWriter) String() string {
	return w.buf.String()
}
