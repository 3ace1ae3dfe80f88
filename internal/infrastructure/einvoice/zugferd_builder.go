package einvoice

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/rechnungswerk/erechnung-api/internal/domain/einvoice"
	"github.com/rechnungswerk/erechnung-api/internal/domain/entity"
	"github.com/rechnungswerk/erechnung-api/pkg/erechnung"
)

// UN/CEFACT-CII-Namespaces (D16B, Version 100) und ZUGFeRD-2.2-Profil.
const (
	NsRsm = "urn:un:unece:uncefact:data:standard:CrossIndustryInvoice:100"
	NsRam = "urn:un:unece:uncefact:data:standard:ReusableAggregateBusinessInformationEntity:100"
	NsUdt = "urn:un:unece:uncefact:data:standard:UnqualifiedDataType:100"

	// ZUGFeRDGuidelineID Profil EXTENDED, EN-16931-konform (Factur-X 1.0).
	ZUGFeRDGuidelineID = "urn:cen.eu:en16931:2017#conformant#urn:factur-x.eu:1p0:extended"

	// dateFormat102 Format-Qualifier für YYYYMMDD (UNTDID 2379).
	dateFormat102 = "102"

	// taxTypeVAT Steuerart Umsatzsteuer (UNTDID 5153).
	taxTypeVAT = "VAT"
)

// ZUGFeRDBuilder erzeugt ein CrossIndustryInvoice-Dokument für das
// ZUGFeRD-2.2-Profil EXTENDED. Strukturell parallel zum XRechnung-Builder,
// aber im CII-Vokabular und mit kompakten Datumsangaben (YYYYMMDD).
// Erzeugt wird nur die XML-Komponente, keine PDF-Einbettung.
type ZUGFeRDBuilder struct{}

// NewZUGFeRDBuilder erstellt den Builder.
func NewZUGFeRDBuilder() *ZUGFeRDBuilder {
	return &ZUGFeRDBuilder{}
}

// Build generiert das ZUGFeRD-Dokument für die Rechnung.
func (b *ZUGFeRDBuilder) Build(inv *entity.Invoice, cfg *entity.CompanyConfig, customer einvoice.CustomerData, opts einvoice.Options, now time.Time) (*einvoice.Result, error) {
	if inv == nil {
		return nil, fmt.Errorf("einvoice: invoice fehlt")
	}
	_ = opts // Platzhalter für künftige Erweiterungen

	number := inv.DisplayNumber()
	currency := einvoice.CurrencyOrDefault(inv.Currency)
	seller := einvoice.ResolveSeller(cfg, opts)
	taxRate := einvoice.TaxRateOrDefault(inv.TaxRate)
	issueDate := einvoice.CompactDate(inv.Date, now)

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("rsm:CrossIndustryInvoice")
	root.CreateAttr("xmlns:rsm", NsRsm)
	root.CreateAttr("xmlns:ram", NsRam)
	root.CreateAttr("xmlns:udt", NsUdt)

	b.writeDocumentContext(root)
	b.writeExchangedDocument(root, inv, number, issueDate)

	tx := root.CreateElement("rsm:SupplyChainTradeTransaction")
	b.writeLineItems(tx, inv.Items, taxRate)
	b.writeTradeAgreement(tx, seller, customer)
	b.writeTradeDelivery(tx, issueDate)
	b.writeTradeSettlement(tx, inv, number, taxRate, currency, now)

	doc.Indent(2)
	xml, err := doc.WriteToString()
	if err != nil {
		return nil, fmt.Errorf("einvoice: zugferd serialisieren: %w", err)
	}

	return &einvoice.Result{
		Format:   einvoice.FormatZUGFeRD,
		Version:  einvoice.VersionZUGFeRD,
		Standard: einvoice.Standard,
		XML:      xml,
		FileName: "ZUGFeRD_" + number + ".xml",
		MimeType: einvoice.MimeType,
		Size:     len(xml),
	}, nil
}

func (b *ZUGFeRDBuilder) writeDocumentContext(root *etree.Element) {
	ctx := root.CreateElement("rsm:ExchangedDocumentContext")
	param := ctx.CreateElement("ram:GuidelineSpecifiedDocumentContextParameter")
	param.CreateElement("ram:ID").SetText(ZUGFeRDGuidelineID)
}

func (b *ZUGFeRDBuilder) writeExchangedDocument(root *etree.Element, inv *entity.Invoice, number, issueDate string) {
	doc := root.CreateElement("rsm:ExchangedDocument")
	doc.CreateElement("ram:ID").SetText(number)
	doc.CreateElement("ram:TypeCode").SetText(erechnung.DocTypeCommercialInvoice)

	issue := doc.CreateElement("ram:IssueDateTime")
	b.dateTimeString(issue, issueDate)

	if inv.Notes != "" {
		note := doc.CreateElement("ram:IncludedNote")
		note.CreateElement("ram:Content").SetText(inv.Notes)
	}
}

// writeLineItems: eine Position je Item, bei leerer Liste die Platzhalterzeile
// mit Nullbeträgen (>= 1 Zeile wie im UBL-Pendant).
func (b *ZUGFeRDBuilder) writeLineItems(tx *etree.Element, items []entity.InvoiceItem, taxRate decimal.Decimal) {
	if len(items) == 0 {
		b.writeLineItem(tx, 1, PlaceholderLineName, "0.00", "0.00", "0.00", taxRate)
		return
	}
	for i, item := range items {
		qty := einvoice.QuantityOrDefault(item.Quantity)
		price := einvoice.PriceOrDefault(item.Price)
		b.writeLineItem(tx, i+1,
			item.Description,
			einvoice.FormatAmount(qty),
			einvoice.FormatAmount(price),
			einvoice.FormatAmount(qty.Mul(price)),
			taxRate,
		)
	}
}

func (b *ZUGFeRDBuilder) writeLineItem(tx *etree.Element, id int, name, qty, unitPrice, lineTotal string, taxRate decimal.Decimal) {
	line := tx.CreateElement("ram:IncludedSupplyChainTradeLineItem")

	lineDoc := line.CreateElement("ram:AssociatedDocumentLineDocument")
	lineDoc.CreateElement("ram:LineID").SetText(strconv.Itoa(id))

	product := line.CreateElement("ram:SpecifiedTradeProduct")
	product.CreateElement("ram:Name").SetText(name)

	agreement := line.CreateElement("ram:SpecifiedLineTradeAgreement")
	netPrice := agreement.CreateElement("ram:NetPriceProductTradePrice")
	netPrice.CreateElement("ram:ChargeAmount").SetText(unitPrice)

	delivery := line.CreateElement("ram:SpecifiedLineTradeDelivery")
	billed := delivery.CreateElement("ram:BilledQuantity")
	billed.CreateAttr("unitCode", erechnung.UnitPiece)
	billed.SetText(qty)

	settlement := line.CreateElement("ram:SpecifiedLineTradeSettlement")
	tax := settlement.CreateElement("ram:ApplicableTradeTax")
	tax.CreateElement("ram:TypeCode").SetText(taxTypeVAT)
	tax.CreateElement("ram:CategoryCode").SetText(erechnung.TaxCategoryStandard)
	tax.CreateElement("ram:RateApplicablePercent").SetText(einvoice.FormatRate(taxRate))
	sum := settlement.CreateElement("ram:SpecifiedTradeSettlementLineMonetarySummation")
	sum.CreateElement("ram:LineTotalAmount").SetText(lineTotal)
}

func (b *ZUGFeRDBuilder) writeTradeAgreement(tx *etree.Element, seller einvoice.SellerData, customer einvoice.CustomerData) {
	agreement := tx.CreateElement("ram:ApplicableHeaderTradeAgreement")

	sellerParty := agreement.CreateElement("ram:SellerTradeParty")
	sellerParty.CreateElement("ram:Name").SetText(seller.Name)
	b.postalAddress(sellerParty, seller.PostalCode, seller.Street, seller.City, seller.CountryCode)
	sellerTax := sellerParty.CreateElement("ram:SpecifiedTaxRegistration")
	sellerTaxID := sellerTax.CreateElement("ram:ID")
	sellerTaxID.CreateAttr("schemeID", "VA")
	sellerTaxID.SetText(seller.TaxID)

	buyerParty := agreement.CreateElement("ram:BuyerTradeParty")
	buyerParty.CreateElement("ram:Name").SetText(customer.Name)
	street := strings.TrimSpace(customer.Street + " " + customer.HouseNumber)
	b.postalAddress(buyerParty, customer.PostalCode, street, customer.City, customer.CountryCode)
	if customer.TaxID != "" {
		buyerTax := buyerParty.CreateElement("ram:SpecifiedTaxRegistration")
		buyerTaxID := buyerTax.CreateElement("ram:ID")
		buyerTaxID.CreateAttr("schemeID", "VA")
		buyerTaxID.SetText(customer.TaxID)
	}
}

func (b *ZUGFeRDBuilder) postalAddress(party *etree.Element, postcode, line, city, countryCode string) {
	addr := party.CreateElement("ram:PostalTradeAddress")
	addr.CreateElement("ram:PostcodeCode").SetText(postcode)
	addr.CreateElement("ram:LineOne").SetText(line)
	addr.CreateElement("ram:CityName").SetText(city)
	addr.CreateElement("ram:CountryID").SetText(countryCode)
}

func (b *ZUGFeRDBuilder) writeTradeDelivery(tx *etree.Element, issueDate string) {
	delivery := tx.CreateElement("ram:ApplicableHeaderTradeDelivery")
	event := delivery.CreateElement("ram:ActualDeliverySupplyChainEvent")
	occurrence := event.CreateElement("ram:OccurrenceDateTime")
	b.dateTimeString(occurrence, issueDate)
}

func (b *ZUGFeRDBuilder) writeTradeSettlement(tx *etree.Element, inv *entity.Invoice, number string, taxRate decimal.Decimal, currency string, now time.Time) {
	settlement := tx.CreateElement("ram:ApplicableHeaderTradeSettlement")
	settlement.CreateElement("ram:PaymentReference").SetText(number)
	settlement.CreateElement("ram:InvoiceCurrencyCode").SetText(currency)

	means := settlement.CreateElement("ram:SpecifiedTradeSettlementPaymentMeans")
	means.CreateElement("ram:TypeCode").SetText(erechnung.PaymentMeansSEPACredit)

	tax := settlement.CreateElement("ram:ApplicableTradeTax")
	tax.CreateElement("ram:CalculatedAmount").SetText(einvoice.FormatAmount(inv.TaxAmount))
	tax.CreateElement("ram:TypeCode").SetText(taxTypeVAT)
	tax.CreateElement("ram:BasisAmount").SetText(einvoice.FormatAmount(inv.Subtotal))
	tax.CreateElement("ram:CategoryCode").SetText(erechnung.TaxCategoryStandard)
	tax.CreateElement("ram:RateApplicablePercent").SetText(einvoice.FormatRate(taxRate))

	if inv.DueDate != "" {
		terms := settlement.CreateElement("ram:SpecifiedTradePaymentTerms")
		due := terms.CreateElement("ram:DueDateDateTime")
		b.dateTimeString(due, einvoice.CompactDate(inv.DueDate, now))
	}

	sum := settlement.CreateElement("ram:SpecifiedTradeSettlementHeaderMonetarySummation")
	sum.CreateElement("ram:LineTotalAmount").SetText(einvoice.FormatAmount(inv.Subtotal))
	sum.CreateElement("ram:TaxBasisTotalAmount").SetText(einvoice.FormatAmount(inv.Subtotal))
	taxTotal := sum.CreateElement("ram:TaxTotalAmount")
	taxTotal.CreateAttr("currencyID", currency)
	taxTotal.SetText(einvoice.FormatAmount(inv.TaxAmount))
	sum.CreateElement("ram:GrandTotalAmount").SetText(einvoice.FormatAmount(inv.Total))
	sum.CreateElement("ram:DuePayableAmount").SetText(einvoice.FormatAmount(inv.Total))
}

// dateTimeString hängt udt:DateTimeString mit Format 102 (YYYYMMDD) an.
func (b *ZUGFeRDBuilder) dateTimeString(parent *etree.Element, compact string) {
	dt := parent.CreateElement("udt:DateTimeString")
	dt.CreateAttr("format", dateFormat102)
	dt.SetText(compact)
}
