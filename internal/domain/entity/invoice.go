package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice repräsentiert eine Rechnung, wie sie im Dokument-Store liegt.
//
// Die Engine liest Rechnungen als lose JSON-Dokumente aus der Key-Value-Ablage;
// Felder können fehlen. Date/DueDate bleiben deshalb ISO-Strings (YYYY-MM-DD)
// statt time.Time, damit fehlende Werte kontrolliert degradieren statt als
// Nullzeit aufzutauchen. Die Default-Auflösung passiert zentral in
// internal/domain/einvoice.
type Invoice struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"companyId,omitempty"`
	InvoiceNumber string          `json:"invoiceNumber,omitempty"` // fehlt -> ID als Anzeige-Nummer
	Date          string          `json:"date,omitempty"`          // Ausstellungsdatum YYYY-MM-DD
	DueDate       string          `json:"dueDate,omitempty"`       // Fälligkeit YYYY-MM-DD
	Items         []InvoiceItem   `json:"items,omitempty"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxRate       decimal.Decimal `json:"taxRate"` // Prozent; 0/fehlend -> 19
	TaxAmount     decimal.Decimal `json:"taxAmount"`
	Total         decimal.Decimal `json:"total"`
	Currency      string          `json:"currency,omitempty"` // fehlt -> EUR
	Notes         string          `json:"notes,omitempty"`

	// Käuferreferenz: entweder der neuere BusinessPartner oder der Legacy-Customer.
	// Sind beide gesetzt, gewinnt BusinessPartner. Sind beide nil, erzeugt die
	// Engine einen "Unbekannter Kunde"-Platzhalter.
	BusinessPartner *BusinessPartner `json:"businessPartner,omitempty"`
	Customer        *LegacyCustomer  `json:"customer,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// InvoiceItem eine Rechnungsposition. Zeilensumme = Quantity × Price.
type InvoiceItem struct {
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"` // nicht-positiv/fehlend -> 1
	Price       decimal.Decimal `json:"price"`    // negativ/fehlend -> 0
}

// DisplayNumber liefert die menschenlesbare Rechnungsnummer, Fallback auf die ID.
func (i *Invoice) DisplayNumber() string {
	if i.InvoiceNumber != "" {
		return i.InvoiceNumber
	}
	return i.ID
}
