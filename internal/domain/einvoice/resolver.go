// Package einvoice: Käufer-Normalisierung und Default-Auflösung für die
// Erzeugung von XRechnung- und ZUGFeRD-Dokumenten.
package einvoice

import (
	"github.com/rechnungswerk/erechnung-api/internal/domain/entity"
	"github.com/rechnungswerk/erechnung-api/pkg/erechnung"
)

// Platzhalter für Rechnungen ohne auflösbaren Käufer bzw. ohne Anschrift.
const (
	UnknownCustomerName = "Unbekannter Kunde"

	legacyStreet      = "Kundenstraße"
	legacyHouseNumber = "1"
	legacyCity        = "Kundenstadt"
	legacyPostalCode  = "54321"
	legacyCountry     = "Deutschland"
)

// CustomerData die kanonische Käuferform, die beide Dokument-Builder konsumieren.
// Jedes Feld ist bereits aufgelöst; fehlende Angaben sind Leerstrings oder
// benannte Defaults, nie "undefined". Diese Auflösung wirft nie einen Fehler.
type CustomerData struct {
	Name         string
	Email        string
	TaxID        string
	Street       string
	HouseNumber  string
	City         string
	PostalCode   string
	Country      string
	CountryCode  string
	SelectedRole string
}

// PartnerInfo leichte Käufer-Zusammenfassung für die Generierungs-Metadaten.
// Type ist der Diskriminator der drei Käuferquellen.
type PartnerInfo struct {
	Type  string `json:"type"` // "BusinessPartner" | "Customer" | "Unknown"
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email"`
}

// Diskriminatorwerte für PartnerInfo.Type.
const (
	PartnerTypeBusinessPartner = "BusinessPartner"
	PartnerTypeCustomer        = "Customer"
	PartnerTypeUnknown         = "Unknown"
)

// CustomerResolver normalisiert die beiden möglichen Käuferrepräsentationen
// (BusinessPartner vs. Legacy-Customer vs. keine) in die kanonische Form.
type CustomerResolver struct{}

// NewCustomerResolver erstellt den Resolver.
func NewCustomerResolver() *CustomerResolver {
	return &CustomerResolver{}
}

// Resolve löst den Käufer einer Rechnung auf. Reihenfolge:
//  1. BusinessPartner, falls vorhanden (inkl. Adress-Fallbacks für Email/TaxID)
//  2. Legacy-Customer mit fester Platzhalter-Anschrift
//  3. "Unbekannter Kunde" mit leeren Feldern
func (r *CustomerResolver) Resolve(inv *entity.Invoice) CustomerData {
	if inv != nil && inv.BusinessPartner != nil {
		return r.fromBusinessPartner(inv.BusinessPartner)
	}
	if inv != nil && inv.Customer != nil {
		return r.fromLegacyCustomer(inv.Customer)
	}
	return CustomerData{
		Name:         UnknownCustomerName,
		CountryCode:  erechnung.CountryCode(""),
		SelectedRole: entity.RoleCustomer,
	}
}

func (r *CustomerResolver) fromBusinessPartner(bp *entity.BusinessPartner) CustomerData {
	email := bp.Email
	if email == "" {
		email = bp.Address.Email
	}
	taxID := bp.TaxID
	if taxID == "" {
		taxID = bp.Address.TaxID
	}
	role := bp.SelectedRole
	if role == "" {
		role = entity.RoleCustomer
	}
	return CustomerData{
		Name:         bp.Name,
		Email:        email,
		TaxID:        taxID,
		Street:       bp.Address.Street,
		HouseNumber:  bp.Address.HouseNumber,
		City:         bp.Address.City,
		PostalCode:   bp.Address.PostalCode,
		Country:      bp.Address.Country,
		CountryCode:  erechnung.CountryCode(bp.Address.Country),
		SelectedRole: role,
	}
}

func (r *CustomerResolver) fromLegacyCustomer(c *entity.LegacyCustomer) CustomerData {
	// Legacy-Kunden tragen keine Anschrift; feste deutsche Platzhalter-Adresse.
	return CustomerData{
		Name:         c.Name,
		Email:        c.Email,
		TaxID:        c.TaxID,
		Street:       legacyStreet,
		HouseNumber:  legacyHouseNumber,
		City:         legacyCity,
		PostalCode:   legacyPostalCode,
		Country:      legacyCountry,
		CountryCode:  erechnung.CountryCode(legacyCountry),
		SelectedRole: entity.RoleCustomer,
	}
}

// ExtractPartnerInfo leitet die Metadaten-Zusammenfassung ab. Gleiche
// Auflösungsreihenfolge wie Resolve, aber ohne Adressdaten; wird nur im
// Generierungs-Wrapper verwendet, nicht in den XML-Dokumenten.
func ExtractPartnerInfo(inv *entity.Invoice) PartnerInfo {
	if inv != nil && inv.BusinessPartner != nil {
		bp := inv.BusinessPartner
		role := bp.SelectedRole
		if role == "" {
			role = entity.RoleCustomer
		}
		email := bp.Email
		if email == "" {
			email = bp.Address.Email
		}
		return PartnerInfo{Type: PartnerTypeBusinessPartner, Name: bp.Name, Role: role, Email: email}
	}
	if inv != nil && inv.Customer != nil {
		return PartnerInfo{Type: PartnerTypeCustomer, Name: inv.Customer.Name, Role: entity.RoleCustomer, Email: inv.Customer.Email}
	}
	return PartnerInfo{Type: PartnerTypeUnknown, Name: UnknownCustomerName, Role: entity.RoleCustomer}
}
