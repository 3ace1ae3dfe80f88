package entity

import "time"

// Partner-Rollen (selectedRole eines Geschäftspartners).
const (
	RoleCustomer = "CUSTOMER"
	RoleSupplier = "SUPPLIER"
	RoleBoth     = "BOTH"
)

// BusinessPartner die neuere, vollständige Käuferrepräsentation mit Rolle
// und Anschrift. Ersetzt den Legacy-Customer.
type BusinessPartner struct {
	ID           string         `json:"id,omitempty"`
	CompanyID    string         `json:"companyId,omitempty"`
	Name         string         `json:"name,omitempty"`
	Email        string         `json:"email,omitempty"`
	TaxID        string         `json:"taxId,omitempty"`
	SelectedRole string         `json:"selectedRole,omitempty"` // fehlt -> CUSTOMER
	Address      PartnerAddress `json:"address"`
	CreatedAt    time.Time      `json:"createdAt,omitempty"`
	UpdatedAt    time.Time      `json:"updatedAt,omitempty"`
}

// PartnerAddress Anschrift eines Geschäftspartners. Email/TaxID dienen als
// Fallback, wenn die Felder am Partner selbst fehlen.
type PartnerAddress struct {
	Street      string `json:"street,omitempty"`
	HouseNumber string `json:"houseNumber,omitempty"`
	City        string `json:"city,omitempty"`
	PostalCode  string `json:"postalCode,omitempty"`
	Country     string `json:"country,omitempty"`
	Email       string `json:"email,omitempty"`
	TaxID       string `json:"taxId,omitempty"`
}

// LegacyCustomer der alte Kundendatensatz ohne Anschrift. Die Engine ersetzt
// die fehlende Adresse durch einen festen deutschen Platzhalter.
type LegacyCustomer struct {
	ID        string    `json:"id,omitempty"`
	CompanyID string    `json:"companyId,omitempty"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	TaxID     string    `json:"taxId,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}
