package dto

import "github.com/shopspring/decimal"

// CreatePartnerRequest Body für POST /api/partners.
type CreatePartnerRequest struct {
	Name         string                `json:"name"`
	Email        string                `json:"email,omitempty"`
	TaxID        string                `json:"taxId,omitempty"`
	SelectedRole string                `json:"selectedRole,omitempty"` // CUSTOMER | SUPPLIER | BOTH
	Address      PartnerAddressRequest `json:"address"`
}

// PartnerAddressRequest Anschrift im Partner-Request.
type PartnerAddressRequest struct {
	Street      string `json:"street,omitempty"`
	HouseNumber string `json:"houseNumber,omitempty"`
	City        string `json:"city,omitempty"`
	PostalCode  string `json:"postalCode,omitempty"`
	Country     string `json:"country,omitempty"`
	Email       string `json:"email,omitempty"`
	TaxID       string `json:"taxId,omitempty"`
}

// CreateCustomerRequest Body für POST /api/customers (Legacy-Kunden ohne Anschrift).
type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	TaxID string `json:"taxId,omitempty"`
}

// CreateInvoiceRequest Body für POST /api/invoices.
// Genau eine Käuferreferenz wird erwartet: BusinessPartnerID (der Partner wird
// als Schnappschuss in die Rechnung eingebettet) oder der Legacy-Customer inline.
type CreateInvoiceRequest struct {
	InvoiceNumber     string                 `json:"invoiceNumber,omitempty"`
	Date              string                 `json:"date,omitempty"`    // YYYY-MM-DD
	DueDate           string                 `json:"dueDate,omitempty"` // YYYY-MM-DD
	Currency          string                 `json:"currency,omitempty"`
	TaxRate           decimal.Decimal        `json:"taxRate,omitempty"` // Prozent; 0 -> Default 19
	Notes             string                 `json:"notes,omitempty"`
	Items             []InvoiceItemRequest   `json:"items"`
	BusinessPartnerID string                 `json:"businessPartnerId,omitempty"`
	Customer          *CreateCustomerRequest `json:"customer,omitempty"`
}

// InvoiceItemRequest eine Rechnungsposition.
type InvoiceItemRequest struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// GenerateFormatsRequest Body für POST /api/invoices/generate-formats.
type GenerateFormatsRequest struct {
	InvoiceID string                 `json:"invoiceId"`
	Format    string                 `json:"format,omitempty"` // XRechnung | ZUGFeRD | Both; leer -> Both
	Options   map[string]interface{} `json:"options,omitempty"`
}

// UpdateConfigRequest Body für PUT /api/config.
type UpdateConfigRequest struct {
	Company CompanyProfileRequest `json:"company"`
}

// CompanyProfileRequest Stammdaten des Rechnungsstellers.
type CompanyProfileRequest struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
	TaxID   string `json:"taxId,omitempty"`
	Email   string `json:"email,omitempty"`
}

// DashboardResponse Kennzahlen für GET /api/dashboard.
type DashboardResponse struct {
	InvoiceCount int             `json:"invoiceCount"`
	TotalGross   decimal.Decimal `json:"totalGross"`
	TotalTax     decimal.Decimal `json:"totalTax"`
}
