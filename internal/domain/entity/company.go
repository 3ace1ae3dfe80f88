package entity

import "time"

// CompanyConfig die Firmenkonfiguration eines Mandanten, wie sie im
// Dokument-Store liegt. Jedes Feld ist optional; die Engine fällt auf
// deutsche Platzhalter zurück.
type CompanyConfig struct {
	Company   CompanyProfile `json:"company"`
	UpdatedAt time.Time      `json:"updatedAt,omitempty"`
}

// CompanyProfile Stammdaten des Rechnungsstellers.
type CompanyProfile struct {
	Name    string `json:"name,omitempty"`    // fehlt -> "Muster Unternehmen GmbH"
	Address string `json:"address,omitempty"` // Anzeige; in die Dokumente geht die feste Platzhalter-Postadresse
	TaxID   string `json:"taxId,omitempty"`   // fehlt -> "DE123456789"
	Email   string `json:"email,omitempty"`   // fehlt -> "info@musterunternehmen.de"
}
