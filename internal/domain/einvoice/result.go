package einvoice

import "time"

// Formatbezeichner und Konstanten der erzeugten Dokumente.
const (
	FormatXRechnung = "XRechnung 3.0"
	FormatZUGFeRD   = "ZUGFeRD 2.2"

	VersionXRechnung = "3.0"
	VersionZUGFeRD   = "2.2"

	Standard = "EN16931"
	MimeType = "application/xml"
)

// Options Generierungsoptionen eines Laufs.
type Options struct {
	// SellerFallback ersetzt die eingebauten Platzhalter-Stammdaten des
	// Rechnungsstellers (SELLER_*-Konfiguration). Die Mandantenkonfiguration
	// hat weiterhin Vorrang; leere Felder fallen auf die Platzhalter zurück.
	SellerFallback SellerFallback
}

// SellerFallback konfigurierbare Verkäufer-Stammdaten; die Postadresse der
// Dokumente bleibt die feste Platzhalter-Adresse.
type SellerFallback struct {
	Name  string
	TaxID string
	Email string
}

// Result ein einzelnes generiertes E-Rechnungs-Dokument plus Metadaten.
type Result struct {
	Format   string `json:"format"`   // "XRechnung 3.0" | "ZUGFeRD 2.2"
	Version  string `json:"version"`  // "3.0" | "2.2"
	Standard string `json:"standard"` // immer "EN16931"
	XML      string `json:"xml"`
	FileName string `json:"fileName"`
	MimeType string `json:"mimeType"` // immer "application/xml"
	Size     int    `json:"size"`     // Bytelänge des XML (UTF-8)
}

// FormatBundle das Ergebnis eines Generierungslaufs: je nach Selektor ein
// oder zwei Dokumente plus Lauf-Metadaten.
type FormatBundle struct {
	InvoiceID string         `json:"invoiceId"`
	Formats   BundleFormats  `json:"formats"`
	Metadata  BundleMetadata `json:"metadata"`
}

// BundleFormats die erzeugten Dokumente; nil, wenn nicht angefordert.
type BundleFormats struct {
	XRechnung *Result `json:"xrechnung,omitempty"`
	ZUGFeRD   *Result `json:"zugferd,omitempty"`
}

// BundleMetadata Lauf-Metadaten. GeneratedAt ist der einzige
// nicht-deterministische Teil eines Generierungslaufs.
type BundleMetadata struct {
	GeneratedAt     time.Time   `json:"generatedAt"`
	RequestedFormat string      `json:"requestedFormat"`
	BusinessPartner PartnerInfo `json:"businessPartner"`
}
