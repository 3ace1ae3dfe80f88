package repository

import "context"

// Feste Dokumentschlüssel im Key-Value-Store. Entitätslisten liegen als
// JSON-Arrays unter ihrem Schlüssel, die Firmenkonfiguration als Objekt.
const (
	DocInvoices         = "invoices"
	DocBusinessPartners = "business_partners"
	DocCustomers        = "customers"
	DocConfig           = "config"
)

// Document ein gespeichertes Dokument mit seinem Mandanten.
type Document struct {
	CompanyID string
	Key       string
	Value     []byte
}

// DocumentStore die Key-Value-Ablage pro Mandant. Get liefert nil (ohne
// Fehler), wenn der Schlüssel nicht existiert; Set überschreibt den
// kompletten Wert. Keine Transaktions- oder Haltbarkeitsgarantien.
type DocumentStore interface {
	Get(ctx context.Context, companyID, key string) ([]byte, error)
	Set(ctx context.Context, companyID, key string, value []byte) error
	// ListByKey liefert die Dokumente aller Mandanten zu einem Schlüssel
	// (Array-Scan über Mandanten, z.B. Rechnungssuche per ID).
	ListByKey(ctx context.Context, key string) ([]Document, error)
}
