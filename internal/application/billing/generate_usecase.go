package billing

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rechnungswerk/erechnung-api/internal/domain"
	"github.com/rechnungswerk/erechnung-api/internal/domain/einvoice"
	"github.com/rechnungswerk/erechnung-api/internal/domain/entity"
	"github.com/rechnungswerk/erechnung-api/internal/domain/repository"
)

// GenerateFormatsUseCase löst eine Rechnung per ID aus dem Dokument-Store auf
// und lässt den Orchestrator die Formate erzeugen.
//
// Die Suche scannt die Rechnungs-Arrays aller Mandanten — das entspricht dem
// beobachteten Verhalten des unauthentifizierten Generate-Endpoints
// (siehe DESIGN.md, offene Frage Authentifizierung).
type GenerateFormatsUseCase struct {
	store        repository.DocumentStore
	orchestrator *FormatOrchestrator
}

// NewGenerateFormatsUseCase baut den UseCase.
func NewGenerateFormatsUseCase(store repository.DocumentStore, orchestrator *FormatOrchestrator) *GenerateFormatsUseCase {
	return &GenerateFormatsUseCase{store: store, orchestrator: orchestrator}
}

// Generate sucht die Rechnung, lädt die Firmenkonfiguration ihres Mandanten
// und erzeugt das FormatBundle.
// Fehler: domain.ErrInvalidInput (invoiceID leer), domain.ErrNotFound
// (Rechnung nicht gefunden), domain.ErrUnknownFormat (Selektor).
func (uc *GenerateFormatsUseCase) Generate(ctx context.Context, invoiceID, format string, opts einvoice.Options) (*einvoice.FormatBundle, error) {
	if invoiceID == "" {
		return nil, domain.ErrInvalidInput
	}

	inv, companyID, err := uc.findInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	cfg, err := uc.loadConfig(ctx, companyID)
	if err != nil {
		return nil, err
	}

	return uc.orchestrator.GenerateFormats(inv, cfg, format, opts)
}

// findInvoice scannt die gespeicherten Rechnungs-Arrays nach der ID.
func (uc *GenerateFormatsUseCase) findInvoice(ctx context.Context, invoiceID string) (*entity.Invoice, string, error) {
	docs, err := uc.store.ListByKey(ctx, repository.DocInvoices)
	if err != nil {
		return nil, "", fmt.Errorf("rechnungen laden: %w", err)
	}
	for _, doc := range docs {
		var invoices []entity.Invoice
		if err := json.Unmarshal(doc.Value, &invoices); err != nil {
			return nil, "", fmt.Errorf("rechnungen von %s dekodieren: %w", doc.CompanyID, err)
		}
		for i := range invoices {
			if invoices[i].ID == invoiceID {
				return &invoices[i], doc.CompanyID, nil
			}
		}
	}
	return nil, "", domain.ErrNotFound
}

// loadConfig lädt die Firmenkonfiguration; fehlt sie, greifen die
// Platzhalter der Engine (nil-Konfiguration ist zulässig).
func (uc *GenerateFormatsUseCase) loadConfig(ctx context.Context, companyID string) (*entity.CompanyConfig, error) {
	raw, err := uc.store.Get(ctx, companyID, repository.DocConfig)
	if err != nil {
		return nil, fmt.Errorf("konfiguration laden: %w", err)
	}
	if raw == nil {
		return nil, nil
	}
	var cfg entity.CompanyConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("konfiguration dekodieren: %w", err)
	}
	return &cfg, nil
}
