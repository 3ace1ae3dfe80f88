package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/rechnungswerk/erechnung-api/internal/domain"
	"github.com/rechnungswerk/erechnung-api/internal/domain/einvoice"
	"github.com/rechnungswerk/erechnung-api/internal/domain/entity"
	infraeinvoice "github.com/rechnungswerk/erechnung-api/internal/infrastructure/einvoice"
)

// Formatselektoren (case-insensitiv).
const (
	SelectorXRechnung = "XRECHNUNG"
	SelectorZUGFeRD   = "ZUGFERD"
	SelectorBoth      = "BOTH"
)

// FormatOrchestrator der einzige Einstiegspunkt der Generierungs-Engine:
// wählt anhand des Selektors die Builder aus und stellt das FormatBundle
// zusammen. Reine Berechnung über den Eingaben; kein I/O, kein Logging,
// kein Zustand zwischen Aufrufen. Einziger Fehlerfall ist ein
// unbekannter Selektor (domain.ErrUnknownFormat).
type FormatOrchestrator struct {
	resolver  *einvoice.CustomerResolver
	xrechnung *infraeinvoice.XRechnungBuilder
	zugferd   *infraeinvoice.ZUGFeRDBuilder
	now       func() time.Time
}

// NewFormatOrchestrator baut den Orchestrator mit der Systemuhr.
func NewFormatOrchestrator(xb *infraeinvoice.XRechnungBuilder, zb *infraeinvoice.ZUGFeRDBuilder) *FormatOrchestrator {
	return NewFormatOrchestratorWithClock(xb, zb, time.Now)
}

// NewFormatOrchestratorWithClock erlaubt eine injizierte Uhr; generatedAt
// ist der einzige nicht-deterministische Teil eines Laufs und muss in
// Tests kontrollierbar sein.
func NewFormatOrchestratorWithClock(xb *infraeinvoice.XRechnungBuilder, zb *infraeinvoice.ZUGFeRDBuilder, now func() time.Time) *FormatOrchestrator {
	if now == nil {
		now = time.Now
	}
	return &FormatOrchestrator{
		resolver:  einvoice.NewCustomerResolver(),
		xrechnung: xb,
		zugferd:   zb,
		now:       now,
	}
}

// GenerateFormats erzeugt die angeforderten Dokumente für die Rechnung.
// requestedFormat: "XRechnung" | "ZUGFeRD" | "Both" (case-insensitiv,
// leer -> Both); jeder andere Wert liefert domain.ErrUnknownFormat mit
// dem fehlerhaften Wert in der Nachricht.
func (o *FormatOrchestrator) GenerateFormats(inv *entity.Invoice, cfg *entity.CompanyConfig, requestedFormat string, opts einvoice.Options) (*einvoice.FormatBundle, error) {
	if inv == nil {
		return nil, fmt.Errorf("billing: invoice fehlt")
	}

	selector := strings.ToUpper(strings.TrimSpace(requestedFormat))
	if selector == "" {
		selector = SelectorBoth
	}
	wantXRechnung := selector == SelectorXRechnung || selector == SelectorBoth
	wantZUGFeRD := selector == SelectorZUGFeRD || selector == SelectorBoth
	if !wantXRechnung && !wantZUGFeRD {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownFormat, requestedFormat)
	}

	now := o.now()
	customer := o.resolver.Resolve(inv)

	bundle := &einvoice.FormatBundle{
		InvoiceID: inv.ID,
		Metadata: einvoice.BundleMetadata{
			GeneratedAt:     now,
			RequestedFormat: requestedFormat,
			BusinessPartner: einvoice.ExtractPartnerInfo(inv),
		},
	}

	if wantXRechnung {
		res, err := o.xrechnung.Build(inv, cfg, customer, opts, now)
		if err != nil {
			return nil, err
		}
		bundle.Formats.XRechnung = res
	}
	if wantZUGFeRD {
		res, err := o.zugferd.Build(inv, cfg, customer, opts, now)
		if err != nil {
			return nil, err
		}
		bundle.Formats.ZUGFeRD = res
	}

	return bundle, nil
}
