package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rechnungswerk/erechnung-api/internal/application/dto"
	"github.com/rechnungswerk/erechnung-api/internal/domain"
	"github.com/rechnungswerk/erechnung-api/internal/domain/einvoice"
	"github.com/rechnungswerk/erechnung-api/internal/domain/entity"
	"github.com/rechnungswerk/erechnung-api/internal/domain/repository"
)

// InvoiceUseCase Rechnungs-CRUD über den Dokument-Store. Rechnungen eines
// Mandanten liegen als JSON-Array unter einem Schlüssel; Summen werden bei
// der Erstellung mit decimal berechnet und eingefroren.
type InvoiceUseCase struct {
	store repository.DocumentStore
}

// NewInvoiceUseCase baut den UseCase.
func NewInvoiceUseCase(store repository.DocumentStore) *InvoiceUseCase {
	return &InvoiceUseCase{store: store}
}

// List liefert alle Rechnungen des Mandanten (leere Liste, wenn keine).
func (uc *InvoiceUseCase) List(ctx context.Context, companyID string) ([]entity.Invoice, error) {
	return loadList[entity.Invoice](ctx, uc.store, companyID, repository.DocInvoices)
}

// Get liefert eine Rechnung per ID; domain.ErrNotFound, wenn sie fehlt.
func (uc *InvoiceUseCase) Get(ctx context.Context, companyID, id string) (*entity.Invoice, error) {
	invoices, err := uc.List(ctx, companyID)
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		if invoices[i].ID == id {
			return &invoices[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// Create legt eine Rechnung an. Die Käuferreferenz ist entweder ein
// BusinessPartner-Schnappschuss (per ID aufgelöst) oder der Legacy-Customer
// inline; fehlen beide, bleibt die Rechnung ohne Käufer (die Engine setzt
// später den Platzhalter).
func (uc *InvoiceUseCase) Create(ctx context.Context, companyID string, in dto.CreateInvoiceRequest) (*entity.Invoice, error) {
	if companyID == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	inv := entity.Invoice{
		ID:            uuid.NewString(),
		CompanyID:     companyID,
		InvoiceNumber: in.InvoiceNumber,
		Date:          einvoice.ISODateOrNow(in.Date, now),
		DueDate:       in.DueDate,
		Currency:      einvoice.CurrencyOrDefault(in.Currency),
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	for _, item := range in.Items {
		inv.Items = append(inv.Items, entity.InvoiceItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}

	taxRate := einvoice.TaxRateOrDefault(in.TaxRate)
	subtotal := decimal.Zero
	for _, item := range inv.Items {
		subtotal = subtotal.Add(einvoice.LineTotal(item))
	}
	taxAmount := subtotal.Mul(taxRate).Div(decimal.NewFromInt(100)).Round(2)

	inv.TaxRate = taxRate
	inv.Subtotal = subtotal
	inv.TaxAmount = taxAmount
	inv.Total = subtotal.Add(taxAmount)

	if in.BusinessPartnerID != "" {
		partner, err := uc.findPartner(ctx, companyID, in.BusinessPartnerID)
		if err != nil {
			return nil, err
		}
		inv.BusinessPartner = partner
	} else if in.Customer != nil {
		inv.Customer = &entity.LegacyCustomer{
			Name:  in.Customer.Name,
			Email: in.Customer.Email,
			TaxID: in.Customer.TaxID,
		}
	}

	invoices, err := uc.List(ctx, companyID)
	if err != nil {
		return nil, err
	}
	invoices = append(invoices, inv)
	if err := saveList(ctx, uc.store, companyID, repository.DocInvoices, invoices); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (uc *InvoiceUseCase) findPartner(ctx context.Context, companyID, partnerID string) (*entity.BusinessPartner, error) {
	partners, err := loadList[entity.BusinessPartner](ctx, uc.store, companyID, repository.DocBusinessPartners)
	if err != nil {
		return nil, err
	}
	for i := range partners {
		if partners[i].ID == partnerID {
			return &partners[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// loadList lädt eine Entitätsliste aus dem Dokument-Store (nil-Dokument -> leere Liste).
func loadList[T any](ctx context.Context, store repository.DocumentStore, companyID, key string) ([]T, error) {
	raw, err := store.Get(ctx, companyID, key)
	if err != nil {
		return nil, fmt.Errorf("%s laden: %w", key, err)
	}
	if raw == nil {
		return nil, nil
	}
	var list []T
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("%s dekodieren: %w", key, err)
	}
	return list, nil
}

// saveList schreibt eine Entitätsliste zurück in den Dokument-Store.
func saveList[T any](ctx context.Context, store repository.DocumentStore, companyID, key string, list []T) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("%s kodieren: %w", key, err)
	}
	if err := store.Set(ctx, companyID, key, raw); err != nil {
		return fmt.Errorf("%s speichern: %w", key, err)
	}
	return nil
}
