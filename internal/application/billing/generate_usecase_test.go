package billing_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rechnungswerk/erechnung-api/internal/application/billing"
	"github.com/rechnungswerk/erechnung-api/internal/domain"
	"github.com/rechnungswerk/erechnung-api/internal/domain/einvoice"
	"github.com/rechnungswerk/erechnung-api/internal/domain/entity"
	"github.com/rechnungswerk/erechnung-api/internal/domain/repository"
)

// fakeStore In-Memory-Implementierung des DocumentStore für Tests.
type fakeStore struct {
	docs map[string]map[string][]byte // companyID -> key -> value
}

func newFakeStore() *fakeStore {
	return &fakeStore{docs: make(map[string]map[string][]byte)}
}

func (s *fakeStore) Get(_ context.Context, companyID, key string) ([]byte, error) {
	return s.docs[companyID][key], nil
}

func (s *fakeStore) Set(_ context.Context, companyID, key string, value []byte) error {
	if s.docs[companyID] == nil {
		s.docs[companyID] = make(map[string][]byte)
	}
	s.docs[companyID][key] = value
	return nil
}

func (s *fakeStore) ListByKey(_ context.Context, key string) ([]repository.Document, error) {
	var out []repository.Document
	for companyID, byKey := range s.docs {
		if v, ok := byKey[key]; ok {
			out = append(out, repository.Document{CompanyID: companyID, Key: key, Value: v})
		}
	}
	return out, nil
}

func (s *fakeStore) seed(t *testing.T, companyID, key string, v any) {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, s.Set(context.Background(), companyID, key, raw))
}

func newGenerateUC(store repository.DocumentStore) *billing.GenerateFormatsUseCase {
	return billing.NewGenerateFormatsUseCase(store, testOrchestrator())
}

func TestGenerate_FindetRechnungUeberMandanten(t *testing.T) {
	store := newFakeStore()
	store.seed(t, "firma-a", repository.DocInvoices, []entity.Invoice{*orchestratorInvoice()})
	store.seed(t, "firma-b", repository.DocInvoices, []entity.Invoice{{ID: "andere"}})
	store.seed(t, "firma-a", repository.DocConfig, entity.CompanyConfig{
		Company: entity.CompanyProfile{Name: "Rechnungswerk Demo GmbH"},
	})

	bundle, err := newGenerateUC(store).Generate(context.Background(), "inv-42", "Both", einvoice.Options{})
	require.NoError(t, err)

	assert.Equal(t, "inv-42", bundle.InvoiceID)
	// Die Firmenkonfiguration des besitzenden Mandanten muss im Dokument stehen.
	assert.Contains(t, bundle.Formats.XRechnung.XML, "Rechnungswerk Demo GmbH")
}

func TestGenerate_OhneKonfigurationPlatzhalterVerkaeufer(t *testing.T) {
	store := newFakeStore()
	store.seed(t, "firma-a", repository.DocInvoices, []entity.Invoice{*orchestratorInvoice()})

	bundle, err := newGenerateUC(store).Generate(context.Background(), "inv-42", "XRechnung", einvoice.Options{})
	require.NoError(t, err)
	assert.Contains(t, bundle.Formats.XRechnung.XML, einvoice.DefaultSellerName)
}

func TestGenerate_RechnungNichtGefunden(t *testing.T) {
	store := newFakeStore()
	store.seed(t, "firma-a", repository.DocInvoices, []entity.Invoice{{ID: "andere"}})

	_, err := newGenerateUC(store).Generate(context.Background(), "gibt-es-nicht", "Both", einvoice.Options{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGenerate_LeereInvoiceID(t *testing.T) {
	_, err := newGenerateUC(newFakeStore()).Generate(context.Background(), "", "Both", einvoice.Options{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGenerate_UnbekanntesFormatDurchgereicht(t *testing.T) {
	store := newFakeStore()
	store.seed(t, "firma-a", repository.DocInvoices, []entity.Invoice{*orchestratorInvoice()})

	_, err := newGenerateUC(store).Generate(context.Background(), "inv-42", "PDF", einvoice.Options{})
	assert.ErrorIs(t, err, domain.ErrUnknownFormat)
}
