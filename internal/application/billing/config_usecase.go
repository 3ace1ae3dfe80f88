package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rechnungswerk/erechnung-api/internal/application/dto"
	"github.com/rechnungswerk/erechnung-api/internal/domain"
	"github.com/rechnungswerk/erechnung-api/internal/domain/entity"
	"github.com/rechnungswerk/erechnung-api/internal/domain/repository"
)

// ConfigUseCase liest und schreibt das Firmenprofil (Verkäuferdaten) eines
// Mandanten. Fehlt das Profil, greifen bei der Generierung die Platzhalter.
type ConfigUseCase struct {
	store repository.DocumentStore
}

func NewConfigUseCase(store repository.DocumentStore) *ConfigUseCase {
	return &ConfigUseCase{store: store}
}

// Get liefert das gespeicherte Firmenprofil oder nil, wenn keines existiert.
func (uc *ConfigUseCase) Get(ctx context.Context, companyID string) (*entity.CompanyConfig, error) {
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

// Update ersetzt das Firmenprofil des Mandanten.
func (uc *ConfigUseCase) Update(ctx context.Context, companyID string, in dto.UpdateConfigRequest) (*entity.CompanyConfig, error) {
	if companyID == "" || strings.TrimSpace(in.Company.Name) == "" {
		return nil, domain.ErrInvalidInput
	}

	cfg := entity.CompanyConfig{
		Company: entity.CompanyProfile{
			Name:    strings.TrimSpace(in.Company.Name),
			Address: in.Company.Address,
			TaxID:   in.Company.TaxID,
			Email:   in.Company.Email,
		},
	}

	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("konfiguration kodieren: %w", err)
	}
	if err := uc.store.Set(ctx, companyID, repository.DocConfig, raw); err != nil {
		return nil, fmt.Errorf("konfiguration speichern: %w", err)
	}
	return &cfg, nil
}
