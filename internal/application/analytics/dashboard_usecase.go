// Package analytics enthält die Kennzahlen-UseCases für das Dashboard.
package analytics

import (
	"context"
	"fmt"

	"github.com/rechnungswerk/erechnung-api/internal/application/dto"
	"github.com/rechnungswerk/erechnung-api/internal/domain"
	"github.com/rechnungswerk/erechnung-api/internal/domain/repository"
)

// DashboardUseCase liefert die Umsatzübersicht eines Mandanten.
//
// Datenquelle: StatsRepository (read-only Aggregat über die gespeicherten
// Rechnungsdokumente); kein direkter Zugriff auf den Dokument-Store.
type DashboardUseCase struct {
	stats repository.StatsRepository
}

// NewDashboardUseCase baut den UseCase.
func NewDashboardUseCase(stats repository.StatsRepository) *DashboardUseCase {
	return &DashboardUseCase{stats: stats}
}

// GetSummary liefert Rechnungsanzahl, Brutto- und Steuersumme des Mandanten.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, companyID string) (*dto.DashboardResponse, error) {
	if companyID == "" {
		return nil, domain.ErrInvalidInput
	}
	stats, err := uc.stats.RevenueByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("umsatzkennzahlen laden: %w", err)
	}
	return &dto.DashboardResponse{
		InvoiceCount: stats.InvoiceCount,
		TotalGross:   stats.TotalGross,
		TotalTax:     stats.TotalTax,
	}, nil
}
