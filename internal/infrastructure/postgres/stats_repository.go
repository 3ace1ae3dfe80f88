package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rechnungswerk/erechnung-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo read-only Aggregat über das Rechnungsdokument eines Mandanten.
// Das jsonb-Array wird in der DB entfaltet; total/taxAmount werden als
// NUMERIC summiert und über den pgx-Codec direkt als decimal gelesen.
type StatsRepo struct {
	pool *pgxpool.Pool
}

// NewStatsRepository baut den Kennzahlen-Adapter.
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{pool: pool}
}

// RevenueByCompany liefert Anzahl, Bruttosumme und Steuersumme aller
// Rechnungen des Mandanten (Nullwerte, wenn keine Rechnungen existieren).
func (r *StatsRepo) RevenueByCompany(ctx context.Context, companyID string) (*repository.RevenueStats, error) {
	query := `
		SELECT
			COUNT(inv),
			COALESCE(SUM((inv->>'total')::numeric), 0),
			COALESCE(SUM((inv->>'taxAmount')::numeric), 0)
		FROM documents d
		CROSS JOIN LATERAL jsonb_array_elements(d.value) AS inv
		WHERE d.company_id = $1 AND d.key = $2`

	var (
		count int
		gross decimal.Decimal
		tax   decimal.Decimal
	)
	err := r.pool.QueryRow(ctx, query, companyID, repository.DocInvoices).Scan(&count, &gross, &tax)
	if err != nil {
		return nil, fmt.Errorf("umsatz aggregieren: %w", err)
	}
	return &repository.RevenueStats{
		InvoiceCount: count,
		TotalGross:   gross,
		TotalTax:     tax,
	}, nil
}
