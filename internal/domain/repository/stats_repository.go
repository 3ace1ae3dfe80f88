package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// RevenueStats Umsatzkennzahlen eines Mandanten über alle gespeicherten Rechnungen.
type RevenueStats struct {
	InvoiceCount int
	TotalGross   decimal.Decimal
	TotalTax     decimal.Decimal
}

// StatsRepository aggregierte Kennzahlen für das Dashboard.
type StatsRepository interface {
	RevenueByCompany(ctx context.Context, companyID string) (*RevenueStats, error)
}
