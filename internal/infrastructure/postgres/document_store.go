package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rechnungswerk/erechnung-api/internal/domain/repository"
)

var _ repository.DocumentStore = (*DocumentStore)(nil)

// DocumentStore Implementierung des DocumentStore-Ports über PostgreSQL.
// Ein Dokument pro (company_id, key) in einer jsonb-Spalte; Schreiben ist
// ein Upsert des kompletten Werts.
type DocumentStore struct {
	pool *pgxpool.Pool
}

// NewDocumentStore baut den Persistenz-Adapter für Mandanten-Dokumente.
func NewDocumentStore(pool *pgxpool.Pool) *DocumentStore {
	return &DocumentStore{pool: pool}
}

// Get liefert den jsonb-Wert eines Dokuments oder nil, wenn es fehlt.
func (s *DocumentStore) Get(ctx context.Context, companyID, key string) ([]byte, error) {
	query := `SELECT value FROM documents WHERE company_id = $1 AND key = $2`
	var value []byte
	err := s.pool.QueryRow(ctx, query, companyID, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("dokument %q lesen: %w", key, err)
	}
	return value, nil
}

// Set schreibt den Wert eines Dokuments (Upsert).
func (s *DocumentStore) Set(ctx context.Context, companyID, key string, value []byte) error {
	query := `
		INSERT INTO documents (company_id, key, value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (company_id, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	if _, err := s.pool.Exec(ctx, query, companyID, key, value, time.Now()); err != nil {
		return fmt.Errorf("dokument %q schreiben: %w", key, err)
	}
	return nil
}

// ListByKey liefert die Dokumente aller Mandanten zu einem Schlüssel.
// Wird vom unauthentifizierten Generierungsendpunkt genutzt, der eine
// Rechnung mandantsübergreifend per ID sucht.
func (s *DocumentStore) ListByKey(ctx context.Context, key string) ([]repository.Document, error) {
	query := `SELECT company_id, key, value FROM documents WHERE key = $1 ORDER BY company_id`
	rows, err := s.pool.Query(ctx, query, key)
	if err != nil {
		return nil, fmt.Errorf("dokumente %q listen: %w", key, err)
	}
	defer rows.Close()

	var docs []repository.Document
	for rows.Next() {
		var d repository.Document
		if err := rows.Scan(&d.CompanyID, &d.Key, &d.Value); err != nil {
			return nil, fmt.Errorf("dokument scannen: %w", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dokumente iterieren: %w", err)
	}
	return docs, nil
}
