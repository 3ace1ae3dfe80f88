package repository

import (
	"context"

	"github.com/rechnungswerk/erechnung-api/internal/domain/entity"
)

// UserRepository Persistenz für Benutzerkonten.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// GetByEmail liefert nil (ohne Fehler), wenn kein Benutzer existiert.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
}
