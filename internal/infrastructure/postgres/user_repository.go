package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rechnungswerk/erechnung-api/internal/domain"
	"github.com/rechnungswerk/erechnung-api/internal/domain/entity"
	"github.com/rechnungswerk/erechnung-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo Implementierung des UserRepository-Ports über PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository baut den Persistenz-Adapter für Benutzer.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create persistiert einen neuen Benutzer.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, company_id, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(ctx, query,
		user.ID, user.CompanyID, user.Email, user.PasswordHash, user.Role,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("benutzer anlegen: %w", err)
	}
	return nil
}

// GetByEmail liefert einen Benutzer per E-Mail oder nil, wenn keiner existiert.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.scanOne(ctx, `
		SELECT id, company_id, email, password_hash, role, created_at, updated_at
		FROM users WHERE email = $1`, email)
}

// GetByID liefert einen Benutzer per ID oder nil, wenn keiner existiert.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.scanOne(ctx, `
		SELECT id, company_id, email, password_hash, role, created_at, updated_at
		FROM users WHERE id = $1`, id)
}

func (r *UserRepo) scanOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var u entity.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.CompanyID, &u.Email, &u.PasswordHash, &u.Role,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("benutzer lesen: %w", err)
	}
	return &u, nil
}
