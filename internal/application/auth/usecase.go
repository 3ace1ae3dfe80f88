package auth

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rechnungswerk/erechnung-api/internal/application/dto"
	"github.com/rechnungswerk/erechnung-api/internal/domain"
	"github.com/rechnungswerk/erechnung-api/internal/domain/entity"
	"github.com/rechnungswerk/erechnung-api/internal/domain/repository"
	"github.com/rechnungswerk/erechnung-api/pkg/jwt"
)

// JWTConfig Parameter für die Token-Erzeugung.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase Registrierung und Login. Eine Registrierung legt immer einen neuen
// Mandanten an; der erste Benutzer wird Admin und bekommt ein leeres
// Firmenprofil in den Dokument-Store gelegt.
type UseCase struct {
	users  repository.UserRepository
	store  repository.DocumentStore
	jwtCfg JWTConfig
}

// NewUseCase baut den Auth-UseCase.
func NewUseCase(users repository.UserRepository, store repository.DocumentStore, jwtCfg JWTConfig) *UseCase {
	return &UseCase{users: users, store: store, jwtCfg: jwtCfg}
}

// Register legt Mandant und Admin-Benutzer an und liefert direkt ein Token.
// ErrEmailAlreadyExists, wenn die E-Mail schon vergeben ist.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" || strings.TrimSpace(in.CompanyName) == "" {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.NewString(),
		CompanyID:    uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         "admin",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	// Firmenprofil mit dem Registrierungsnamen vorbelegen; die übrigen
	// Felder füllt der Mandant später über PUT /api/config.
	cfg := entity.CompanyConfig{Company: entity.CompanyProfile{Name: strings.TrimSpace(in.CompanyName)}}
	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	if err := uc.store.Set(ctx, user.CompanyID, repository.DocConfig, raw); err != nil {
		return nil, err
	}

	return uc.issueToken(user)
}

// Login prüft die Zugangsdaten und liefert ein Token.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.issueToken(user)
}

func (uc *UseCase) issueToken(user *entity.User) (*dto.AuthResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Token:     token,
		UserID:    user.ID,
		CompanyID: user.CompanyID,
		Role:      user.Role,
	}, nil
}
