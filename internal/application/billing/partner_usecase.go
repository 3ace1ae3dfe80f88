package billing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rechnungswerk/erechnung-api/internal/application/dto"
	"github.com/rechnungswerk/erechnung-api/internal/domain"
	"github.com/rechnungswerk/erechnung-api/internal/domain/entity"
	"github.com/rechnungswerk/erechnung-api/internal/domain/repository"
)

// PartnerUseCase verwaltet Geschäftspartner und Legacy-Kunden eines Mandanten.
type PartnerUseCase struct {
	store repository.DocumentStore
}

func NewPartnerUseCase(store repository.DocumentStore) *PartnerUseCase {
	return &PartnerUseCase{store: store}
}

// ListPartners liefert alle Geschäftspartner des Mandanten.
func (uc *PartnerUseCase) ListPartners(ctx context.Context, companyID string) ([]entity.BusinessPartner, error) {
	return loadList[entity.BusinessPartner](ctx, uc.store, companyID, repository.DocBusinessPartners)
}

// GetPartner liefert einen Geschäftspartner per ID.
func (uc *PartnerUseCase) GetPartner(ctx context.Context, companyID, id string) (*entity.BusinessPartner, error) {
	partners, err := uc.ListPartners(ctx, companyID)
	if err != nil {
		return nil, err
	}
	for i := range partners {
		if partners[i].ID == id {
			return &partners[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// CreatePartner legt einen Geschäftspartner an. Die Rolle wird normalisiert;
// leer bedeutet CUSTOMER, alles außerhalb des Katalogs ist ungültig.
func (uc *PartnerUseCase) CreatePartner(ctx context.Context, companyID string, in dto.CreatePartnerRequest) (*entity.BusinessPartner, error) {
	if companyID == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}

	role := strings.ToUpper(strings.TrimSpace(in.SelectedRole))
	switch role {
	case "":
		role = entity.RoleCustomer
	case entity.RoleCustomer, entity.RoleSupplier, entity.RoleBoth:
	default:
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	partner := entity.BusinessPartner{
		ID:           uuid.NewString(),
		CompanyID:    companyID,
		Name:         strings.TrimSpace(in.Name),
		Email:        in.Email,
		TaxID:        in.TaxID,
		SelectedRole: role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	partner.Address = entity.PartnerAddress{
		Street:      in.Address.Street,
		HouseNumber: in.Address.HouseNumber,
		City:        in.Address.City,
		PostalCode:  in.Address.PostalCode,
		Country:     in.Address.Country,
		Email:       in.Address.Email,
		TaxID:       in.Address.TaxID,
	}

	partners, err := uc.ListPartners(ctx, companyID)
	if err != nil {
		return nil, err
	}
	partners = append(partners, partner)
	if err := saveList(ctx, uc.store, companyID, repository.DocBusinessPartners, partners); err != nil {
		return nil, err
	}
	return &partner, nil
}

// ListCustomers liefert die Legacy-Kunden des Mandanten.
func (uc *PartnerUseCase) ListCustomers(ctx context.Context, companyID string) ([]entity.LegacyCustomer, error) {
	return loadList[entity.LegacyCustomer](ctx, uc.store, companyID, repository.DocCustomers)
}

// CreateCustomer legt einen Legacy-Kunden ohne Adressdaten an.
func (uc *PartnerUseCase) CreateCustomer(ctx context.Context, companyID string, in dto.CreateCustomerRequest) (*entity.LegacyCustomer, error) {
	if companyID == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	customer := entity.LegacyCustomer{
		ID:        uuid.NewString(),
		CompanyID: companyID,
		Name:      strings.TrimSpace(in.Name),
		Email:     in.Email,
		TaxID:     in.TaxID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	customers, err := uc.ListCustomers(ctx, companyID)
	if err != nil {
		return nil, err
	}
	customers = append(customers, customer)
	if err := saveList(ctx, uc.store, companyID, repository.DocCustomers, customers); err != nil {
		return nil, err
	}
	return &customer, nil
}
