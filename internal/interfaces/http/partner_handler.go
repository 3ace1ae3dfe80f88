package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/rechnungswerk/erechnung-api/internal/application/billing"
	"github.com/rechnungswerk/erechnung-api/internal/application/dto"
	"github.com/rechnungswerk/erechnung-api/internal/domain"
)

// PartnerHandler Geschäftspartner und Legacy-Kunden (geschützt).
type PartnerHandler struct {
	uc *billing.PartnerUseCase
}

// NewPartnerHandler baut den Handler.
func NewPartnerHandler(uc *billing.PartnerUseCase) *PartnerHandler {
	return &PartnerHandler{uc: uc}
}

// ListPartners liefert alle Geschäftspartner.
// GET /api/partners
func (h *PartnerHandler) ListPartners(c *fiber.Ctx) error {
	partners, err := h.uc.ListPartners(c.Context(), GetCompanyID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.OK(partners))
}

// GetPartner liefert einen Geschäftspartner.
// GET /api/partners/:id
func (h *PartnerHandler) GetPartner(c *fiber.Ctx) error {
	partner, err := h.uc.GetPartner(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "Geschäftspartner nicht gefunden"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.OK(partner))
}

// CreatePartner legt einen Geschäftspartner an.
// POST /api/partners
func (h *PartnerHandler) CreatePartner(c *fiber.Ctx) error {
	var in dto.CreatePartnerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "Body ungültig"})
	}
	partner, err := h.uc.CreatePartner(c.Context(), GetCompanyID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name erforderlich, Rolle CUSTOMER | SUPPLIER | BOTH"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(partner))
}

// ListCustomers liefert die Legacy-Kunden.
// GET /api/customers
func (h *PartnerHandler) ListCustomers(c *fiber.Ctx) error {
	customers, err := h.uc.ListCustomers(c.Context(), GetCompanyID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.OK(customers))
}

// CreateCustomer legt einen Legacy-Kunden an.
// POST /api/customers
func (h *PartnerHandler) CreateCustomer(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "Body ungültig"})
	}
	customer, err := h.uc.CreateCustomer(c.Context(), GetCompanyID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name erforderlich"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(customer))
}
