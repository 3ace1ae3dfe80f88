package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/rechnungswerk/erechnung-api/internal/application/billing"
	"github.com/rechnungswerk/erechnung-api/internal/application/dto"
	"github.com/rechnungswerk/erechnung-api/internal/domain"
)

// CompanyHandler Firmenprofil des Mandanten (geschützt).
type CompanyHandler struct {
	uc *billing.ConfigUseCase
}

// NewCompanyHandler baut den Handler.
func NewCompanyHandler(uc *billing.ConfigUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// GetConfig liefert das Firmenprofil; null, wenn noch keines hinterlegt ist.
// GET /api/config
func (h *CompanyHandler) GetConfig(c *fiber.Ctx) error {
	cfg, err := h.uc.Get(c.Context(), GetCompanyID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.OK(cfg))
}

// UpdateConfig ersetzt das Firmenprofil (nur admin, via Router-Middleware).
// PUT /api/config
func (h *CompanyHandler) UpdateConfig(c *fiber.Ctx) error {
	var in dto.UpdateConfigRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "Body ungültig"})
	}
	cfg, err := h.uc.Update(c.Context(), GetCompanyID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "company.name erforderlich"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.OK(cfg))
}
