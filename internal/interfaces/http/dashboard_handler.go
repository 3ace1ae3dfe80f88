package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rechnungswerk/erechnung-api/internal/application/analytics"
	"github.com/rechnungswerk/erechnung-api/internal/application/dto"
)

// DashboardHandler Umsatzkennzahlen (geschützt).
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler baut den Handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary liefert Rechnungsanzahl, Brutto- und Steuersumme des Mandanten.
// GET /api/dashboard
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context(), GetCompanyID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.OK(summary))
}
