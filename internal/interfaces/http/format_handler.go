package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/rechnungswerk/erechnung-api/internal/application/billing"
	"github.com/rechnungswerk/erechnung-api/internal/application/dto"
	"github.com/rechnungswerk/erechnung-api/internal/domain"
	"github.com/rechnungswerk/erechnung-api/internal/domain/einvoice"
)

// FormatHandler der Generierungsendpunkt für XRechnung/ZUGFeRD. Bewusst
// ohne Auth-Middleware registriert; die Rechnung wird mandantsübergreifend
// per ID gesucht.
type FormatHandler struct {
	uc   *billing.GenerateFormatsUseCase
	opts einvoice.Options
}

// NewFormatHandler baut den Handler; opts trägt u.a. den konfigurierten
// Verkäufer-Fallback (SELLER_*).
func NewFormatHandler(uc *billing.GenerateFormatsUseCase, opts einvoice.Options) *FormatHandler {
	return &FormatHandler{uc: uc, opts: opts}
}

// Generate godoc
// @Summary      E-Rechnungsformate erzeugen
// @Description  Erzeugt XRechnung 3.0 (UBL) und/oder ZUGFeRD 2.2 (CII) für eine gespeicherte Rechnung.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateFormatsRequest  true  "invoiceId, format (XRechnung | ZUGFeRD | Both; optional, leer -> Both)"
// @Success      200   {object}  dto.DataResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices/generate-formats [post]
func (h *FormatHandler) Generate(c *fiber.Ctx) error {
	var in dto.GenerateFormatsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "Body ungültig"})
	}
	if in.InvoiceID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invoiceId erforderlich"})
	}

	bundle, err := h.uc.Generate(c.Context(), in.InvoiceID, in.Format, h.opts)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "Rechnung nicht gefunden"})
		}
		if errors.Is(err, domain.ErrUnknownFormat) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNKNOWN_FORMAT", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invoiceId erforderlich"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.OK(bundle))
}
