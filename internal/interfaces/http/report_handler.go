package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/PuntoVenta-api/internal/application/report"
)

// ReportHandler reportes de solo lectura.
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// CashSummary godoc
// @Summary      Resumen de caja
// @Tags         reports
// @Produce      json
// @Param        from  query  string  false  "Desde (RFC3339)"
// @Param        to    query  string  false  "Hasta (RFC3339)"
// @Success      200  {object}  dto.CashSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/cash-summary [get]
func (h *ReportHandler) CashSummary(c *fiber.Ctx) error {
	from, err := queryTime(c, "from")
	if err != nil {
		return badQuery(c, "from")
	}
	to, err := queryTime(c, "to")
	if err != nil {
		return badQuery(c, "to")
	}
	out, err := h.uc.CashSummary(c.UserContext(), from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Stock godoc
// @Summary      Valorización de materia prima
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.StockReportResponse
// @Router       /api/reports/stock [get]
func (h *ReportHandler) Stock(c *fiber.Ctx) error {
	out, err := h.uc.StockReport(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
