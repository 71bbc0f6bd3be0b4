package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	appcash "github.com/jhoicas/PuntoVenta-api/internal/application/cash"
	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/application/report"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/cash"
)

// CashHandler caja: billetes, movimientos, cambio y cierre.
type CashHandler struct {
	ledger    *appcash.LedgerUseCase
	movements *appcash.MovementUseCase
	reports   *report.ReportUseCase
}

// NewCashHandler construye el handler.
func NewCashHandler(ledger *appcash.LedgerUseCase, movements *appcash.MovementUseCase, reports *report.ReportUseCase) *CashHandler {
	return &CashHandler{ledger: ledger, movements: movements, reports: reports}
}

// Bills godoc
// @Summary      Estado de la caja
// @Description  Cantidad por denominación (todas las configuradas) y total en pesos.
// @Tags         cash
// @Produce      json
// @Success      200  {object}  dto.CashStateResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/cash/bills [get]
func (h *CashHandler) Bills(c *fiber.Ctx) error {
	out, err := h.ledger.State(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RegisterMovement godoc
// @Summary      Ingreso o retiro manual de billetes
// @Tags         cash
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ManualMovementRequest  true  "Billetes por denominación"
// @Success      201   {object}  dto.CashMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cash/movements [post]
func (h *CashHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.ManualMovementRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.ledger.RegisterManualMovement(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Log de movimientos de caja
// @Description  Sin filtros devuelve los más recientes. Con filtros recorre el log completo.
// @Tags         cash
// @Produce      json
// @Param        type          query  string  false  "Tipos separados por coma (sale, manual_add, manual_remove, change_given, cash_closing)"
// @Param        denomination  query  int     false  "Solo movimientos que tocan esta denominación"
// @Param        from          query  string  false  "Desde (RFC3339)"
// @Param        to            query  string  false  "Hasta (RFC3339)"
// @Param        limit         query  int     false  "Límite"
// @Success      200  {object}  dto.CashMovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cash/movements [get]
func (h *CashHandler) ListMovements(c *fiber.Ctx) error {
	in := dto.MovementFilterRequest{
		Denomination: int64(c.QueryInt("denomination", 0)),
		Limit:        c.QueryInt("limit", 0),
	}
	if raw := c.Query("type"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				in.Types = append(in.Types, t)
			}
		}
	}
	var err error
	if in.From, err = queryTime(c, "from"); err != nil {
		return badQuery(c, "from")
	}
	if in.To, err = queryTime(c, "to"); err != nil {
		return badQuery(c, "to")
	}
	if ok, err := check(c, &in); !ok {
		return err
	}

	var out *dto.CashMovementListResponse
	if len(in.Types) == 0 && in.Denomination == 0 && in.From == nil && in.To == nil {
		out, err = h.movements.Recent(c.UserContext(), in.Limit)
	} else {
		out, err = h.movements.Filter(c.UserContext(), cash.MovementFilter{
			Types:        in.Types,
			Denomination: in.Denomination,
			From:         in.From,
			To:           in.To,
		}, in.Limit)
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ComputeChange godoc
// @Summary      Calcular cambio
// @Description  Desglose voraz con los billetes disponibles. No modifica la caja.
// @Tags         cash
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChangeRequest  true  "Monto"
// @Success      200   {object}  dto.ChangeResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cash/change [post]
func (h *CashHandler) ComputeChange(c *fiber.Ctx) error {
	var in dto.ChangeRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.ledger.ComputeChange(c.UserContext(), in.Amount)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Close godoc
// @Summary      Cierre de caja
// @Description  Registra un movimiento cash_closing con todos los billetes y deja el cajón en cero.
// @Tags         cash
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CloseTillRequest  false  "Notas"
// @Success      201   {object}  dto.CloseTillResponse
// @Router       /api/cash/closing [post]
func (h *CashHandler) Close(c *fiber.Ctx) error {
	var in dto.CloseTillRequest
	if len(c.Body()) > 0 {
		if ok, err := bind(c, &in); !ok {
			return err
		}
	}
	out, err := h.ledger.CloseTill(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ClosingPDF godoc
// @Summary      Comprobante PDF de un cierre de caja
// @Tags         cash
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del movimiento cash_closing"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cash/closing/{id}/pdf [get]
func (h *CashHandler) ClosingPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	pdf, filename, err := h.reports.ClosingReceiptPDF(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdf)
}

func queryTime(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func badQuery(c *fiber.Ctx, key string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: key + " debe tener formato RFC3339"})
}
