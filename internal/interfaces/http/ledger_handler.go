package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ovos-api/internal/application/analytics"
	"github.com/jhoicas/Ovos-api/internal/application/dto"
	"github.com/jhoicas/Ovos-api/internal/application/inventory"
	"github.com/jhoicas/Ovos-api/internal/application/pricing"
	"github.com/jhoicas/Ovos-api/pkg/logger"
)

// StockHandler consulta del stock actual.
type StockHandler struct {
	stock *inventory.StockLedger
	log   *logger.Logger
}

// NewStockHandler construye el handler.
func NewStockHandler(stock *inventory.StockLedger, log *logger.Logger) *StockHandler {
	return &StockHandler{stock: stock, log: log}
}

// Current godoc
// @Summary      Stock actual y banda de alerta
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockResponse
// @Router       /api/stock [get]
func (h *StockHandler) Current(c *fiber.Ctx) error {
	v, err := h.stock.Current(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.ToStockResponse(v))
}

// PriceHandler precio activo e histórico.
type PriceHandler struct {
	prices *pricing.PriceRegistry
	log    *logger.Logger
}

// NewPriceHandler construye el handler.
func NewPriceHandler(prices *pricing.PriceRegistry, log *logger.Logger) *PriceHandler {
	return &PriceHandler{prices: prices, log: log}
}

// SetPrice godoc
// @Summary      Definir nuevo precio activo
// @Tags         prices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetPriceRequest  true  "unit_price >= 0"
// @Success      201  {object}  dto.CreatedResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/prices [post]
func (h *PriceHandler) SetPrice(c *fiber.Ctx) error {
	var in dto.SetPriceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	id, err := h.prices.SetPrice(c.Context(), in.UnitPrice)
	if err != nil {
		return respondError(c, h.log, err)
	}
	h.log.Info().Str("id", id).Str("unit_price", in.UnitPrice.String()).Str("actor", GetUserID(c)).Msg("precio activo actualizado")
	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{ID: id})
}

// GetActive godoc
// @Summary      Precio activo
// @Tags         prices
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PriceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/prices/active [get]
func (h *PriceHandler) GetActive(c *fiber.Ctx) error {
	p, err := h.prices.GetActive(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	if p == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_ACTIVE_PRICE", Message: "no hay precio activo definido"})
	}
	return c.JSON(dto.ToPriceResponse(p))
}

// History godoc
// @Summary      Histórico de precios (más reciente primero)
// @Tags         prices
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PriceResponse
// @Router       /api/prices [get]
func (h *PriceHandler) History(c *fiber.Ctx) error {
	list, err := h.prices.History(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	out := make([]*dto.PriceResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.ToPriceResponse(p))
	}
	return c.JSON(out)
}

// SummaryHandler consolidados mensuales y anuales.
type SummaryHandler struct {
	summaries *analytics.SummaryAggregator
	log       *logger.Logger
}

// NewSummaryHandler construye el handler.
func NewSummaryHandler(summaries *analytics.SummaryAggregator, log *logger.Logger) *SummaryHandler {
	return &SummaryHandler{summaries: summaries, log: log}
}

// GetMonth godoc
// @Summary      Consolidado del mes
// @Tags         summaries
// @Security     Bearer
// @Produce      json
// @Param        month  path  string  true  "YYYY-MM"
// @Success      200  {object}  dto.SummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/summaries/{month} [get]
func (h *SummaryHandler) GetMonth(c *fiber.Ctx) error {
	s, err := h.summaries.Get(c.Context(), c.Params("month"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.ToSummaryResponse(s))
}

// GetYear godoc
// @Summary      Consolidados del año
// @Tags         summaries
// @Security     Bearer
// @Produce      json
// @Param        year  path  string  true  "YYYY"
// @Success      200  {object}  dto.YearSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/summaries/year/{year} [get]
func (h *SummaryHandler) GetYear(c *fiber.Ctx) error {
	year := c.Params("year")
	list, err := h.summaries.GetYear(c.Context(), year)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.ToYearSummaryResponse(year, list))
}

// Recompute godoc
// @Summary      Recalcular el consolidado del mes desde las transacciones
// @Tags         summaries
// @Security     Bearer
// @Produce      json
// @Param        month  path  string  true  "YYYY-MM"
// @Success      200  {object}  dto.SummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/summaries/{month}/recompute [post]
func (h *SummaryHandler) Recompute(c *fiber.Ctx) error {
	s, err := h.summaries.Recompute(c.Context(), c.Params("month"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.ToSummaryResponse(s))
}

// Months godoc
// @Summary      Meses con movimientos (incluye el actual)
// @Tags         summaries
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MonthsResponse
// @Router       /api/months [get]
func (h *SummaryHandler) Months(c *fiber.Ctx) error {
	months, err := h.summaries.Months(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.MonthsResponse{Months: months})
}
