package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ovos-api/internal/application/dto"
	"github.com/jhoicas/Ovos-api/internal/application/inventory"
	"github.com/jhoicas/Ovos-api/internal/domain/entity"
	"github.com/jhoicas/Ovos-api/pkg/logger"
)

// transactionService operaciones comunes de los cinco servicios por tipo.
type transactionService interface {
	List(ctx context.Context, monthKey string) ([]*entity.Transaction, error)
	Get(ctx context.Context, id string) (*entity.Transaction, error)
	Remove(ctx context.Context, id string) (*inventory.Reversal, error)
	CurrentMonth() string
}

// TransactionHandler lectura y borrado de un tipo de transacción. El alta depende del tipo
// y la resuelven MovementHandler, SaleHandler y ExpenseHandler.
type TransactionHandler struct {
	svc transactionService
	log *logger.Logger
}

// List godoc
// @Summary      Listar transacciones del mes
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        month  query  string  false  "YYYY-MM (vacío = mes actual)"
// @Success      200  {object}  dto.TransactionListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/{kind} [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	month := c.Query("month")
	list, err := h.svc.List(c.Context(), month)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if month == "" {
		month = h.svc.CurrentMonth()
	}
	return c.JSON(dto.ToTransactionList(month, list))
}

// GetByID godoc
// @Summary      Obtener una transacción
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/{kind}/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	t, err := h.svc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.ToTransactionResponse(t))
}

// Delete godoc
// @Summary      Borrar una transacción y revertir su efecto
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.ReversalResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/{kind}/{id} [delete]
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	rev, err := h.svc.Remove(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	h.log.Info().Str("kind", string(rev.Kind)).Str("id", rev.ID).Str("month", rev.MonthKey).
		Str("actor", GetUserID(c)).Msg("transacción revertida")
	return c.JSON(dto.ToReversalResponse(rev))
}

func created(c *fiber.Ctx, log *logger.Logger, kind entity.Kind, id string) error {
	log.Info().Str("kind", string(kind)).Str("id", id).Str("actor", GetUserID(c)).Msg("transacción registrada")
	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{ID: id})
}

// MovementHandler alta de entradas, pérdidas y consumo.
type MovementHandler struct {
	TransactionHandler
	uc *inventory.MovementUseCase
}

// NewMovementHandler construye el handler para el tipo que maneja uc.
func NewMovementHandler(uc *inventory.MovementUseCase, log *logger.Logger) *MovementHandler {
	return &MovementHandler{TransactionHandler: TransactionHandler{svc: uc, log: log}, uc: uc}
}

// Create godoc
// @Summary      Registrar entrada, pérdida o consumo
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "quantity > 0, note opcional (máx. 500)"
// @Success      201  {object}  dto.CreatedResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/{kind} [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	id, err := h.uc.Register(c.Context(), inventory.MovementInput{
		Quantity: in.Quantity,
		Note:     in.Note,
		Actor:    actorFrom(c),
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return created(c, h.log, h.uc.Kind(), id)
}

// SaleHandler alta de ventas.
type SaleHandler struct {
	TransactionHandler
	uc *inventory.SaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *inventory.SaleUseCase, log *logger.Logger) *SaleHandler {
	return &SaleHandler{TransactionHandler: TransactionHandler{svc: uc, log: log}, uc: uc}
}

// Create godoc
// @Summary      Registrar venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaleRequest  true  "quantity > 0; total_value o unit_price opcionales"
// @Success      201  {object}  dto.CreatedResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.SaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	id, err := h.uc.Register(c.Context(), inventory.SaleInput{
		Quantity:     in.Quantity,
		UnitPrice:    in.UnitPrice,
		TotalValue:   in.TotalValue,
		Note:         in.Note,
		CustomerID:   in.CustomerID,
		CustomerName: in.CustomerName,
		Actor:        actorFrom(c),
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return created(c, h.log, entity.KindSale, id)
}

// ExpenseHandler alta de gastos.
type ExpenseHandler struct {
	TransactionHandler
	uc *inventory.ExpenseUseCase
}

// NewExpenseHandler construye el handler.
func NewExpenseHandler(uc *inventory.ExpenseUseCase, log *logger.Logger) *ExpenseHandler {
	return &ExpenseHandler{TransactionHandler: TransactionHandler{svc: uc, log: log}, uc: uc}
}

// Create godoc
// @Summary      Registrar gasto
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExpenseRequest  true  "amount > 0, description obligatoria"
// @Success      201  {object}  dto.CreatedResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/expenses [post]
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	var in dto.ExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	id, err := h.uc.Register(c.Context(), inventory.ExpenseInput{
		Amount:      in.Amount,
		Description: in.Description,
		Actor:       actorFrom(c),
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return created(c, h.log, entity.KindExpense, id)
}
