package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ovos-api/internal/application/analytics"
	"github.com/jhoicas/Ovos-api/internal/application/inventory"
	"github.com/jhoicas/Ovos-api/internal/application/pricing"
	"github.com/jhoicas/Ovos-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Stock       *inventory.StockLedger
	Entries     *inventory.MovementUseCase
	Losses      *inventory.MovementUseCase
	Consumption *inventory.MovementUseCase
	Sales       *inventory.SaleUseCase
	Expenses    *inventory.ExpenseUseCase
	Prices      *pricing.PriceRegistry
	Summaries   *analytics.SummaryAggregator
	Tokens      TokenVerifier
	Log         *logger.Logger
}

// Router registra las rutas de la API. Todas requieren Bearer Token; borrar transacciones,
// cambiar el precio y recalcular resúmenes quedan reservados al rol admin.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log.Component("http")
	api := app.Group("/api", AuthMiddleware(deps.Tokens))
	anyRole := RequireRole(RoleAdmin, RoleOperador)
	adminOnly := RequireRole(RoleAdmin)

	// Stock
	stockHandler := NewStockHandler(deps.Stock, log)
	api.Get("/stock", anyRole, stockHandler.Current)

	// Transacciones por tipo
	type routes struct {
		base   *TransactionHandler
		create fiber.Handler
	}
	entries := NewMovementHandler(deps.Entries, log)
	losses := NewMovementHandler(deps.Losses, log)
	consumption := NewMovementHandler(deps.Consumption, log)
	sales := NewSaleHandler(deps.Sales, log)
	expenses := NewExpenseHandler(deps.Expenses, log)
	for path, r := range map[string]routes{
		"/entries":     {&entries.TransactionHandler, entries.Create},
		"/losses":      {&losses.TransactionHandler, losses.Create},
		"/consumption": {&consumption.TransactionHandler, consumption.Create},
		"/sales":       {&sales.TransactionHandler, sales.Create},
		"/expenses":    {&expenses.TransactionHandler, expenses.Create},
	} {
		g := api.Group(path)
		g.Post("/", anyRole, r.create)
		g.Get("/", anyRole, r.base.List)
		g.Get("/:id", anyRole, r.base.GetByID)
		g.Delete("/:id", adminOnly, r.base.Delete)
	}

	// Precios
	priceHandler := NewPriceHandler(deps.Prices, log)
	prices := api.Group("/prices")
	prices.Get("/", anyRole, priceHandler.History)
	prices.Get("/active", anyRole, priceHandler.GetActive)
	prices.Post("/", adminOnly, priceHandler.SetPrice)

	// Resúmenes
	summaryHandler := NewSummaryHandler(deps.Summaries, log)
	api.Get("/months", anyRole, summaryHandler.Months)
	summaries := api.Group("/summaries")
	summaries.Get("/year/:year", anyRole, summaryHandler.GetYear)
	summaries.Get("/:month", anyRole, summaryHandler.GetMonth)
	summaries.Post("/:month/recompute", adminOnly, summaryHandler.Recompute)
}
