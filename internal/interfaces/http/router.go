package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Shreyas100100/Expense-Tracker/internal/application/analytics"
	"github.com/Shreyas100100/Expense-Tracker/internal/application/auth"
	"github.com/Shreyas100100/Expense-Tracker/internal/application/billing"
	"github.com/Shreyas100100/Expense-Tracker/internal/application/catalog"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ItemUC      *catalog.ItemUseCase
	CustomerUC  *billing.CustomerUseCase
	BillUC      *billing.BillUseCase
	PaymentUC   *billing.PaymentUseCase
	StatementUC *billing.StatementUseCase
	HistoryUC   *analytics.HistoryUseCase
	DashboardUC *analytics.DashboardUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/me", authHandler.Me)

	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)

	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.BillUC, deps.PaymentUC, deps.HistoryUC, deps.StatementUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Post("/reconcile", customerHandler.ReconcileAll)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)
	customers.Get("/:id/due", customerHandler.Due)
	customers.Post("/:id/reconcile", customerHandler.Reconcile)
	customers.Get("/:id/history", customerHandler.History)
	customers.Get("/:id/bill-lines", customerHandler.BillLines)
	customers.Get("/:id/statement.pdf", customerHandler.Statement)

	// /today antes de /:id
	bills := protected.Group("/bills")
	billHandler := NewBillHandler(deps.BillUC)
	bills.Post("/", billHandler.Create)
	bills.Get("/", billHandler.List)
	bills.Get("/today", billHandler.Today)
	bills.Get("/:id", billHandler.GetByID)

	payments := protected.Group("/payments")
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	payments.Post("/", paymentHandler.Accept)
	payments.Get("/", paymentHandler.List)

	historyHandler := NewHistoryHandler(deps.HistoryUC)
	protected.Get("/history/monthly", historyHandler.Monthly)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)
}
