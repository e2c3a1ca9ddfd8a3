package handler

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, categoryHandler *CategoryHandler, entryHandler *EntryHandler, reportHandler *ReportHandler, budgetHandler *BudgetHandler) {
	api := e.Group("/api")

	// Category routes
	categories := api.Group("/categorias")
	categories.GET("", categoryHandler.ListCategories)
	categories.POST("", categoryHandler.CreateCategory)
	categories.POST("/seed", categoryHandler.SeedCategories)
	categories.GET("/:id", categoryHandler.GetCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeactivateCategory)

	// Ledger routes
	entries := api.Group("/gastos")
	entries.GET("", entryHandler.ListEntries)
	entries.POST("", entryHandler.CreateEntry)
	entries.GET("/:id", entryHandler.GetEntry)
	entries.PUT("/:id", entryHandler.UpdateEntry)
	entries.DELETE("/:id", entryHandler.DeleteEntry)

	// Report routes
	reports := api.Group("/relatorios")
	reports.GET("/resumo-mensal", reportHandler.MonthlySummary)
	reports.GET("/por-categoria", reportHandler.ByCategory)
	reports.GET("/evolucao", reportHandler.Evolution)
	reports.GET("/maiores-gastos", reportHandler.TopExpenses)
	reports.GET("/por-forma-pagamento", reportHandler.ByPaymentMethod)
	reports.GET("/orcamento", reportHandler.BudgetUsage)

	// Monthly budget routes
	budgets := api.Group("/orcamentos")
	budgets.GET("", budgetHandler.ListBudgets)
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)
}
