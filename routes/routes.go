package routes

import (
	"app/handlers"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App) {
	app.Get("/health", handlers.HandleHealth)

	api := app.Group("/api/v1")

	// --- Accounting Routes ---
	accounting := api.Group("/accounting")
	accounting.Get("/consolidated", handlers.HandleGetConsolidated)
	accounting.Get("/kpis", handlers.HandleGetFinancialKPIs)
	accounting.Get("/report/export", handlers.HandleExportReport)
	accounting.Get("/snapshots", handlers.HandleListSnapshots)
	accounting.Post("/insights", handlers.HandleGetInsights)
}
