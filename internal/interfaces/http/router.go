package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Vivero-api/internal/application/analytics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StatsUC  *analytics.StatsUseCase
	ReportUC *analytics.ReportUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	statsHandler := NewStatsHandler(deps.StatsUC, deps.ReportUC)
	statsGroup := api.Group("/stats")
	statsGroup.Get("/", statsHandler.GetStats)
	statsGroup.Get("/report.pdf", statsHandler.GetReportPDF)
}
