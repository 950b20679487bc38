package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Vivero-api/internal/application/analytics"
	"github.com/jhoicas/Vivero-api/internal/application/dto"
	"github.com/jhoicas/Vivero-api/internal/domain"
)

// StatsHandler maneja los endpoints del dashboard de estadísticas.
type StatsHandler struct {
	statsUC  *analytics.StatsUseCase
	reportUC *analytics.ReportUseCase
}

// NewStatsHandler construye el handler.
func NewStatsHandler(statsUC *analytics.StatsUseCase, reportUC *analytics.ReportUseCase) *StatsHandler {
	return &StatsHandler{statsUC: statsUC, reportUC: reportUC}
}

// GetStats godoc
// @Summary      Dashboard completo de estadísticas de ventas
// @Description  Totales, desgloses por estado/ciudad/tipo de planta, series
//               temporales, promedios móviles y métricas de clientes para la
//               ventana de fechas pedida. Todo se recalcula desde el registro
//               de pedidos en cada invocación.
// @Tags         stats
// @Produce      json
// @Param        date_filter      query  string  false  "all | today | yesterday | days_before | custom (default all)"
// @Param        from             query  string  false  "Inicio (YYYY-MM-DD). Obligatorio con custom."
// @Param        to               query  string  false  "Fin (YYYY-MM-DD). Default: mismo día que from."
// @Param        cans_status      query  string  false  "Estado de pedido para el desglose de macetas (default all)."
// @Param        plant_type       query  string  false  "Tipo de planta para acotar el desglose de macetas."
// @Param        averages_status  query  string  false  "Estado de pedido para los promedios móviles (default all)."
// @Success      200  {object}  dto.StatsDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stats [get]
func (h *StatsHandler) GetStats(c *fiber.Ctx) error {
	var req dto.StatsRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
		})
	}

	out, err := h.statsUC.GetStats(c.Context(), req)
	if err != nil {
		return statsError(c, err)
	}
	return c.JSON(out)
}

// GetReportPDF godoc
// @Summary      Reporte de ventas en PDF
// @Description  La misma información de /api/stats en un documento imprimible.
//               Acepta los mismos parámetros de consulta.
// @Tags         stats
// @Produce      application/pdf
// @Param        date_filter  query  string  false  "all | today | yesterday | days_before | custom (default all)"
// @Param        from         query  string  false  "Inicio (YYYY-MM-DD). Obligatorio con custom."
// @Param        to           query  string  false  "Fin (YYYY-MM-DD). Default: mismo día que from."
// @Success      200  {file}   binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stats/report.pdf [get]
func (h *StatsHandler) GetReportPDF(c *fiber.Ctx) error {
	var req dto.StatsRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
		})
	}

	pdfBytes, err := h.reportUC.GetReportPDF(c.Context(), req)
	if err != nil {
		return statsError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="reporte-ventas.pdf"`)
	return c.Send(pdfBytes)
}

// statsError mapea errores de dominio a códigos HTTP. Filtros mal formados y
// registros inválidos son errores del cliente; el resto es 500.
func statsError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidDateFilter):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_DATE_FILTER", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrInvalidOrder), errors.Is(err, domain.ErrInvalidReturn):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "INVALID_RECORD", Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
}
