package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Vivero-api/internal/application/dto"
)

// ReportPDFGenerator puerto hacia la infraestructura de generación de PDFs.
// La capa de aplicación decide QUÉ va en el reporte; la implementación decide
// CÓMO se ve.
type ReportPDFGenerator interface {
	GenerateStatsPDF(ctx context.Context, report *dto.StatsDTO, period string, generatedAt time.Time) ([]byte, error)
}

// ReportUseCase produce la versión PDF del dashboard de estadísticas, con los
// mismos filtros que GET /api/stats.
type ReportUseCase struct {
	stats *StatsUseCase
	gen   ReportPDFGenerator
}

// NewReportUseCase construye el caso de uso del reporte PDF.
func NewReportUseCase(stats *StatsUseCase, gen ReportPDFGenerator) *ReportUseCase {
	return &ReportUseCase{stats: stats, gen: gen}
}

// GetReportPDF calcula las estadísticas y las vuelca al PDF.
func (uc *ReportUseCase) GetReportPDF(ctx context.Context, req dto.StatsRequest) ([]byte, error) {
	report, err := uc.stats.GetStats(ctx, req)
	if err != nil {
		return nil, err
	}
	return uc.gen.GenerateStatsPDF(ctx, report, periodLabel(req), uc.stats.now())
}

// periodLabel etiqueta humana del período para la cabecera del PDF.
func periodLabel(req dto.StatsRequest) string {
	switch req.DateFilter {
	case "", "all":
		return "Histórico completo"
	case "today":
		return "Hoy"
	case "yesterday":
		return "Ayer"
	case "days_before":
		return "Días anteriores"
	case "custom":
		if req.To != "" && req.To != req.From {
			return fmt.Sprintf("%s a %s", req.From, req.To)
		}
		return req.From
	}
	return req.DateFilter
}
