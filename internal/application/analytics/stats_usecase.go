// Package analytics contiene los casos de uso del dashboard de estadísticas
// de ventas: carga del snapshot, ejecución del motor de agregación y
// conversión a DTOs de presentación.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Vivero-api/internal/application/dto"
	"github.com/jhoicas/Vivero-api/internal/domain"
	"github.com/jhoicas/Vivero-api/internal/domain/entity"
	"github.com/jhoicas/Vivero-api/internal/domain/repository"
	"github.com/jhoicas/Vivero-api/internal/domain/stats"
)

// StatsUseCase carga el snapshot completo de pedidos y devoluciones y lo pasa
// por el motor de agregación. No guarda estado entre llamadas; el "ahora" es
// inyectable para tests.
type StatsUseCase struct {
	orders  repository.OrderRepository
	returns repository.ReturnRepository
	engine  *stats.Engine
	now     func() time.Time
}

// NewStatsUseCase construye el caso de uso.
func NewStatsUseCase(
	orders repository.OrderRepository,
	returns repository.ReturnRepository,
	engine *stats.Engine,
) *StatsUseCase {
	return &StatsUseCase{orders: orders, returns: returns, engine: engine, now: time.Now}
}

// WithNow reemplaza la fuente de "ahora" (para tests).
func (uc *StatsUseCase) WithNow(now func() time.Time) *StatsUseCase {
	uc.now = now
	return uc
}

// GetStats construye el StatsDTO completo para los filtros pedidos.
//
// Dos consultas en paralelo al almacén (pedidos y devoluciones son
// independientes), luego una sola pasada por el motor.
func (uc *StatsUseCase) GetStats(ctx context.Context, req dto.StatsRequest) (*dto.StatsDTO, error) {
	query, err := uc.parseQuery(req)
	if err != nil {
		return nil, err
	}

	type ordersResult struct {
		orders []entity.Order
		err    error
	}
	type returnsResult struct {
		returns []entity.Return
		err     error
	}

	ordersCh := make(chan ordersResult, 1)
	returnsCh := make(chan returnsResult, 1)

	go func() {
		o, err := uc.orders.ListAll(ctx)
		ordersCh <- ordersResult{o, err}
	}()
	go func() {
		r, err := uc.returns.ListAll(ctx)
		returnsCh <- returnsResult{r, err}
	}()

	or := <-ordersCh
	rr := <-returnsCh

	if or.err != nil {
		return nil, fmt.Errorf("stats: pedidos: %w", or.err)
	}
	if rr.err != nil {
		return nil, fmt.Errorf("stats: devoluciones: %w", rr.err)
	}

	result, err := uc.engine.Compute(or.orders, rr.returns, query, uc.now())
	if err != nil {
		return nil, err
	}
	return toStatsDTO(result), nil
}

// parseQuery valida los parámetros HTTP y los convierte al Query del motor.
// Las fechas se interpretan en la zona horaria de reporte configurada.
func (uc *StatsUseCase) parseQuery(req dto.StatsRequest) (stats.Query, error) {
	loc := uc.engine.Params().Location
	if loc == nil {
		loc = time.UTC
	}

	kind := stats.FilterKind(req.DateFilter)
	if req.DateFilter == "" {
		kind = stats.FilterAll
	}
	q := stats.Query{
		DateFilter:     stats.DateFilter{Kind: kind},
		CansStatus:     req.CansStatus,
		PlantType:      req.PlantType,
		AveragesStatus: req.AveragesStatus,
	}

	if kind == stats.FilterCustom {
		from, err := time.ParseInLocation("2006-01-02", req.From, loc)
		if err != nil {
			return stats.Query{}, fmt.Errorf("%w: 'from' inválido (se espera YYYY-MM-DD)", domain.ErrInvalidDateFilter)
		}
		q.DateFilter.From = from
		if req.To != "" {
			to, err := time.ParseInLocation("2006-01-02", req.To, loc)
			if err != nil {
				return stats.Query{}, fmt.Errorf("%w: 'to' inválido (se espera YYYY-MM-DD)", domain.ErrInvalidDateFilter)
			}
			q.DateFilter.To = to
		}
	}
	return q, nil
}

// ── Conversión a DTO ──────────────────────────────────────────────────────────

// money redondea montos a 2 decimales para presentación; el motor trabaja con
// precisión completa.
func money(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

func toStatsDTO(st *stats.Stats) *dto.StatsDTO {
	out := &dto.StatsDTO{
		TotalOrders:     st.TotalOrders,
		TodayOrders:     st.TodayOrders,
		YesterdayOrders: st.YesterdayOrders,
		EarlierOrders:   st.EarlierOrders,
		Revenue:         money(st.Revenue),
		Profit:          money(st.Profit),
		FreeProducts:    st.FreeProducts,
		ReturnsCount:    st.ReturnsCount,
		ReturnsCost:     money(st.ReturnsCost),

		ByStatus:  statusBreakdown(st.ByStatus),
		ByCity:    cityBreakdown(st.ByCity),
		ByProduct: productBreakdown(st.ByProduct),

		Cans:          cansBreakdown(st.Cans),
		AllPlantTypes: st.AllPlantTypes,

		OrdersOverTime: dailySeries(st.OrdersOverTime),
		HourOfDay:      hourSeries(st.HourOfDay),
		DayOfWeek:      weekdaySeries(st.DayOfWeek),

		DailyAverage:   toRollingDTO(st.DailyAverage),
		WeeklyAverage:  toRollingDTO(st.WeeklyAverage),
		MonthlyAverage: toRollingDTO(st.MonthlyAverage),

		Customers: dto.CustomerMetricsDTO{
			UniqueCustomers:      st.Customers.UniqueCustomers,
			RepeatCustomers:      st.Customers.RepeatCustomers,
			AvgOrdersPerCustomer: st.Customers.AvgOrdersPerCustomer.Round(2),
			ConversionRate:       st.Customers.ConversionRate.Round(2),
			AvgItemsPerOrder:     st.Customers.AvgItemsPerOrder.Round(2),
		},
	}
	if out.AllPlantTypes == nil {
		out.AllPlantTypes = []string{}
	}
	return out
}

// statusBreakdown emite los estados en orden de ciclo de vida; estados
// desconocidos (datos viejos) van al final, ordenados por nombre.
func statusBreakdown(m map[string]stats.StatusAgg) []dto.StatusBreakdownDTO {
	out := make([]dto.StatusBreakdownDTO, 0, len(m))
	emitted := make(map[string]bool, len(m))

	emit := func(status string) {
		agg, ok := m[status]
		if !ok || emitted[status] {
			return
		}
		emitted[status] = true
		out = append(out, dto.StatusBreakdownDTO{
			Status:  status,
			Orders:  agg.Orders,
			Revenue: money(agg.Revenue),
			Profit:  money(agg.Profit),
		})
	}

	for _, status := range entity.OrderStatuses {
		emit(status)
	}
	rest := make([]string, 0)
	for status := range m {
		if !emitted[status] {
			rest = append(rest, status)
		}
	}
	sort.Strings(rest)
	for _, status := range rest {
		emit(status)
	}
	return out
}

// cityBreakdown ordenado por revenue descendente, nombre como desempate.
func cityBreakdown(m map[string]stats.CityAgg) []dto.CityBreakdownDTO {
	out := make([]dto.CityBreakdownDTO, 0, len(m))
	for _, agg := range m {
		out = append(out, dto.CityBreakdownDTO{
			City:    agg.City,
			Orders:  agg.Orders,
			Revenue: money(agg.Revenue),
			Profit:  money(agg.Profit),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Revenue.Equal(out[j].Revenue) {
			return out[i].Revenue.GreaterThan(out[j].Revenue)
		}
		return out[i].City < out[j].City
	})
	return out
}

// productBreakdown ordenado por revenue descendente, nombre como desempate.
func productBreakdown(m map[string]stats.ProductAgg) []dto.ProductBreakdownDTO {
	out := make([]dto.ProductBreakdownDTO, 0, len(m))
	for name, agg := range m {
		out = append(out, dto.ProductBreakdownDTO{
			PlantType: name,
			Revenue:   money(agg.Revenue),
			Profit:    money(agg.Profit),
			Units:     agg.Units,
			Orders:    agg.Orders,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Revenue.Equal(out[j].Revenue) {
			return out[i].Revenue.GreaterThan(out[j].Revenue)
		}
		return out[i].PlantType < out[j].PlantType
	})
	return out
}

func cansBreakdown(list []stats.PlantTypeCount) []dto.CansBreakdownDTO {
	out := make([]dto.CansBreakdownDTO, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CansBreakdownDTO{PlantType: c.PlantType, Quantity: c.Quantity})
	}
	return out
}

func dailySeries(list []stats.DailyPoint) []dto.DailyPointDTO {
	out := make([]dto.DailyPointDTO, 0, len(list))
	for _, p := range list {
		out = append(out, dto.DailyPointDTO{
			Date:    p.Date,
			Orders:  p.Orders,
			Revenue: money(p.Revenue),
			Profit:  money(p.Profit),
		})
	}
	return out
}

func hourSeries(list []stats.HourPoint) []dto.HourPointDTO {
	out := make([]dto.HourPointDTO, 0, len(list))
	for _, p := range list {
		out = append(out, dto.HourPointDTO{Hour: p.Hour, Orders: p.Orders})
	}
	return out
}

func weekdaySeries(list []stats.WeekdayPoint) []dto.WeekdayPointDTO {
	out := make([]dto.WeekdayPointDTO, 0, len(list))
	for _, p := range list {
		out = append(out, dto.WeekdayPointDTO{Day: p.Day, Orders: p.Orders, Revenue: money(p.Revenue)})
	}
	return out
}

func toRollingDTO(r stats.RollingAverage) dto.RollingAverageDTO {
	return dto.RollingAverageDTO{
		Revenue: money(r.Revenue),
		Profit:  money(r.Profit),
		Buckets: r.Buckets,
	}
}
