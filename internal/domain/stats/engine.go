package stats

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Vivero-api/internal/domain/entity"
)

// Engine motor de agregación de estadísticas de ventas. Sin estado entre
// invocaciones: cada llamada recibe el snapshot completo de pedidos y
// devoluciones y devuelve un resultado nuevo e independiente. Seguro para
// uso concurrente.
type Engine struct {
	params Params
}

// NewEngine construye el motor con los parámetros de negocio dados.
func NewEngine(params Params) *Engine {
	return &Engine{params: params}
}

// Params expone los parámetros activos (la capa de aplicación los necesita
// para interpretar fechas en la misma zona de reporte).
func (e *Engine) Params() Params { return e.params }

// Query parámetros de una invocación del motor. CansStatus, PlantType y
// AveragesStatus son selectores independientes del filtro de fechas principal.
type Query struct {
	DateFilter     DateFilter
	CansStatus     string // Estado para el desglose de macetas ("" o "all" = todos)
	PlantType      string // Tipo de planta para acotar el desglose de macetas
	AveragesStatus string // Estado para los promedios móviles
}

// Stats resultado inmutable de una invocación. Se reconstruye completo en
// cada llamada; el mismo input (incluido el mismo "ahora") produce siempre
// el mismo valor.
type Stats struct {
	// Totales escalares de la ventana filtrada
	TotalOrders     int // Incluye cancelados
	TodayOrders     int
	YesterdayOrders int
	EarlierOrders   int             // Estrictamente antes de ayer
	Revenue         decimal.Decimal //
	Profit          decimal.Decimal // Neto del costo de devoluciones de la ventana
	FreeProducts    int             // Pedidos que regalaron una unidad (1 por pedido)
	ReturnsCount    int
	ReturnsCost     decimal.Decimal

	// Desgloses (clave: estado / ciudad normalizada / tipo de planta)
	ByStatus  map[string]StatusAgg
	ByCity    map[string]CityAgg
	ByProduct map[string]ProductAgg

	// Macetas por tipo de planta (sobre todos los pedidos, selector propio)
	Cans          []PlantTypeCount
	AllPlantTypes []string // Todos los tipos vistos, para poblar el selector

	// Series temporales de la ventana filtrada
	OrdersOverTime []DailyPoint
	HourOfDay      []HourPoint    // Siempre 24 entradas
	DayOfWeek      []WeekdayPoint // Siempre 7 entradas, domingo primero

	// Promedios móviles (sobre todos los pedidos, selector propio)
	DailyAverage   RollingAverage
	WeeklyAverage  RollingAverage
	MonthlyAverage RollingAverage

	Customers CustomerMetrics
}

// Compute ejecuta la agregación completa. O(pedidos + líneas de producto);
// sin I/O, sin efectos secundarios, sin lectura del reloj global ("ahora"
// siempre viene inyectado).
func (e *Engine) Compute(orders []entity.Order, returns []entity.Return, q Query, now time.Time) (*Stats, error) {
	if err := validateOrders(orders); err != nil {
		return nil, err
	}
	if err := validateReturns(returns); err != nil {
		return nil, err
	}

	window, err := e.params.ResolveWindow(q.DateFilter, now)
	if err != nil {
		return nil, err
	}
	parts := e.params.Partition(orders, window, now)
	windowReturns := filterReturns(returns, window)

	filtered := e.params.costOrders(parts.Filtered)
	all := e.params.costOrders(orders)

	st := &Stats{
		TotalOrders:     len(parts.Filtered),
		TodayOrders:     len(parts.Today),
		YesterdayOrders: len(parts.Yesterday),
		EarlierOrders:   len(parts.DaysBefore),
	}

	for _, co := range filtered {
		if co.order.IsCancelled() {
			continue
		}
		st.Revenue = st.Revenue.Add(co.cost.Revenue)
		st.Profit = st.Profit.Add(co.cost.Profit)
		if co.cost.FreeProduct {
			st.FreeProducts++
		}
	}

	st.ReturnsCount = len(windowReturns)
	for _, r := range windowReturns {
		cost := e.params.ReturnCost
		if r.HasCost {
			cost = r.Cost
		}
		st.ReturnsCost = st.ReturnsCost.Add(cost)
	}
	// La utilidad de la ventana absorbe el costo de sus devoluciones; los
	// desgloses no, porque una devolución no apunta a ningún pedido.
	st.Profit = st.Profit.Sub(st.ReturnsCost)

	st.ByStatus = groupByStatus(filtered)
	st.ByCity = groupByCity(filtered)
	st.ByProduct = groupByProduct(filtered)
	st.Cans, st.AllPlantTypes = cansByPlantType(orders, q.CansStatus, q.PlantType)

	st.OrdersOverTime = e.params.ordersOverTime(filtered)
	st.HourOfDay = e.params.hourOfDay(filtered)
	st.DayOfWeek = e.params.dayOfWeek(filtered)

	st.DailyAverage, st.WeeklyAverage, st.MonthlyAverage = e.params.rollingAverages(all, q.AveragesStatus)

	st.Customers = customerMetrics(parts.Filtered)
	return st, nil
}
