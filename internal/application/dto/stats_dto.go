package dto

import "github.com/shopspring/decimal"

// ── Query parameters ──────────────────────────────────────────────────────────

// StatsRequest parámetros para GET /api/stats.
type StatsRequest struct {
	DateFilter     string `query:"date_filter"`     // all|today|yesterday|days_before|custom (default all)
	From           string `query:"from"`            // YYYY-MM-DD; obligatorio con custom
	To             string `query:"to"`              // YYYY-MM-DD; opcional (default: mismo día que from)
	CansStatus     string `query:"cans_status"`     // Estado para el desglose de macetas (default all)
	PlantType      string `query:"plant_type"`      // Tipo de planta para acotar el desglose de macetas
	AveragesStatus string `query:"averages_status"` // Estado para los promedios móviles (default all)
}

// ── Desgloses ─────────────────────────────────────────────────────────────────

// StatusBreakdownDTO acumulado por estado de pedido.
type StatusBreakdownDTO struct {
	Status  string          `json:"status"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
	Profit  decimal.Decimal `json:"profit"`
}

// CityBreakdownDTO acumulado por ciudad del cliente.
type CityBreakdownDTO struct {
	City    string          `json:"city"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
	Profit  decimal.Decimal `json:"profit"`
}

// ProductBreakdownDTO acumulado por tipo de planta (atribución proporcional).
type ProductBreakdownDTO struct {
	PlantType string          `json:"plant_type"`
	Revenue   decimal.Decimal `json:"revenue"`
	Profit    decimal.Decimal `json:"profit"`
	Units     int             `json:"units"`
	Orders    int             `json:"orders"`
}

// CansBreakdownDTO cantidades de macetas por tipo de planta.
type CansBreakdownDTO struct {
	PlantType string `json:"plant_type"`
	Quantity  int    `json:"quantity"`
}

// ── Series temporales ─────────────────────────────────────────────────────────

// DailyPointDTO punto de la serie diaria de pedidos.
type DailyPointDTO struct {
	Date    string          `json:"date"` // YYYY-MM-DD
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
	Profit  decimal.Decimal `json:"profit"`
}

// HourPointDTO bucket del histograma por hora (serie densa de 24).
type HourPointDTO struct {
	Hour   string `json:"hour"` // "HH:00"
	Orders int    `json:"orders"`
}

// WeekdayPointDTO bucket del histograma por día de la semana (serie densa de 7,
// domingo primero).
type WeekdayPointDTO struct {
	Day     string          `json:"day"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// RollingAverageDTO promedio por bucket de una granularidad.
type RollingAverageDTO struct {
	Revenue decimal.Decimal `json:"revenue"`
	Profit  decimal.Decimal `json:"profit"`
	Buckets int             `json:"buckets"`
}

// CustomerMetricsDTO métricas de clientes y conversión.
type CustomerMetricsDTO struct {
	UniqueCustomers      int             `json:"unique_customers"`
	RepeatCustomers      int             `json:"repeat_customers"`
	AvgOrdersPerCustomer decimal.Decimal `json:"avg_orders_per_customer"`
	ConversionRate       decimal.Decimal `json:"conversion_rate"` // 0–100
	AvgItemsPerOrder     decimal.Decimal `json:"avg_items_per_order"`
}

// ── Respuesta completa ────────────────────────────────────────────────────────

// StatsDTO respuesta de GET /api/stats: todos los totales, desgloses, series
// y métricas del dashboard para la ventana pedida.
type StatsDTO struct {
	TotalOrders     int             `json:"total_orders"`
	TodayOrders     int             `json:"today_orders"`
	YesterdayOrders int             `json:"yesterday_orders"`
	EarlierOrders   int             `json:"earlier_orders"`
	Revenue         decimal.Decimal `json:"revenue"`
	Profit          decimal.Decimal `json:"profit"` // Neto del costo de devoluciones
	FreeProducts    int             `json:"free_products"`
	ReturnsCount    int             `json:"returns_count"`
	ReturnsCost     decimal.Decimal `json:"returns_cost"`

	ByStatus  []StatusBreakdownDTO  `json:"by_status"`
	ByCity    []CityBreakdownDTO    `json:"by_city"`
	ByProduct []ProductBreakdownDTO `json:"by_product"`

	Cans          []CansBreakdownDTO `json:"cans"`
	AllPlantTypes []string           `json:"all_plant_types"`

	OrdersOverTime []DailyPointDTO   `json:"orders_over_time"`
	HourOfDay      []HourPointDTO    `json:"hour_of_day"`  // Siempre 24 entradas
	DayOfWeek      []WeekdayPointDTO `json:"day_of_week"`  // Siempre 7 entradas

	DailyAverage   RollingAverageDTO `json:"daily_average"`
	WeeklyAverage  RollingAverageDTO `json:"weekly_average"`
	MonthlyAverage RollingAverageDTO `json:"monthly_average"`

	Customers CustomerMetricsDTO `json:"customers"`
}
