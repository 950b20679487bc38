package stats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Vivero-api/internal/domain/entity"
)

// ── Tipos de desglose ─────────────────────────────────────────────────────────

// StatusAgg acumulado por estado de pedido. Orders cuenta todos los pedidos
// del estado (incluidos cancelados); Revenue/Profit solo acumulan en estados
// no cancelados.
type StatusAgg struct {
	Orders  int
	Revenue decimal.Decimal
	Profit  decimal.Decimal
}

// CityAgg acumulado por ciudad del cliente (pedidos no cancelados). La clave
// del mapa es la ciudad normalizada; City conserva la primera grafía vista.
type CityAgg struct {
	City    string
	Orders  int
	Revenue decimal.Decimal
	Profit  decimal.Decimal
}

// ProductAgg acumulado por tipo de planta con atribución proporcional: cada
// línea recibe la fracción de ingresos/utilidad del pedido que corresponde a
// su participación en el total de productos del pedido.
type ProductAgg struct {
	Revenue decimal.Decimal // Σ share × revenue del pedido
	Profit  decimal.Decimal // Σ share × profit del pedido
	Units   int             // Cantidad cruda vendida
	Orders  int             // Pedidos en los que participa el producto
}

// PlantTypeCount cantidad de macetas vendidas de un tipo de planta.
type PlantTypeCount struct {
	PlantType string
	Quantity  int
}

// DailyPoint punto de la serie diaria de pedidos (gráfica "pedidos en el tiempo").
type DailyPoint struct {
	Date    string // YYYY-MM-DD en la zona de reporte
	Orders  int
	Revenue decimal.Decimal
	Profit  decimal.Decimal
}

// HourPoint bucket del histograma por hora del día. La serie siempre tiene
// 24 entradas, con cero en las horas sin pedidos.
type HourPoint struct {
	Hour   string // "HH:00"
	Orders int
}

// WeekdayPoint bucket del histograma por día de la semana. La serie siempre
// tiene 7 entradas en orden fijo, empezando en domingo.
type WeekdayPoint struct {
	Day     string
	Orders  int
	Revenue decimal.Decimal
}

// weekdayLabels etiquetas en orden fijo domingo-primero, igual que la gráfica
// del dashboard.
var weekdayLabels = [7]string{
	"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado",
}

// ── Agregadores ───────────────────────────────────────────────────────────────

// groupByStatus acumula sobre la ventana filtrada. Los cancelados cuentan en
// Orders de su estado pero no aportan dinero.
func groupByStatus(orders []costedOrder) map[string]StatusAgg {
	out := make(map[string]StatusAgg)
	for _, co := range orders {
		agg := out[co.order.Status]
		agg.Orders++
		if !co.order.IsCancelled() {
			agg.Revenue = agg.Revenue.Add(co.cost.Revenue)
			agg.Profit = agg.Profit.Add(co.cost.Profit)
		}
		out[co.order.Status] = agg
	}
	return out
}

// groupByCity acumula pedidos no cancelados por ciudad normalizada.
func groupByCity(orders []costedOrder) map[string]CityAgg {
	out := make(map[string]CityAgg)
	for _, co := range orders {
		if co.order.IsCancelled() {
			continue
		}
		key := normalizeCity(co.order.Customer.City)
		if key == "" {
			continue
		}
		agg, seen := out[key]
		if !seen {
			// La etiqueta de presentación es la primera grafía original vista.
			agg.City = strings.TrimSpace(co.order.Customer.City)
		}
		agg.Orders++
		agg.Revenue = agg.Revenue.Add(co.cost.Revenue)
		agg.Profit = agg.Profit.Add(co.cost.Profit)
		out[key] = agg
	}
	return out
}

// groupByProduct distribuye ingresos y utilidad de cada pedido entre sus
// líneas, proporcional a la participación de cada línea en el total de
// productos del pedido (Σ precio×cantidad, antes de deducciones). Si ese
// total es cero el pedido no aporta nada a este desglose.
func groupByProduct(orders []costedOrder) map[string]ProductAgg {
	out := make(map[string]ProductAgg)
	for _, co := range orders {
		if co.order.IsCancelled() {
			continue
		}

		productsTotal := decimal.Zero
		for _, it := range co.order.Products {
			productsTotal = productsTotal.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
		if !productsTotal.IsPositive() {
			continue // Guardia contra división por cero: no se distribuye a ningún bucket
		}

		participated := make(map[string]bool, len(co.order.Products))
		for _, it := range co.order.Products {
			lineTotal := it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
			share := lineTotal.Div(productsTotal)

			agg := out[it.Name]
			agg.Revenue = agg.Revenue.Add(co.cost.Revenue.Mul(share))
			agg.Profit = agg.Profit.Add(co.cost.Profit.Mul(share))
			agg.Units += it.Quantity
			if !participated[it.Name] {
				agg.Orders++
				participated[it.Name] = true
			}
			out[it.Name] = agg
		}
	}
	return out
}

// cansByPlantType desglose de cantidades por tipo de planta sobre TODOS los
// pedidos (no solo la ventana de fechas), ignorando cancelados. statusFilter
// y plantType son selectores independientes del filtro principal; vacíos o
// "all" no restringen. Devuelve la lista ordenada descendente por cantidad y
// el conjunto ordenado de todos los tipos de planta vistos (sin filtros, para
// poblar el selector del dashboard).
func cansByPlantType(orders []entity.Order, statusFilter, plantType string) ([]PlantTypeCount, []string) {
	counts := make(map[string]int)
	allTypes := make(map[string]struct{})

	for _, o := range orders {
		for _, it := range o.Products {
			if it.Name != "" {
				allTypes[it.Name] = struct{}{}
			}
		}
		if o.IsCancelled() {
			continue
		}
		if statusFilter != "" && statusFilter != "all" && o.Status != statusFilter {
			continue
		}
		for _, it := range o.Products {
			if it.Name == "" {
				continue
			}
			if plantType != "" && plantType != "all" && it.Name != plantType {
				continue
			}
			counts[it.Name] += it.Quantity
		}
	}

	list := make([]PlantTypeCount, 0, len(counts))
	for name, qty := range counts {
		list = append(list, PlantTypeCount{PlantType: name, Quantity: qty})
	}
	// Orden total estable: cantidad descendente, nombre ascendente en empates.
	sort.Slice(list, func(i, j int) bool {
		if list[i].Quantity != list[j].Quantity {
			return list[i].Quantity > list[j].Quantity
		}
		return list[i].PlantType < list[j].PlantType
	})

	names := make([]string, 0, len(allTypes))
	for name := range allTypes {
		names = append(names, name)
	}
	sort.Strings(names)

	return list, names
}

// ordersOverTime serie diaria (fecha civil ISO) de la ventana filtrada.
// Los conteos incluyen cancelados; el dinero no.
func (p Params) ordersOverTime(orders []costedOrder) []DailyPoint {
	buckets := make(map[string]DailyPoint)
	for _, co := range orders {
		ts, ok := co.order.EffectiveDate()
		if !ok {
			continue
		}
		key := ts.In(p.location()).Format("2006-01-02")
		point := buckets[key]
		point.Date = key
		point.Orders++
		point.Revenue = point.Revenue.Add(co.cost.Revenue)
		point.Profit = point.Profit.Add(co.cost.Profit)
		buckets[key] = point
	}

	out := make([]DailyPoint, 0, len(buckets))
	for _, point := range buckets {
		out = append(out, point)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// hourOfDay histograma denso de 24 buckets (00:00–23:00) de la ventana filtrada.
func (p Params) hourOfDay(orders []costedOrder) []HourPoint {
	out := make([]HourPoint, 24)
	for h := range out {
		out[h].Hour = fmt.Sprintf("%02d:00", h)
	}
	for _, co := range orders {
		ts, ok := co.order.EffectiveDate()
		if !ok {
			continue
		}
		out[ts.In(p.location()).Hour()].Orders++
	}
	return out
}

// dayOfWeek histograma denso de 7 buckets, domingo primero, de la ventana
// filtrada. El conteo incluye cancelados; los ingresos no.
func (p Params) dayOfWeek(orders []costedOrder) []WeekdayPoint {
	out := make([]WeekdayPoint, 7)
	for d := range out {
		out[d].Day = weekdayLabels[d]
	}
	for _, co := range orders {
		ts, ok := co.order.EffectiveDate()
		if !ok {
			continue
		}
		idx := int(ts.In(p.location()).Weekday()) // time.Sunday == 0
		out[idx].Orders++
		out[idx].Revenue = out[idx].Revenue.Add(co.cost.Revenue)
	}
	return out
}
