package stats

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RollingAverage promedio de ingresos y utilidad por bucket de una
// granularidad (día, semana o mes). Solo cuentan los buckets con pedidos:
// los días/semanas/meses vacíos no existen como clave y no diluyen el
// promedio. Sin pedidos, el promedio es 0 por convención.
type RollingAverage struct {
	Revenue decimal.Decimal
	Profit  decimal.Decimal
	Buckets int // Buckets no vacíos considerados
}

// bucketMoney acumulado de un bucket temporal.
type bucketMoney struct {
	revenue decimal.Decimal
	profit  decimal.Decimal
}

// weekOfYear número de semana según la regla histórica del dashboard:
// semana = ceil((díaDelAño + díaDeSemanaDel1Enero) / 7), con domingo = 0.
// No es ISO-8601 a propósito: las series históricas del negocio se numeraron
// así desde el principio y deben seguir cuadrando.
func weekOfYear(t time.Time) int {
	jan1 := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	return (t.YearDay() + int(jan1.Weekday()) + 6) / 7
}

// rollingAverages calcula los tres promedios sobre todos los pedidos no
// cancelados (la ventana de fechas del dashboard NO aplica aquí), opcionalmente
// acotados por un selector de estado independiente ("" o "all" = sin acotar).
func (p Params) rollingAverages(orders []costedOrder, statusFilter string) (daily, weekly, monthly RollingAverage) {
	dailyBuckets := make(map[string]bucketMoney)
	weeklyBuckets := make(map[string]bucketMoney)
	monthlyBuckets := make(map[string]bucketMoney)

	for _, co := range orders {
		if co.order.IsCancelled() {
			continue
		}
		if statusFilter != "" && statusFilter != "all" && co.order.Status != statusFilter {
			continue
		}
		ts, ok := co.order.EffectiveDate()
		if !ok {
			continue
		}
		lt := ts.In(p.location())

		accumulate(dailyBuckets, lt.Format("2006-01-02"), co.cost)
		accumulate(weeklyBuckets, fmt.Sprintf("%d-W%02d", lt.Year(), weekOfYear(lt)), co.cost)
		accumulate(monthlyBuckets, lt.Format("2006-01"), co.cost)
	}

	return average(dailyBuckets), average(weeklyBuckets), average(monthlyBuckets)
}

func accumulate(buckets map[string]bucketMoney, key string, cost OrderCost) {
	b := buckets[key]
	b.revenue = b.revenue.Add(cost.Revenue)
	b.profit = b.profit.Add(cost.Profit)
	buckets[key] = b
}

func average(buckets map[string]bucketMoney) RollingAverage {
	if len(buckets) == 0 {
		return RollingAverage{}
	}
	var totalRevenue, totalProfit decimal.Decimal
	for _, b := range buckets {
		totalRevenue = totalRevenue.Add(b.revenue)
		totalProfit = totalProfit.Add(b.profit)
	}
	n := decimal.NewFromInt(int64(len(buckets)))
	return RollingAverage{
		Revenue: totalRevenue.Div(n),
		Profit:  totalProfit.Div(n),
		Buckets: len(buckets),
	}
}
