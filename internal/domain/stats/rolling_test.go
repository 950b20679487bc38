package stats

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Vivero-api/internal/domain/entity"
)

// TestWeekOfYear_FormulaHistorica vectores de la regla
// semana = ceil((díaDelAño + díaDeSemanaDel1Enero) / 7).
// En 2025 el 1 de enero cae miércoles (weekday 3).
func TestWeekOfYear_FormulaHistorica(t *testing.T) {
	cases := []struct {
		date string
		want int
	}{
		{"2025-01-01", 1}, // ceil((1+3)/7) = 1
		{"2025-01-04", 1}, // ceil((4+3)/7) = 1, último día de la semana 1
		{"2025-01-05", 2}, // Domingo arranca la semana 2
		{"2025-12-31", 53},
		// 2023 empieza en domingo (weekday 0): la primera semana dura 7 días.
		{"2023-01-07", 1},
		{"2023-01-08", 2},
	}
	for _, c := range cases {
		ts, err := time.Parse("2006-01-02", c.date)
		require.NoError(t, err)
		assert.Equal(t, c.want, weekOfYear(ts), "semana de %s", c.date)
	}
}

func TestRollingAverages(t *testing.T) {
	p := testParams()

	day := func(d int, hour int) time.Time {
		return time.Date(2025, time.March, d, hour, 0, 0, 0, time.UTC)
	}
	orders := []entity.Order{
		// 2025-03-10: dos pedidos, revenue 36 + 22 = 58
		fullOrder(entity.OrderStatusDelivered, "Bogotá", day(10, 9), 44, item("Monstera", 15, 2)),
		fullOrder(entity.OrderStatusDelivered, "Bogotá", day(10, 16), 30, item("Cactus", 7, 2)),
		// 2025-03-12: un pedido, revenue 12
		fullOrder(entity.OrderStatusPending, "Cali", day(12, 11), 20, item("Ficus", 20, 1)),
		// Cancelado: nunca entra a los promedios
		fullOrder(entity.OrderStatusCancelled, "Cali", day(12, 12), 99, item("Ficus", 20, 4)),
	}
	costed := p.costOrders(orders)

	t.Run("promedio diario sobre buckets no vacíos", func(t *testing.T) {
		daily, _, monthly := p.rollingAverages(costed, "")
		require.Equal(t, 2, daily.Buckets, "solo los días con pedidos son buckets")
		decimalsClose(t, decimal.NewFromInt(35), daily.Revenue, "promedio (58 + 12) / 2")

		require.Equal(t, 1, monthly.Buckets)
		decimalsClose(t, decimal.NewFromInt(70), monthly.Revenue, "marzo completo en un bucket")
	})

	t.Run("selector de estado independiente", func(t *testing.T) {
		daily, _, _ := p.rollingAverages(costed, entity.OrderStatusDelivered)
		require.Equal(t, 1, daily.Buckets)
		decimalsClose(t, decimal.NewFromInt(58), daily.Revenue, "solo el día con entregados")
	})

	t.Run("sin pedidos el promedio es 0, no NaN", func(t *testing.T) {
		daily, weekly, monthly := p.rollingAverages(nil, "")
		assert.True(t, daily.Revenue.IsZero())
		assert.True(t, weekly.Profit.IsZero())
		assert.True(t, monthly.Revenue.IsZero())
		assert.Zero(t, daily.Buckets)
	})
}
