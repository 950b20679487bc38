package stats

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Vivero-api/internal/domain/entity"
)

// testParams parámetros de referencia con zona UTC para que los tests no
// dependan de la base de datos de zonas horarias del host.
func testParams() Params {
	p := DefaultParams()
	p.Location = time.UTC
	return p
}

func orderWithSummary(totalPrice float64, totalItems int) entity.Order {
	return entity.Order{
		Status: entity.OrderStatusConfirmed,
		Summary: entity.OrderSummary{
			TotalPrice: decimal.NewFromFloat(totalPrice),
			TotalItems: totalItems,
		},
	}
}

// TestCostOf_VectorDeReferencia valida el ejemplo canónico del modelo:
// 3 ítems, total 50 => revenue 42, costo 18, regalo 6, comisión 1.26,
// utilidad 16.74.
func TestCostOf_VectorDeReferencia(t *testing.T) {
	p := testParams()

	cost := p.CostOf(orderWithSummary(50, 3))

	assert.True(t, cost.Revenue.Equal(decimal.NewFromInt(42)), "revenue = 50 - 8")
	assert.True(t, cost.ProductCost.Equal(decimal.NewFromInt(18)), "costo = 3 × 6")
	assert.True(t, cost.FreeProductCost.Equal(decimal.NewFromInt(6)), "regalo = 1 unidad")
	assert.True(t, cost.Commission.Equal(decimal.RequireFromString("1.26")), "comisión = 42 × 0.03")
	assert.True(t, cost.Profit.Equal(decimal.RequireFromString("16.74")),
		"utilidad = 42 - 18 - 6 - 1.26, fue %s", cost.Profit)
	assert.True(t, cost.FreeProduct)
}

// TestCostOf_RevenueNuncaNegativo un total menor que la tarifa de domicilio
// produce revenue 0, no negativo.
func TestCostOf_RevenueNuncaNegativo(t *testing.T) {
	p := testParams()

	cost := p.CostOf(orderWithSummary(5, 1))

	require.True(t, cost.Revenue.IsZero(), "revenue debe quedar en 0, fue %s", cost.Revenue)
	assert.True(t, cost.Commission.IsZero(), "comisión sobre revenue 0 es 0")
	// La utilidad sí puede ser negativa: el pedido no cubre su costo de producto.
	assert.True(t, cost.Profit.Equal(decimal.NewFromInt(-6)))
}

// TestCostOf_UmbralDePromocion el regalo aplica desde 3 ítems, exactamente
// una unidad por pedido.
func TestCostOf_UmbralDePromocion(t *testing.T) {
	p := testParams()

	sin := p.CostOf(orderWithSummary(40, 2))
	assert.False(t, sin.FreeProduct)
	assert.True(t, sin.FreeProductCost.IsZero())

	con := p.CostOf(orderWithSummary(40, 3))
	assert.True(t, con.FreeProduct)
	assert.True(t, con.FreeProductCost.Equal(p.UnitCost))

	// Con 10 ítems sigue siendo una sola unidad regalada, no proporcional.
	grande := p.CostOf(orderWithSummary(100, 10))
	assert.True(t, grande.FreeProductCost.Equal(p.UnitCost))
}

// TestCostOrders_CanceladosEnCero los cancelados pasan con costo cero para
// que los agregadores puedan contarlos sin sumarles dinero.
func TestCostOrders_CanceladosEnCero(t *testing.T) {
	p := testParams()
	cancelled := orderWithSummary(50, 3)
	cancelled.Status = entity.OrderStatusCancelled

	costed := p.costOrders([]entity.Order{cancelled, orderWithSummary(50, 3)})

	require.Len(t, costed, 2)
	assert.True(t, costed[0].cost.Revenue.IsZero(), "cancelado no genera revenue")
	assert.True(t, costed[0].cost.Profit.IsZero())
	assert.False(t, costed[0].cost.FreeProduct)
	assert.True(t, costed[1].cost.Revenue.Equal(decimal.NewFromInt(42)))
}
