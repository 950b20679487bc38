package stats

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Vivero-api/internal/domain/entity"
)

// OrderCost desglose económico de un pedido según el modelo de costos del
// negocio. Todos los montos son no negativos salvo Profit, que puede ser
// negativo en pedidos que no cubren sus costos.
type OrderCost struct {
	Revenue         decimal.Decimal // max(0, TotalPrice − DeliveryFee)
	ProductCost     decimal.Decimal // TotalItems × UnitCost
	FreeProductCost decimal.Decimal // UnitCost si el pedido regala una unidad, si no 0
	Commission      decimal.Decimal // Revenue × CommissionRate
	Profit          decimal.Decimal // Revenue − ProductCost − FreeProductCost − Commission
	FreeProduct     bool            // true si aplicó la promoción (cuenta 1 por pedido, no por cantidad)
}

// CostOf aplica el modelo de costos a un pedido no cancelado. Los pedidos
// cancelados no deben pasar por aquí: aportan cero a todos los montos.
func (p Params) CostOf(o entity.Order) OrderCost {
	revenue := o.Summary.TotalPrice.Sub(p.DeliveryFee)
	if revenue.IsNegative() {
		revenue = decimal.Zero
	}

	cost := OrderCost{
		Revenue:     revenue,
		ProductCost: decimal.NewFromInt(int64(o.Summary.TotalItems)).Mul(p.UnitCost),
	}
	if o.Summary.TotalItems >= FreeItemThreshold {
		cost.FreeProductCost = p.UnitCost
		cost.FreeProduct = true
	}
	cost.Commission = revenue.Mul(p.CommissionRate)
	cost.Profit = revenue.
		Sub(cost.ProductCost).
		Sub(cost.FreeProductCost).
		Sub(cost.Commission)
	return cost
}

// costedOrder pedido con su costo ya calculado, para no recalcular el modelo
// en cada agregador. Los cancelados llevan OrderCost en cero.
type costedOrder struct {
	order entity.Order
	cost  OrderCost
}

// costOrders calcula el modelo de costos una sola vez por pedido.
func (p Params) costOrders(orders []entity.Order) []costedOrder {
	out := make([]costedOrder, 0, len(orders))
	for _, o := range orders {
		co := costedOrder{order: o}
		if !o.IsCancelled() {
			co.cost = p.CostOf(o)
		}
		out = append(out, co)
	}
	return out
}
