package stats

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Vivero-api/internal/domain/entity"
)

// CustomerMetrics métricas de comportamiento de clientes y conversión sobre
// la ventana filtrada. Todas las divisiones están protegidas: denominador
// cero produce 0, nunca un error ni un valor indefinido.
type CustomerMetrics struct {
	UniqueCustomers      int
	RepeatCustomers      int             // Identidades con más de un pedido calificado
	AvgOrdersPerCustomer decimal.Decimal // Pedidos con identidad / clientes únicos
	ConversionRate       decimal.Decimal // delivered / (todos − cancelados) × 100
	AvgItemsPerOrder     decimal.Decimal // Media de TotalItems en no cancelados
}

// customerMetrics recorre los pedidos filtrados. Solo califican los no
// cancelados; los pedidos sin identidad (ni email ni teléfono) cuentan para
// conversión e ítems, pero no para las métricas de clientes.
func customerMetrics(filtered []entity.Order) CustomerMetrics {
	ordersPerCustomer := make(map[CustomerKey]int)
	var qualifying, delivered, identified, totalItems int

	for _, o := range filtered {
		if o.IsCancelled() {
			continue
		}
		qualifying++
		totalItems += o.Summary.TotalItems
		if o.Status == entity.OrderStatusDelivered {
			delivered++
		}
		if key, ok := CustomerKeyOf(o.Customer); ok {
			ordersPerCustomer[key]++
			identified++
		}
	}

	m := CustomerMetrics{UniqueCustomers: len(ordersPerCustomer)}
	for _, n := range ordersPerCustomer {
		if n > 1 {
			m.RepeatCustomers++
		}
	}

	if m.UniqueCustomers > 0 {
		m.AvgOrdersPerCustomer = decimal.NewFromInt(int64(identified)).
			Div(decimal.NewFromInt(int64(m.UniqueCustomers)))
	}
	if qualifying > 0 {
		m.ConversionRate = decimal.NewFromInt(int64(delivered)).
			Div(decimal.NewFromInt(int64(qualifying))).
			Mul(decimal.NewFromInt(100))
		m.AvgItemsPerOrder = decimal.NewFromInt(int64(totalItems)).
			Div(decimal.NewFromInt(int64(qualifying)))
	}
	return m
}
