package stats

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Vivero-api/internal/domain/entity"
)

func TestCustomerKeyOf(t *testing.T) {
	t.Run("email gana sobre teléfono", func(t *testing.T) {
		key, ok := CustomerKeyOf(entity.OrderCustomer{Email: " Ana@Mail.co ", Phone: "300111"})
		require.True(t, ok)
		assert.Equal(t, CustomerKey{Kind: IdentityEmail, Value: "ana@mail.co"}, key)
	})

	t.Run("sin email cae al teléfono", func(t *testing.T) {
		key, ok := CustomerKeyOf(entity.OrderCustomer{Phone: "300111"})
		require.True(t, ok)
		assert.Equal(t, CustomerKey{Kind: IdentityPhone, Value: "300111"}, key)
	})

	t.Run("sin identidad no participa", func(t *testing.T) {
		_, ok := CustomerKeyOf(entity.OrderCustomer{FullName: "Anónimo"})
		assert.False(t, ok)
	})

	t.Run("un email y un teléfono con el mismo texto no colisionan", func(t *testing.T) {
		a, _ := CustomerKeyOf(entity.OrderCustomer{Email: "300111"})
		b, _ := CustomerKeyOf(entity.OrderCustomer{Phone: "300111"})
		assert.NotEqual(t, a, b)
	})
}

func customerOrder(status, email, phone string, items int) entity.Order {
	return entity.Order{
		Status:   status,
		Customer: entity.OrderCustomer{Email: email, Phone: phone},
		Summary:  entity.OrderSummary{TotalPrice: decimal.NewFromInt(30), TotalItems: items},
	}
}

func TestCustomerMetrics(t *testing.T) {
	orders := []entity.Order{
		customerOrder(entity.OrderStatusDelivered, "ana@mail.co", "", 2),
		customerOrder(entity.OrderStatusDelivered, "ana@mail.co", "", 4), // Repite Ana
		customerOrder(entity.OrderStatusPending, "", "300111", 1),
		customerOrder(entity.OrderStatusDelivered, "", "", 3),              // Sin identidad
		customerOrder(entity.OrderStatusCancelled, "luis@mail.co", "", 10), // No califica
	}

	m := customerMetrics(orders)

	assert.Equal(t, 2, m.UniqueCustomers, "Ana y el teléfono 300111; el cancelado no cuenta")
	assert.Equal(t, 1, m.RepeatCustomers, "solo Ana repite")
	// 3 pedidos con identidad / 2 clientes únicos = 1.5
	assert.True(t, m.AvgOrdersPerCustomer.Equal(decimal.RequireFromString("1.5")),
		"promedio de pedidos por cliente, fue %s", m.AvgOrdersPerCustomer)
	// 3 entregados de 4 calificados = 75%
	assert.True(t, m.ConversionRate.Equal(decimal.NewFromInt(75)),
		"conversión, fue %s", m.ConversionRate)
	// (2+4+1+3) / 4 = 2.5 ítems por pedido
	assert.True(t, m.AvgItemsPerOrder.Equal(decimal.RequireFromString("2.5")),
		"ítems por pedido, fue %s", m.AvgItemsPerOrder)
}

func TestCustomerMetrics_SinPedidos(t *testing.T) {
	m := customerMetrics(nil)

	assert.Zero(t, m.UniqueCustomers)
	assert.Zero(t, m.RepeatCustomers)
	assert.True(t, m.AvgOrdersPerCustomer.IsZero(), "división por cero protegida")
	assert.True(t, m.ConversionRate.IsZero())
	assert.True(t, m.AvgItemsPerOrder.IsZero())
}

func TestCustomerMetrics_ConversionEnRango(t *testing.T) {
	// Todos entregados => 100; ninguno entregado => 0. Nunca fuera de [0, 100].
	todos := []entity.Order{
		customerOrder(entity.OrderStatusDelivered, "a@b.co", "", 1),
		customerOrder(entity.OrderStatusDelivered, "c@d.co", "", 1),
	}
	assert.True(t, customerMetrics(todos).ConversionRate.Equal(decimal.NewFromInt(100)))

	ninguno := []entity.Order{customerOrder(entity.OrderStatusPending, "a@b.co", "", 1)}
	assert.True(t, customerMetrics(ninguno).ConversionRate.IsZero())
}
