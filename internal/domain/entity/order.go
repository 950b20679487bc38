package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un pedido.
const (
	OrderStatusPending   = "pending"   // Recibido, sin confirmar
	OrderStatusConfirmed = "confirmed" // Confirmado por el vivero
	OrderStatusPreparing = "preparing" // En preparación / empaque
	OrderStatusShipped   = "shipped"   // En reparto
	OrderStatusDelivered = "delivered" // Entregado al cliente
	OrderStatusCancelled = "cancelled" // Excluido de ingresos y utilidad; cuenta en conteos crudos
)

// OrderStatuses todos los estados válidos, en orden de ciclo de vida.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPreparing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// OrderItem línea de producto dentro de un pedido.
type OrderItem struct {
	Name     string          // Tipo de planta (ej. "Monstera", "Suculenta mix")
	Price    decimal.Decimal // Precio unitario
	Quantity int
	Subtotal decimal.Decimal // Price × Quantity; lo garantiza el origen del dato
}

// OrderSummary totales de la cabecera del pedido.
type OrderSummary struct {
	ProductsTotal decimal.Decimal
	DeliveryFee   decimal.Decimal
	TotalPrice    decimal.Decimal
	TotalItems    int // Σ Quantity de las líneas; el motor confía en este campo, no lo re-deriva
}

// OrderCustomer datos del cliente tal como quedaron registrados en el pedido.
type OrderCustomer struct {
	FullName   string
	Phone      string
	Email      string
	City       string
	PostalCode string
	Address    string
}

// Order pedido registrado. Para el motor de estadísticas es un hecho externo
// inmutable (el estado puede cambiar fuera de banda, entre snapshots).
type Order struct {
	ID          string
	OrderNumber string
	Customer    OrderCustomer
	Products    []OrderItem
	Summary     OrderSummary
	Status      string
	OrderDate   time.Time // Timestamp autoritativo para bucketing; cero => se usa CreatedAt
	Note        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EffectiveDate devuelve la fecha con la que el pedido entra a los buckets de
// tiempo: OrderDate si existe, si no CreatedAt. ok=false si no hay ninguna;
// en ese caso el pedido queda fuera de las agregaciones por tiempo (pero no
// de los totales que no requieren fecha).
func (o Order) EffectiveDate() (time.Time, bool) {
	if !o.OrderDate.IsZero() {
		return o.OrderDate, true
	}
	if !o.CreatedAt.IsZero() {
		return o.CreatedAt, true
	}
	return time.Time{}, false
}

// IsCancelled indica si el pedido está cancelado.
func (o Order) IsCancelled() bool { return o.Status == OrderStatusCancelled }
