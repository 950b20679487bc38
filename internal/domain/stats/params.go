// Package stats implementa el motor de agregación de estadísticas de ventas
// del dashboard: modelo de costos, resolución de rangos de fecha, desgloses
// por estado/ciudad/planta con atribución proporcional, series por hora y día
// de la semana, promedios móviles y métricas de clientes.
//
// El motor es puro y determinista: recibe el snapshot completo de pedidos y
// devoluciones junto con un "ahora" inyectado, no hace I/O y dos invocaciones
// con el mismo input producen exactamente el mismo resultado.
package stats

import (
	"time"

	"github.com/shopspring/decimal"
)

// Valores de referencia del modelo de costos. Se pueden sobreescribir vía
// configuración (pkg/config, grupo STATS_*).
const (
	DefaultDeliveryFee = 8 // Tarifa fija de domicilio descontada del total
	DefaultUnitCost    = 6 // Costo por unidad de producto
	DefaultReturnCost  = 3 // Costo fijo por evento de devolución
	FreeItemThreshold  = 3 // Pedidos de 3+ ítems regalan una unidad (promoción)

	DefaultTimezone = "America/Bogota" // Zona horaria de reporte para el día civil
)

// DefaultCommissionRate tasa canónica de comisión sobre ingresos. El dashboard
// histórico mezclaba 3% y 1% en vistas distintas; finanzas debe confirmar la
// tasa definitiva, mientras tanto se unifica todo en 3%.
var DefaultCommissionRate = decimal.RequireFromString("0.03")

// Params parámetros del modelo de costos y del calendario de reporte.
// Son constantes de negocio con nombre; nunca se usan literales en los cálculos.
type Params struct {
	DeliveryFee    decimal.Decimal
	UnitCost       decimal.Decimal
	CommissionRate decimal.Decimal
	ReturnCost     decimal.Decimal // Costo aplicado a devoluciones sin costo propio
	Location       *time.Location  // Zona horaria en la que se trunca el día civil
}

// DefaultParams construye los parámetros con los valores de referencia.
func DefaultParams() Params {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		loc = time.UTC
	}
	return Params{
		DeliveryFee:    decimal.NewFromInt(DefaultDeliveryFee),
		UnitCost:       decimal.NewFromInt(DefaultUnitCost),
		CommissionRate: DefaultCommissionRate,
		ReturnCost:     decimal.NewFromInt(DefaultReturnCost),
		Location:       loc,
	}
}

// location devuelve la zona de reporte, con UTC como última red de seguridad.
func (p Params) location() *time.Location {
	if p.Location != nil {
		return p.Location
	}
	return time.UTC
}
