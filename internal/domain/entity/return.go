package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Return evento de devolución de producto. No está ligado a un pedido
// específico: solo descuenta su costo de la utilidad del período en que cae.
type Return struct {
	ID string
	// Cost solo vale cuando HasCost es true; sin costo propio se aplica el
	// costo fijo configurado. Un costo explícito de 0 es válido y no paga
	// el costo fijo.
	Cost      decimal.Decimal
	HasCost   bool
	CreatedAt time.Time
}
