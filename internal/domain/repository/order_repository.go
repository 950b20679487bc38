package repository

import (
	"context"

	"github.com/jhoicas/Vivero-api/internal/domain/entity"
)

// OrderRepository acceso de solo lectura al registro de pedidos. El motor de
// estadísticas recalcula todo desde el snapshot completo en cada invocación;
// las implementaciones nunca mutan datos.
type OrderRepository interface {
	// ListAll devuelve todos los pedidos con sus líneas de producto,
	// ordenados por fecha de creación ascendente.
	ListAll(ctx context.Context) ([]entity.Order, error)
}

// ReturnRepository acceso de solo lectura a los eventos de devolución.
type ReturnRepository interface {
	// ListAll devuelve todas las devoluciones registradas.
	ListAll(ctx context.Context) ([]entity.Return, error)
}
