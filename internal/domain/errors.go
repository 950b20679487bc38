package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrDuplicate         = errors.New("registro duplicado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidOrder      = errors.New("pedido con campos numéricos inválidos")
	ErrInvalidReturn     = errors.New("devolución con costo inválido")
	ErrInvalidDateFilter = errors.New("filtro de fechas inválido")
)
