package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Vivero-api/internal/domain"
	"github.com/jhoicas/Vivero-api/internal/domain/entity"
	"github.com/jhoicas/Vivero-api/internal/domain/repository"
)

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

// ReturnRepo implementación sobre PostgreSQL (usable con pool o tx).
type ReturnRepo struct {
	q Querier
}

// NewReturnRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q}
}

// ListAll devuelve todas las devoluciones registradas. Un costo NULL se
// distingue de un costo explícito de 0: solo el primero recibe el costo fijo
// configurado en el motor.
func (r *ReturnRepo) ListAll(ctx context.Context) ([]entity.Return, error) {
	const query = `
		SELECT id, cost, created_at
		FROM returns
		ORDER BY created_at`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list returns: %w", err)
	}
	defer rows.Close()

	var returns []entity.Return
	for rows.Next() {
		var ret entity.Return
		var cost *decimal.Decimal
		if err := rows.Scan(&ret.ID, &cost, &ret.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan return: %w", err)
		}
		if cost != nil {
			ret.Cost = *cost
			ret.HasCost = true
		}
		returns = append(returns, ret)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate returns: %w", err)
	}
	return returns, nil
}

// Insert persiste un evento de devolución. Sin costo propio se guarda NULL.
func (r *ReturnRepo) Insert(ctx context.Context, ret *entity.Return) error {
	if ret.ID == "" {
		ret.ID = uuid.New().String()
	}

	var cost any
	if ret.HasCost {
		cost = ret.Cost
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO returns (id, cost, created_at) VALUES ($1, $2, $3)`,
		ret.ID, cost, ret.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert return: %w", err)
	}
	return nil
}
