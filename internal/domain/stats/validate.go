package stats

import (
	"fmt"

	"github.com/jhoicas/Vivero-api/internal/domain"
	"github.com/jhoicas/Vivero-api/internal/domain/entity"
)

// validateOrders falla rápido ante campos numéricos inválidos del input en
// lugar de dejar que un registro corrupto contamine los agregados. El motor
// confía en TotalItems y en los subtotales de línea (los garantiza el origen
// del dato); aquí solo se rechaza lo que rompería la aritmética.
func validateOrders(orders []entity.Order) error {
	for _, o := range orders {
		if o.Summary.TotalPrice.IsNegative() {
			return fmt.Errorf("%w: %s: total_price negativo", domain.ErrInvalidOrder, orderRef(o))
		}
		if o.Summary.TotalItems < 0 {
			return fmt.Errorf("%w: %s: total_items negativo", domain.ErrInvalidOrder, orderRef(o))
		}
		for _, it := range o.Products {
			if it.Price.IsNegative() {
				return fmt.Errorf("%w: %s: precio negativo en %q", domain.ErrInvalidOrder, orderRef(o), it.Name)
			}
			if it.Quantity < 0 {
				return fmt.Errorf("%w: %s: cantidad negativa en %q", domain.ErrInvalidOrder, orderRef(o), it.Name)
			}
		}
	}
	return nil
}

// validateReturns rechaza devoluciones con costo negativo.
func validateReturns(returns []entity.Return) error {
	for _, r := range returns {
		if r.Cost.IsNegative() {
			return fmt.Errorf("%w: devolución %s con costo negativo", domain.ErrInvalidReturn, r.ID)
		}
	}
	return nil
}

func orderRef(o entity.Order) string {
	if o.OrderNumber != "" {
		return "pedido " + o.OrderNumber
	}
	return "pedido " + o.ID
}
