package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Vivero-api/internal/domain"
	"github.com/jhoicas/Vivero-api/internal/domain/entity"
	"github.com/jhoicas/Vivero-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// ListAll devuelve todos los pedidos con sus líneas de producto, ordenados
// por fecha de creación ascendente. Dos consultas (cabeceras + líneas) y un
// attach en memoria; el dashboard siempre trabaja sobre el snapshot completo.
func (r *OrderRepo) ListAll(ctx context.Context) ([]entity.Order, error) {
	const ordersQuery = `
		SELECT id, order_number, status,
		       customer_name, customer_phone, customer_email,
		       customer_city, customer_postal_code, customer_address,
		       products_total, delivery_fee, total_price, total_items,
		       order_date, COALESCE(note, ''),
		       created_at, updated_at
		FROM orders
		ORDER BY created_at`

	rows, err := r.q.Query(ctx, ordersQuery)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []entity.Order
	index := make(map[string]int)
	for rows.Next() {
		var o entity.Order
		var orderDate *time.Time // NULL => valor cero, EffectiveDate cae a CreatedAt
		if err := rows.Scan(
			&o.ID, &o.OrderNumber, &o.Status,
			&o.Customer.FullName, &o.Customer.Phone, &o.Customer.Email,
			&o.Customer.City, &o.Customer.PostalCode, &o.Customer.Address,
			&o.Summary.ProductsTotal, &o.Summary.DeliveryFee, &o.Summary.TotalPrice, &o.Summary.TotalItems,
			&orderDate, &o.Note,
			&o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if orderDate != nil {
			o.OrderDate = *orderDate
		}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	const itemsQuery = `
		SELECT order_id, name, price, quantity, subtotal
		FROM order_items
		ORDER BY order_id, position`

	itemRows, err := r.q.Query(ctx, itemsQuery)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var orderID string
		var it entity.OrderItem
		if err := itemRows.Scan(&orderID, &it.Name, &it.Price, &it.Quantity, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		if i, ok := index[orderID]; ok {
			orders[i].Products = append(orders[i].Products, it)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}

	return orders, nil
}

// Insert persiste un pedido con sus líneas. Usado por el seeder y las cargas
// administrativas; el dashboard nunca escribe.
func (r *OrderRepo) Insert(ctx context.Context, o *entity.Order) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}

	const orderQuery = `
		INSERT INTO orders (
			id, order_number, status,
			customer_name, customer_phone, customer_email,
			customer_city, customer_postal_code, customer_address,
			products_total, delivery_fee, total_price, total_items,
			order_date, note, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	var orderDate any
	if !o.OrderDate.IsZero() {
		orderDate = o.OrderDate
	}
	_, err := r.q.Exec(ctx, orderQuery,
		o.ID, o.OrderNumber, o.Status,
		o.Customer.FullName, o.Customer.Phone, o.Customer.Email,
		o.Customer.City, o.Customer.PostalCode, o.Customer.Address,
		o.Summary.ProductsTotal, o.Summary.DeliveryFee, o.Summary.TotalPrice, o.Summary.TotalItems,
		orderDate, o.Note, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}

	const itemQuery = `
		INSERT INTO order_items (order_id, position, name, price, quantity, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`

	for i, it := range o.Products {
		if _, err := r.q.Exec(ctx, itemQuery, o.ID, i, it.Name, it.Price, it.Quantity, it.Subtotal); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}
