// seed puebla la base de datos con pedidos y devoluciones de demostración
// para probar el dashboard en local.
//
// Uso: go run ./cmd/seed [días]
// Por defecto genera 30 días de historia hacia atrás desde hoy.
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Vivero-api/internal/domain"
	"github.com/jhoicas/Vivero-api/internal/domain/entity"
	"github.com/jhoicas/Vivero-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Vivero-api/pkg/config"
	"github.com/jhoicas/Vivero-api/pkg/logger"
)

var plantas = []struct {
	nombre string
	precio int64
}{
	{"Monstera deliciosa", 45},
	{"Suculenta mix", 12},
	{"Cactus San Pedro", 18},
	{"Ficus lyrata", 60},
	{"Helecho Boston", 22},
	{"Lavanda", 15},
	{"Pothos dorado", 20},
	{"Sansevieria", 28},
}

var ciudades = []string{"Bogotá", "Medellín", "Cali", "Barranquilla", "Bucaramanga"}

var clientes = []struct {
	nombre, email, telefono string
}{
	{"María Gómez", "maria.gomez@example.com", "3001112233"},
	{"Carlos Pérez", "carlos.perez@example.com", "3014445566"},
	{"Lucía Ramírez", "", "3027778899"},
	{"Andrés Torres", "andres.torres@example.com", ""},
	{"Paula Rincón", "paula.rincon@example.com", "3050001122"},
}

func main() {
	dias := 30
	if len(os.Args) > 1 {
		n, err := strconv.Atoi(os.Args[1])
		if err != nil || n <= 0 {
			fmt.Fprintf(os.Stderr, "días inválidos: %q\n", os.Args[1])
			os.Exit(1)
		}
		dias = n
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	orderRepo := postgres.NewOrderRepository(pool)
	returnRepo := postgres.NewReturnRepository(pool)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	insertados, devoluciones := 0, 0

	for d := 0; d < dias; d++ {
		fecha := time.Now().AddDate(0, 0, -d)
		pedidosDelDia := 1 + rng.Intn(5)

		for i := 0; i < pedidosDelDia; i++ {
			o := pedidoAleatorio(rng, fecha, insertados+1)
			if err := orderRepo.Insert(ctx, &o); err != nil {
				if errors.Is(err, domain.ErrDuplicate) {
					continue
				}
				log.Fatal().Err(err).Str("order", o.OrderNumber).Msg("insertar pedido")
			}
			insertados++
		}

		// Una devolución cada ~5 días, a veces con costo propio.
		if rng.Intn(5) == 0 {
			ret := entity.Return{CreatedAt: fecha}
			if rng.Intn(2) == 0 {
				ret.Cost = decimal.NewFromInt(int64(2 + rng.Intn(8)))
				ret.HasCost = true
			}
			if err := returnRepo.Insert(ctx, &ret); err != nil && !errors.Is(err, domain.ErrDuplicate) {
				log.Fatal().Err(err).Msg("insertar devolución")
			}
			devoluciones++
		}
	}

	log.Info().
		Int("pedidos", insertados).
		Int("devoluciones", devoluciones).
		Int("dias", dias).
		Msg("datos de demostración cargados")
}

func pedidoAleatorio(rng *rand.Rand, fecha time.Time, consecutivo int) entity.Order {
	hora := fecha.Truncate(24 * time.Hour).Add(time.Duration(8+rng.Intn(12)) * time.Hour)

	numLineas := 1 + rng.Intn(3)
	var items []entity.OrderItem
	productsTotal := decimal.Zero
	totalItems := 0
	for i := 0; i < numLineas; i++ {
		p := plantas[rng.Intn(len(plantas))]
		qty := 1 + rng.Intn(3)
		precio := decimal.NewFromInt(p.precio)
		subtotal := precio.Mul(decimal.NewFromInt(int64(qty)))
		items = append(items, entity.OrderItem{
			Name: p.nombre, Price: precio, Quantity: qty, Subtotal: subtotal,
		})
		productsTotal = productsTotal.Add(subtotal)
		totalItems += qty
	}

	deliveryFee := decimal.NewFromInt(8)
	cliente := clientes[rng.Intn(len(clientes))]
	estado := entity.OrderStatuses[rng.Intn(len(entity.OrderStatuses))]

	return entity.Order{
		OrderNumber: fmt.Sprintf("V-%04d", consecutivo),
		Customer: entity.OrderCustomer{
			FullName: cliente.nombre,
			Email:    cliente.email,
			Phone:    cliente.telefono,
			City:     ciudades[rng.Intn(len(ciudades))],
		},
		Products: items,
		Summary: entity.OrderSummary{
			ProductsTotal: productsTotal,
			DeliveryFee:   deliveryFee,
			TotalPrice:    productsTotal.Add(deliveryFee),
			TotalItems:    totalItems,
		},
		Status:    estado,
		OrderDate: hora,
		CreatedAt: hora,
		UpdatedAt: hora,
	}
}
