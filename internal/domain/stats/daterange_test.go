package stats

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Vivero-api/internal/domain"
	"github.com/jhoicas/Vivero-api/internal/domain/entity"
)

// "Ahora" fijo para todos los tests de fechas: sábado 15 de marzo de 2025,
// 10:30 UTC.
var testNow = time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC)

func orderAt(ts time.Time) entity.Order {
	return entity.Order{
		Status:    entity.OrderStatusConfirmed,
		OrderDate: ts,
		Summary:   entity.OrderSummary{TotalPrice: decimal.NewFromInt(20), TotalItems: 1},
	}
}

func TestResolveWindow_Selectores(t *testing.T) {
	p := testParams()

	t.Run("all devuelve ventana ilimitada", func(t *testing.T) {
		w, err := p.ResolveWindow(DateFilter{Kind: FilterAll}, testNow)
		require.NoError(t, err)
		assert.True(t, w.Unbounded())
	})

	t.Run("today cubre el día civil completo", func(t *testing.T) {
		w, err := p.ResolveWindow(DateFilter{Kind: FilterToday}, testNow)
		require.NoError(t, err)
		assert.True(t, w.Contains(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)), "medianoche inclusive")
		assert.True(t, w.Contains(time.Date(2025, 3, 15, 23, 59, 59, 0, time.UTC)))
		assert.False(t, w.Contains(time.Date(2025, 3, 14, 23, 59, 59, 0, time.UTC)), "ayer queda fuera")
		assert.False(t, w.Contains(time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)), "mañana queda fuera")
	})

	t.Run("yesterday solo el día anterior", func(t *testing.T) {
		w, err := p.ResolveWindow(DateFilter{Kind: FilterYesterday}, testNow)
		require.NoError(t, err)
		assert.True(t, w.Contains(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)))
		assert.True(t, w.Contains(time.Date(2025, 3, 14, 23, 59, 59, 0, time.UTC)))
		assert.False(t, w.Contains(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)))
		assert.False(t, w.Contains(time.Date(2025, 3, 13, 23, 0, 0, 0, time.UTC)))
	})

	t.Run("days_before sin cota inferior", func(t *testing.T) {
		w, err := p.ResolveWindow(DateFilter{Kind: FilterDaysBefore}, testNow)
		require.NoError(t, err)
		assert.True(t, w.Contains(time.Date(2025, 3, 13, 23, 59, 59, 0, time.UTC)))
		assert.True(t, w.Contains(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)), "cualquier pasado remoto entra")
		assert.False(t, w.Contains(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)), "ayer no es 'anteriores'")
	})

	t.Run("custom es inclusivo en ambos extremos", func(t *testing.T) {
		from := time.Date(2025, 2, 1, 15, 0, 0, 0, time.UTC) // La hora se ignora: se trunca al día
		to := time.Date(2025, 2, 10, 3, 0, 0, 0, time.UTC)
		w, err := p.ResolveWindow(DateFilter{Kind: FilterCustom, From: from, To: to}, testNow)
		require.NoError(t, err)
		assert.True(t, w.Contains(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)))
		assert.True(t, w.Contains(time.Date(2025, 2, 10, 23, 59, 59, 0, time.UTC)))
		assert.False(t, w.Contains(time.Date(2025, 2, 11, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("custom sin 'to' es un solo día", func(t *testing.T) {
		from := time.Date(2025, 2, 5, 12, 0, 0, 0, time.UTC)
		w, err := p.ResolveWindow(DateFilter{Kind: FilterCustom, From: from}, testNow)
		require.NoError(t, err)
		assert.True(t, w.Contains(time.Date(2025, 2, 5, 23, 59, 59, 0, time.UTC)))
		assert.False(t, w.Contains(time.Date(2025, 2, 6, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("custom sin 'from' es inválido", func(t *testing.T) {
		_, err := p.ResolveWindow(DateFilter{Kind: FilterCustom}, testNow)
		assert.ErrorIs(t, err, domain.ErrInvalidDateFilter)
	})

	t.Run("from posterior a to es inválido", func(t *testing.T) {
		_, err := p.ResolveWindow(DateFilter{
			Kind: FilterCustom,
			From: time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		}, testNow)
		assert.ErrorIs(t, err, domain.ErrInvalidDateFilter)
	})

	t.Run("selector desconocido es inválido", func(t *testing.T) {
		_, err := p.ResolveWindow(DateFilter{Kind: "last_week"}, testNow)
		assert.ErrorIs(t, err, domain.ErrInvalidDateFilter)
	})
}

// TestPartition_BordeDeDiaPorZonaHoraria el día civil se trunca en la zona de
// reporte, no en UTC: un pedido de madrugada UTC puede pertenecer al día local
// anterior.
func TestPartition_BordeDeDiaPorZonaHoraria(t *testing.T) {
	p := testParams()
	p.Location = time.FixedZone("UTC-5", -5*3600)

	// 2025-03-15 03:00 UTC == 2025-03-14 22:00 local: para la zona de reporte
	// sigue siendo ayer.
	madrugada := orderAt(time.Date(2025, 3, 15, 3, 0, 0, 0, time.UTC))

	w, err := p.ResolveWindow(DateFilter{Kind: FilterYesterday}, testNow)
	require.NoError(t, err)
	parts := p.Partition([]entity.Order{madrugada}, w, testNow)

	assert.Empty(t, parts.Today, "en UTC sería hoy; en la zona de reporte no")
	require.Len(t, parts.Yesterday, 1)
	assert.Len(t, parts.Filtered, 1, "la ventana 'yesterday' lo captura en la zona local")
}

// TestResolveWindow_DiaDe23Horas en zonas con horario de verano el día del
// salto dura 23 horas; el fin de la ventana debe seguir dentro del mismo día
// civil. Chile adelanta el reloj la madrugada del 7 de septiembre de 2025.
func TestResolveWindow_DiaDe23Horas(t *testing.T) {
	santiago, err := time.LoadLocation("America/Santiago")
	require.NoError(t, err)

	p := testParams()
	p.Location = santiago
	ahora := time.Date(2025, time.September, 7, 12, 0, 0, 0, santiago)

	w, err := p.ResolveWindow(DateFilter{Kind: FilterToday}, ahora)
	require.NoError(t, err)

	assert.Equal(t, 7, w.To.In(santiago).Day(), "el fin de la ventana no se pasa al día 8")
	assert.True(t, w.Contains(time.Date(2025, 9, 7, 23, 59, 59, 0, santiago)))
	assert.False(t, w.Contains(time.Date(2025, 9, 8, 0, 0, 0, 0, santiago)))
}

func TestPartition_PorDiaCivil(t *testing.T) {
	p := testParams()
	orders := []entity.Order{
		orderAt(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)),      // Hoy, justo a medianoche
		orderAt(time.Date(2025, 3, 14, 23, 59, 59, 0, time.UTC)),   // Ayer, último segundo
		orderAt(time.Date(2025, 3, 13, 12, 0, 0, 0, time.UTC)),     // Anteriores
		orderAt(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)),       // Anteriores (pasado remoto)
	}

	w, err := p.ResolveWindow(DateFilter{Kind: FilterYesterday}, testNow)
	require.NoError(t, err)
	parts := p.Partition(orders, w, testNow)

	assert.Len(t, parts.Today, 1)
	assert.Len(t, parts.Yesterday, 1)
	assert.Len(t, parts.DaysBefore, 2)
	assert.Len(t, parts.Filtered, 1, "el filtro 'yesterday' selecciona solo el pedido de ayer")
}

// TestPartition_FallbackDeFecha sin OrderDate se usa CreatedAt; sin ninguna de
// las dos el pedido solo aparece en Filtered con el selector "all".
func TestPartition_FallbackDeFecha(t *testing.T) {
	p := testParams()

	conCreatedAt := entity.Order{
		Status:    entity.OrderStatusConfirmed,
		CreatedAt: time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC),
	}
	sinFecha := entity.Order{Status: entity.OrderStatusConfirmed}

	wAll, err := p.ResolveWindow(DateFilter{Kind: FilterAll}, testNow)
	require.NoError(t, err)
	parts := p.Partition([]entity.Order{conCreatedAt, sinFecha}, wAll, testNow)

	assert.Len(t, parts.Today, 1, "CreatedAt ubica el pedido en hoy")
	assert.Len(t, parts.Filtered, 2, "con 'all' el pedido sin fecha sigue contando en los totales")

	wToday, err := p.ResolveWindow(DateFilter{Kind: FilterToday}, testNow)
	require.NoError(t, err)
	parts = p.Partition([]entity.Order{sinFecha}, wToday, testNow)
	assert.Empty(t, parts.Filtered, "sin fecha no puede caer en una ventana acotada")
}

// TestFilterReturns_MismaRegla las devoluciones se recortan con la misma
// ventana que los pedidos para que el descuento cuadre con los ingresos.
func TestFilterReturns_MismaRegla(t *testing.T) {
	p := testParams()
	returns := []entity.Return{
		{ID: "r1", CreatedAt: time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC)},
		{ID: "r2", CreatedAt: time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC)},
		{ID: "r3", CreatedAt: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)},
	}

	w, err := p.ResolveWindow(DateFilter{Kind: FilterToday}, testNow)
	require.NoError(t, err)
	got := filterReturns(returns, w)

	require.Len(t, got, 1)
	assert.Equal(t, "r1", got[0].ID)
}
