package stats

import (
	"fmt"
	"time"

	"github.com/jhoicas/Vivero-api/internal/domain"
	"github.com/jhoicas/Vivero-api/internal/domain/entity"
)

// FilterKind selector de ventana de fechas del dashboard.
type FilterKind string

const (
	FilterAll        FilterKind = "all"
	FilterToday      FilterKind = "today"
	FilterYesterday  FilterKind = "yesterday"
	FilterDaysBefore FilterKind = "days_before" // Todo lo estrictamente anterior al inicio de ayer
	FilterCustom     FilterKind = "custom"
)

// DateFilter selector etiquetado de rango de fechas.
type DateFilter struct {
	Kind FilterKind
	From time.Time // Solo para FilterCustom (obligatorio)
	To   time.Time // Opcional; cero => mismo día que From
}

// Window rango inclusivo resuelto [From, To]. Un extremo en cero significa
// sin cota en ese lado; ambos en cero significa "todo".
type Window struct {
	From time.Time
	To   time.Time
}

// Contains indica si t cae dentro de la ventana (extremos inclusivos).
func (w Window) Contains(t time.Time) bool {
	if !w.From.IsZero() && t.Before(w.From) {
		return false
	}
	if !w.To.IsZero() && t.After(w.To) {
		return false
	}
	return true
}

// Unbounded indica una ventana sin restricciones (selector "all").
func (w Window) Unbounded() bool { return w.From.IsZero() && w.To.IsZero() }

// dayStart trunca t a la medianoche civil de la zona de reporte. Toda la
// comparación de fechas del motor es por día calendario, no por distancia
// de reloj.
func (p Params) dayStart(t time.Time) time.Time {
	lt := t.In(p.location())
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, p.location())
}

// dayEnd último instante del día civil de t (inclusive). Se calcula vía el
// inicio del día siguiente: con cambios de horario de verano el día civil no
// siempre dura 24 horas.
func (p Params) dayEnd(t time.Time) time.Time {
	return p.dayStart(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// ResolveWindow mapea el selector a un rango inclusivo respecto al "ahora"
// inyectado. El motor nunca lee el reloj global.
func (p Params) ResolveWindow(f DateFilter, now time.Time) (Window, error) {
	todayStart := p.dayStart(now)

	switch f.Kind {
	case "", FilterAll:
		return Window{}, nil
	case FilterToday:
		return Window{From: todayStart, To: p.dayEnd(now)}, nil
	case FilterYesterday:
		yesterdayStart := todayStart.AddDate(0, 0, -1)
		return Window{From: yesterdayStart, To: todayStart.Add(-time.Nanosecond)}, nil
	case FilterDaysBefore:
		yesterdayStart := todayStart.AddDate(0, 0, -1)
		return Window{To: yesterdayStart.Add(-time.Nanosecond)}, nil
	case FilterCustom:
		if f.From.IsZero() {
			return Window{}, fmt.Errorf("%w: el rango personalizado requiere fecha inicial", domain.ErrInvalidDateFilter)
		}
		to := f.To
		if to.IsZero() {
			to = f.From // Rango de un solo día
		}
		w := Window{From: p.dayStart(f.From), To: p.dayEnd(to)}
		if w.From.After(w.To) {
			return Window{}, fmt.Errorf("%w: la fecha inicial es posterior a la final", domain.ErrInvalidDateFilter)
		}
		return w, nil
	default:
		return Window{}, fmt.Errorf("%w: selector desconocido %q", domain.ErrInvalidDateFilter, f.Kind)
	}
}

// Partitions subconjuntos derivados de la lista de pedidos respecto a "ahora".
// Se usan en todo el dashboard: tarjetas de hoy/ayer/anteriores y la ventana
// activa del filtro.
type Partitions struct {
	Today      []entity.Order
	Yesterday  []entity.Order
	DaysBefore []entity.Order // Estrictamente antes del inicio de ayer
	Filtered   []entity.Order // La partición que pide el DateFilter
}

// Partition clasifica los pedidos por día civil. Los pedidos sin fecha usable
// solo entran a Filtered cuando la ventana es ilimitada (selector "all"):
// no pueden ubicarse en ningún bucket de tiempo.
func (p Params) Partition(orders []entity.Order, w Window, now time.Time) Partitions {
	todayStart := p.dayStart(now)
	yesterdayStart := todayStart.AddDate(0, 0, -1)
	tomorrowStart := todayStart.AddDate(0, 0, 1)

	var parts Partitions
	for _, o := range orders {
		ts, ok := o.EffectiveDate()
		if !ok {
			if w.Unbounded() {
				parts.Filtered = append(parts.Filtered, o)
			}
			continue
		}
		switch {
		case !ts.Before(todayStart) && ts.Before(tomorrowStart):
			parts.Today = append(parts.Today, o)
		case !ts.Before(yesterdayStart) && ts.Before(todayStart):
			parts.Yesterday = append(parts.Yesterday, o)
		case ts.Before(yesterdayStart):
			parts.DaysBefore = append(parts.DaysBefore, o)
		}
		if w.Contains(ts) {
			parts.Filtered = append(parts.Filtered, o)
		}
	}
	return parts
}

// filterReturns aplica la misma regla de ventana a las devoluciones, para que
// el descuento de utilidad quede alineado con la ventana de ingresos a la que
// afecta.
func filterReturns(returns []entity.Return, w Window) []entity.Return {
	out := make([]entity.Return, 0, len(returns))
	for _, r := range returns {
		if r.CreatedAt.IsZero() {
			if w.Unbounded() {
				out = append(out, r)
			}
			continue
		}
		if w.Contains(r.CreatedAt) {
			out = append(out, r)
		}
	}
	return out
}
