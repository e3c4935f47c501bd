package ledger

import (
	"fmt"
	"time"
)

var monthNames = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// Period ventana opcional de año/mes para los filtros del libro.
// Year == 0 o Month == 0 significa "cualquiera":
//   - {0, 0}       todo el histórico
//   - {2024, 0}    todo 2024
//   - {0, 3}       marzo de cualquier año
//   - {2024, 3}    marzo de 2024
type Period struct {
	Year  int
	Month int
}

// NewPeriod valida y construye un periodo.
func NewPeriod(year, month int) (Period, error) {
	if month < 0 || month > 12 {
		return Period{}, fmt.Errorf("mes fuera de rango: %d", month)
	}
	if year != 0 && (year < 1970 || year > 9999) {
		return Period{}, fmt.Errorf("año fuera de rango: %d", year)
	}
	return Period{Year: year, Month: month}, nil
}

// IsZero indica si el periodo no filtra nada.
func (p Period) IsZero() bool { return p.Year == 0 && p.Month == 0 }

// Contains indica si t (evaluado en loc) cae dentro del periodo.
func (p Period) Contains(t time.Time, loc *time.Location) bool {
	if loc != nil {
		t = t.In(loc)
	}
	if p.Year != 0 && t.Year() != p.Year {
		return false
	}
	if p.Month != 0 && int(t.Month()) != p.Month {
		return false
	}
	return true
}

// Bounds devuelve el rango [from, to) equivalente cuando el periodo es contiguo
// (tiene año). Para "mes de cualquier año" o sin filtro devuelve ok = false.
func (p Period) Bounds(loc *time.Location) (from, to time.Time, ok bool) {
	if p.Year == 0 {
		return time.Time{}, time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	if p.Month == 0 {
		from = time.Date(p.Year, time.January, 1, 0, 0, 0, 0, loc)
		return from, from.AddDate(1, 0, 0), true
	}
	from = time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, loc)
	return from, from.AddDate(0, 1, 0), true
}

// Label devuelve una etiqueta legible, ej: "Marzo 2024", "2024", "Marzo", "Todo".
func (p Period) Label() string {
	switch {
	case p.Year != 0 && p.Month != 0:
		return fmt.Sprintf("%s %d", monthNames[p.Month-1], p.Year)
	case p.Year != 0:
		return fmt.Sprintf("%d", p.Year)
	case p.Month != 0:
		return monthNames[p.Month-1]
	default:
		return "Todo"
	}
}

// DayBounds devuelve [00:00, 00:00 del día siguiente) del día de t en loc.
func DayBounds(t time.Time, loc *time.Location) (from, to time.Time) {
	if loc != nil {
		t = t.In(loc)
	}
	from = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return from, from.AddDate(0, 0, 1)
}
