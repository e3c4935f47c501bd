package postgres

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgCode devuelve el SQLSTATE del error, o "" si no viene de PostgreSQL.
func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == "23505"
}

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == "23503"
}

// isInvalidValue agrupa los errores de valor inválido: 22P02 (texto no convertible, p. ej. un
// UUID mal formado), 22003 (numérico fuera de rango de NUMERIC(14,2)) y 23514 (CHECK).
func isInvalidValue(err error) bool {
	switch pgCode(err) {
	case "22P02", "22003", "23514":
		return true
	}
	return false
}

// whereBuilder acumula condiciones y argumentos posicionales ($1, $2, ...).
type whereBuilder struct {
	conds []string
	args  []any
}

func (w *whereBuilder) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, fmt.Sprintf(cond, len(w.args)))
}

// timeRange agrega col >= from y col < to cuando no son cero.
func (w *whereBuilder) timeRange(col string, from, to time.Time) {
	if !from.IsZero() {
		w.add(col+" >= $%d", from)
	}
	if !to.IsZero() {
		w.add(col+" < $%d", to)
	}
}

func (w *whereBuilder) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}
