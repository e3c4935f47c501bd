package postgres

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWhereBuilder_SinCondiciones(t *testing.T) {
	var w whereBuilder
	assert.Equal(t, "", w.sql())
	assert.Empty(t, w.args)
}

func TestWhereBuilder_NumeraArgumentos(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	var w whereBuilder
	w.add("customer_id = $%d", "c-1")
	w.timeRange("date", from, to)

	assert.Equal(t, " WHERE customer_id = $1 AND date >= $2 AND date < $3", w.sql())
	assert.Equal(t, []any{"c-1", from, to}, w.args)
}

func TestWhereBuilder_RangoAbierto(t *testing.T) {
	var w whereBuilder
	w.timeRange("received_at", time.Time{}, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, " WHERE received_at < $1", w.sql())
}

func TestPgCode(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isForeignKeyViolation(unique))
	assert.True(t, isForeignKeyViolation(fk))
	assert.Equal(t, "", pgCode(errors.New("otro")))
}

func TestIsInvalidValue(t *testing.T) {
	for _, code := range []string{"22P02", "22003", "23514"} {
		assert.True(t, isInvalidValue(fmt.Errorf("get: %w", &pgconn.PgError{Code: code})), code)
	}
	assert.False(t, isInvalidValue(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isInvalidValue(errors.New("otro")))
}
