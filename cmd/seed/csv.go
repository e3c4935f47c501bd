package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/Shreyas100100/Expense-Tracker/internal/application/dto"
)

// readItems lee filas "nombre,precio". Una primera fila cuyo precio no es numérico se toma como encabezado.
// Con latin1 el archivo se decodifica desde ISO-8859-1 (exportaciones de Excel).
func readItems(r io.Reader, latin1 bool) ([]dto.ItemRequest, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out []dto.ItemRequest
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if len(rec) < 2 {
			return nil, fmt.Errorf("línea %d: se esperaban 2 columnas, hay %d", line, len(rec))
		}
		name := strings.TrimSpace(rec[0])
		price, err := decimal.NewFromString(strings.TrimSpace(rec[1]))
		if err != nil {
			if line == 1 {
				continue
			}
			return nil, fmt.Errorf("línea %d: precio %q inválido", line, rec[1])
		}
		out = append(out, dto.ItemRequest{Name: name, Price: price})
	}
	return out, nil
}
