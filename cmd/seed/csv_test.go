package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestReadItems_ConEncabezado(t *testing.T) {
	items, err := readItems(strings.NewReader("name,price\nTea,12.50\n Samosa , 15\n"), false)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Tea", items[0].Name)
	assert.Equal(t, "12.5", items[0].Price.String())
	assert.Equal(t, "Samosa", items[1].Name)
}

func TestReadItems_Latin1(t *testing.T) {
	raw, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte("Café,20\n"))
	require.NoError(t, err)

	items, err := readItems(bytes.NewReader(raw), true)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Café", items[0].Name)
}

func TestReadItems_PrecioInvalidoFalla(t *testing.T) {
	_, err := readItems(strings.NewReader("Tea,12\nCoffee,abc\n"), false)
	assert.Error(t, err)

	_, err = readItems(strings.NewReader("Tea\n"), false)
	assert.Error(t, err, "una sola columna")
}
