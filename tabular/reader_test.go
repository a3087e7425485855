package tabular

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

func TestReadCSVCommaDelimited(t *testing.T) {
	data := "Referencia,EAN,Nombre\n\"[REF001] (ROJO, M)\",8400000000017,CAMISETA\n"

	table, err := ReadCSV("catalogo.csv", strings.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"Referencia", "EAN", "Nombre"}, table.Headers)
	require.Equal(t, 1, table.RowCount())
	assert.Equal(t, "8400000000017", table.Rows[0]["EAN"])
}

func TestReadCSVSemicolonDelimited(t *testing.T) {
	data := "Articulo;Descripcion;Cantidad\n[REF001] (ROJO, M);camiseta;5\n"

	table, err := ReadCSV("peticion.csv", strings.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"Articulo", "Descripcion", "Cantidad"}, table.Headers)
	// Запятая внутри этикетки не разрезает ячейку
	assert.Equal(t, "[REF001] (ROJO, M)", table.Rows[0]["Articulo"])
	assert.Equal(t, "5", table.Rows[0]["Cantidad"])
}

func TestReadCSVWindows1252Fallback(t *testing.T) {
	encoded, err := charmap.Windows1252.NewEncoder().Bytes([]byte("Referencia;Nombre\nREF001;CAMISETA AZULÓN\n"))
	require.NoError(t, err)

	table, err := ReadCSV("legacy.csv", bytes.NewReader(encoded))
	require.NoError(t, err)
	assert.Equal(t, "CAMISETA AZULÓN", table.Rows[0]["Nombre"])
}

func TestReadCSVSkipsEmptyRows(t *testing.T) {
	data := "Referencia;EAN\nREF001;111\n;\n\nREF002;222\n"

	table, err := ReadCSV("catalogo.csv", strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 2, table.RowCount())
}

func TestReadCSVEmptyFile(t *testing.T) {
	_, err := ReadCSV("vacio.csv", strings.NewReader(""))
	require.Error(t, err)

	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "Archivo vacío", formatErr.Reason)
}

func TestReadCSVHeadersOnly(t *testing.T) {
	_, err := ReadCSV("vacio.csv", strings.NewReader("Referencia;EAN\n"))
	require.Error(t, err)

	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "Archivo vacío", formatErr.Reason)
}

func TestReadTableUnsupportedExtension(t *testing.T) {
	_, err := ReadTable("datos.pdf", strings.NewReader("x"))
	require.Error(t, err)

	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "Formato no soportado", formatErr.Reason)
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "Referencia"))
	require.NoError(t, f.SetCellValue(sheet, "B1", "EAN"))
	require.NoError(t, f.SetCellValue(sheet, "A2", "[REF001] (ROJO, M)"))
	require.NoError(t, f.SetCellValue(sheet, "B2", "8400000000017"))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	table, err := ReadTable("catalogo.xlsx", bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, []string{"Referencia", "EAN"}, table.Headers)
	assert.Equal(t, "8400000000017", table.Rows[0]["EAN"])
}

func TestCleanHeadersNamesEmptyColumns(t *testing.T) {
	headers := cleanHeaders([]string{"Referencia", "", "  "})
	assert.Equal(t, []string{"Referencia", "Columna_2", "Columna_3"}, headers)
}

func TestColumn(t *testing.T) {
	table, err := ReadCSV("c.csv", strings.NewReader("A;B\n1;x\n2;y\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, table.Column("B"))
}
