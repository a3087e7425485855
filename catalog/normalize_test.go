package catalog

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"almacenes/tabular"
)

func makeTable(headers []string, rows ...[]string) *tabular.Table {
	t := &tabular.Table{Headers: headers}
	for _, values := range rows {
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(values) {
				row[h] = values[i]
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func TestResolveColumnsCaseInsensitive(t *testing.T) {
	resolved := resolveColumns([]string{"REFERENCIA", " Ean ", "Color", "desconocida"})

	assert.Equal(t, "REFERENCIA", resolved[roleReference])
	assert.Equal(t, " Ean ", resolved[roleCode])
	assert.Equal(t, "Color", resolved[roleColor])
	_, hasName := resolved[roleName]
	assert.False(t, hasName)
}

func TestResolveColumnsFirstWinsPerRole(t *testing.T) {
	// ean и codbarras претендуют на одну роль — побеждает первая по порядку
	resolved := resolveColumns([]string{"codbarras", "ean"})
	assert.Equal(t, "codbarras", resolved[roleCode])

	resolved = resolveColumns([]string{"ean", "codbarras"})
	assert.Equal(t, "ean", resolved[roleCode])
}

func TestNormalizeCatalogExplicitColumnsWin(t *testing.T) {
	table := makeTable(
		[]string{"Referencia", "Color", "Talla", "EAN", "Nombre"},
		[]string{"[REF001] (ROJO, M)", "NEGRO", "XL", "8400000000017", "CAMISETA"},
	)

	entries, err := NormalizeCatalog(table)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	// Явные колонки перекрывают цвет и размер из разбора референса
	assert.Equal(t, valid("REF001"), entries[0].Identity.Ref)
	assert.Equal(t, valid("NEGRO"), entries[0].Identity.Color)
	assert.Equal(t, valid("XL"), entries[0].Identity.Talla)
	assert.Equal(t, valid("8400000000017"), entries[0].Code)
	assert.Equal(t, valid("CAMISETA"), entries[0].Name)
}

func TestNormalizeCatalogParserFallback(t *testing.T) {
	// Без явных колонок цвет и размер берутся из разбора референса
	table := makeTable(
		[]string{"Referencia", "EAN"},
		[]string{"[REF001] (ROJO, M)", "8400000000017"},
	)

	entries, err := NormalizeCatalog(table)
	require.NoError(t, err)

	assert.Equal(t, valid("ROJO"), entries[0].Identity.Color)
	assert.Equal(t, valid("M"), entries[0].Identity.Talla)
}

func TestNormalizeCatalogEmptyExplicitCellIsAbsent(t *testing.T) {
	table := makeTable(
		[]string{"Referencia", "Color", "EAN"},
		[]string{"[REF001] (ROJO, M)", "  ", "8400000000017"},
	)

	entries, err := NormalizeCatalog(table)
	require.NoError(t, err)

	// Пустая ячейка явной колонки дает отсутствующее значение,
	// разбор референса не подставляется обратно
	assert.False(t, entries[0].Identity.Color.Valid)
	assert.Equal(t, valid("M"), entries[0].Identity.Talla)
}

func TestNormalizeCatalogNoReferenceColumn(t *testing.T) {
	table := makeTable(
		[]string{"Articulo", "EAN"},
		[]string{"[REF009] (GRIS, S)", "8400000000024"},
	)

	entries, err := NormalizeCatalog(table)
	require.NoError(t, err)
	assert.Equal(t, valid("REF009"), entries[0].Identity.Ref)
}

func TestNormalizeCatalogMissingCodeColumn(t *testing.T) {
	table := makeTable(
		[]string{"Referencia"},
		[]string{"[REF001] (ROJO, M)"},
	)

	entries, err := NormalizeCatalog(table)
	require.NoError(t, err)
	assert.False(t, entries[0].Code.Valid)
	assert.False(t, entries[0].Name.Valid)
}

func TestNormalizeCatalogEmptyTable(t *testing.T) {
	_, err := NormalizeCatalog(makeTable([]string{"Referencia"}))
	require.Error(t, err)

	var formatErr *tabular.FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "Archivo vacío", formatErr.Reason)
}

func TestNormalizeRequestPositionalQuantity(t *testing.T) {
	// Три колонки: количество — третья
	table := makeTable(
		[]string{"Articulo", "Descripcion", "Unidades"},
		[]string{"[REF001] (ROJO, M)", "camiseta", "5"},
	)
	lines, err := NormalizeRequest(table)
	require.NoError(t, err)
	assert.Equal(t, sql.NullInt64{Int64: 5, Valid: true}, lines[0].Qty)

	// Две колонки: количество — вторая
	table = makeTable(
		[]string{"Articulo", "Unidades"},
		[]string{"[REF001] (ROJO, M)", "3"},
	)
	lines, err = NormalizeRequest(table)
	require.NoError(t, err)
	assert.Equal(t, sql.NullInt64{Int64: 3, Valid: true}, lines[0].Qty)

	// Одна колонка: количества нет
	table = makeTable([]string{"Articulo"}, []string{"[REF001] (ROJO, M)"})
	lines, err = NormalizeRequest(table)
	require.NoError(t, err)
	assert.False(t, lines[0].Qty.Valid)
}

func TestNormalizeRequestCantidadOverridesPosition(t *testing.T) {
	table := makeTable(
		[]string{"Articulo", "Cantidad", "Notas"},
		[]string{"[REF001] (ROJO, M)", "7", "9"},
	)

	lines, err := NormalizeRequest(table)
	require.NoError(t, err)
	assert.Equal(t, sql.NullInt64{Int64: 7, Valid: true}, lines[0].Qty)
}

func TestNormalizeRequestIdentityFromLabelOnly(t *testing.T) {
	// Петиции не несут явных колонок цвета/размера: даже колонка "color"
	// не участвует в идентичности строки петиции
	table := makeTable(
		[]string{"Articulo", "color", "Cantidad"},
		[]string{"[REF001] (ROJO, M)", "NEGRO", "2"},
	)

	lines, err := NormalizeRequest(table)
	require.NoError(t, err)
	assert.Equal(t, valid("ROJO"), lines[0].Identity.Color)
}

func TestParseQuantity(t *testing.T) {
	cases := []struct {
		cell string
		want sql.NullInt64
	}{
		{"5", sql.NullInt64{Int64: 5, Valid: true}},
		{" 12 ", sql.NullInt64{Int64: 12, Valid: true}},
		{"5.0", sql.NullInt64{Int64: 5, Valid: true}},
		{"3,0", sql.NullInt64{Int64: 3, Valid: true}},
		{"", sql.NullInt64{}},
		{"abc", sql.NullInt64{}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, parseQuantity(tc.cell), "cell=%q", tc.cell)
	}
}
