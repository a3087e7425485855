package handlers

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"almacenes/catalog"
)

func previewReport() *catalog.Report {
	foundEntry := catalog.Entry{
		Identity: catalog.ParseRef("[REF001] (ROJO, M)"),
		Code:     sql.NullString{String: "1111111111111", Valid: true},
		Name:     sql.NullString{String: "CAMISETA", Valid: true},
	}
	return &catalog.Report{
		Outcomes: []catalog.Outcome{
			{
				Line: catalog.RequestLine{
					Identity: catalog.ParseRef("[REF001] (ROJO, M)"),
					Qty:      sql.NullInt64{Int64: 5, Valid: true},
				},
				Entry: &foundEntry,
				Found: true,
			},
			{
				Line: catalog.RequestLine{Identity: catalog.ParseRef("[REF003] (NEGRO, XL)")},
			},
		},
		Total:    2,
		Found:    1,
		NotFound: 1,
	}
}

func TestBuildPreviewFoundLine(t *testing.T) {
	preview := buildPreview(previewReport(), previewLimit)
	require.Len(t, preview, 2)

	row := preview[0]
	require.NotNil(t, row.Ref)
	assert.Equal(t, "REF001", *row.Ref)
	require.NotNil(t, row.Color)
	assert.Equal(t, "ROJO", *row.Color)
	require.NotNil(t, row.Talla)
	assert.Equal(t, "M", *row.Talla)
	require.NotNil(t, row.Cantidad)
	assert.Equal(t, int64(5), *row.Cantidad)
	require.NotNil(t, row.EAN)
	assert.Equal(t, "1111111111111", *row.EAN)
	require.NotNil(t, row.Nombre)
	assert.Equal(t, "CAMISETA", *row.Nombre)
	assert.Equal(t, "encontrado", row.Estado)
}

func TestBuildPreviewNotFoundLine(t *testing.T) {
	preview := buildPreview(previewReport(), previewLimit)
	require.Len(t, preview, 2)

	row := preview[1]
	require.NotNil(t, row.Ref)
	assert.Equal(t, "REF003", *row.Ref)
	assert.Equal(t, "no_encontrado", row.Estado)
	// Ненайденная строка без количества: ean, nombre и cantidad отсутствуют
	assert.Nil(t, row.EAN)
	assert.Nil(t, row.Nombre)
	assert.Nil(t, row.Cantidad)
}

func TestBuildPreviewRespectsLimit(t *testing.T) {
	report := &catalog.Report{}
	for i := 0; i < previewLimit+5; i++ {
		report.Outcomes = append(report.Outcomes, catalog.Outcome{
			Line: catalog.RequestLine{Identity: catalog.ParseRef("[REF001] (ROJO, M)")},
		})
	}
	report.Total = len(report.Outcomes)
	report.NotFound = report.Total

	preview := buildPreview(report, previewLimit)
	assert.Len(t, preview, previewLimit)
}
