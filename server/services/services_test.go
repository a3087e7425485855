package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"almacenes/catalog"
	apperrors "almacenes/server/errors"
)

const catalogCSV = "Referencia;EAN;Nombre\n" +
	"[REF001] (ROJO, M);1111111111111;CAMISETA\n" +
	"[REF002] (AZUL, S);;PANTALON\n" +
	"[REF004] (GRIS, L);4444444444444;SUDADERA\n"

const requestCSV = "Articulo;Descripcion;Cantidad\n" +
	"[REF001] (ROJO, M);camiseta;5\n" +
	"[REF002] (AZUL, S);pantalon;2\n" +
	"[REF003] (NEGRO, XL);sudadera;1\n"

func newServices(t *testing.T) (*CatalogService, *RequestService, *MatchService) {
	t.Helper()
	return NewCatalogService(10, time.Hour),
		NewRequestService(10, time.Hour),
		NewMatchService(10, time.Hour)
}

func TestCatalogUploadAndGet(t *testing.T) {
	catalogs, _, _ := newServices(t)

	id, rows, err := catalogs.Upload("catalogo.csv", strings.NewReader(catalogCSV))
	require.NoError(t, err)
	assert.Equal(t, 3, rows)

	ix, err := catalogs.Get(id)
	require.NoError(t, err)
	assert.Equal(t, 3, ix.Len())
}

func TestCatalogGetUnknownIs404(t *testing.T) {
	catalogs, _, _ := newServices(t)

	_, err := catalogs.Get("desconocido")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.StatusCode())
	assert.Equal(t, "Catálogo o petición no encontrados", appErr.UserMessage())
}

func TestCatalogUploadBadFormatIs400(t *testing.T) {
	catalogs, _, _ := newServices(t)

	_, _, err := catalogs.Upload("datos.pdf", strings.NewReader("x"))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.StatusCode())
	assert.Equal(t, "Formato no soportado", appErr.UserMessage())
}

func TestMatchFlow(t *testing.T) {
	catalogs, requests, matches := newServices(t)

	catalogID, _, err := catalogs.Upload("catalogo.csv", strings.NewReader(catalogCSV))
	require.NoError(t, err)
	requestID, rows, err := requests.Upload("peticion.csv", strings.NewReader(requestCSV))
	require.NoError(t, err)
	assert.Equal(t, 3, rows)

	ix, err := catalogs.Get(catalogID)
	require.NoError(t, err)
	lines, err := requests.Get(requestID)
	require.NoError(t, err)

	matchID, report := matches.Match(ix, lines)
	assert.Equal(t, 3, report.Total)
	// REF002 есть в каталоге, но без кода — не найдена
	assert.Equal(t, 1, report.Found)
	assert.Equal(t, 2, report.NotFound)

	stored, err := matches.Get(matchID)
	require.NoError(t, err)
	assert.Equal(t, report, stored)
}

func TestMatchGetUnknownIs404(t *testing.T) {
	_, _, matches := newServices(t)

	_, err := matches.Get("desconocido")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Match no encontrado", appErr.UserMessage())
}

func TestCartViewResolvesAgainstDefaultCatalog(t *testing.T) {
	catalogs, _, _ := newServices(t)
	carts := NewCartService(catalogs)

	id, _, err := catalogs.Upload("catalogo.csv", strings.NewReader(catalogCSV))
	require.NoError(t, err)
	ix, err := catalogs.Get(id)
	require.NoError(t, err)
	catalogs.SetDefault(ix)

	carts.Add(catalog.ParseRef("[REF001] (ROJO, M)"), 2)
	carts.Add(catalog.ParseRef("[REF009] (LILA, S)"), 1)

	view := carts.View()
	require.Len(t, view.Manual, 2)
	require.NotNil(t, view.Manual[0].EAN)
	assert.Equal(t, "1111111111111", *view.Manual[0].EAN)
	// Неизвестная каталогу идентичность остается без кода, без ошибки
	assert.Nil(t, view.Manual[1].EAN)
	assert.Equal(t, 2, view.TotalItems)
}

func TestCartImportFlow(t *testing.T) {
	catalogs, requests, matches := newServices(t)
	carts := NewCartService(catalogs)

	id, _, err := catalogs.Upload("catalogo.csv", strings.NewReader(catalogCSV))
	require.NoError(t, err)
	ix, err := catalogs.Get(id)
	require.NoError(t, err)
	catalogs.SetDefault(ix)

	lines, err := requests.Parse("peticion.csv", strings.NewReader(requestCSV))
	require.NoError(t, err)

	importID, report := matches.Match(ix, lines)
	items := carts.MergeImport(report, importID)

	// В корзину попадает только найденная строка REF001
	assert.Equal(t, 1, items)
	view := carts.View()
	require.Len(t, view.Imported, 1)
	assert.Equal(t, int64(5), view.Imported[0].Qty)
	assert.Equal(t, importID, view.ImportID)
}

func TestCartCheckoutMixedSources(t *testing.T) {
	catalogs, requests, matches := newServices(t)
	carts := NewCartService(catalogs)

	id, _, err := catalogs.Upload("catalogo.csv", strings.NewReader(catalogCSV))
	require.NoError(t, err)
	ix, err := catalogs.Get(id)
	require.NoError(t, err)
	catalogs.SetDefault(ix)

	// Вручную: найденная и не найденная идентичности
	carts.Add(catalog.ParseRef("[REF001] (ROJO, M)"), 2)
	carts.Add(catalog.ParseRef("[REF003] (NEGRO, XL)"), 1)

	// Импорт пересекается с ручной частью по REF001
	lines, err := requests.Parse("peticion.csv", strings.NewReader(requestCSV))
	require.NoError(t, err)
	importID, report := matches.Match(ix, lines)
	carts.MergeImport(report, importID)

	checkout := carts.Checkout()
	require.Len(t, checkout, 2)

	assert.Equal(t, int64(7), checkout[0].Qty) // 2 ручных + 5 импортированных
	assert.True(t, checkout[0].Found)
	assert.False(t, checkout[1].Found)
}

func TestProductServiceRequiresDefaultCatalog(t *testing.T) {
	catalogs, _, _ := newServices(t)
	products := NewProductService(catalogs)

	_, err := products.Search("camiseta")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.StatusCode())
	assert.Equal(t, "Catálogo por defecto no cargado", appErr.UserMessage())
}

func TestProductSearchAndSuggest(t *testing.T) {
	catalogs, _, _ := newServices(t)
	products := NewProductService(catalogs)

	id, _, err := catalogs.Upload("catalogo.csv", strings.NewReader(catalogCSV))
	require.NoError(t, err)
	ix, err := catalogs.Get(id)
	require.NoError(t, err)
	catalogs.SetDefault(ix)

	groups, err := products.Search("camiseta")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "REF001", *groups[0].Ref)

	suggestions, err := products.Suggest("camisetas rojas", 5)
	require.NoError(t, err)
	require.NotEmpty(t, suggestions)
	assert.Equal(t, "REF001", *suggestions[0].Ref)
}
